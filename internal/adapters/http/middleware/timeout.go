package middleware

import (
	"bytes"
	"context"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/jsamuelsen11/console-settings/internal/adapters/http/dto"
)

const msgTimedOut = "request timed out"

// Timeout gives the handler a deadline of d. A handler still running at the
// deadline loses its response: the client gets a 504 problem document and
// the handler's later writes fail with http.ErrHandlerTimeout.
//
// Slot calls are detached from the request context, so a settings write
// still settles after its request times out and its banner reflects the
// outcome.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			dw := &deadlineWriter{header: http.Header{}}
			finished := make(chan any, 1)
			go func() {
				defer func() { finished <- recover() }()
				next.ServeHTTP(dw, r.WithContext(ctx))
			}()

			select {
			case v := <-finished:
				if v != nil {
					// Recovery runs on this goroutine, not the handler's.
					panic(v)
				}
				dw.commit(w)
			case <-ctx.Done():
				dw.abandon()
				dto.WriteProblem(w, r, http.StatusGatewayTimeout, msgTimedOut)
			}
		})
	}
}

// deadlineWriter holds the handler's response until it is either committed
// to the client or abandoned at the deadline.
type deadlineWriter struct {
	mu        sync.Mutex
	header    http.Header
	body      bytes.Buffer
	status    int
	abandoned bool
}

func (dw *deadlineWriter) Header() http.Header {
	return dw.header
}

func (dw *deadlineWriter) WriteHeader(code int) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.status == 0 && !dw.abandoned {
		dw.status = code
	}
}

func (dw *deadlineWriter) Write(b []byte) (int, error) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.abandoned {
		return 0, http.ErrHandlerTimeout
	}
	if dw.status == 0 {
		dw.status = http.StatusOK
	}
	return dw.body.Write(b)
}

func (dw *deadlineWriter) abandon() {
	dw.mu.Lock()
	dw.abandoned = true
	dw.mu.Unlock()
}

// commit copies the held response to w. The handler has returned, so the
// header map is no longer shared.
func (dw *deadlineWriter) commit(w http.ResponseWriter) {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	maps.Copy(w.Header(), dw.header)
	if dw.status != 0 {
		w.WriteHeader(dw.status)
	}
	if dw.body.Len() > 0 {
		_, _ = w.Write(dw.body.Bytes())
	}
}
