// Package slot tracks one asynchronous remote operation and its last-known
// outcome. A Slot moves through four phases:
//
//	Uninitialized ──Trigger──▶ Fetching ──▶ Success(data) | Error(message)
//	                              ▲                 │
//	                              └────Trigger──────┘
//
// Construction:
//
//	loader := slot.New("notifications.list", client.FetchNotificationConfig,
//	    slot.WithTimeout(10*time.Second),
//	    slot.WithLogger(logger),
//	)
//
// Auto-triggered slots use EnsureStarted, which issues the remote call only
// while the slot is still Uninitialized and is therefore safe to call on
// every render:
//
//	loader.EnsureStarted(ctx, struct{}{})
//
// Action-triggered slots use Trigger. Completions are applied in arrival
// order: when two calls overlap, whichever response lands last determines
// the final state, regardless of which call was issued last. In-flight
// calls are never canceled.
package slot

import (
	"context"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/jsamuelsen11/console-settings/internal/platform/logging"
)

// FetchFunc performs the remote operation for a slot.
type FetchFunc[P, T any] func(ctx context.Context, params P) (T, error)

// Settled describes a finished call. It is passed to the settle hook.
type Settled struct {
	Slot     string
	Call     uint64
	Phase    Phase
	Duration time.Duration
	Err      error
}

// Option configures a Slot.
type Option func(*options)

type options struct {
	timeout  time.Duration
	logger   *slog.Logger
	onSettle func(ctx context.Context, s Settled)
}

// WithTimeout bounds every call issued by the slot. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger sets the logger used for trigger and settle events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSettleHook registers fn to run after each call has been applied.
// It is typically used to record metrics.
func WithSettleHook(fn func(ctx context.Context, s Settled)) Option {
	return func(o *options) { o.onSettle = fn }
}

// Slot is one tracked asynchronous operation. The zero value is not usable;
// construct with New. A Slot is safe for concurrent use.
type Slot[P, T any] struct {
	name  string
	fetch FetchFunc[P, T]
	opts  options

	mu       sync.Mutex
	state    State[T]
	last     *T
	seq      uint64
	latest   *Call
	inflight map[uint64]pending[P]
	subs     []func(State[T])
}

type pending[P any] struct {
	params P
	call   *Call
}

// New creates a Slot in the Uninitialized phase.
func New[P, T any](name string, fetch FetchFunc[P, T], opts ...Option) *Slot[P, T] {
	o := options{logger: logging.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Slot[P, T]{
		name:     name,
		fetch:    fetch,
		opts:     o,
		inflight: make(map[uint64]pending[P]),
	}
}

// Name returns the identifier given at construction.
func (s *Slot[P, T]) Name() string {
	return s.name
}

// State returns a snapshot of the slot. The Data pointer, when set, must be
// treated as read-only.
func (s *Slot[P, T]) State() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastSuccess returns the payload of the most recent successful call, even
// while the slot is Fetching or in Error. The second result is false if no
// call has succeeded yet.
func (s *Slot[P, T]) LastSuccess() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		var zero T
		return zero, false
	}
	return *s.last, true
}

// Subscribe registers fn to be called with the new state after every
// transition. Callbacks run outside the slot's lock and may be invoked
// concurrently when completions race.
func (s *Slot[P, T]) Subscribe(fn func(State[T])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Trigger starts the operation with params and moves the slot to Fetching
// before returning. If a call with deep-equal params is still in flight,
// that call is returned and no new request is issued.
//
// The call runs detached from ctx cancellation; ctx still supplies values
// such as the logger and trace span.
func (s *Slot[P, T]) Trigger(ctx context.Context, params P) *Call {
	s.mu.Lock()
	for _, p := range s.inflight {
		if reflect.DeepEqual(p.params, params) {
			s.mu.Unlock()
			return p.call
		}
	}
	call := s.beginLocked(params)
	s.mu.Unlock()

	s.dispatch(ctx, call, params)
	return call
}

// Retrigger always issues a new call with params, even when a call with
// deep-equal params is in flight. Use it when the caller needs a result
// that reflects state changed after the in-flight call was issued, such as
// re-reading a document once a write has committed.
func (s *Slot[P, T]) Retrigger(ctx context.Context, params P) *Call {
	s.mu.Lock()
	call := s.beginLocked(params)
	s.mu.Unlock()

	s.dispatch(ctx, call, params)
	return call
}

// TriggerIfIdle issues a call with params only when no call is in flight.
// It reports whether this invocation issued the call. The check and the
// transition to Fetching happen under one lock, so of several concurrent
// callers exactly one wins.
func (s *Slot[P, T]) TriggerIfIdle(ctx context.Context, params P) (*Call, bool) {
	s.mu.Lock()
	if len(s.inflight) > 0 {
		s.mu.Unlock()
		return nil, false
	}
	call := s.beginLocked(params)
	s.mu.Unlock()

	s.dispatch(ctx, call, params)
	return call, true
}

// EnsureStarted triggers the slot only if it is still Uninitialized. It
// reports whether this invocation issued the call. When the slot has
// already been started, the most recent call is returned instead.
func (s *Slot[P, T]) EnsureStarted(ctx context.Context, params P) (*Call, bool) {
	s.mu.Lock()
	if s.state.Phase != Uninitialized {
		call := s.latest
		s.mu.Unlock()
		return call, false
	}
	call := s.beginLocked(params)
	s.mu.Unlock()

	s.dispatch(ctx, call, params)
	return call, true
}

// beginLocked records a new call and moves to Fetching. The previous
// Data and Err are dropped from the snapshot; LastSuccess keeps the last
// payload. Must be called with s.mu held.
func (s *Slot[P, T]) beginLocked(params P) *Call {
	s.seq++
	call := newCall(s.seq)
	s.inflight[call.id] = pending[P]{params: params, call: call}
	s.latest = call
	s.state = State[T]{Phase: Fetching, Call: call.id}
	return call
}

func (s *Slot[P, T]) dispatch(ctx context.Context, call *Call, params P) {
	s.opts.logger.DebugContext(ctx, "slot triggered",
		slog.String("slot", s.name),
		slog.Uint64("call", call.id),
	)
	s.notify(State[T]{Phase: Fetching, Call: call.id})

	go s.run(context.WithoutCancel(ctx), call, params)
}

func (s *Slot[P, T]) run(ctx context.Context, call *Call, params P) {
	defer close(call.done)

	if s.opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.timeout)
		defer cancel()
	}

	start := time.Now()
	val, err := s.fetch(ctx, params)
	s.settle(ctx, call, val, err, time.Since(start))
}

// settle applies a completed call. Every completion overwrites the current
// state, so the response that arrives last wins.
func (s *Slot[P, T]) settle(ctx context.Context, call *Call, val T, err error, elapsed time.Duration) {
	s.mu.Lock()
	delete(s.inflight, call.id)
	if err != nil {
		s.state = State[T]{Phase: Error, Err: describe(err), Call: call.id}
	} else {
		v := val
		s.state = State[T]{Phase: Success, Data: &v, Call: call.id}
		s.last = &v
	}
	snap := s.state
	s.mu.Unlock()

	call.err = err

	if err != nil {
		s.opts.logger.WarnContext(ctx, "slot call failed",
			slog.String("slot", s.name),
			slog.Uint64("call", call.id),
			slog.Duration("duration", elapsed),
			slog.Any("error", err),
		)
	} else {
		s.opts.logger.DebugContext(ctx, "slot call succeeded",
			slog.String("slot", s.name),
			slog.Uint64("call", call.id),
			slog.Duration("duration", elapsed),
		)
	}

	s.notify(snap)

	if s.opts.onSettle != nil {
		s.opts.onSettle(ctx, Settled{
			Slot:     s.name,
			Call:     call.id,
			Phase:    snap.Phase,
			Duration: elapsed,
			Err:      err,
		})
	}
}

func (s *Slot[P, T]) notify(st State[T]) {
	s.mu.Lock()
	subs := make([]func(State[T]), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(st)
	}
}

// describe returns the user-visible description of a failure. An empty
// message would break the Error-implies-message invariant.
func describe(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "request failed"
}
