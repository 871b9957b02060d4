// Package acl is the anti-corruption layer between the settings API and the
// console's domain. The wire documents and their translators live in
// subpackages (acl/notification, acl/password); the client and the shared
// error mapping live here.
package acl

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/console-settings/internal/domain"
)

// errorBodyLimit caps how much of a failed response is read.
const errorBodyLimit = 64 << 10

// statusErrors maps settings API statuses to domain sentinels. Statuses not
// listed here other than 5xx produce an error that matches no sentinel.
var statusErrors = map[int]error{
	http.StatusBadRequest:          domain.ErrValidation,
	http.StatusUnprocessableEntity: domain.ErrValidation,
	http.StatusUnauthorized:        domain.ErrForbidden,
	http.StatusForbidden:           domain.ErrForbidden,
	http.StatusNotFound:            domain.ErrNotFound,
	http.StatusConflict:            domain.ErrConflict,
	http.StatusTooManyRequests:     domain.ErrUnavailable,
}

// failureBody covers both error shapes the settings API emits: RFC 7807
// problem documents and the plain {"Results": "..."} write reply.
type failureBody struct {
	Detail  string       `json:"detail"`
	Results string       `json:"Results"`
	Errors  []fieldError `json:"errors"`
}

type fieldError struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// message is what the panels show for the failure.
func (b failureBody) message(status int) string {
	switch {
	case b.Detail != "":
		return b.Detail
	case b.Results != "":
		return b.Results
	default:
		return http.StatusText(status)
	}
}

// TranslateHTTPError turns a failed settings API response into a domain
// error whose text is the API's own description of the failure. Validation
// failures listing individual fields become a *domain.ValidationError.
func TranslateHTTPError(resp *http.Response) error {
	body := readFailure(resp)

	sentinel, ok := statusErrors[resp.StatusCode]
	if !ok && resp.StatusCode >= http.StatusInternalServerError {
		sentinel, ok = domain.ErrUnavailable, true
	}
	if !ok {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body.message(resp.StatusCode))
	}

	if sentinel == domain.ErrValidation && len(body.Errors) > 0 {
		fields := make(map[string]string, len(body.Errors))
		for _, fe := range body.Errors {
			fields[strings.TrimPrefix(fe.Location, "body.")] = fe.Message
		}
		return &domain.ValidationError{Fields: fields}
	}
	return fmt.Errorf("%s: %w", body.message(resp.StatusCode), sentinel)
}

// readFailure decodes a JSON failure body. Missing, non-JSON and malformed
// bodies all yield the zero value.
func readFailure(resp *http.Response) failureBody {
	var body failureBody
	if resp.Body == nil || !isJSON(resp.Header.Get("Content-Type")) {
		return body
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, errorBodyLimit)).Decode(&body); err != nil {
		return failureBody{}
	}
	return body
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || mt == "application/problem+json"
}
