// Package apperr defines the error kinds surfaced to API clients and maps
// them onto HTTP responses.
package apperr

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-fightlog-go/pkg/utilities"
)

// sentinel kinds; match with errors.Is
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
)

// Error carries a client-facing message for one of the sentinel kinds.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

// New returns an error of the given kind whose client message is msg.
func New(kind error, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Invalid is shorthand for New(ErrInvalidInput, msg).
func Invalid(msg string) error {
	return New(ErrInvalidInput, msg)
}

// Status maps err onto an HTTP status code. Unknown errors are 500.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrConflict), errors.Is(err, ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the text safe to show a client.
func Message(err error) string {
	if Status(err) == http.StatusInternalServerError {
		return "Server error"
	}
	var e *Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	switch {
	case errors.Is(err, ErrConflict):
		return "Email already registered"
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, ErrUnauthenticated):
		return "Access denied"
	case errors.Is(err, ErrForbidden):
		return "Invalid token"
	case errors.Is(err, ErrNotFound):
		return "Record not found"
	}
	return "Invalid request"
}

// Write sends {"error": msg} with the mapped status. Internal errors are
// logged with their cause; the client only sees a generic message.
func Write(w http.ResponseWriter, r *http.Request, logger *zap.SugaredLogger, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError && logger != nil {
		logger.Errorw("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", w.Header().Get("X-Request-ID"),
			"err", err,
		)
	}
	utilities.WriteJSON(w, status, map[string]string{"error": Message(err)})
}
