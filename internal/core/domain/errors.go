package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound marks a lookup for a record that does not exist, e.g. an
// archived run id.
var ErrNotFound = errors.New("not found")

// ErrorClass partitions remote call failures by how callers must react.
type ErrorClass string

const (
	// ErrClassTransient covers connection errors and 5xx responses.
	// Retried by the call envelope; surfaces only when retries are exhausted.
	ErrClassTransient ErrorClass = "transient"
	// ErrClassRateLimit is a 429 response. Retryable with backoff.
	ErrClassRateLimit ErrorClass = "rate_limit"
	// ErrClassAuth is a 401/403. Never retried; aborts the report run.
	ErrClassAuth ErrorClass = "auth"
	// ErrClassClient is any other 4xx. Fatal for the individual call only.
	ErrClassClient ErrorClass = "client"
)

// CallError is the typed failure of one remote read call. Op identifies the
// failed operation so fan-out output can attribute the failure to a parent.
type CallError struct {
	Class   ErrorClass
	Op      string
	Status  int
	Message string
	// RetryAfter is the server-requested backoff on rate-limit responses;
	// zero when the server did not send one.
	RetryAfter time.Duration
}

func (e *CallError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (status %d, %s)", e.Op, e.Message, e.Status, e.Class)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Op, e.Message, e.Class)
}

// Retryable reports whether the envelope may retry this failure.
func (e *CallError) Retryable() bool {
	return e.Class == ErrClassTransient || e.Class == ErrClassRateLimit
}

// AsCallError unwraps err into a *CallError if one is in its chain.
func AsCallError(err error) (*CallError, bool) {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsAuthError reports whether err is an authentication/authorization
// failure, which must abort the whole report run.
func IsAuthError(err error) bool {
	if ce, ok := AsCallError(err); ok {
		return ce.Class == ErrClassAuth
	}
	return false
}
