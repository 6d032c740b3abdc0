package classifier

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind distinguishes why a classification could not be produced.
type Kind string

// Error kinds.
const (
	KindUnavailable     Kind = "unavailable"
	KindInvalidResponse Kind = "invalid_response"
	KindConfiguration   Kind = "configuration"
)

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrUnavailable     = errors.New("classifier unavailable")
	ErrInvalidResponse = errors.New("classifier returned an invalid response")
	ErrConfiguration   = errors.New("classifier misconfigured")
)

// Error is the failure type returned by every Classifier.
type Error struct {
	Kind Kind
	Err  error
	// Raw is the model output that failed validation, if any.
	Raw string
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.sentinel().Error()
	}
	return fmt.Sprintf("%s: %v", e.sentinel(), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels.
func (e *Error) Is(target error) bool {
	return target == e.sentinel()
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindInvalidResponse:
		return ErrInvalidResponse
	case KindConfiguration:
		return ErrConfiguration
	default:
		return ErrUnavailable
	}
}

// KindOf returns the kind of a classifier error. Errors that did not come from
// a Classifier are reported as unavailable.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnavailable
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// transportKind handles failures common to every backend: deadlines,
// cancellation, and network errors are all unavailability.
func transportKind(err error) (Kind, bool) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindUnavailable, true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindUnavailable, true
	}
	return "", false
}
