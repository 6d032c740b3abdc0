package notifier

import (
	"errors"
	"fmt"
)

// ErrorKind distinguishes notification failures.
type ErrorKind string

const (
	ErrorUnconfigured   ErrorKind = "unconfigured"
	ErrorDeliveryFailed ErrorKind = "delivery_failed"
)

var (
	ErrUnconfigured   = errors.New("notifier unconfigured")
	ErrDeliveryFailed = errors.New("email delivery failed")
	ErrUnknownKind    = errors.New("unknown message kind")
)

// Error is the failure type returned by every Notifier.
type Error struct {
	Kind ErrorKind
	Err  error
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

// Is matches ErrUnconfigured and ErrDeliveryFailed by kind.
func (e *Error) Is(target error) bool {
	return target == e.sentinel()
}

func (e *Error) sentinel() error {
	if e.Kind == ErrorUnconfigured {
		return ErrUnconfigured
	}
	return ErrDeliveryFailed
}

func unconfigured(err error) *Error {
	return &Error{Kind: ErrorUnconfigured, Err: err}
}

func deliveryFailed(err error) *Error {
	return &Error{Kind: ErrorDeliveryFailed, Err: err}
}
