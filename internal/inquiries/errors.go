package inquiries

import (
	"errors"
	"net/http"
)

// Domain errors for inquiry operations.
var (
	ErrNotFound             = errors.New("inquiry not found")
	ErrInvalidID            = errors.New("invalid inquiry id")
	ErrInvalidInquiry       = errors.New("invalid inquiry")
	ErrWriteFailed          = errors.New("failed to record inquiry")
	ErrConstraint           = errors.New("inquiry violates a store constraint")
	ErrDeliveryFailed       = errors.New("response received but email delivery failed")
	ErrNotifierUnconfigured = errors.New("email sender is not configured")
	ErrTranscriptNotFound   = errors.New("classification transcript not found")
)

// MapHTTPStatus maps inquiry domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrTranscriptNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidID), errors.Is(err, ErrInvalidInquiry):
		return http.StatusBadRequest
	case errors.Is(err, ErrDeliveryFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
