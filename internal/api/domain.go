package api

import (
	"github.com/JaimeStill/intake/internal/inquiries"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Inquiries inquiries.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	store := inquiries.NewStore(
		runtime.Database.Connection(),
		runtime.Pagination,
	)

	inquiriesSystem := inquiries.New(
		store,
		runtime.Classifier,
		runtime.Notifier,
		runtime.Storage,
		runtime.Logger,
		inquiries.Options{
			Pagination:      runtime.Pagination,
			MaxBodySize:     runtime.MaxBodySize,
			ClassifyTimeout: runtime.ClassifyTimeout,
			NotifyTimeout:   runtime.NotifyTimeout,
		},
	)

	return &Domain{
		Inquiries: inquiriesSystem,
	}
}
