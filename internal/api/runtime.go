package api

import (
	"time"

	"github.com/JaimeStill/intake/internal/config"
	"github.com/JaimeStill/intake/internal/infrastructure"
	"github.com/JaimeStill/intake/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination      pagination.Config
	MaxBodySize     int64
	ClassifyTimeout time.Duration
	NotifyTimeout   time.Duration
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle:  infra.Lifecycle,
			Logger:     infra.Logger.With("module", "api"),
			Database:   infra.Database,
			Storage:    infra.Storage,
			Classifier: infra.Classifier,
			Notifier:   infra.Notifier,
		},
		Pagination:      cfg.API.Pagination,
		MaxBodySize:     cfg.API.MaxBodySizeBytes(),
		ClassifyTimeout: cfg.Classifier.TimeoutDuration(),
		NotifyTimeout:   cfg.Notifier.TimeoutDuration(),
	}
}
