package classifier

import (
	"context"
	"errors"
	"log/slog"
)

var errProviderNone = errors.New("classification disabled by configuration")

// New builds the configured backend. Construction failure is not returned:
// it is logged once and the disabled classifier is used for the life of the
// process, so every inquiry falls back instead of retrying construction.
func New(ctx context.Context, cfg *Config, logger *slog.Logger) Classifier {
	logger = logger.With("system", "classifier")

	var (
		c   Classifier
		err error
	)

	switch cfg.Provider {
	case ProviderBedrock:
		initCtx, cancel := context.WithTimeout(ctx, cfg.TimeoutDuration())
		defer cancel()
		c, err = NewBedrock(initCtx, cfg)
	case ProviderOpenAI:
		c, err = NewOpenAI(cfg)
	default:
		err = errProviderNone
	}

	if err != nil {
		logger.Warn(
			"classifier disabled",
			"provider", cfg.Provider,
			"kind", KindOf(err),
			"error", err,
		)
		return Disabled(err)
	}

	logger.Info("classifier ready", "backend", c.Name())
	return c
}
