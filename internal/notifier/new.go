package notifier

import (
	"context"
	"log/slog"
)

// New builds the configured backend.
func New(ctx context.Context, cfg *Config, logger *slog.Logger) (Notifier, error) {
	logger = logger.With("system", "notifier")

	if cfg.Sender == "" {
		logger.Warn("no sender configured; every notification will fail as unconfigured")
	}

	switch cfg.Provider {
	case ProviderLog:
		return NewLog(cfg, logger), nil
	default:
		return NewSES(ctx, cfg)
	}
}
