package notifier

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
)

type logNotifier struct {
	cfg    *Config
	logger *slog.Logger
}

// NewLog creates a development notifier that records each message in the
// log instead of sending it.
func NewLog(cfg *Config, logger *slog.Logger) Notifier {
	return &logNotifier{
		cfg:    cfg,
		logger: logger,
	}
}

func (l *logNotifier) Notify(_ context.Context, kind Kind, to string, data TemplateData) (string, error) {
	if l.cfg.Sender == "" {
		return "", unconfigured(errors.New("sender address not set"))
	}

	template, err := l.cfg.Template(kind)
	if err != nil {
		return "", deliveryFailed(err)
	}

	id := uuid.NewString()
	l.logger.Info(
		"email sent",
		"message_id", id,
		"kind", kind,
		"template", template,
		"from", l.cfg.Sender,
		"to", to,
		"inquiry_id", data["inquiry_id"],
	)
	return id, nil
}
