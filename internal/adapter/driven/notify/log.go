package notify

import (
	"context"
	"log/slog"

	"github.com/ericfisherdev/prbell/internal/domain/model"
	"github.com/ericfisherdev/prbell/internal/domain/port/driven"
)

var _ driven.Notifier = (*Log)(nil)

// Log is a Notifier that writes every notification to a structured logger.
// It keeps no state, so Clear always succeeds.
type Log struct {
	logger *slog.Logger
}

// NewLog creates a Log notifier.
func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Show(ctx context.Context, id string, n model.Notification) error {
	l.logger.InfoContext(ctx, "notification shown",
		"id", id,
		"title", n.Title,
		"body", n.Body,
		"require_interaction", n.RequireInteraction,
	)
	return nil
}

func (l *Log) Clear(ctx context.Context, id string) error {
	l.logger.DebugContext(ctx, "notification cleared", "id", id)
	return nil
}
