package mongodb

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/event"

	"github.com/jsamuelsen/blog-service/internal/platform/logging"
)

// commandMonitor logs every finished driver command at trace level, and
// failed ones at debug.
func commandMonitor(logger *slog.Logger) *event.CommandMonitor {
	return &event.CommandMonitor{
		Succeeded: func(ctx context.Context, e *event.CommandSucceededEvent) {
			logger.Log(ctx, logging.LevelTrace, "mongodb command",
				slog.String("command", e.CommandName),
				slog.String("database", e.DatabaseName),
				slog.Int64("request_id", e.RequestID),
				slog.Duration("duration", e.Duration),
			)
		},
		Failed: func(ctx context.Context, e *event.CommandFailedEvent) {
			logger.DebugContext(ctx, "mongodb command failed",
				slog.String("command", e.CommandName),
				slog.String("database", e.DatabaseName),
				slog.Int64("request_id", e.RequestID),
				slog.Duration("duration", e.Duration),
				slog.String("failure", e.Failure),
			)
		},
	}
}
