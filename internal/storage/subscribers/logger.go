package subscribers

import (
	"context"
	"log/slog"

	"booktok/internal/types"
)

// NewLoggerRepository only reports signups, used when no database is configured.
func NewLoggerRepository(l *slog.Logger) Repository {
	return &loggerRepo{l: l}
}

type loggerRepo struct {
	l *slog.Logger
}

func (r *loggerRepo) Save(ctx context.Context, sub *types.Subscriber) error {
	r.l.InfoContext(ctx, "Newsletter signup",
		slog.String("subscriberId", sub.Id),
		slog.String("email", sub.Email),
		slog.String("name", sub.Name),
	)
	return nil
}
