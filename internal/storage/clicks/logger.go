package clicks

import (
	"context"
	"log/slog"
	"sync"

	"booktok/internal/types"
)

// NewLoggerRepository reports events to the log and keeps click counts in memory
// until the process exits.
func NewLoggerRepository(l *slog.Logger) Repository {
	return &loggerRepo{l: l, counts: make(map[string]int)}
}

type loggerRepo struct {
	l *slog.Logger

	mu     sync.Mutex
	counts map[string]int
}

func (r *loggerRepo) Save(ctx context.Context, event *types.AffiliateEvent) error {
	r.l.InfoContext(ctx, "Affiliate event",
		slog.String("bookId", event.BookId),
		slog.String("eventType", string(event.Type)),
	)

	if event.Type == types.AffiliateClick {
		r.mu.Lock()
		r.counts[event.BookId]++
		r.mu.Unlock()
	}

	return nil
}

func (r *loggerRepo) CountByBook(context.Context) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ret := make(map[string]int, len(r.counts))
	for id, n := range r.counts {
		ret[id] = n
	}

	return ret, nil
}
