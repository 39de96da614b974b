package importer

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"booktok/internal/storage/books"
	"booktok/internal/types"
)

type Consumer interface {
	// ConsumeBooks receives one batch, first is the dataset position of books[0]
	ConsumeBooks(ctx context.Context, first int, books []types.Book) error
}

// LoggerConsumer is a dry run, it only reports what would be stored.
type LoggerConsumer struct {
	Logger *slog.Logger
}

func (c *LoggerConsumer) ConsumeBooks(ctx context.Context, first int, books []types.Book) error {
	for ix := range books {
		b := &books[ix]

		suffixPlot := ""
		if b.Plot != "" {
			suffixPlot = " with plot"
		}

		c.Logger.InfoContext(ctx, "Consumed book "+b.Id+" ("+b.Title+") by "+b.Author+suffixPlot,
			slog.Int("position", first+ix),
			slog.String("rating", strconv.FormatFloat(b.Rating, 'f', -1, 64)),
		)
	}

	return nil
}

// StoringConsumer saves batches through the store. A record whose id was already
// consumed earlier in the run is skipped, the first one wins like in GetById.
type StoringConsumer struct {
	Logger *slog.Logger
	Books  books.Store

	seen map[string]struct{}
}

func (s *StoringConsumer) ConsumeBooks(ctx context.Context, first int, books []types.Book) error {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}

	// contiguous runs keep their dataset positions
	start := 0
	for ix := range books {
		if _, dup := s.seen[books[ix].Id]; !dup {
			s.seen[books[ix].Id] = struct{}{}
			continue
		}

		s.Logger.WarnContext(ctx, "Skipped duplicate book "+books[ix].Id, slog.Int("position", first+ix))

		if err := s.save(ctx, first+start, books[start:ix]); err != nil {
			return err
		}
		start = ix + 1
	}

	return s.save(ctx, first+start, books[start:])
}

func (s *StoringConsumer) save(ctx context.Context, first int, books []types.Book) error {
	if len(books) == 0 {
		return nil
	}

	if err := s.Books.Save(ctx, first, books...); err != nil {
		return fmt.Errorf("saving books %d..%d: %w", first, first+len(books)-1, err)
	}

	s.Logger.DebugContext(ctx, "Stored batch", slog.Int("first", first), slog.Int("size", len(books)))
	return nil
}
