package importer

import (
	"context"
	"fmt"
	"log/slog"

	"booktok/internal/metrics"
	"booktok/internal/types"
)

const DefaultBatchSize = 50

// ErrorHandler decides what happens when a batch could not be consumed,
// returning nil skips the batch.
type ErrorHandler interface {
	Handle(first int, batch []types.Book, err error) error
}

// AbortHandler stops the import at the first failed batch.
type AbortHandler struct{}

func (AbortHandler) Handle(_ int, _ []types.Book, err error) error {
	return err
}

// SkippingHandler logs failed batches and carries on with the next one.
type SkippingHandler struct {
	Logger *slog.Logger
}

func (s *SkippingHandler) Handle(first int, batch []types.Book, err error) error {
	s.Logger.Error("Skipped batch: "+err.Error(), slog.Int("first", first), slog.Int("size", len(batch)))
	return nil
}

type Report struct {
	Total    int
	Consumed int
	Batches  int
	Findings []Finding
}

type Importer struct {
	Logger    *slog.Logger
	Consumer  Consumer
	Errors    ErrorHandler
	BatchSize int
}

// Run checks the records and hands them to the consumer in dataset order.
func (im *Importer) Run(ctx context.Context, records []types.Book) (*Report, error) {
	report := &Report{Total: len(records), Findings: Check(records)}

	for _, f := range report.Findings {
		im.Logger.WarnContext(ctx, "Data quality: "+string(f.Kind),
			slog.Int("position", f.Position),
			slog.String("bookId", f.BookId),
			slog.String("detail", f.Detail),
		)
	}

	size := im.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}

	errs := im.Errors
	if errs == nil {
		errs = AbortHandler{}
	}

	for first := 0; first < len(records); first += size {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		batch := records[first:min(first+size, len(records))]
		report.Batches++

		if err := im.Consumer.ConsumeBooks(ctx, first, batch); err != nil {
			if err = errs.Handle(first, batch, err); err != nil {
				return report, fmt.Errorf("consuming batch at %d: %w", first, err)
			}
			continue
		}

		report.Consumed += len(batch)
		metrics.ImportedBooks(len(batch))
	}

	im.Logger.InfoContext(ctx, "Import finished",
		slog.Int("total", report.Total),
		slog.Int("consumed", report.Consumed),
		slog.Int("batches", report.Batches),
		slog.Int("findings", len(report.Findings)),
	)

	return report, nil
}
