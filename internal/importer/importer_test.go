package importer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booktok/internal/storage/books"
	"booktok/internal/testutil"
	"booktok/internal/types"
)

type batch struct {
	first int
	ids   []string
}

type recordingConsumer struct {
	batches []batch
	failAt  int
}

func (r *recordingConsumer) ConsumeBooks(_ context.Context, first int, bs []types.Book) error {
	if r.failAt >= 0 && first == r.failAt {
		return errors.New("disk full")
	}

	ids := make([]string, 0, len(bs))
	for _, b := range bs {
		ids = append(ids, b.Id)
	}
	r.batches = append(r.batches, batch{first: first, ids: ids})
	return nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCheck(t *testing.T) {
	records := testutil.Shelf()

	noDesc := testutil.Book("7", "!!!", "Nobody", 6)
	noDesc.Description = " "
	records = append(records, noDesc, testutil.Book("1", "Another Book", "Someone", -1))

	kinds := make([]FindingKind, 0)
	positions := make([]int, 0)
	for _, f := range Check(records) {
		kinds = append(kinds, f.Kind)
		positions = append(positions, f.Position)
	}

	assert.Equal(t, []FindingKind{DuplicateSlug, EmptySlug, EmptyDescription, RatingOutOfRange, DuplicateId, RatingOutOfRange}, kinds)
	assert.Equal(t, []int{5, 6, 6, 6, 7, 7}, positions)
}

func TestCheck_Clean(t *testing.T) {
	assert.Empty(t, Check(testutil.Shelf()[:5]))
}

func TestImporter_Batches(t *testing.T) {
	c := &recordingConsumer{failAt: -1}
	im := &Importer{Logger: discard(), Consumer: c, BatchSize: 4}

	report, err := im.Run(context.Background(), testutil.Shelf())
	require.NoError(t, err)

	assert.Equal(t, []batch{
		{first: 0, ids: []string{"1", "2", "3", "4"}},
		{first: 4, ids: []string{"5", "6"}},
	}, c.batches)
	assert.Equal(t, 6, report.Total)
	assert.Equal(t, 6, report.Consumed)
	assert.Equal(t, 2, report.Batches)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, "6", report.Findings[0].BookId)
}

func TestImporter_Abort(t *testing.T) {
	c := &recordingConsumer{failAt: 2}
	im := &Importer{Logger: discard(), Consumer: c, BatchSize: 2}

	report, err := im.Run(context.Background(), testutil.Shelf())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "consuming batch at 2: disk full")
	assert.Equal(t, 2, report.Consumed)
	assert.Len(t, c.batches, 1)
}

func TestImporter_Skip(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))

	c := &recordingConsumer{failAt: 2}
	im := &Importer{Logger: l, Consumer: c, BatchSize: 2, Errors: &SkippingHandler{Logger: l}}

	report, err := im.Run(context.Background(), testutil.Shelf())
	require.NoError(t, err)
	assert.Equal(t, 4, report.Consumed)
	assert.Equal(t, 3, report.Batches)
	assert.Len(t, c.batches, 2)
	assert.Contains(t, buf.String(), "Skipped batch: disk full")
	assert.Contains(t, buf.String(), "Data quality: duplicate-slug")
}

func TestImporter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &recordingConsumer{failAt: -1}
	_, err := (&Importer{Logger: discard(), Consumer: c}).Run(ctx, testutil.Shelf())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, c.batches)
}

func TestLoggerConsumer(t *testing.T) {
	var buf bytes.Buffer
	c := &LoggerConsumer{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	require.NoError(t, c.ConsumeBooks(context.Background(), 10, testutil.Shelf()[:1]))
	assert.Contains(t, buf.String(), "Consumed book 1 (Fourth Wing (The Empyrean, #1)) by Rebecca Yarros with plot")
	assert.Contains(t, buf.String(), "position=10")
}

func TestStoringConsumer(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO "book"`).WillReturnResult(pgxmock.NewResult("INSERT", 3))
	mock.ExpectExec(`INSERT INTO "book"`).WillReturnError(errors.New("deadlock detected"))

	c := &StoringConsumer{Logger: discard(), Books: books.NewPGXStore(mock, discard())}
	im := &Importer{Logger: discard(), Consumer: c, BatchSize: 3}

	report, err := im.Run(context.Background(), testutil.Shelf())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving books 3..5: deadlock detected")
	assert.Equal(t, 3, report.Consumed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type savedRun struct {
	first int
	ids   []string
}

type recordingStore struct {
	runs []savedRun
}

func (r *recordingStore) LoadAll(context.Context) ([]types.Book, error) {
	return nil, nil
}

func (r *recordingStore) Save(_ context.Context, first int, bs ...types.Book) error {
	ids := make([]string, 0, len(bs))
	for _, b := range bs {
		ids = append(ids, b.Id)
	}
	r.runs = append(r.runs, savedRun{first: first, ids: ids})
	return nil
}

func TestStoringConsumer_SkipsDuplicateIds(t *testing.T) {
	records := []types.Book{
		testutil.Book("a", "One", "X", 4),
		testutil.Book("b", "Two", "X", 4),
		testutil.Book("a", "One again", "X", 4),
		testutil.Book("c", "Three", "X", 4),
		testutil.Book("b", "Two again", "X", 4),
		testutil.Book("d", "Four", "X", 4),
	}

	store := &recordingStore{}
	c := &StoringConsumer{Logger: discard(), Books: store}
	im := &Importer{Logger: discard(), Consumer: c, BatchSize: 4}

	_, err := im.Run(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, []savedRun{
		{first: 0, ids: []string{"a", "b"}},
		{first: 3, ids: []string{"c"}},
		{first: 5, ids: []string{"d"}},
	}, store.runs)
}
