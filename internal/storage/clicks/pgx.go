package clicks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/georgysavva/scany/v2/pgxscan"

	"booktok/internal/storage"
	"booktok/internal/types"
)

func NewPGXRepository(pg storage.DB, l *slog.Logger) Repository {
	return &pgxRepo{pg: pg, g: goqu.Dialect("postgres"), l: l}
}

type pgxRepo struct {
	pg storage.DB
	g  goqu.DialectWrapper
	l  *slog.Logger
}

type pgxEvent struct {
	Id        string    `db:"id"`
	BookId    string    `db:"book_id"`
	Type      string    `db:"event_type"`
	CreatedAt time.Time `db:"created_at"`
}

type pgxCount struct {
	BookId string `db:"book_id"`
	Count  int    `db:"count"`
}

func (p *pgxRepo) Save(ctx context.Context, event *types.AffiliateEvent) error {
	sql, params, err := p.g.Insert("affiliate_event").
		Rows(pgxEvent{
			Id:        event.Id,
			BookId:    event.BookId,
			Type:      string(event.Type),
			CreatedAt: event.CreatedAt,
		}).
		ToSQL()
	if err != nil {
		return err
	}

	if _, err = p.pg.Exec(ctx, sql, params...); err != nil {
		return fmt.Errorf("saving affiliate event: %w", err)
	}

	return nil
}

func (p *pgxRepo) CountByBook(ctx context.Context) (map[string]int, error) {
	sql, params, err := p.g.From("affiliate_event").
		Select(goqu.C("book_id"), goqu.COUNT("*").As("count")).
		Where(goqu.C("event_type").Eq(string(types.AffiliateClick))).
		GroupBy(goqu.C("book_id")).
		ToSQL()
	if err != nil {
		return nil, err
	}

	var rows []pgxCount

	err = pgxscan.Select(ctx, p.pg, &rows, sql, params...)
	if err != nil {
		return nil, fmt.Errorf("counting affiliate clicks: %w", err)
	}

	ret := make(map[string]int, len(rows))
	for _, row := range rows {
		ret[row.BookId] = row.Count
	}

	return ret, nil
}
