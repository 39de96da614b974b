package subscribers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/doug-martin/goqu/v9"

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

type pgxSubscriber struct {
	Id        string    `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

func (p *pgxRepo) Save(ctx context.Context, sub *types.Subscriber) error {
	sql, params, err := p.g.Insert("subscriber").
		Rows(pgxSubscriber{
			Id:        sub.Id,
			Email:     sub.Email,
			Name:      sub.Name,
			CreatedAt: sub.CreatedAt,
		}).
		OnConflict(goqu.DoUpdate("email", goqu.Record{
			"name": goqu.L("excluded.name"),
		})).
		ToSQL()
	if err != nil {
		return err
	}

	if _, err = p.pg.Exec(ctx, sql, params...); err != nil {
		return fmt.Errorf("saving subscriber: %w", err)
	}

	p.l.DebugContext(ctx, "Subscriber saved", slog.String("subscriberId", sub.Id))
	return nil
}
