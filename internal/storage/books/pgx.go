package books

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/georgysavva/scany/v2/pgxscan"

	"booktok/internal/storage"
	"booktok/internal/types"
)

func NewPGXStore(pg storage.DB, l *slog.Logger) Store {
	return &pgxStore{pg: pg, g: goqu.Dialect("postgres"), l: l}
}

type pgxStore struct {
	pg storage.DB
	g  goqu.DialectWrapper
	l  *slog.Logger
}

type pgxBook struct {
	Id            string    `db:"id"`
	Position      int       `db:"position"`
	Title         string    `db:"title"`
	Author        string    `db:"author"`
	Rating        float64   `db:"rating"`
	Reviews       int       `db:"reviews"`
	CoverImage    string    `db:"cover_image"`
	GoodreadsUrl  string    `db:"goodreads_url"`
	AmazonUrl     string    `db:"amazon_url"`
	Description   string    `db:"description"`
	Plot          string    `db:"plot"`
	Genre         string    `db:"genre"`
	PublishedYear int       `db:"published_year"`
	ScrapedAt     time.Time `db:"scraped_at"`
}

func (b *pgxBook) intoCommon(ctx context.Context, l *slog.Logger) types.Book {
	return types.Book{
		Id:            b.Id,
		Title:         b.Title,
		Author:        b.Author,
		Rating:        b.Rating,
		Reviews:       b.Reviews,
		CoverImage:    checkedUrl(ctx, l, "cover", b.CoverImage),
		GoodreadsUrl:  checkedUrl(ctx, l, "goodreads", b.GoodreadsUrl),
		AmazonUrl:     checkedUrl(ctx, l, "amazon", b.AmazonUrl),
		Description:   b.Description,
		Plot:          b.Plot,
		Genre:         b.Genre,
		PublishedYear: b.PublishedYear,
		ScrapedAt:     b.ScrapedAt,
	}
}

// URLs are not validated on import, broken ones are reported and dropped on load
func checkedUrl(ctx context.Context, l *slog.Logger, kind, raw string) string {
	if raw == "" {
		return ""
	}

	// kept as stored, re-encoding could change it from what the file source returns
	if _, err := url.Parse(raw); err != nil {
		l.ErrorContext(ctx, "Failed to parse "+kind+" URL stored in DB ("+raw+"): "+err.Error())
		return ""
	}

	return raw
}

func (p *pgxStore) LoadAll(ctx context.Context) ([]types.Book, error) {
	sql, params, err := p.g.From("book").
		Order(goqu.C("position").Asc(), goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, err
	}

	var rows []pgxBook

	err = pgxscan.Select(ctx, p.pg, &rows, sql, params...)
	if err != nil {
		return nil, err
	}

	ret := make([]types.Book, 0, len(rows))
	for ix := range rows {
		ret = append(ret, rows[ix].intoCommon(ctx, p.l))
	}

	return ret, nil
}

func (p *pgxStore) Save(ctx context.Context, first int, books ...types.Book) error {
	if len(books) == 0 {
		return nil
	}

	rows := make([]any, 0, len(books))
	for ix, book := range books {
		rows = append(rows, pgxBook{
			Id:            book.Id,
			Position:      first + ix,
			Title:         book.Title,
			Author:        book.Author,
			Rating:        book.Rating,
			Reviews:       book.Reviews,
			CoverImage:    book.CoverImage,
			GoodreadsUrl:  book.GoodreadsUrl,
			AmazonUrl:     book.AmazonUrl,
			Description:   book.Description,
			Plot:          book.Plot,
			Genre:         book.Genre,
			PublishedYear: book.PublishedYear,
			ScrapedAt:     book.ScrapedAt,
		})
	}

	sql, params, err := p.g.Insert("book").
		Rows(rows...).
		OnConflict(goqu.DoUpdate("id", map[string]any{
			"position":       goqu.L("excluded.position"),
			"title":          goqu.L("excluded.title"),
			"author":         goqu.L("excluded.author"),
			"rating":         goqu.L("excluded.rating"),
			"reviews":        goqu.L("excluded.reviews"),
			"cover_image":    goqu.L("excluded.cover_image"),
			"goodreads_url":  goqu.L("excluded.goodreads_url"),
			"amazon_url":     goqu.L("excluded.amazon_url"),
			"description":    goqu.L("excluded.description"),
			"plot":           goqu.L("excluded.plot"),
			"genre":          goqu.L("excluded.genre"),
			"published_year": goqu.L("excluded.published_year"),
			"scraped_at":     goqu.L("excluded.scraped_at"),
		})).
		ToSQL()
	if err != nil {
		return err
	}

	_, err = p.pg.Exec(ctx, sql, params...)
	return err
}
