package books

import (
	"context"

	"booktok/internal/types"
)

// Repository is a read-only view over the loaded record collection.
// Every method returns fresh slices with slugs computed from titles.
type Repository interface {
	All() []types.Book

	GetById(id string) (types.Book, bool)
	// GetBySlug returns the first book in source order whose title slug matches,
	// books with colliding slugs further down are not reachable this way.
	GetBySlug(slug string) (types.Book, bool)

	TopRated(limit int) []types.Book
	Latest(limit int) []types.Book
	ByGenre(genre string) []types.Book
	ByAuthor(name string) []types.Book
}

// Store persists the dataset produced by the scraper.
type Store interface {
	// LoadAll shall return books in dataset order
	LoadAll(ctx context.Context) ([]types.Book, error)
	// Save upserts books by id, first is the dataset position of books[0]
	Save(ctx context.Context, first int, books ...types.Book) error
}
