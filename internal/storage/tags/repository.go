package tags

import (
	"booktok/internal/types"
)

// Repository classifies books into the fixed taxonomy. Membership is computed at
// query time from book texts, it is never stored on a book.
type Repository interface {
	All() []types.Tag
	GetBySlug(slug string) (types.Tag, bool)

	// TagsFor returns matching tags in taxonomy order
	TagsFor(book *types.Book) []types.Tag
	// BooksByTag returns books in collection order, nil for unknown tag
	BooksByTag(slug string) []types.Book
	// AllWithCounts skips tags without books and sorts the rest by count
	AllWithCounts() []types.TagCount
}
