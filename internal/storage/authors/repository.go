package authors

import (
	"booktok/internal/types"
)

// Repository groups the books of the collection by author. Authors are derived
// on every call, nothing is cached between calls.
type Repository interface {
	All() []types.Author
	// GetBySlug returns the first author in All order with this slug
	GetBySlug(slug string) (types.Author, bool)
}
