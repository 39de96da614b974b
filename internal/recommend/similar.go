package recommend

import (
	"math"
	"sort"

	"booktok/internal/storage/books"
	"booktok/internal/types"
)

const (
	DefaultLimit = 6

	// books rated within this distance of the current one are considered similar
	ratingWindow = 0.5
)

// Similar ranks other books of the collection by author and rating closeness.
// Genre, tags and texts are not taken into account.
type Similar struct {
	books books.Repository
}

func NewSimilar(br books.Repository) *Similar {
	return &Similar{books: br}
}

// SimilarTo returns books by the same author first, then books rated close to the
// given one, each group best rated first. Unknown id yields nothing.
func (s *Similar) SimilarTo(bookId string, limit int) []types.Book {
	current, ok := s.books.GetById(bookId)
	if !ok || limit <= 0 {
		return nil
	}

	var candidates []types.Book
	for _, b := range s.books.All() {
		if b.Id == bookId {
			continue
		}

		if b.Author == current.Author || math.Abs(b.Rating-current.Rating) <= ratingWindow {
			candidates = append(candidates, b)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		iSame := candidates[i].Author == current.Author
		jSame := candidates[j].Author == current.Author
		if iSame != jSame {
			return iSame
		}

		return candidates[i].Rating > candidates[j].Rating
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates
}
