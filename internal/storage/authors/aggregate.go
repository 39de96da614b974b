package authors

import (
	"sort"

	"booktok/internal/slug"
	"booktok/internal/storage/books"
	"booktok/internal/types"
)

func NewAggregator(br books.Repository) Repository {
	return &aggregator{books: br}
}

type aggregator struct {
	books books.Repository
}

// All groups books by the exact author string, so differently spelled names of the
// same person end up as separate authors.
func (a *aggregator) All() []types.Author {
	var names []string
	byName := make(map[string][]types.Book)

	for _, b := range a.books.All() {
		if _, ok := byName[b.Author]; !ok {
			names = append(names, b.Author)
		}
		byName[b.Author] = append(byName[b.Author], b)
	}

	ret := make([]types.Author, 0, len(names))
	for _, name := range names {
		bs := byName[name]

		sum := 0.0
		for _, b := range bs {
			sum += b.Rating
		}

		sort.SliceStable(bs, func(i, j int) bool {
			return bs[i].Rating > bs[j].Rating
		})

		ret = append(ret, types.Author{
			Name:      name,
			Slug:      slug.Make(name),
			BookCount: len(bs),
			AvgRating: sum / float64(len(bs)),
			Books:     bs,
		})
	}

	sort.SliceStable(ret, func(i, j int) bool {
		if ret[i].BookCount != ret[j].BookCount {
			return ret[i].BookCount > ret[j].BookCount
		}

		return ret[i].AvgRating > ret[j].AvgRating
	})

	return ret
}

func (a *aggregator) GetBySlug(s string) (types.Author, bool) {
	if s == "" {
		return types.Author{}, false
	}

	for _, author := range a.All() {
		if author.Slug == s {
			return author, true
		}
	}

	return types.Author{}, false
}
