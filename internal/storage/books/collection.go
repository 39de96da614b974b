package books

import (
	"sort"
	"strings"

	"booktok/internal/slug"
	"booktok/internal/types"
)

// Collection is the in-memory Repository. It is never modified after NewCollection,
// so a single instance may be shared by any number of goroutines.
type Collection struct {
	records []types.Book
}

func NewCollection(records []types.Book) *Collection {
	cp := make([]types.Book, len(records))
	copy(cp, records)

	return &Collection{records: cp}
}

func (c *Collection) Len() int {
	return len(c.records)
}

func (c *Collection) All() []types.Book {
	ret := make([]types.Book, 0, len(c.records))
	for _, b := range c.records {
		ret = append(ret, withSlug(b))
	}

	return ret
}

func (c *Collection) GetById(id string) (types.Book, bool) {
	for _, b := range c.records {
		if b.Id == id {
			return withSlug(b), true
		}
	}

	return types.Book{}, false
}

func (c *Collection) GetBySlug(s string) (types.Book, bool) {
	if s == "" {
		return types.Book{}, false
	}

	for _, b := range c.records {
		if slug.Make(b.Title) == s {
			return withSlug(b), true
		}
	}

	return types.Book{}, false
}

func (c *Collection) TopRated(limit int) []types.Book {
	ret := c.All()
	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].Rating > ret[j].Rating
	})

	return truncate(ret, limit)
}

func (c *Collection) Latest(limit int) []types.Book {
	ret := c.All()
	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].ScrapedAt.After(ret[j].ScrapedAt)
	})

	return truncate(ret, limit)
}

func (c *Collection) ByGenre(genre string) []types.Book {
	return c.filter(func(b *types.Book) bool {
		return strings.EqualFold(b.Genre, genre)
	})
}

func (c *Collection) ByAuthor(name string) []types.Book {
	return c.filter(func(b *types.Book) bool {
		return b.Author == name
	})
}

func (c *Collection) filter(keep func(b *types.Book) bool) []types.Book {
	var ret []types.Book
	for ix := range c.records {
		if keep(&c.records[ix]) {
			ret = append(ret, withSlug(c.records[ix]))
		}
	}

	return ret
}

func withSlug(b types.Book) types.Book {
	b.Slug = slug.Make(b.Title)
	return b
}

func truncate(bs []types.Book, limit int) []types.Book {
	if limit <= 0 {
		return bs[:0]
	}

	if limit < len(bs) {
		return bs[:limit]
	}

	return bs
}
