package tags

import (
	"sort"
	"strings"

	"booktok/internal/storage/books"
	"booktok/internal/types"
)

func NewClassifier(br books.Repository, taxonomy []types.Tag) Repository {
	return &classifier{books: br, taxonomy: taxonomy}
}

type classifier struct {
	books    books.Repository
	taxonomy []types.Tag
}

func (c *classifier) All() []types.Tag {
	ret := make([]types.Tag, len(c.taxonomy))
	copy(ret, c.taxonomy)

	return ret
}

func (c *classifier) GetBySlug(slug string) (types.Tag, bool) {
	for _, tag := range c.taxonomy {
		if tag.Slug == slug {
			return tag, true
		}
	}

	return types.Tag{}, false
}

func (c *classifier) TagsFor(book *types.Book) []types.Tag {
	text := searchText(book)

	var ret []types.Tag
	for ix := range c.taxonomy {
		if matches(&c.taxonomy[ix], text) {
			ret = append(ret, c.taxonomy[ix])
		}
	}

	return ret
}

func (c *classifier) BooksByTag(slug string) []types.Book {
	tag, ok := c.GetBySlug(slug)
	if !ok {
		return nil
	}

	var ret []types.Book
	for _, b := range c.books.All() {
		if matches(&tag, searchText(&b)) {
			ret = append(ret, b)
		}
	}

	return ret
}

func (c *classifier) AllWithCounts() []types.TagCount {
	all := c.books.All()
	texts := make([]string, 0, len(all))
	for ix := range all {
		texts = append(texts, searchText(&all[ix]))
	}

	var ret []types.TagCount
	for ix := range c.taxonomy {
		count := 0
		for _, text := range texts {
			if matches(&c.taxonomy[ix], text) {
				count += 1
			}
		}

		if count > 0 {
			ret = append(ret, types.TagCount{Tag: c.taxonomy[ix], BookCount: count})
		}
	}

	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].BookCount > ret[j].BookCount
	})

	return ret
}

func searchText(book *types.Book) string {
	return strings.ToLower(book.Title + " " + book.Description + " " + book.Plot)
}

// Plain substring match without word boundaries: "king" also hits "making".
// Narrowing it would move books between tag pages.
func matches(tag *types.Tag, text string) bool {
	for _, keyword := range tag.Keywords {
		if strings.Contains(text, strings.ToLower(keyword)) {
			return true
		}
	}

	return false
}
