package opds

import (
	"encoding/xml"
	"strconv"
	"strings"
	"time"

	"github.com/opds-community/libopds2-go/opds1"

	"booktok/internal/types"
)

const (
	ContentType = "application/atom+xml;profile=opds-catalog;kind=acquisition"

	linkTypeCatalog = "application/atom+xml;profile=opds-catalog"
	linkTypeHtml    = "text/html"
	linkRelImage    = "http://opds-spec.org/image"
	linkRelBuy      = "http://opds-spec.org/acquisition/buy"
	linkRelSelf     = "self"
	linkRelStart    = "start"
	linkRelAlt      = "alternate"

	bookIdTemplate   = "tag:book:"
	tagPrefix        = "tag:"
	atomNamespace    = "http://www.w3.org/2005/Atom"
	coverTypeDefault = "image/jpeg"
)

// Classifier is the part of the tag repository needed to put tag categories on entries.
type Classifier interface {
	TagsFor(book *types.Book) []types.Tag
}

// Feed is an OPDS 1 acquisition feed ready to be marshalled as Atom.
type Feed struct {
	XMLName xml.Name `xml:"feed"`
	Xmlns   string   `xml:"xmlns,attr"`
	opds1.Feed
}

type Catalog struct {
	BaseURL    string
	Classifier Classifier
}

// Build makes a feed of books at selfPath, entries follow the order of books.
func (c *Catalog) Build(title, selfPath string, books []types.Book, updated time.Time) Feed {
	base := strings.TrimSuffix(c.BaseURL, "/")

	entries := make([]opds1.Entry, 0, len(books))
	for ix := range books {
		entries = append(entries, c.entry(base, &books[ix]))
	}

	return Feed{
		Xmlns: atomNamespace,
		Feed: opds1.Feed{
			ID:      base + selfPath,
			Title:   title,
			Updated: updated.UTC(),
			Entries: entries,
			Links: []opds1.Link{
				{Rel: linkRelSelf, Href: base + selfPath, TypeLink: linkTypeCatalog},
				{Rel: linkRelStart, Href: base + "/opds", TypeLink: linkTypeCatalog},
			},
		},
	}
}

func (c *Catalog) entry(base string, book *types.Book) opds1.Entry {
	e := opds1.Entry{
		ID:     bookIdTemplate + book.Id,
		Title:  book.Title,
		Author: []opds1.Author{{Name: book.Author}},
		Content: opds1.Content{
			Content:     book.Description,
			ContentType: "text",
		},
	}

	if book.PublishedYear > 0 {
		e.Issued = strconv.Itoa(book.PublishedYear)
	}

	if book.Genre != "" {
		e.Category = append(e.Category, opds1.Category{Term: book.Genre})
	}

	if c.Classifier != nil {
		for _, tag := range c.Classifier.TagsFor(book) {
			e.Category = append(e.Category, opds1.Category{Term: tagPrefix + tag.Slug})
		}
	}

	if book.CoverImage != "" {
		e.Links = append(e.Links, opds1.Link{Rel: linkRelImage, Href: book.CoverImage, TypeLink: coverTypeDefault})
	}

	if book.Slug != "" {
		e.Links = append(e.Links, opds1.Link{Rel: linkRelAlt, Href: base + "/books/" + book.Slug, TypeLink: linkTypeHtml})
	}

	if book.GoodreadsUrl != "" {
		e.Links = append(e.Links, opds1.Link{Rel: linkRelAlt, Href: book.GoodreadsUrl, TypeLink: linkTypeHtml})
	}

	if book.AmazonUrl != "" {
		e.Links = append(e.Links, opds1.Link{Rel: linkRelBuy, Href: book.AmazonUrl, TypeLink: linkTypeHtml})
	}

	return e
}

func (f Feed) Marshal() ([]byte, error) {
	bs, err := xml.Marshal(f)
	if err != nil {
		return nil, err
	}

	return append([]byte(xml.Header), bs...), nil
}
