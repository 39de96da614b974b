package seo

import (
	"bytes"
	"strconv"

	"github.com/goccy/go-json"

	"booktok/internal/types"
)

const schemaContext = "https://schema.org"

type Person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

func NewPerson(name, url string) Person {
	return Person{Type: "Person", Name: name, URL: url}
}

type Rating struct {
	Type        string `json:"@type"`
	RatingValue string `json:"ratingValue"`
	BestRating  string `json:"bestRating"`
	WorstRating string `json:"worstRating"`
	RatingCount string `json:"ratingCount,omitempty"`
}

type Review struct {
	Type         string `json:"@type"`
	Author       Person `json:"author"`
	ReviewRating Rating `json:"reviewRating"`
	ReviewBody   string `json:"reviewBody"`
	URL          string `json:"url,omitempty"`
}

type Book struct {
	Context         string `json:"@context"`
	Type            string `json:"@type"`
	Name            string `json:"name"`
	Author          Person `json:"author"`
	Image           string `json:"image,omitempty"`
	Genre           string `json:"genre,omitempty"`
	DatePublished   string `json:"datePublished,omitempty"`
	AggregateRating Rating `json:"aggregateRating"`
	Review          Review `json:"review"`
	URL             string `json:"url,omitempty"`
	Description     string `json:"description,omitempty"`
}

// BookSchema describes a reviewed book as schema.org/Book for rich search results.
// The site's own rating doubles as the aggregate rating.
func BookSchema(book *types.Book, reviewer Person, reviewURL string) Book {
	rating := strconv.FormatFloat(book.Rating, 'f', -1, 64)

	// schema validators reject zero counts
	count := book.Reviews
	if count < 1 {
		count = 1
	}

	var published string
	if book.PublishedYear > 0 {
		published = strconv.Itoa(book.PublishedYear) + "-01-01"
	}

	description := book.Plot
	if description == "" {
		description = book.Description
	}

	return Book{
		Context:       schemaContext,
		Type:          "Book",
		Name:          book.Title,
		Author:        NewPerson(book.Author, ""),
		Image:         book.CoverImage,
		Genre:         book.Genre,
		DatePublished: published,
		AggregateRating: Rating{
			Type:        "AggregateRating",
			RatingValue: rating,
			BestRating:  "5",
			WorstRating: "1",
			RatingCount: strconv.Itoa(count),
		},
		Review: Review{
			Type:   "Review",
			Author: reviewer,
			ReviewRating: Rating{
				Type:        "Rating",
				RatingValue: rating,
				BestRating:  "5",
				WorstRating: "1",
			},
			ReviewBody: book.Description,
			URL:        reviewURL,
		},
		URL:         book.GoodreadsUrl,
		Description: description,
	}
}

type Crumb struct {
	Name string
	URL  string
}

type BreadcrumbList struct {
	Context         string     `json:"@context"`
	Type            string     `json:"@type"`
	ItemListElement []ListItem `json:"itemListElement"`
}

type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

func BreadcrumbSchema(crumbs ...Crumb) BreadcrumbList {
	items := make([]ListItem, 0, len(crumbs))
	for ix, c := range crumbs {
		items = append(items, ListItem{
			Type:     "ListItem",
			Position: ix + 1,
			Name:     c.Name,
			Item:     c.URL,
		})
	}

	return BreadcrumbList{Context: schemaContext, Type: "BreadcrumbList", ItemListElement: items}
}

// MarshalJSONLD encodes v with slashes escaped, so "</script>" in a review cannot
// close the script tag the payload gets embedded into.
func MarshalJSONLD(v any) ([]byte, error) {
	bs, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return bytes.ReplaceAll(bs, []byte("/"), []byte(`\/`)), nil
}
