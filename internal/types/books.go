package types

import "time"

// Book is one reviewed record of the scraped dataset. Slug is never read from the
// dataset, repositories fill it in from Title on every access.
type Book struct {
	Id            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Rating        float64   `json:"rating"`
	Reviews       int       `json:"reviews"`
	CoverImage    string    `json:"coverImage"`
	GoodreadsUrl  string    `json:"goodreadsUrl"`
	AmazonUrl     string    `json:"amazonUrl"`
	Description   string    `json:"description"`
	Plot          string    `json:"plot,omitempty"`
	Genre         string    `json:"genre"`
	PublishedYear int       `json:"publishedYear,omitempty"` // 0 when unknown
	ScrapedAt     time.Time `json:"scrapedAt"`
	Slug          string    `json:"slug"`
}

type Author struct {
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	BookCount int     `json:"bookCount"`
	AvgRating float64 `json:"avgRating"`
	Books     []Book  `json:"books"`
}

type Tag struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

type TagCount struct {
	Tag
	BookCount int `json:"bookCount"`
}
