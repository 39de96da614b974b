package seo

import (
	"encoding/xml"
	"strings"
	"time"

	"booktok/internal/types"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type ChangeFreq string

const (
	ChangeDaily   ChangeFreq = "daily"
	ChangeWeekly  ChangeFreq = "weekly"
	ChangeMonthly ChangeFreq = "monthly"
)

type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

type URL struct {
	Loc          string     `xml:"loc"`
	LastModified string     `xml:"lastmod,omitempty"`
	ChangeFreq   ChangeFreq `xml:"changefreq,omitempty"`
	Priority     float32    `xml:"priority"`
}

// Sitemap lists the home page and a page per book, author and tag.
// Entries whose slug came out empty have no page and are skipped.
func Sitemap(baseURL string, books []types.Book, authors []types.Author, tags []types.TagCount,
	now time.Time) URLSet {

	baseURL = strings.TrimSuffix(baseURL, "/")

	urls := make([]URL, 0, 1+len(books)+len(authors)+len(tags))
	urls = append(urls, URL{
		Loc:          baseURL,
		LastModified: lastMod(now),
		ChangeFreq:   ChangeDaily,
		Priority:     1,
	})

	for _, b := range books {
		if b.Slug == "" {
			continue
		}

		urls = append(urls, URL{
			Loc:          baseURL + "/books/" + b.Slug,
			LastModified: lastMod(b.ScrapedAt),
			ChangeFreq:   ChangeMonthly,
			Priority:     0.8,
		})
	}

	for _, a := range authors {
		if a.Slug == "" {
			continue
		}

		var newest time.Time
		for _, b := range a.Books {
			if b.ScrapedAt.After(newest) {
				newest = b.ScrapedAt
			}
		}

		urls = append(urls, URL{
			Loc:          baseURL + "/authors/" + a.Slug,
			LastModified: lastMod(newest),
			ChangeFreq:   ChangeMonthly,
			Priority:     0.6,
		})
	}

	for _, t := range tags {
		urls = append(urls, URL{
			Loc:        baseURL + "/tags/" + t.Slug,
			ChangeFreq: ChangeWeekly,
			Priority:   0.7,
		})
	}

	return URLSet{Xmlns: sitemapNamespace, URLs: urls}
}

func (s URLSet) Marshal() ([]byte, error) {
	bs, err := xml.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}

	return append([]byte(xml.Header), bs...), nil
}

func lastMod(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.UTC().Format(time.RFC3339)
}
