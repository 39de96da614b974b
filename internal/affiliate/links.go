package affiliate

import (
	"fmt"
	"net/url"
	"strings"

	"booktok/internal/types"
)

const DefaultRegion = "com"

// Linker builds Amazon links carrying the affiliate tag.
type Linker struct {
	Region string
	Tag    string
}

func (l *Linker) host() string {
	region := strings.TrimPrefix(l.Region, ".")
	if region == "" {
		region = DefaultRegion
	}

	return "https://www.amazon." + region
}

func (l *Linker) query(q url.Values) string {
	if l.Tag != "" {
		q.Set("tag", l.Tag)
	}

	if len(q) == 0 {
		return ""
	}

	return "?" + q.Encode()
}

func (l *Linker) SearchLink(title, author string) string {
	q := url.Values{}
	q.Set("k", strings.TrimSpace(title+" "+author))

	return l.host() + "/s" + l.query(q)
}

func (l *Linker) ProductLink(asin string) string {
	return fmt.Sprintf("%s/dp/%s%s", l.host(), url.PathEscape(asin), l.query(url.Values{}))
}

func (l *Linker) HomeLink() string {
	return l.host() + "/" + l.query(url.Values{})
}

// For prefers the link stored with the record and falls back to a search.
func (l *Linker) For(book *types.Book) string {
	if book == nil {
		return l.HomeLink()
	}

	if book.AmazonUrl != "" {
		return book.AmazonUrl
	}

	return l.SearchLink(book.Title, book.Author)
}
