package importer

import (
	"strconv"
	"strings"

	"booktok/internal/slug"
	"booktok/internal/types"
)

type FindingKind string

const (
	DuplicateId      FindingKind = "duplicate-id"
	DuplicateSlug    FindingKind = "duplicate-slug"
	EmptySlug        FindingKind = "empty-slug"
	EmptyDescription FindingKind = "empty-description"
	RatingOutOfRange FindingKind = "rating-out-of-range"
)

// Finding is a data quality issue. Records with findings are still imported,
// except that StoringConsumer keeps only the first record of a duplicated id.
type Finding struct {
	Kind     FindingKind
	Position int
	BookId   string
	Detail   string
}

// Check reports findings in dataset order.
func Check(records []types.Book) []Finding {
	var ret []Finding

	seenIds := make(map[string]int, len(records))
	seenSlugs := make(map[string]int, len(records))

	for ix := range records {
		b := &records[ix]
		add := func(kind FindingKind, detail string) {
			ret = append(ret, Finding{Kind: kind, Position: ix, BookId: b.Id, Detail: detail})
		}

		if prev, ok := seenIds[b.Id]; ok {
			add(DuplicateId, "same id as position "+strconv.Itoa(prev))
		} else {
			seenIds[b.Id] = ix
		}

		s := slug.Make(b.Title)
		if s == "" {
			add(EmptySlug, "title "+strconv.Quote(b.Title)+" has no usable characters")
		} else if prev, ok := seenSlugs[s]; ok {
			add(DuplicateSlug, "slug "+s+" already taken by position "+strconv.Itoa(prev))
		} else {
			seenSlugs[s] = ix
		}

		if strings.TrimSpace(b.Description) == "" {
			add(EmptyDescription, "")
		}

		if b.Rating < 0 || b.Rating > 5 {
			add(RatingOutOfRange, strconv.FormatFloat(b.Rating, 'f', -1, 64))
		}
	}

	return ret
}
