package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booktok/internal/affiliate"
	"booktok/internal/recommend"
	"booktok/internal/response"
	"booktok/internal/storage/authors"
	"booktok/internal/storage/books"
	"booktok/internal/storage/clicks"
	"booktok/internal/storage/subscribers"
	"booktok/internal/storage/tags"
	"booktok/internal/testutil"
	"booktok/internal/types"
)

var now = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

type failingSubscribers struct{}

func (failingSubscribers) Save(context.Context, *types.Subscriber) error {
	return errors.New("subscriber table is gone")
}

type recordingSubscribers struct {
	saved []types.Subscriber
}

func (r *recordingSubscribers) Save(_ context.Context, sub *types.Subscriber) error {
	r.saved = append(r.saved, *sub)
	return nil
}

func newServices() *Services {
	c := books.NewCollection(testutil.Shelf())
	l := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &Services{
		Books:           c,
		Authors:         authors.NewAggregator(c),
		Tags:            tags.NewClassifier(c, tags.Taxonomy),
		Similar:         recommend.NewSimilar(c),
		Subscribers:     subscribers.NewLoggerRepository(l),
		Clicks:          clicks.NewLoggerRepository(l),
		Linker:          &affiliate.Linker{Region: "com", Tag: "booktok-20"},
		Site:            Site{URL: "https://books.example.com", Name: "BookTok Reviews", Reviewer: "Katie"},
		NewsletterLimit: 5,
		Now:             func() time.Time { return now },
	}
}

func serve(t *testing.T, s *Services, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}

	rec := httptest.NewRecorder()
	Router(s, &response.Responder{}).ServeHTTP(rec, httptest.NewRequest(method, target, rd))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type booksBody struct {
	Books []types.Book `json:"books"`
}

func bookIds(bs []types.Book) []string {
	ret := make([]string, 0, len(bs))
	for _, b := range bs {
		ret = append(ret, b.Id)
	}
	return ret
}

func TestBooks(t *testing.T) {
	s := newServices()

	tests := []struct {
		target   string
		expected []string
	}{
		{"/api/books", []string{"1", "2", "3", "4", "5", "6"}},
		{"/api/books?genre=romance", []string{"6"}},
		{"/api/books?author=Penelope+Douglas", []string{"4", "5"}},
		{"/api/books?genre=poetry", []string{}},
		{"/api/books/top?limit=2", []string{"1", "3"}},
		{"/api/books/top?limit=0", []string{}},
		{"/api/books/latest?limit=1", []string{"5"}},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := serve(t, s, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.expected, bookIds(decode[booksBody](t, rec).Books))
		})
	}
}

func TestBook(t *testing.T) {
	s := newServices()

	type bookBody struct {
		Book types.Book  `json:"book"`
		Tags []types.Tag `json:"tags"`
	}

	t.Run("by slug", func(t *testing.T) {
		rec := serve(t, s, http.MethodGet, "/api/books/the-cruel-prince", "")
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[bookBody](t, rec)
		assert.Equal(t, "3", body.Book.Id)
		assert.Equal(t, "the-cruel-prince", body.Book.Slug)
		require.Len(t, body.Tags, 2)
		assert.Equal(t, "fae", body.Tags[0].Slug)
	})

	t.Run("by id", func(t *testing.T) {
		rec := serve(t, s, http.MethodGet, "/api/books/id/6", "")
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[bookBody](t, rec)
		assert.Equal(t, "Punk 57!", body.Book.Title)
		assert.Equal(t, []types.Tag{}, body.Tags)
	})

	t.Run("not found", func(t *testing.T) {
		for _, target := range []string{"/api/books/nope", "/api/books/id/42", "/api/books/nope/similar", "/api/books/nope/jsonld"} {
			rec := serve(t, s, http.MethodGet, target, "")
			assert.Equal(t, http.StatusNotFound, rec.Code, target)
			assert.Equal(t, "book not found", decode[map[string]string](t, rec)["error"])
		}
	})
}

func TestSimilar(t *testing.T) {
	rec := serve(t, newServices(), http.MethodGet, "/api/books/hideaway-devils-night-2/similar", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"4", "2"}, bookIds(decode[booksBody](t, rec).Books))
}

func TestJsonLD(t *testing.T) {
	rec := serve(t, newServices(), http.MethodGet, "/api/books/fourth-wing-the-empyrean-1/jsonld", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/ld+json; charset=utf-8", rec.Header().Get("Content-Type"))

	docs := decode[[]map[string]any](t, rec)
	require.Len(t, docs, 2)
	assert.Equal(t, "Book", docs[0]["@type"])
	assert.Equal(t, "BreadcrumbList", docs[1]["@type"])
	assert.Equal(t, "https://books.example.com/books/fourth-wing-the-empyrean-1",
		docs[0]["review"].(map[string]any)["url"])
}

func TestAuthors(t *testing.T) {
	s := newServices()

	rec := serve(t, s, http.MethodGet, "/api/authors", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Authors []types.Author `json:"authors"`
	}](t, rec)
	require.Len(t, list.Authors, 4)
	assert.Equal(t, "Rebecca Yarros", list.Authors[0].Name)

	rec = serve(t, s, http.MethodGet, "/api/authors/holly-black", "")
	require.Equal(t, http.StatusOK, rec.Code)
	author := decode[types.Author](t, rec)
	assert.Equal(t, 1, author.BookCount)

	rec = serve(t, s, http.MethodGet, "/api/authors/nobody", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTags(t *testing.T) {
	s := newServices()

	rec := serve(t, s, http.MethodGet, "/api/tags", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Tags []types.TagCount `json:"tags"`
	}](t, rec)
	require.Len(t, list.Tags, 5)
	assert.Equal(t, "dark-romance", list.Tags[0].Slug)
	assert.Equal(t, 2, list.Tags[0].BookCount)

	rec = serve(t, s, http.MethodGet, "/api/tags/dragons", "")
	require.Equal(t, http.StatusOK, rec.Code)
	tag := decode[struct {
		Tag   types.Tag    `json:"tag"`
		Books []types.Book `json:"books"`
	}](t, rec)
	assert.Equal(t, "dragons", tag.Tag.Slug)
	assert.Equal(t, []string{"1", "2"}, bookIds(tag.Books))

	rec = serve(t, s, http.MethodGet, "/api/tags/vampires", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"books":[]`)

	rec = serve(t, s, http.MethodGet, "/api/tags/zombies", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewsletter(t *testing.T) {
	t.Run("saves subscriber", func(t *testing.T) {
		s := newServices()
		subs := &recordingSubscribers{}
		s.Subscribers = subs

		rec := serve(t, s, http.MethodPost, "/api/newsletter", `{"email":" Reader@Example.com ","name":"Reader"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.True(t, decode[successResponse](t, rec).Success)

		require.Len(t, subs.saved, 1)
		assert.Equal(t, "reader@example.com", subs.saved[0].Email)
		assert.Equal(t, now, subs.saved[0].CreatedAt)
		assert.NotEmpty(t, subs.saved[0].Id)
	})

	t.Run("validation", func(t *testing.T) {
		rec := serve(t, newServices(), http.MethodPost, "/api/newsletter", `{"email":"nope"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := decode[struct {
			Fields map[string]string `json:"fields"`
		}](t, rec)
		assert.Equal(t, "must be a valid email address", body.Fields["email"])
		assert.Equal(t, "is required", body.Fields["name"])
	})

	t.Run("trims before validating", func(t *testing.T) {
		s := newServices()
		subs := &recordingSubscribers{}
		s.Subscribers = subs

		rec := serve(t, s, http.MethodPost, "/api/newsletter", `{"email":"\treader@example.com\n","name":"  Reader  "}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.Len(t, subs.saved, 1)
		assert.Equal(t, "reader@example.com", subs.saved[0].Email)
		assert.Equal(t, "Reader", subs.saved[0].Name)

		rec = serve(t, s, http.MethodPost, "/api/newsletter", `{"email":"reader@example.com","name":"   "}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "is required", decode[struct {
			Fields map[string]string `json:"fields"`
		}](t, rec).Fields["name"])
		assert.Len(t, subs.saved, 1)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := serve(t, newServices(), http.MethodPost, "/api/newsletter", `not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("storage failure", func(t *testing.T) {
		s := newServices()
		s.Subscribers = failingSubscribers{}

		rec := serve(t, s, http.MethodPost, "/api/newsletter", `{"email":"reader@example.com","name":"Reader"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "subscriber table")
	})

	t.Run("rate limited", func(t *testing.T) {
		s := newServices()
		s.NewsletterLimit = 2
		h := Router(s, &response.Responder{})

		codes := make([]int, 0, 3)
		for range 3 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/newsletter",
				strings.NewReader(`{"email":"reader@example.com","name":"Reader"}`)))
			codes = append(codes, rec.Code)
		}

		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	})
}

func TestAffiliateRedirect(t *testing.T) {
	s := newServices()

	tests := []struct {
		target   string
		location string
	}{
		{"/api/affiliate?book=3", "https://www.amazon.com/s?k=The+Cruel+Prince+Holly+Black&tag=booktok-20"},
		{"/api/affiliate?book=the-cruel-prince", "https://www.amazon.com/s?k=The+Cruel+Prince+Holly+Black&tag=booktok-20"},
		{"/api/affiliate?book=missing", "https://www.amazon.com/?tag=booktok-20"},
		{"/api/affiliate", "https://www.amazon.com/?tag=booktok-20"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := serve(t, s, http.MethodGet, tt.target, "")
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
		})
	}

	counts, err := s.Clicks.CountByBook(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"3": 2}, counts)

	rec := serve(t, s, http.MethodGet, "/api/affiliate/clicks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"clicks":{"3":2}}`, rec.Body.String())
}

func TestAffiliateEvent(t *testing.T) {
	s := newServices()

	rec := serve(t, s, http.MethodPost, "/api/affiliate", `{"bookId":"1","eventType":"view"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Event tracked successfully", decode[successResponse](t, rec).Message)

	rec = serve(t, s, http.MethodPost, "/api/affiliate", `{"bookId":"1","eventType":"share"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "eventType")

	counts, err := s.Clicks.CountByBook(context.Background())
	require.NoError(t, err)
	assert.Empty(t, counts)
}
