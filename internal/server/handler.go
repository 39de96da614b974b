package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"

	"booktok/internal/affiliate"
	"booktok/internal/metrics"
	"booktok/internal/recommend"
	"booktok/internal/response"
	"booktok/internal/seo"
	"booktok/internal/storage/authors"
	"booktok/internal/storage/books"
	"booktok/internal/storage/clicks"
	"booktok/internal/storage/subscribers"
	"booktok/internal/storage/tags"
	"booktok/internal/types"
	"booktok/internal/validator"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// Site describes the public site the API serves content for.
type Site struct {
	URL      string
	Name     string
	Reviewer string
}

func (s Site) bookURL(slug string) string {
	return strings.TrimSuffix(s.URL, "/") + "/books/" + slug
}

type Services struct {
	Books       books.Repository
	Authors     authors.Repository
	Tags        tags.Repository
	Similar     *recommend.Similar
	Subscribers subscribers.Repository
	Clicks      clicks.Repository
	Linker      *affiliate.Linker
	Site        Site

	// NewsletterLimit is the number of signups accepted per client address per minute
	NewsletterLimit int
	Now             func() time.Time
}

func (s *Services) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now()
}

type newsletterRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
	Name  string `json:"name" validate:"required,max=100"`
}

func (n *newsletterRequest) Normalize() {
	n.Email = strings.ToLower(strings.TrimSpace(n.Email))
	n.Name = strings.TrimSpace(n.Name)
}

type affiliateRequest struct {
	BookId    string `json:"bookId" validate:"required,max=64"`
	EventType string `json:"eventType" validate:"required,oneof=click view purchase"`
}

func (a *affiliateRequest) Normalize() {
	a.BookId = strings.TrimSpace(a.BookId)
	a.EventType = strings.ToLower(strings.TrimSpace(a.EventType))
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Handler serves the JSON API, it is meant to be mounted under /api.
func Handler(s *Services, rr *response.Responder) http.Handler {
	r := chi.NewRouter()

	r.Get("/books", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var rows []types.Book
		switch {
		case q.Get("genre") != "":
			rows = s.Books.ByGenre(q.Get("genre"))
		case q.Get("author") != "":
			rows = s.Books.ByAuthor(q.Get("author"))
		default:
			rows = s.Books.All()
		}

		sendBooks(w, r, rr, rows)
	})

	r.Get("/books/top", func(w http.ResponseWriter, r *http.Request) {
		sendBooks(w, r, rr, s.Books.TopRated(getLimit(r.URL.Query(), defaultListLimit)))
	})

	r.Get("/books/latest", func(w http.ResponseWriter, r *http.Request) {
		sendBooks(w, r, rr, s.Books.Latest(getLimit(r.URL.Query(), defaultListLimit)))
	})

	r.Get("/books/id/{id}", func(w http.ResponseWriter, r *http.Request) {
		book, ok := s.Books.GetById(chi.URLParam(r, "id"))
		if !ok {
			rr.RespondNotFound(w, r.Context(), "book")
			return
		}

		sendBook(w, r, rr, s.Tags, &book)
	})

	r.Get("/books/{slug}", func(w http.ResponseWriter, r *http.Request) {
		book, ok := s.Books.GetBySlug(chi.URLParam(r, "slug"))
		if !ok {
			rr.RespondNotFound(w, r.Context(), "book")
			return
		}

		sendBook(w, r, rr, s.Tags, &book)
	})

	r.Get("/books/{slug}/similar", func(w http.ResponseWriter, r *http.Request) {
		book, ok := s.Books.GetBySlug(chi.URLParam(r, "slug"))
		if !ok {
			rr.RespondNotFound(w, r.Context(), "book")
			return
		}

		sendBooks(w, r, rr, s.Similar.SimilarTo(book.Id, getLimit(r.URL.Query(), recommend.DefaultLimit)))
	})

	r.Get("/books/{slug}/jsonld", func(w http.ResponseWriter, r *http.Request) {
		book, ok := s.Books.GetBySlug(chi.URLParam(r, "slug"))
		if !ok {
			rr.RespondNotFound(w, r.Context(), "book")
			return
		}

		site := strings.TrimSuffix(s.Site.URL, "/")
		bs, err := seo.MarshalJSONLD([]any{
			seo.BookSchema(&book, seo.NewPerson(s.Site.Reviewer, site), s.Site.bookURL(book.Slug)),
			seo.BreadcrumbSchema(
				seo.Crumb{Name: "Home", URL: site},
				seo.Crumb{Name: "Books", URL: site + "/books"},
				seo.Crumb{Name: book.Title, URL: s.Site.bookURL(book.Slug)},
			),
		})
		if err != nil {
			rr.RespondAndLogError(w, r.Context(), err)
			return
		}

		rr.SendJsonLD(w, bs)
	})

	r.Get("/authors", func(w http.ResponseWriter, r *http.Request) {
		rows := s.Authors.All()
		if rows == nil {
			rows = make([]types.Author, 0)
		}

		rr.SendJson(w, r.Context(), struct {
			Authors []types.Author `json:"authors"`
		}{Authors: rows})
	})

	r.Get("/authors/{slug}", func(w http.ResponseWriter, r *http.Request) {
		author, ok := s.Authors.GetBySlug(chi.URLParam(r, "slug"))
		if !ok {
			rr.RespondNotFound(w, r.Context(), "author")
			return
		}

		rr.SendJson(w, r.Context(), author)
	})

	r.Get("/tags", func(w http.ResponseWriter, r *http.Request) {
		rows := s.Tags.AllWithCounts()
		if rows == nil {
			rows = make([]types.TagCount, 0)
		}

		rr.SendJson(w, r.Context(), struct {
			Tags []types.TagCount `json:"tags"`
		}{Tags: rows})
	})

	r.Get("/tags/{slug}", func(w http.ResponseWriter, r *http.Request) {
		tag, ok := s.Tags.GetBySlug(chi.URLParam(r, "slug"))
		if !ok {
			rr.RespondNotFound(w, r.Context(), "tag")
			return
		}

		rows := s.Tags.BooksByTag(tag.Slug)
		if rows == nil {
			rows = make([]types.Book, 0)
		}

		rr.SendJson(w, r.Context(), struct {
			Tag   types.Tag    `json:"tag"`
			Books []types.Book `json:"books"`
		}{Tag: tag, Books: rows})
	})

	r.With(httprate.LimitByIP(s.NewsletterLimit, time.Minute)).
		Post("/newsletter", func(w http.ResponseWriter, r *http.Request) {
			var req newsletterRequest
			if err := validator.DecodeAndValidate(r, &req); err != nil {
				rr.RespondBadRequest(w, r.Context(), err)
				return
			}

			sub := types.Subscriber{
				Id:        uuid.NewString(),
				Email:     req.Email,
				Name:      req.Name,
				CreatedAt: s.now(),
			}

			if err := s.Subscribers.Save(r.Context(), &sub); err != nil {
				rr.RespondAndLogError(w, r.Context(), err)
				return
			}

			metrics.NewsletterSignup()
			rr.SendJson(w, r.Context(), successResponse{Success: true, Message: "Successfully subscribed to newsletter"})
		})

	r.Get("/affiliate", func(w http.ResponseWriter, r *http.Request) {
		book, ok := findBook(s.Books, r.URL.Query().Get("book"))
		if !ok {
			http.Redirect(w, r, s.Linker.HomeLink(), http.StatusFound)
			return
		}

		event := types.AffiliateEvent{
			Id:        uuid.NewString(),
			BookId:    book.Id,
			Type:      types.AffiliateClick,
			CreatedAt: s.now(),
		}

		// a lost click must not keep the reader from the shop
		if err := s.Clicks.Save(r.Context(), &event); err != nil {
			rr.LogError(r.Context(), err)
		} else {
			metrics.AffiliateEvent(event.Type)
		}

		http.Redirect(w, r, s.Linker.For(&book), http.StatusFound)
	})

	r.Post("/affiliate", func(w http.ResponseWriter, r *http.Request) {
		var req affiliateRequest
		if err := validator.DecodeAndValidate(r, &req); err != nil {
			rr.RespondBadRequest(w, r.Context(), err)
			return
		}

		event := types.AffiliateEvent{
			Id:        uuid.NewString(),
			BookId:    req.BookId,
			Type:      types.AffiliateEventType(req.EventType),
			CreatedAt: s.now(),
		}

		if err := s.Clicks.Save(r.Context(), &event); err != nil {
			rr.RespondAndLogError(w, r.Context(), err)
			return
		}

		metrics.AffiliateEvent(event.Type)
		rr.SendJson(w, r.Context(), successResponse{Success: true, Message: "Event tracked successfully"})
	})

	r.Get("/affiliate/clicks", func(w http.ResponseWriter, r *http.Request) {
		counts, err := s.Clicks.CountByBook(r.Context())
		if err != nil {
			rr.RespondAndLogError(w, r.Context(), err)
			return
		}

		rr.SendJson(w, r.Context(), struct {
			Clicks map[string]int `json:"clicks"`
		}{Clicks: counts})
	})

	return r
}

func sendBooks(w http.ResponseWriter, r *http.Request, rr *response.Responder, rows []types.Book) {
	if rows == nil {
		rows = make([]types.Book, 0)
	}

	rr.SendJson(w, r.Context(), struct {
		Books []types.Book `json:"books"`
	}{Books: rows})
}

func sendBook(w http.ResponseWriter, r *http.Request, rr *response.Responder, tr tags.Repository, book *types.Book) {
	bookTags := tr.TagsFor(book)
	if bookTags == nil {
		bookTags = make([]types.Tag, 0)
	}

	rr.SendJson(w, r.Context(), struct {
		Book types.Book  `json:"book"`
		Tags []types.Tag `json:"tags"`
	}{Book: *book, Tags: bookTags})
}

// findBook accepts either a book id or a slug
func findBook(br books.Repository, key string) (types.Book, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return types.Book{}, false
	}

	if book, ok := br.GetById(key); ok {
		return book, true
	}

	return br.GetBySlug(key)
}

func getLimit(q url.Values, default_ int) int {
	limit := getIntOrDefault("limit", q, default_)
	if limit > maxListLimit {
		return maxListLimit
	}

	return limit
}

func getIntOrDefault(key string, q url.Values, default_ int) int {
	if ls := q.Get(key); ls != "" {
		limit, err := strconv.Atoi(ls)
		if err == nil {
			return limit
		}
	}

	return default_
}
