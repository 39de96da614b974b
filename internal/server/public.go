package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"booktok/internal/opds"
	"booktok/internal/response"
	"booktok/internal/seo"
	"booktok/internal/types"
)

// Public registers the site level documents served outside of /api.
func Public(r chi.Router, s *Services, rr *response.Responder) {
	catalog := &opds.Catalog{BaseURL: s.Site.URL, Classifier: s.Tags}

	r.Get("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		set := seo.Sitemap(s.Site.URL, s.Books.All(), s.Authors.All(), s.Tags.AllWithCounts(), s.now())

		bs, err := set.Marshal()
		if err != nil {
			rr.RespondAndLogError(w, r.Context(), err)
			return
		}

		rr.SendXml(w, "", bs)
	})

	r.Get("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		rr.SendText(w, seo.Robots(s.Site.URL))
	})

	sendFeed := func(w http.ResponseWriter, r *http.Request, title string, rows []types.Book) {
		bs, err := catalog.Build(title, r.URL.Path, rows, s.now()).Marshal()
		if err != nil {
			rr.RespondAndLogError(w, r.Context(), err)
			return
		}

		rr.SendXml(w, opds.ContentType, bs)
	}

	r.Get("/opds", func(w http.ResponseWriter, r *http.Request) {
		sendFeed(w, r, s.Site.Name, s.Books.All())
	})

	r.Get("/opds/authors/{slug}", func(w http.ResponseWriter, r *http.Request) {
		author, ok := s.Authors.GetBySlug(chi.URLParam(r, "slug"))
		if !ok {
			rr.RespondNotFound(w, r.Context(), "author")
			return
		}

		sendFeed(w, r, author.Name, author.Books)
	})

	r.Get("/opds/tags/{slug}", func(w http.ResponseWriter, r *http.Request) {
		tag, ok := s.Tags.GetBySlug(chi.URLParam(r, "slug"))
		if !ok {
			rr.RespondNotFound(w, r.Context(), "tag")
			return
		}

		sendFeed(w, r, tag.Name, s.Tags.BooksByTag(tag.Slug))
	})

	r.Handle("/metrics", promhttp.Handler())
}
