package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"booktok/internal/metrics"
	"booktok/internal/response"
)

// Router wires the API and public documents behind the shared middleware.
func Router(s *Services, rr *response.Responder) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	r.Mount("/api", Handler(s, rr))
	Public(r, s, rr)

	return r
}
