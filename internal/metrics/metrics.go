package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"booktok/internal/types"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booktok_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "booktok_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	affiliateEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booktok_affiliate_events_total",
			Help: "Affiliate events recorded, by event type",
		},
		[]string{"event_type"},
	)

	newsletterSignupsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booktok_newsletter_signups_total",
			Help: "Newsletter signups accepted",
		},
	)

	importedBooksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booktok_imported_books_total",
			Help: "Book records handed to the import consumer",
		},
	)
)

// Middleware records request counts and durations labelled by chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		// nothing written means net/http sends 200
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		pattern := "unknown"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			pattern = rc.RoutePattern()
		}

		httpRequestsTotal.WithLabelValues(r.Method, pattern, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
	})
}

func AffiliateEvent(t types.AffiliateEventType) {
	affiliateEventsTotal.WithLabelValues(string(t)).Inc()
}

func NewsletterSignup() {
	newsletterSignupsTotal.Inc()
}

func ImportedBooks(n int) {
	importedBooksTotal.Add(float64(n))
}
