package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path"
	"runtime"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"

	"booktok/internal/affiliate"
	"booktok/internal/config"
	"booktok/internal/logger"
	"booktok/internal/recommend"
	"booktok/internal/response"
	"booktok/internal/server"
	"booktok/internal/storage/authors"
	"booktok/internal/storage/books"
	"booktok/internal/storage/clicks"
	"booktok/internal/storage/subscribers"
	"booktok/internal/storage/tags"
	"booktok/internal/types"
)

func main() {
	_, thisFile, _, _ := runtime.Caller(0)

	cfg, err := config.Load()
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	lvl, _ := cfg.SlogLevel()
	err = logger.SetupSLog(cfg.LogFormat, lvl, path.Dir(path.Dir(path.Dir(thisFile))), middleware.RequestIDKey)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	ctx := context.Background()

	var pg *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		pgCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
		if err != nil {
			slog.Error("Failed to parse DATABASE_URL: " + err.Error())
			os.Exit(1)
		}

		pgCfg.ConnConfig.Tracer = logger.NewPGXTracer(slog.Default())

		pg, err = pgxpool.NewWithConfig(ctx, pgCfg)
		if err != nil {
			slog.Error("failed to create postgres pool: " + err.Error())
			os.Exit(1)
		}
		defer pg.Close()
	}

	var records []types.Book
	switch cfg.DataSource {
	case config.DataSourcePostgres:
		records, err = books.NewPGXStore(pg, slog.Default()).LoadAll(ctx)
	default:
		records, err = books.LoadFile(cfg.DataFile)
	}
	if err != nil {
		slog.Error("Failed to load books: "+err.Error(), slog.String("source", string(cfg.DataSource)))
		os.Exit(1)
	}

	collection := books.NewCollection(records)
	slog.Info("Loaded books", slog.Int("count", collection.Len()), slog.String("source", string(cfg.DataSource)))

	s := &server.Services{
		Books:   collection,
		Authors: authors.NewAggregator(collection),
		Tags:    tags.NewClassifier(collection, tags.Taxonomy),
		Similar: recommend.NewSimilar(collection),
		Linker:  &affiliate.Linker{Region: cfg.AmazonRegion, Tag: cfg.AmazonAffiliateTag},
		Site: server.Site{
			URL:      cfg.SiteURL,
			Name:     cfg.SiteName,
			Reviewer: cfg.ReviewerName,
		},
		NewsletterLimit: cfg.NewsletterRateLimit,
	}

	if pg != nil {
		s.Subscribers = subscribers.NewPGXRepository(pg, slog.Default())
		s.Clicks = clicks.NewPGXRepository(pg, slog.Default())
	} else {
		slog.Warn("DATABASE_URL is not set, newsletter signups and affiliate events are only logged")
		s.Subscribers = subscribers.NewLoggerRepository(slog.Default())
		s.Clicks = clicks.NewLoggerRepository(slog.Default())
	}

	r := server.Router(s, &response.Responder{DebugMode: cfg.DebugMode})

	slog.Info("Listening", slog.String("addr", cfg.BindAddr))
	slog.Error("aborting: " + http.ListenAndServe(cfg.BindAddr, r).Error())
	os.Exit(1)
}
