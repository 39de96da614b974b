package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"runtime"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"

	"booktok/internal/config"
	"booktok/internal/importer"
	"booktok/internal/logger"
	"booktok/internal/storage/books"
)

func main() {
	_, thisFile, _, _ := runtime.Caller(0)

	dryRun := flag.Bool("dry-run", false, "only log the records, do not store them")
	skipFailed := flag.Bool("skip-failed", false, "log failed batches and continue")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	lvl, _ := cfg.SlogLevel()
	err = logger.SetupSLog(cfg.LogFormat, lvl, path.Dir(path.Dir(path.Dir(thisFile))), nil)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	records, err := books.LoadFile(cfg.DataFile)
	if err != nil {
		slog.Error("Failed to load dataset: " + err.Error())
		os.Exit(1)
	}

	im := importer.Importer{Logger: slog.Default(), BatchSize: cfg.ImportBatchSize}
	if *skipFailed {
		im.Errors = &importer.SkippingHandler{Logger: slog.Default()}
	}

	if *dryRun {
		im.Consumer = &importer.LoggerConsumer{Logger: slog.Default()}
	} else {
		if cfg.DatabaseURL == "" {
			slog.Error("You need to specify DATABASE_URL env var, or pass -dry-run")
			os.Exit(1)
		}

		pgCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
		if err != nil {
			slog.Error("Failed to parse DATABASE_URL: " + err.Error())
			os.Exit(1)
		}

		pgCfg.ConnConfig.Tracer = logger.NewPGXTracer(slog.Default())

		pg, err := pgxpool.NewWithConfig(ctx, pgCfg)
		if err != nil {
			slog.Error("failed to create postgres pool: " + err.Error())
			os.Exit(1)
		}
		defer pg.Close()

		im.Consumer = &importer.StoringConsumer{
			Logger: slog.Default(),
			Books:  books.NewPGXStore(pg, slog.Default()),
		}
	}

	if _, err = im.Run(ctx, records); err != nil {
		slog.Error("Import failed: " + err.Error())
		os.Exit(1)
	}
}
