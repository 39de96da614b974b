package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v10"
)

type DataSource string

const (
	DataSourceFile     DataSource = "file"
	DataSourcePostgres DataSource = "postgres"
)

type Config struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"debug"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	BindAddr  string `env:"BIND_ADDR" envDefault:":8080"`
	DebugMode bool   `env:"DEBUG_MODE"`

	DatabaseURL string     `env:"DATABASE_URL"`
	DataSource  DataSource `env:"DATA_SOURCE" envDefault:"file"`
	DataFile    string     `env:"DATA_FILE" envDefault:"data/books.json"`

	SiteURL      string `env:"SITE_URL" envDefault:"http://localhost:8080"`
	SiteName     string `env:"SITE_NAME" envDefault:"BookTok Reviews"`
	ReviewerName string `env:"REVIEWER_NAME" envDefault:"BookTok Reviews"`

	AmazonRegion       string `env:"AMAZON_REGION" envDefault:"com"`
	AmazonAffiliateTag string `env:"AMAZON_AFFILIATE_TAG"`

	// requests per minute per client address
	NewsletterRateLimit int `env:"NEWSLETTER_RATE_LIMIT" envDefault:"5"`
	ImportBatchSize     int `env:"IMPORT_BATCH_SIZE" envDefault:"50"`
}

// Load parses environment variables into cfg and checks the values that have a closed set.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.SiteURL = strings.TrimSuffix(cfg.SiteURL, "/")

	if _, err := cfg.SlogLevel(); err != nil {
		return nil, fmt.Errorf("parse config: LOG_LEVEL: %w", err)
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("parse config: LOG_FORMAT must be json or text, got %q", cfg.LogFormat)
	}

	switch cfg.DataSource {
	case DataSourceFile:
	case DataSourcePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("parse config: DATABASE_URL is required when DATA_SOURCE is %s", cfg.DataSource)
		}
	default:
		return nil, fmt.Errorf("parse config: DATA_SOURCE must be file or postgres, got %q", cfg.DataSource)
	}

	if cfg.NewsletterRateLimit <= 0 {
		return nil, fmt.Errorf("parse config: NEWSLETTER_RATE_LIMIT must be positive")
	}

	if cfg.ImportBatchSize <= 0 {
		return nil, fmt.Errorf("parse config: IMPORT_BATCH_SIZE must be positive")
	}

	return &cfg, nil
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(c.LogLevel))
	return lvl, err
}
