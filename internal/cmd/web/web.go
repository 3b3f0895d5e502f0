// Package web parses web client flags and launches the service.
package web

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	entrypoint "github.com/louisbranch/docstats/internal/platform/cmd"
	"github.com/louisbranch/docstats/internal/services/web"
)

// EnvPrefix namespaces the web client's environment variables.
const EnvPrefix = "DOCSTATS_WEB_"

// Config holds the web command configuration.
type Config struct {
	HTTPAddr          string        `env:"HTTP_ADDR" envDefault:"localhost:8086"`
	APIBaseURL        string        `env:"API_BASE_URL" envDefault:"http://localhost:8000"`
	APITimeout        time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	StoragePath       string        `env:"STORAGE_PATH" envDefault:"data/web-client.db"`
	GuardReadsStorage bool          `env:"GUARD_READS_STORAGE" envDefault:"false"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	err := entrypoint.ParseConfigFromArgs(&cfg, EnvPrefix, fs, args, func(fs *flag.FlagSet, cfg *Config) {
		fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
		fs.StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "Document API base URL")
		fs.DurationVar(&cfg.APITimeout, "api-timeout", cfg.APITimeout, "Document API request timeout")
		fs.StringVar(&cfg.StoragePath, "storage-path", cfg.StoragePath, "Local storage SQLite path (:memory: for ephemeral)")
		fs.BoolVar(&cfg.GuardReadsStorage, "guard-reads-storage", cfg.GuardReadsStorage, "Read the session token from storage on every navigation")
	})
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web client server.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		server, err := web.NewServer(ctx, web.Config{
			HTTPAddr:          cfg.HTTPAddr,
			APIBaseURL:        cfg.APIBaseURL,
			APITimeout:        cfg.APITimeout,
			StoragePath:       cfg.StoragePath,
			GuardReadsStorage: cfg.GuardReadsStorage,
			Logger:            log.Default(),
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		log.Printf("web client listening addr=%s api=%s storage=%s", cfg.HTTPAddr, cfg.APIBaseURL, cfg.StoragePath)
		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
