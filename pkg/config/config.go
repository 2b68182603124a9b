// Package config reads the reader's settings from GUYA_* environment
// variables, after loading an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	APIURL   string `env:"API_URL"   envDefault:"https://guya.moe"`
	MediaURL string `env:"MEDIA_URL" envDefault:"https://ka.guya.moe"`

	// Home holds the database and exports unless they are set explicitly.
	Home      string `env:"HOME"`
	DBPath    string `env:"DB_PATH"`
	ExportDir string `env:"EXPORT_DIR"`

	// WeightsFile is an optional TOML catalogue priority table.
	WeightsFile  string `env:"WEIGHTS_FILE"`
	DefaultGroup string `env:"DEFAULT_GROUP"`

	ListenAddr        string  `env:"LISTEN_ADDR"        envDefault:"127.0.0.1:8337"`
	ExportConcurrency int     `env:"EXPORT_CONCURRENCY" envDefault:"3"`
	ExportRPS         float64 `env:"EXPORT_RPS"         envDefault:"2"`
	// ExportFormat is epub or pdf.
	ExportFormat string `env:"EXPORT_FORMAT" envDefault:"epub"`

	Debug bool `env:"DEBUG" envDefault:"false"`
}

// Load reads .env from the working directory when present and parses the
// environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to load .env: %w", err)
	}
	return Parse(env.Options{Prefix: "GUYA_"})
}

// Parse builds a Config from the environment described by opts and fills
// in the derived paths.
func Parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.Home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: failed to resolve home directory: %w", err)
		}
		cfg.Home = filepath.Join(home, ".guya")
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.Home, "guya.db")
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = filepath.Join(cfg.Home, "exports")
	}
	if cfg.ExportConcurrency < 1 {
		return nil, fmt.Errorf("config: GUYA_EXPORT_CONCURRENCY must be at least 1, got %d", cfg.ExportConcurrency)
	}
	if cfg.ExportRPS <= 0 {
		return nil, fmt.Errorf("config: GUYA_EXPORT_RPS must be positive, got %v", cfg.ExportRPS)
	}
	if cfg.ExportFormat != "epub" && cfg.ExportFormat != "pdf" {
		return nil, fmt.Errorf("config: GUYA_EXPORT_FORMAT must be epub or pdf, got %q", cfg.ExportFormat)
	}
	return cfg, nil
}
