package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Output formats recognized by the exporter selection.
const (
	FormatXLSX     = "xlsx"
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatSQLite   = "sqlite"
	FormatPostgres = "postgres"
)

// Config is the full run configuration. Every field has a default, so the
// zero-config run reproduces the fixed query the tool originally shipped
// with: coffee shops in Lahore, exported to Coffee_Shops_Lahore.xlsx.
type Config struct {
	Category   string `yaml:"category"`
	Locality   string `yaml:"locality"`
	OutputPath string `yaml:"output_path"`
	Format     string `yaml:"format"`
	// PostgresDSN is required only when Format is "postgres".
	PostgresDSN string `yaml:"postgres_dsn"`

	// Limit caps the number of results requested from the search engine.
	Limit int `yaml:"limit"`

	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Jitter            float64       `yaml:"jitter"`
	Fingerprint       string        `yaml:"fingerprint"`
	ProxyFile         string        `yaml:"proxy_file"`
	UserAgents        []string      `yaml:"user_agents"`

	// FetchDetails enables the per-record detail-page enrichment pass.
	FetchDetails  bool `yaml:"fetch_details"`
	RespectRobots bool `yaml:"respect_robots"`

	// MetricsPort exposes /metrics when > 0.
	MetricsPort int `yaml:"metrics_port"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Category:          "coffee shop",
		Locality:          "Lahore",
		OutputPath:        "Coffee_Shops_Lahore.xlsx",
		Format:            FormatXLSX,
		Limit:             20,
		Timeout:           30 * time.Second,
		RequestsPerSecond: 1,
		Jitter:            0.2,
		Fingerprint:       "chrome",
		RespectRobots:     true,
	}
}

// Load reads a YAML config file over the defaults. A missing file is an
// error; call Default directly when no file is in play.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks the config for values the pipeline cannot run with.
func (c Config) Validate() error {
	if c.Category == "" {
		return fmt.Errorf("category must not be empty")
	}
	if c.Locality == "" {
		return fmt.Errorf("locality must not be empty")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output_path must not be empty")
	}
	switch c.Format {
	case FormatXLSX, FormatCSV, FormatJSON, FormatSQLite:
	case FormatPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("postgres format requires postgres_dsn")
		}
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	return nil
}
