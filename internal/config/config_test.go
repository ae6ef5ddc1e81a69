package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Category != "coffee shop" || cfg.Locality != "Lahore" {
		t.Errorf("unexpected default query: %s / %s", cfg.Category, cfg.Locality)
	}
	if cfg.OutputPath != "Coffee_Shops_Lahore.xlsx" {
		t.Errorf("unexpected default output path: %s", cfg.OutputPath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
category: bookstore
locality: Karachi
format: csv
output_path: books.csv
timeout: 10s
fetch_details: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Category != "bookstore" || cfg.Locality != "Karachi" {
		t.Errorf("overrides not applied: %s / %s", cfg.Category, cfg.Locality)
	}
	if cfg.Format != FormatCSV || cfg.OutputPath != "books.csv" {
		t.Errorf("format overrides not applied: %s / %s", cfg.Format, cfg.OutputPath)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", cfg.Timeout)
	}
	if !cfg.FetchDetails {
		t.Error("expected fetch_details true")
	}
	// Untouched fields keep their defaults.
	if cfg.Limit != 20 {
		t.Errorf("expected default limit 20, got %d", cfg.Limit)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty category", func(c *Config) { c.Category = "" }, true},
		{"empty locality", func(c *Config) { c.Locality = "" }, true},
		{"empty output", func(c *Config) { c.OutputPath = "" }, true},
		{"bad format", func(c *Config) { c.Format = "parquet" }, true},
		{"postgres without dsn", func(c *Config) { c.Format = FormatPostgres }, true},
		{"postgres with dsn", func(c *Config) {
			c.Format = FormatPostgres
			c.PostgresDSN = "postgres://localhost/test"
		}, false},
		{"negative limit", func(c *Config) { c.Limit = -1 }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
