package config

import (
	"testing"

	"github.com/Lixing-Zhang/online-store/internal/models"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "HOST", "LOG_LEVEL", "CORS_ALLOWED_ORIGIN", "PLACEHOLDER_IMAGE", "SEED_SOURCES", "READ_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}

	if cfg.Server.Port != "3000" {
		t.Errorf("port = %s, want 3000", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15 {
		t.Errorf("read timeout = %d, want 15", cfg.Server.ReadTimeout)
	}
	if cfg.Catalog.PlaceholderImage != models.DefaultImage {
		t.Errorf("placeholder = %s, want %s", cfg.Catalog.PlaceholderImage, models.DefaultImage)
	}
	if len(cfg.Catalog.SeedSources) != 0 {
		t.Errorf("seed sources = %v, want none", cfg.Catalog.SeedSources)
	}
	if cfg.Address() != "0.0.0.0:3000" {
		t.Errorf("address = %s, want 0.0.0.0:3000", cfg.Address())
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGIN", "https://shop.example.com")
	t.Setenv("SEED_SOURCES", " seed/a.json, ,https://example.com/b.json.gz ")
	t.Setenv("READ_TIMEOUT", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}

	if cfg.Server.Port != "8081" {
		t.Errorf("port = %s, want 8081", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15 {
		t.Errorf("read timeout = %d, want fallback 15", cfg.Server.ReadTimeout)
	}
	if cfg.CORS.AllowedOrigin != "https://shop.example.com" {
		t.Errorf("origin = %s", cfg.CORS.AllowedOrigin)
	}

	want := []string{"seed/a.json", "https://example.com/b.json.gz"}
	if len(cfg.Catalog.SeedSources) != len(want) {
		t.Fatalf("seed sources = %v, want %v", cfg.Catalog.SeedSources, want)
	}
	for i := range want {
		if cfg.Catalog.SeedSources[i] != want[i] {
			t.Errorf("seed source %d = %q, want %q", i, cfg.Catalog.SeedSources[i], want[i])
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:   ServerConfig{Port: "3000"},
			CORS:     CORSConfig{AllowedOrigin: "http://localhost:5173"},
			LogLevel: "info",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty port", func(c *Config) { c.Server.Port = "" }, true},
		{"non-numeric port", func(c *Config) { c.Server.Port = "http" }, true},
		{"port out of range", func(c *Config) { c.Server.Port = "70000" }, true},
		{"missing origin", func(c *Config) { c.CORS.AllowedOrigin = " " }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, true},
		{"upper case log level", func(c *Config) { c.LogLevel = "WARN" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
