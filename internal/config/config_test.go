package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ITINERARY_API_BASE_URL", "")
	os.Unsetenv("ITINERARY_API_BASE_URL")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != "https://vigovia-render-1.onrender.com" {
		t.Fatalf("unexpected base url %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 30*time.Second || !cfg.ContractCheck || cfg.NodeID != 1 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadDotEnvAndOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := strings.Join([]string{
		"ITINERARY_API_BASE_URL=https://api.example.com/",
		"ITINERARY_REQUEST_TIMEOUT=5s",
		"ITINERARY_LOG_FORMAT=json",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	for _, key := range []string{"ITINERARY_API_BASE_URL", "ITINERARY_REQUEST_TIMEOUT", "ITINERARY_LOG_FORMAT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("ITINERARY_REQUEST_TIMEOUT", "2s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != "https://api.example.com" {
		t.Fatalf("expected trimmed base url from .env, got %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 2*time.Second {
		t.Fatalf("environment should win over .env, got %s", cfg.RequestTimeout)
	}
	if cfg.LoggerFormat != "json" {
		t.Fatalf("unexpected log format %q", cfg.LoggerFormat)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{APIBaseURL: "https://api.example.com", RequestTimeout: time.Second, LoggerFormat: "text"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cases := map[string]func(*Config){
		"relative url": func(c *Config) { c.APIBaseURL = "/api" },
		"ftp url":      func(c *Config) { c.APIBaseURL = "ftp://example.com" },
		"zero timeout": func(c *Config) { c.RequestTimeout = 0 },
		"node range":   func(c *Config) { c.NodeID = 2048 },
		"log format":   func(c *Config) { c.LoggerFormat = "xml" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
