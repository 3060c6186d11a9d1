// Package config reads the command configuration from the environment and
// an optional .env file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds every environment-driven setting of the itinerary command.
type Config struct {
	// Rendering service
	APIBaseURL     string        `env:"ITINERARY_API_BASE_URL" envDefault:"https://vigovia-render-1.onrender.com"`
	RequestTimeout time.Duration `env:"ITINERARY_REQUEST_TIMEOUT" envDefault:"30s"`
	ContractCheck  bool          `env:"ITINERARY_CONTRACT_CHECK" envDefault:"true"`

	// Form behaviour
	AllowReversedDates bool  `env:"ITINERARY_ALLOW_REVERSED_DATES" envDefault:"false"`
	NodeID             int64 `env:"ITINERARY_NODE_ID" envDefault:"1"` // snowflake node for activity ids

	// Logging
	LoggerLevel      string `env:"ITINERARY_LOG_LEVEL" envDefault:"WARN"`
	LoggerFormat     string `env:"ITINERARY_LOG_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"ITINERARY_LOG_OUTPUT" envDefault:"stderr"`
}

// Load reads the given .env files (".env" when none are named) and parses
// the environment. Missing .env files are not an error; variables already
// set in the environment win over the files.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values Load cannot default.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: ITINERARY_API_BASE_URL must be an absolute http(s) URL, got %q", c.APIBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: ITINERARY_REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	if c.NodeID < 0 || c.NodeID > 1023 {
		return fmt.Errorf("config: ITINERARY_NODE_ID must be within 0..1023, got %d", c.NodeID)
	}
	switch strings.ToLower(c.LoggerFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("config: ITINERARY_LOG_FORMAT must be json or text, got %q", c.LoggerFormat)
	}
	return nil
}
