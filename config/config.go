// Package config loads the proxy settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"weather-proxy/datasource"
)

// DefaultAddr is the port the device's weather service lives on
const DefaultAddr = ":6066"

// Config represents the application configuration
type Config struct {
	// APIKey is passed to upstream as-is. It is not validated here: a missing
	// key shows up as an upstream authentication failure per request.
	APIKey string

	HTTPAddr string

	UpstreamURL     string
	UpstreamLang    string
	UpstreamTimeout time.Duration
	UpstreamRate    float64 // requests per second, 0 disables limiting
	UpstreamBurst   int
	UpstreamWorkers int

	FixturePath string

	Debug   bool
	LogFile string
	// rotation limits for LogFile
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

// Load reads envFile (if it exists) into the environment, then builds the
// configuration from environment variables.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only
func FromEnv() (Config, error) {
	cfg := Config{
		APIKey:       os.Getenv("API_KEY"),
		HTTPAddr:     stringVar("HTTP_ADDR", DefaultAddr),
		UpstreamURL:  stringVar("UPSTREAM_URL", datasource.DefaultOneCallURL),
		UpstreamLang: stringVar("UPSTREAM_LANG", datasource.DefaultLang),
		FixturePath:  stringVar("FIXTURE_PATH", datasource.DefaultFixturePath),
		LogFile:      stringVar("LOG_FILE", ""),
	}

	var err error
	if cfg.UpstreamTimeout, err = durationVar("UPSTREAM_TIMEOUT", datasource.DefaultTimeout); err != nil {
		return Config{}, err
	}
	if cfg.UpstreamRate, err = floatVar("UPSTREAM_RATE", 1); err != nil {
		return Config{}, err
	}
	if cfg.UpstreamBurst, err = intVar("UPSTREAM_BURST", 5); err != nil {
		return Config{}, err
	}
	if cfg.UpstreamWorkers, err = intVar("UPSTREAM_WORKERS", 32); err != nil {
		return Config{}, err
	}
	if cfg.Debug, err = boolVar("DEBUG", false); err != nil {
		return Config{}, err
	}
	if cfg.LogMaxSizeMB, err = intVar("LOG_MAX_SIZE_MB", 10); err != nil {
		return Config{}, err
	}
	if cfg.LogMaxBackups, err = intVar("LOG_MAX_BACKUPS", 5); err != nil {
		return Config{}, err
	}
	if cfg.LogMaxAgeDays, err = intVar("LOG_MAX_AGE_DAYS", 28); err != nil {
		return Config{}, err
	}

	if cfg.UpstreamTimeout <= 0 {
		return Config{}, fmt.Errorf("invalid UPSTREAM_TIMEOUT %s: must be positive", cfg.UpstreamTimeout)
	}
	if cfg.UpstreamRate < 0 {
		return Config{}, fmt.Errorf("invalid UPSTREAM_RATE %v: must not be negative", cfg.UpstreamRate)
	}
	if cfg.UpstreamBurst < 1 {
		return Config{}, fmt.Errorf("invalid UPSTREAM_BURST %d: must be at least 1", cfg.UpstreamBurst)
	}
	if cfg.UpstreamWorkers < 1 {
		return Config{}, fmt.Errorf("invalid UPSTREAM_WORKERS %d: must be at least 1", cfg.UpstreamWorkers)
	}

	if cfg.LogMaxSizeMB < 1 || cfg.LogMaxBackups < 1 || cfg.LogMaxAgeDays < 1 {
		return Config{}, fmt.Errorf("invalid log rotation limits: size %dMB, backups %d, age %dd",
			cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays)
	}

	return cfg, nil
}

// RedactedAPIKey is safe to log
func (c Config) RedactedAPIKey() string {
	switch {
	case c.APIKey == "":
		return "(unset)"
	case len(c.APIKey) <= 4:
		return "****"
	}
	return c.APIKey[:4] + strings.Repeat("*", len(c.APIKey)-4)
}

func stringVar(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

func durationVar(name string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	return d, nil
}

func floatVar(name string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	return f, nil
}

func intVar(name string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	return n, nil
}

func boolVar(name string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	return b, nil
}
