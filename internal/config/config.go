// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load(ctx) layers an optional YAML file and TRAILFEED_ env vars on top.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var metricNameRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Status modes for error responses.
const (
	// StatusModeCompat answers every request with 200, errors included.
	StatusModeCompat = "compat"
	// StatusModeStrict answers errors with 400, 404 or 500.
	StatusModeStrict = "strict"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir is the directory holding the cleaned dataset files.
	DataDir string `koanf:"data_dir"`

	// RacesFile and RunnersFile name the dataset files inside DataDir.
	RacesFile   string `koanf:"races_file"`
	RunnersFile string `koanf:"runners_file"`

	// AllowOrigin is sent as Access-Control-Allow-Origin on every response.
	AllowOrigin string `koanf:"allow_origin"`

	// StatusMode is compat or strict.
	StatusMode string `koanf:"status_mode"`

	// MetricsNamespace prefixes every exported Prometheus metric.
	MetricsNamespace string `koanf:"metrics_namespace"`

	// RefreshIntervalMS controls how often dataset file gauges are refreshed.
	RefreshIntervalMS int `koanf:"refresh_interval_ms"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		DataDir:           "data",
		RacesFile:         "cleaned_race.json",
		RunnersFile:       "cleaned_runner.json",
		AllowOrigin:       "*",
		StatusMode:        StatusModeCompat,
		MetricsNamespace:  "trailfeed",
		RefreshIntervalMS: 30_000,
	}
}

// RefreshInterval returns RefreshIntervalMS as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalMS) * time.Millisecond
}

// Strict reports whether errors should carry 4xx/5xx status codes.
func (c *Config) Strict() bool {
	return c.StatusMode == StatusModeStrict
}

// Validate checks the config for values the service cannot run with.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.DataDir) == "":
		return fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.RacesFile) == "" || strings.TrimSpace(c.RunnersFile) == "":
		return fmt.Errorf("%w: dataset file names must not be empty", ErrInvalidConfig)
	case c.StatusMode != StatusModeCompat && c.StatusMode != StatusModeStrict:
		return fmt.Errorf("%w: status_mode must be %q or %q, got %q", ErrInvalidConfig, StatusModeCompat, StatusModeStrict, c.StatusMode)
	case !metricNameRe.MatchString(c.MetricsNamespace):
		return fmt.Errorf("%w: metrics_namespace %q is not a valid metric name prefix", ErrInvalidConfig, c.MetricsNamespace)
	case c.RefreshIntervalMS <= 0:
		return fmt.Errorf("%w: refresh_interval_ms must be positive", ErrInvalidConfig)
	}
	return nil
}
