// Package config handles configuration for the CLI client, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the gestor CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend HTTP API.
//   - RequestTimeout: per-request timeout for API calls.
//   - AutosaveDelay: quiet period before editor buffers are persisted.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	AutosaveDelay  time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 30 * time.Second
	c.AutosaveDelay = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
