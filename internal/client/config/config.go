package config

import "time"

// Config holds runtime settings for the botofarm operator CLI.
//
// Fields:
//   - ServerURL: base URL of the account-leasing HTTP API.
//   - APIPrefix: path prefix the server mounts /users under (may be empty).
//   - RequestTimeout: per-request deadline.
type Config struct {
	ServerURL      string
	APIPrefix      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.APIPrefix = ""
	c.RequestTimeout = 5 * time.Second
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
