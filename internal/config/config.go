// Package config holds the application-level settings for the HTTP server.
// Client-level settings (completion, search) live with their clients.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the server settings. Construct one in Go code, or place a
// YAML file next to the binary and call LoadFile.
type Config struct {
	// Addr is the listen address for the HTTP API (default ":8080").
	Addr string `yaml:"addr"`

	// AllowedOrigins are the CORS origins accepted by the API
	// (default ["*"]).
	AllowedOrigins []string `yaml:"allowed_origins"`

	// LogRequests enables the request logging middleware (default true).
	LogRequests *bool `yaml:"log_requests"`
}

// Default returns the stock server configuration.
func Default() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadFile reads a YAML configuration file, then applies environment
// overrides and defaults.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// Load returns configuration from environment variables and defaults,
// without a file.
func Load() Config {
	var cfg Config
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg
}

// RequestLogging reports whether the logging middleware is enabled,
// handling the nil-pointer default (true).
func (c Config) RequestLogging() bool {
	if c.LogRequests == nil {
		return true
	}
	return *c.LogRequests
}

func (c *Config) applyEnv() {
	if v := os.Getenv("COMMUNITY_SERVER_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("COMMUNITY_SERVER_ORIGIN"); v != "" {
		c.AllowedOrigins = []string{v}
	}
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
}
