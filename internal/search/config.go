package search

import (
	"os"
	"strconv"
)

// LoadConfig reads search-client configuration from environment variables.
// Credentials have no defaults: an unset key leaves the client unconfigured,
// which callers surface as ErrNotConfigured.
func LoadConfig() Config {
	cfg := Config{MaxResults: 5}

	if v := os.Getenv("COMMUNITY_SEARCH_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("COMMUNITY_SEARCH_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("COMMUNITY_SEARCH_ENGINE_ID"); v != "" {
		cfg.EngineID = v
	}
	if v := os.Getenv("COMMUNITY_SEARCH_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxResults = n
		}
	}

	return cfg
}
