package search

import "errors"

var (
	// ErrNotConfigured indicates the search service credentials are missing.
	// Research is impossible without them; there is no synthetic substitute.
	ErrNotConfigured = errors.New("search API key and engine ID must be configured for research functionality")

	// ErrNoResults indicates every query variant came back empty.
	ErrNoResults = errors.New("no search results found")
)
