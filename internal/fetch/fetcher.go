// Package fetch retrieves a web page and extracts its readable text for use
// as research context. Non-HTML content is rejected outright; script, style,
// and navigation regions are stripped before extraction.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUnsupportedContentType indicates the URL served something other than
// HTML. Reported per URL; other sources keep aggregating.
var ErrUnsupportedContentType = errors.New("unsupported content type")

const (
	// fetchTimeout is the hard per-fetch deadline.
	fetchTimeout = 10 * time.Second

	// maxContentLen caps extracted text to avoid processing very large pages.
	maxContentLen = 10000

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// PageContent is the readable text extracted from one URL.
type PageContent struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// Fetcher retrieves and extracts page content.
type Fetcher struct {
	http *http.Client
}

// NewFetcher creates a Fetcher with the standard 10-second deadline.
func NewFetcher() *Fetcher {
	return &Fetcher{
		http: &http.Client{Timeout: fetchTimeout},
	}
}

// Fetch downloads the page at url and extracts its title and main text.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*PageContent, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", pageURL, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "text/html") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedContentType, contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", pageURL, err)
	}

	title, content, err := extractText(body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", pageURL, err)
	}

	return &PageContent{
		Title:   title,
		Content: content,
		URL:     pageURL,
	}, nil
}
