// Package search provides the web-research abstraction: given a topic and a
// location, return ranked result snippets with source metadata. The concrete
// client speaks the Google Custom Search JSON API.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// SourceTier communicates how location-specific a result is, and therefore
// how much confidence to place in it.
type SourceTier string

const (
	TierVillage  SourceTier = "village"  // exact community match, high confidence
	TierRegional SourceTier = "regional" // broader village/district match, medium
	TierCountry  SourceTier = "country"  // country-level context, lower
)

// Result is one ranked search hit.
type Result struct {
	Title   string     `json:"title"`
	URL     string     `json:"url"`
	Snippet string     `json:"snippet"`
	Tier    SourceTier `json:"tier"`
}

// Query describes one research lookup. OnTier, when set, is called as each
// query variant starts; it is advisory progress only.
type Query struct {
	Topic   string
	Village string
	Country string
	OnTier  func(SourceTier)
}

// Client retrieves ranked snippets for a topic and location.
type Client interface {
	Search(ctx context.Context, q Query) ([]Result, error)
}

// Config holds the Custom Search client settings.
type Config struct {
	Endpoint   string
	APIKey     string
	EngineID   string
	MaxResults int
}

// googleClient implements Client against the Custom Search JSON API.
type googleClient struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a search Client. The returned client reports
// ErrNotConfigured on every call until both APIKey and EngineID are set.
func NewClient(cfg Config) Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://www.googleapis.com/customsearch/v1"
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 5
	}
	return &googleClient{
		cfg:  cfg,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// Search runs up to three query variants in decreasing specificity: the
// quoted village name, the plain village name, then country-level context.
// Later variants run only while earlier ones leave the result set thin.
// Results are capped at MaxResults in tier order.
func (c *googleClient) Search(ctx context.Context, q Query) ([]Result, error) {
	if c.cfg.APIKey == "" || c.cfg.EngineID == "" {
		return nil, ErrNotConfigured
	}

	var all []Result

	reportTier(q, TierVillage)
	hits, err := c.runQuery(ctx, fmt.Sprintf("%q %s %s", q.Village, q.Country, q.Topic), TierVillage)
	if err == nil {
		all = append(all, hits...)
	}

	if len(all) < 3 {
		reportTier(q, TierRegional)
		hits, err = c.runQuery(ctx, fmt.Sprintf("%s %s %s", q.Village, q.Country, q.Topic), TierRegional)
		if err == nil {
			all = append(all, hits...)
		}
	}

	if len(all) == 0 {
		reportTier(q, TierCountry)
		hits, err = c.runQuery(ctx, fmt.Sprintf("%s %s", q.Country, q.Topic), TierCountry)
		if err == nil {
			all = append(all, hits...)
		}
	}

	if len(all) == 0 {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s in %s, %s", ErrNoResults, q.Topic, q.Village, q.Country)
	}

	if len(all) > c.cfg.MaxResults {
		all = all[:c.cfg.MaxResults]
	}
	return all, nil
}

func reportTier(q Query, tier SourceTier) {
	if q.OnTier != nil {
		q.OnTier(tier)
	}
}

// cseResponse is the subset of the Custom Search payload the client reads.
type cseResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

func (c *googleClient) runQuery(ctx context.Context, query string, tier SourceTier) ([]Result, error) {
	params := url.Values{}
	params.Set("key", c.cfg.APIKey)
	params.Set("cx", c.cfg.EngineID)
	params.Set("q", query)
	params.Set("num", fmt.Sprint(c.cfg.MaxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search service returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed cseResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	out := make([]Result, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		out = append(out, Result{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
			Tier:    tier,
		})
	}
	return out, nil
}
