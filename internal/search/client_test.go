package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) Config {
	return Config{
		Endpoint:   endpoint,
		APIKey:     "test-key",
		EngineID:   "test-engine",
		MaxResults: 5,
	}
}

func cseItems(titles ...string) map[string]any {
	items := make([]map[string]any, 0, len(titles))
	for _, title := range titles {
		items = append(items, map[string]any{
			"title":   title,
			"link":    "https://example.org/" + title,
			"snippet": "snippet for " + title,
		})
	}
	return map[string]any{"items": items}
}

func TestSearch_VillageTierSufficient(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "test-engine", r.URL.Query().Get("cx"))
		json.NewEncoder(w).Encode(cseItems("a", "b", "c"))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	results, err := client.Search(context.Background(), Query{
		Topic: "agriculture", Village: "Nyumbani", Country: "Kenya",
	})

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, TierVillage, results[0].Tier)
	require.Len(t, queries, 1)
	assert.Equal(t, `"Nyumbani" Kenya agriculture`, queries[0])
}

func TestSearch_FallsBackThroughTiers(t *testing.T) {
	call := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call++
		switch call {
		case 1, 2:
			w.Write([]byte(`{}`)) // no items
		default:
			json.NewEncoder(w).Encode(cseItems("country-doc"))
		}
	}))
	defer srv.Close()

	var tiers []SourceTier
	client := NewClient(testConfig(srv.URL))
	results, err := client.Search(context.Background(), Query{
		Topic: "power", Village: "Nyumbani", Country: "Kenya",
		OnTier: func(tier SourceTier) { tiers = append(tiers, tier) },
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, TierCountry, results[0].Tier)
	assert.Equal(t, []SourceTier{TierVillage, TierRegional, TierCountry}, tiers)
}

func TestSearch_ThinVillageResultsWidened(t *testing.T) {
	call := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call++
		if call == 1 {
			json.NewEncoder(w).Encode(cseItems("only-one"))
			return
		}
		json.NewEncoder(w).Encode(cseItems("r1", "r2", "r3"))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	results, err := client.Search(context.Background(), Query{
		Topic: "food", Village: "Nyumbani", Country: "Kenya",
	})

	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.Equal(t, TierVillage, results[0].Tier)
	assert.Equal(t, TierRegional, results[1].Tier)
	assert.Equal(t, 2, call, "country tier must not run when earlier tiers found results")
}

func TestSearch_CapsAtMaxResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(cseItems("a", "b", "c", "d", "e", "f", "g"))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	results, err := client.Search(context.Background(), Query{
		Topic: "education", Village: "Nyumbani", Country: "Kenya",
	})

	require.NoError(t, err)
	assert.Len(t, results, 5)
}

func TestSearch_NoResultsAnywhere(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	_, err := client.Search(context.Background(), Query{
		Topic: "healthcare", Village: "Nyumbani", Country: "Kenya",
	})

	require.ErrorIs(t, err, ErrNoResults)
	assert.Contains(t, err.Error(), "healthcare")
	assert.Contains(t, err.Error(), "Nyumbani")
}

func TestSearch_NotConfigured(t *testing.T) {
	client := NewClient(Config{})
	_, err := client.Search(context.Background(), Query{
		Topic: "food", Village: "Nyumbani", Country: "Kenya",
	})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSearch_ServerErrorTreatedAsNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	_, err := client.Search(context.Background(), Query{
		Topic: "food", Village: "Nyumbani", Country: "Kenya",
	})
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("COMMUNITY_SEARCH_API_KEY", "k")
	t.Setenv("COMMUNITY_SEARCH_ENGINE_ID", "e")
	t.Setenv("COMMUNITY_SEARCH_MAX_RESULTS", "7")

	cfg := LoadConfig()
	assert.Equal(t, "k", cfg.APIKey)
	assert.Equal(t, "e", cfg.EngineID)
	assert.Equal(t, 7, cfg.MaxResults)
}
