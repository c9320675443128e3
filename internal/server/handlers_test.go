package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khallinan12345/community-research-assistant/internal/config"
	"github.com/khallinan12345/community-research-assistant/internal/domain"
	"github.com/khallinan12345/community-research-assistant/internal/fetch"
	"github.com/khallinan12345/community-research-assistant/internal/search"
	"github.com/khallinan12345/community-research-assistant/internal/service"
	"github.com/khallinan12345/community-research-assistant/internal/testutil"
)

type serverFixture struct {
	state      *service.State
	completion *testutil.ScriptedCompletionClient
	searcher   *testutil.ScriptedSearchClient
	srv        *httptest.Server
}

func newFixture(t *testing.T) *serverFixture {
	t.Helper()

	state := service.NewState()
	completion := &testutil.ScriptedCompletionClient{}
	searcher := &testutil.ScriptedSearchClient{}

	s := New(config.Default(), Deps{
		State:     state,
		Interview: service.NewInterviewService(state, completion),
		Research:  service.NewResearchService(state, completion, searcher),
		Assets:    service.NewAssetsService(state, completion),
		Report:    service.NewReportService(state, completion),
		Fetcher:   fetch.NewFetcher(),
	})

	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return &serverFixture{state: state, completion: completion, searcher: searcher, srv: srv}
}

func (f *serverFixture) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(f.srv.URL + path)
	require.NoError(t, err)
	return resp
}

func (f *serverFixture) post(t *testing.T, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	resp, err := http.Post(f.srv.URL+path, "application/json", &buf)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func setVillage(t *testing.T, f *serverFixture) {
	t.Helper()
	resp := f.post(t, "/api/village", domain.VillageInfo{Name: "Nyumbani", Country: "Kenya", Role: "Chief"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	resp := f.get(t, "/health")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestVillage_RoundTrip(t *testing.T) {
	f := newFixture(t)
	setVillage(t, f)

	got := decode[domain.VillageInfo](t, f.get(t, "/api/village"))
	assert.Equal(t, "Nyumbani", got.Name)
	assert.Equal(t, "Kenya", got.Country)
	assert.Equal(t, "Chief", got.Role)
}

func TestVillage_RejectsIncomplete(t *testing.T) {
	f := newFixture(t)

	resp := f.post(t, "/api/village", domain.VillageInfo{Name: "Nyumbani"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTopics_PerPhase(t *testing.T) {
	f := newFixture(t)

	conv := decode[[]domain.Topic](t, f.get(t, "/api/topics/conversation"))
	assert.Len(t, conv, 9)

	assets := decode[[]domain.Topic](t, f.get(t, "/api/topics/assets"))
	assert.Len(t, assets, 5)

	resp := f.get(t, "/api/topics/bogus")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSelectTopic_SeedsConversation(t *testing.T) {
	f := newFixture(t)
	setVillage(t, f)

	got := decode[logResponse](t, f.post(t, "/api/phases/conversation/topics/demographics/select", nil))
	require.Len(t, got.Messages, 1)
	assert.Equal(t, domain.RoleAssistant, got.Messages[0].Role)
	assert.NotEmpty(t, got.Messages[0].Content)
}

func TestSelectTopic_UnknownTopic(t *testing.T) {
	f := newFixture(t)

	resp := f.post(t, "/api/phases/conversation/topics/astrology/select", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPostMessage_AppendsReply(t *testing.T) {
	f := newFixture(t)
	setVillage(t, f)
	f.completion.Replies = []string{"That sounds like a close-knit community."}

	resp := f.post(t, "/api/phases/conversation/topics/demographics/select", nil)
	resp.Body.Close()

	got := decode[logResponse](t, f.post(t,
		"/api/phases/conversation/topics/demographics/messages",
		messageRequest{Text: "About 2000 people live here."}))
	require.Len(t, got.Messages, 3)
	assert.Equal(t, "About 2000 people live here.", got.Messages[1].Content)
	assert.Equal(t, "That sounds like a close-knit community.", got.Messages[2].Content)
}

func TestPostMessage_EmptyRejected(t *testing.T) {
	f := newFixture(t)
	setVillage(t, f)

	resp := f.post(t, "/api/phases/conversation/topics/demographics/messages", messageRequest{Text: "   "})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetMessages_EmptyForUnselected(t *testing.T) {
	f := newFixture(t)

	got := decode[logResponse](t, f.get(t, "/api/phases/conversation/topics/demographics/messages"))
	assert.Empty(t, got.Messages)
}

func TestAspirationAnswer_Direct(t *testing.T) {
	f := newFixture(t)
	setVillage(t, f)

	resp := f.post(t, "/api/aspirations/agriculture/answer", messageRequest{Text: "We want an irrigation system."})
	defer resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	answer, ok := f.state.AspirationAnswer("agriculture")
	require.True(t, ok)
	assert.Equal(t, "We want an irrigation system.", answer)
	assert.True(t, f.state.Completed(domain.AspirationKey("agriculture")))
}

func TestAspirationAnswer_UnknownTopic(t *testing.T) {
	f := newFixture(t)

	resp := f.post(t, "/api/aspirations/astrology/answer", messageRequest{Text: "anything"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestConductResearch_ReturnsReportAndSources(t *testing.T) {
	f := newFixture(t)
	setVillage(t, f)
	f.searcher.Results = []search.Result{
		{Title: "County census", URL: "https://example.org/census", Snippet: "Population data."},
	}
	f.completion.Replies = []string{"# Education Access in Nyumbani, Kenya\n\nSchools are far apart."}

	got := decode[researchResponse](t, f.post(t, "/api/research/education", nil))
	assert.Equal(t, "education", got.Topic)
	assert.Contains(t, got.Report, "Schools are far apart.")
	assert.NotEmpty(t, got.Sources)
	assert.True(t, f.state.Completed("education"))
}

func TestConductResearch_RequiresVillage(t *testing.T) {
	f := newFixture(t)

	resp := f.post(t, "/api/research/education", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestConductResearch_SearchFailureIsBadGateway(t *testing.T) {
	f := newFixture(t)
	setVillage(t, f)
	f.searcher.Err = fmt.Errorf("%w: education in Nyumbani, Kenya", search.ErrNoResults)

	resp := f.post(t, "/api/research/education", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.False(t, f.state.Completed("education"))
}

func TestGetResearch_NotFoundBeforeRun(t *testing.T) {
	f := newFixture(t)

	resp := f.get(t, "/api/research/education")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetSources_KnownTopic(t *testing.T) {
	f := newFixture(t)
	setVillage(t, f)

	got := decode[[]service.SourceRef](t, f.get(t, "/api/research/agriculture/sources"))
	assert.NotEmpty(t, got)
}

func TestAnalysis_GenerateAndGet(t *testing.T) {
	f := newFixture(t)
	setVillage(t, f)
	f.state.SetResearch("education", "Schools are far apart.")
	f.completion.Replies = []string{"# Comprehensive Analysis\n\nEducation is the pivot."}

	resp := f.get(t, "/api/analysis")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	got := decode[analysisResponse](t, f.post(t, "/api/analysis", nil))
	assert.Contains(t, got.Analysis, "Education is the pivot.")

	stored := decode[analysisResponse](t, f.get(t, "/api/analysis"))
	assert.Equal(t, got.Analysis, stored.Analysis)
}

func TestAssets_ResearchAndGet(t *testing.T) {
	f := newFixture(t)
	setVillage(t, f)
	f.completion.Replies = []string{"Two boreholes and a diesel generator."}

	got := decode[assetsResponse](t, f.post(t, "/api/assets/power", nil))
	assert.Equal(t, "Two boreholes and a diesel generator.", got.Report)

	stored := decode[assetsResponse](t, f.get(t, "/api/assets/power"))
	assert.Equal(t, got.Report, stored.Report)
	assert.True(t, f.state.Completed(domain.AssetKey("power")))
}

func TestAssets_UnknownTopic(t *testing.T) {
	f := newFixture(t)
	setVillage(t, f)

	resp := f.post(t, "/api/assets/astrology", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCompileReport(t *testing.T) {
	f := newFixture(t)
	setVillage(t, f)
	f.completion.Replies = []string{"# Final Report\n\nA full picture of Nyumbani."}

	got := decode[reportResponse](t, f.post(t, "/api/report", nil))
	assert.Contains(t, got.Report, "A full picture of Nyumbani.")
}

func TestExportWord_SetsDownloadHeaders(t *testing.T) {
	f := newFixture(t)
	setVillage(t, f)
	f.completion.Replies = []string{"# Final Report\n\nBody."}

	resp := f.get(t, "/api/export/report.doc")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/msword", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Nyumbani_Final_Report.doc")
}

func TestExportJSON_ContainsSnapshot(t *testing.T) {
	f := newFixture(t)
	setVillage(t, f)
	f.state.SetResearch("education", "Schools are far apart.")

	got := decode[service.ExportData](t, f.get(t, "/api/export/data.json"))
	assert.Equal(t, "Nyumbani", got.VillageInfo.Name)
	assert.Equal(t, "Schools are far apart.", got.ResearchData["education"])
}

func TestProgress_ReflectsCompletion(t *testing.T) {
	f := newFixture(t)
	setVillage(t, f)
	f.state.SetResearch("education", "text")

	got := decode[map[string]bool](t, f.get(t, "/api/progress"))
	assert.True(t, got["education"])
	assert.False(t, got["agriculture"])
}

func TestFetchContent_ProxiesPage(t *testing.T) {
	f := newFixture(t)

	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><head><title>Village news</title></head><body><main>Harvest was good this year.</main></body></html>`)
	}))
	defer page.Close()

	got := decode[fetch.PageContent](t, f.post(t, "/api/fetch-content", fetchRequest{URL: page.URL}))
	assert.Equal(t, "Village news", got.Title)
	assert.Contains(t, got.Content, "Harvest was good this year.")
}

func TestFetchContent_RequiresURL(t *testing.T) {
	f := newFixture(t)

	resp := f.post(t, "/api/fetch-content", fetchRequest{})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCORSHeadersPresent(t *testing.T) {
	f := newFixture(t)

	req, err := http.NewRequest(http.MethodOptions, f.srv.URL+"/api/village", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestUnknownMethod(t *testing.T) {
	f := newFixture(t)

	req, err := http.NewRequest(http.MethodDelete, f.srv.URL+"/api/village", strings.NewReader(""))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
