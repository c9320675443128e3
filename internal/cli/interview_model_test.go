package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khallinan12345/community-research-assistant/internal/config"
	"github.com/khallinan12345/community-research-assistant/internal/domain"
	"github.com/khallinan12345/community-research-assistant/internal/search"
	"github.com/khallinan12345/community-research-assistant/internal/service"
	"github.com/khallinan12345/community-research-assistant/internal/testutil"
)

type cliFixture struct {
	app        *App
	completion *testutil.ScriptedCompletionClient
	searcher   *testutil.ScriptedSearchClient
	model      *interviewModel
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()

	state := service.NewState()
	state.SetVillage(domain.VillageInfo{Name: "Nyumbani", Country: "Kenya", Role: "Chief"})
	completion := &testutil.ScriptedCompletionClient{}
	searcher := &testutil.ScriptedSearchClient{}

	app := &App{
		State:     state,
		Interview: service.NewInterviewService(state, completion),
		Research:  service.NewResearchService(state, completion, searcher),
		Assets:    service.NewAssetsService(state, completion),
		Report:    service.NewReportService(state, completion),
		Config:    config.Default(),
	}
	return &cliFixture{
		app:        app,
		completion: completion,
		searcher:   searcher,
		model:      newInterviewModel(app),
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func escKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEsc}
}

// step feeds a message through Update and returns the produced command.
func (f *cliFixture) step(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	model, cmd := f.model.Update(msg)
	f.model = model.(*interviewModel)
	return cmd
}

// run executes a command synchronously and feeds its message back.
func (f *cliFixture) run(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	if msg := cmd(); msg != nil {
		f.step(t, msg)
	}
}

func TestPhaseMenu_NavigationAndSelect(t *testing.T) {
	f := newCLIFixture(t)

	view := f.model.View()
	assert.Contains(t, view, "Conversation")
	assert.Contains(t, view, "Final Report")
	assert.Contains(t, view, "Nyumbani")

	f.step(t, enterKey())
	assert.Equal(t, modeTopicList, f.model.mode)
	assert.Equal(t, domain.PhaseConversation, f.model.phase)
	assert.Len(t, f.model.topics, 9)
	assert.Contains(t, f.model.View(), "Demographics")
}

func TestPhaseMenu_CursorBounds(t *testing.T) {
	f := newCLIFixture(t)

	f.step(t, keyRune('k'))
	assert.Equal(t, 0, f.model.phaseCursor)

	for range 10 {
		f.step(t, keyRune('j'))
	}
	assert.Equal(t, len(phaseEntries)-1, f.model.phaseCursor)
}

func TestConversation_SelectSeedsAndChats(t *testing.T) {
	f := newCLIFixture(t)
	f.completion.Replies = []string{"That sounds like a growing community."}

	f.step(t, enterKey()) // conversation phase
	cmd := f.step(t, enterKey())
	f.run(t, cmd)

	require.Equal(t, modeChat, f.model.mode)
	view := f.model.View()
	assert.Contains(t, view, "Could you tell me about the population of your community?")

	f.model.input.SetValue("About 2000 people live here.")
	cmd = f.step(t, enterKey())
	f.run(t, cmd)

	view = f.model.View()
	assert.Contains(t, view, "About 2000 people live here.")
	assert.Contains(t, view, "That sounds like a growing community.")
	assert.False(t, f.model.busy)
}

func TestChat_EmptyInputIgnored(t *testing.T) {
	f := newCLIFixture(t)

	f.step(t, enterKey())
	f.run(t, f.step(t, enterKey()))
	require.Equal(t, modeChat, f.model.mode)

	f.model.input.SetValue("   ")
	cmd := f.step(t, enterKey())
	assert.Nil(t, cmd)
	assert.False(t, f.model.busy)
}

func TestChat_EscReturnsToTopics(t *testing.T) {
	f := newCLIFixture(t)

	f.step(t, enterKey())
	f.run(t, f.step(t, enterKey()))
	require.Equal(t, modeChat, f.model.mode)

	f.step(t, escKey())
	assert.Equal(t, modeTopicList, f.model.mode)
}

func TestResearch_StagesAndDocument(t *testing.T) {
	f := newCLIFixture(t)
	f.searcher.Results = []search.Result{
		{Title: "County census", URL: "https://example.org", Snippet: "Data."},
	}
	f.completion.Replies = []string{"# Demographics in Nyumbani, Kenya\n\nPopulation is around 2000."}

	f.step(t, keyRune('j'))
	f.step(t, enterKey()) // research phase
	require.Equal(t, domain.PhaseResearch, f.model.phase)

	run, wait := f.model.startResearchCmds("demographics")
	f.model.activeTopic = domain.Topic{ID: "demographics", Title: "Demographics"}
	f.model.mode = modeResearchRun
	f.model.busy = true

	done := run()

	// Drain the stage stream the way the program loop would.
	for msg := wait(); msg != nil; {
		stageMsg, ok := msg.(researchStageMsg)
		require.True(t, ok)
		f.step(t, stageMsg)
		wait = waitForStage(f.model.stageCh)
		msg = wait()
	}
	assert.Positive(t, f.model.pct)

	f.step(t, done)
	require.Equal(t, modeDocument, f.model.mode)
	assert.Contains(t, f.model.View(), "Population is around 2000.")
	assert.True(t, f.app.State.Completed("demographics"))
}

func TestResearch_SearchFailureShowsStatus(t *testing.T) {
	f := newCLIFixture(t)
	f.searcher.Err = search.ErrNotConfigured

	f.step(t, keyRune('j'))
	f.step(t, enterKey())

	run, _ := f.model.startResearchCmds("demographics")
	f.model.mode = modeResearchRun
	f.model.busy = true

	f.step(t, run())
	assert.Equal(t, modeTopicList, f.model.mode)
	assert.Contains(t, f.model.View(), "search API key")
	assert.False(t, f.app.State.Completed("demographics"))
}

func TestResearch_ViewStoredReport(t *testing.T) {
	f := newCLIFixture(t)
	f.app.State.SetResearch("demographics", "Stored research text.")

	f.step(t, keyRune('j'))
	f.step(t, enterKey())

	f.step(t, keyRune('v'))
	require.Equal(t, modeDocument, f.model.mode)
	assert.Contains(t, f.model.View(), "Stored research text.")

	f.step(t, escKey())
	assert.Equal(t, modeTopicList, f.model.mode)
}

func TestAssets_RunAndComplete(t *testing.T) {
	f := newCLIFixture(t)
	f.completion.Replies = []string{"Two boreholes and a grain mill."}

	f.step(t, keyRune('j'))
	f.step(t, keyRune('j'))
	f.step(t, enterKey()) // assets phase
	require.Equal(t, domain.PhaseAssets, f.model.phase)
	require.Len(t, f.model.topics, 5)

	f.run(t, f.step(t, enterKey()))
	require.Equal(t, modeDocument, f.model.mode)
	assert.Contains(t, f.model.View(), "Two boreholes and a grain mill.")
	assert.True(t, f.app.State.Completed(domain.AssetKey("agriculture")))
}

func TestReport_CompileAndExport(t *testing.T) {
	f := newCLIFixture(t)
	f.completion.Replies = []string{"# Final Report\n\nA complete picture of Nyumbani."}
	t.Chdir(t.TempDir())

	for range len(phaseEntries) {
		f.step(t, keyRune('j'))
	}
	f.run(t, f.step(t, enterKey()))

	require.Equal(t, modeDocument, f.model.mode)
	assert.True(t, f.model.exportable)
	assert.Contains(t, f.model.View(), "A complete picture of Nyumbani.")

	f.run(t, f.step(t, keyRune('s')))
	assert.Contains(t, f.model.status, "Nyumbani_Final_Report.doc")
	assert.FileExists(t, "Nyumbani_Final_Report.doc")
	assert.FileExists(t, "community_data.json")

	f.step(t, escKey())
	assert.Equal(t, modePhaseMenu, f.model.mode)
}

func TestTopicList_CompletionIndicators(t *testing.T) {
	f := newCLIFixture(t)
	f.app.State.ApplyAspirationUpdate(domain.DirectAnswerUpdate{TopicID: "agriculture", Text: "Irrigation."})

	f.step(t, keyRune('j'))
	f.step(t, keyRune('j'))
	f.step(t, keyRune('j'))
	f.step(t, enterKey()) // aspirations phase
	require.Equal(t, domain.PhaseAspirations, f.model.phase)

	agriculture := domain.Topic{ID: "agriculture", Title: "Agriculture Aspirations"}
	demographics := domain.Topic{ID: "demographics", Title: "Demographics Aspirations"}
	assert.True(t, f.model.topicCompleted(agriculture))
	assert.False(t, f.model.topicCompleted(demographics))
}
