package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/khallinan12345/community-research-assistant/internal/cli/formatter"
	"github.com/khallinan12345/community-research-assistant/internal/domain"
	"github.com/khallinan12345/community-research-assistant/internal/service"
	"github.com/khallinan12345/community-research-assistant/internal/topic"
)

type interviewMode int

const (
	modePhaseMenu interviewMode = iota
	modeTopicList
	modeChat
	modeResearchRun
	modeDocument
)

type phaseEntry struct {
	phase domain.Phase
	title string
	desc  string
}

var phaseEntries = []phaseEntry{
	{domain.PhaseConversation, "Conversation", "Talk through daily life, topic by topic"},
	{domain.PhaseResearch, "Research", "Research each topic from public sources"},
	{domain.PhaseAssets, "Assets", "Inventory what the community already has"},
	{domain.PhaseAspirations, "Aspirations", "Capture hopes and priorities for the future"},
	{domain.PhaseReport, "Final Report", "Compile and export the full report"},
}

// Messages produced by async commands.
type sessionLogMsg struct {
	log []domain.Message
	err error
}

type researchStageMsg struct{ stage domain.ResearchStage }

type researchDoneMsg struct {
	report string
	err    error
}

type assetsDoneMsg struct {
	report string
	err    error
}

type reportDoneMsg struct{ report string }

type analysisDoneMsg struct{ analysis string }

type exportDoneMsg struct {
	paths []string
	err   error
}

// interviewModel is the top-level bubbletea model for the terminal
// interview: a phase menu, per-phase topic lists, chat sessions, the
// research progress view, and a document reader for generated reports.
type interviewModel struct {
	app *App

	mode        interviewMode
	phaseCursor int
	phase       domain.Phase
	topics      []domain.Topic
	topicCursor int

	activeTopic domain.Topic
	input       textinput.Model
	busy        bool

	stageCh    chan domain.ResearchStage
	pct        float64
	stageLabel string

	docTitle   string
	document   string
	exportable bool
	docBack    interviewMode

	status string
}

func newInterviewModel(app *App) *interviewModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 2000

	return &interviewModel{
		app:   app,
		mode:  modePhaseMenu,
		input: ti,
	}
}

func (m *interviewModel) Init() tea.Cmd {
	return textinput.Blink
}

// ── commands ─────────────────────────────────────────────────────────────────

func (m *interviewModel) selectTopicCmd(phase domain.Phase, topicID string) tea.Cmd {
	return func() tea.Msg {
		log, err := m.app.Interview.SelectTopic(context.Background(), phase, topicID)
		return sessionLogMsg{log: log, err: err}
	}
}

func (m *interviewModel) submitCmd(phase domain.Phase, topicID, text string) tea.Cmd {
	return func() tea.Msg {
		log, err := m.app.Interview.Submit(context.Background(), phase, topicID, text)
		return sessionLogMsg{log: log, err: err}
	}
}

func (m *interviewModel) startResearchCmds(topicID string) (tea.Cmd, tea.Cmd) {
	ch := make(chan domain.ResearchStage, 8)
	m.stageCh = ch

	run := func() tea.Msg {
		report, err := m.app.Research.ConductResearch(context.Background(), topicID, func(stage domain.ResearchStage) {
			ch <- stage
		})
		close(ch)
		return researchDoneMsg{report: report, err: err}
	}
	return run, waitForStage(ch)
}

func waitForStage(ch chan domain.ResearchStage) tea.Cmd {
	return func() tea.Msg {
		stage, ok := <-ch
		if !ok {
			return nil
		}
		return researchStageMsg{stage: stage}
	}
}

func (m *interviewModel) assetsCmd(topicID string) tea.Cmd {
	return func() tea.Msg {
		report, err := m.app.Assets.ResearchAssets(context.Background(), topicID)
		return assetsDoneMsg{report: report, err: err}
	}
}

func (m *interviewModel) analysisCmd() tea.Cmd {
	return func() tea.Msg {
		return analysisDoneMsg{analysis: m.app.Research.GenerateComprehensiveAnalysis(context.Background())}
	}
}

func (m *interviewModel) reportCmd() tea.Cmd {
	return func() tea.Msg {
		return reportDoneMsg{report: m.app.Report.Compile(context.Background())}
	}
}

// exportCmd writes the Word-compatible report and the raw data snapshot to
// the working directory.
func (m *interviewModel) exportCmd(report string) tea.Cmd {
	return func() tea.Msg {
		village := m.app.State.Village().Name
		if village == "" {
			village = "Village"
		}

		docPath := village + "_Final_Report.doc"
		if err := os.WriteFile(docPath, service.ExportWordHTML(village, report), 0o644); err != nil {
			return exportDoneMsg{err: err}
		}

		data, err := service.ExportJSON(m.app.State.Snapshot())
		if err != nil {
			return exportDoneMsg{err: err}
		}
		jsonPath := "community_data.json"
		if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
			return exportDoneMsg{err: err}
		}

		return exportDoneMsg{paths: []string{docPath, jsonPath}}
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (m *interviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case sessionLogMsg:
		m.busy = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.mode = modeChat
		m.input.Focus()
		return m, textinput.Blink

	case researchStageMsg:
		m.pct = formatter.StagePercent(msg.stage)
		m.stageLabel = formatter.StageLabel(msg.stage)
		return m, waitForStage(m.stageCh)

	case researchDoneMsg:
		m.busy = false
		m.stageCh = nil
		if msg.err != nil {
			m.status = msg.err.Error()
			m.mode = modeTopicList
			return m, nil
		}
		m.showDocument(m.activeTopic.Title, msg.report, false, modeTopicList)
		return m, nil

	case assetsDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.showDocument(m.activeTopic.Title, msg.report, false, modeTopicList)
		return m, nil

	case analysisDoneMsg:
		m.busy = false
		m.showDocument("Comprehensive Analysis", msg.analysis, false, modeTopicList)
		return m, nil

	case reportDoneMsg:
		m.busy = false
		m.showDocument("Final Report", msg.report, true, modePhaseMenu)
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
		} else {
			m.status = "exported " + strings.Join(msg.paths, " and ")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interviewModel) showDocument(title, text string, exportable bool, back interviewMode) {
	m.mode = modeDocument
	m.docTitle = title
	m.document = text
	m.exportable = exportable
	m.docBack = back
}

func (m *interviewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy && m.mode != modeChat {
		return m, nil
	}

	switch m.mode {
	case modePhaseMenu:
		return m.handlePhaseMenuKey(msg)
	case modeTopicList:
		return m.handleTopicListKey(msg)
	case modeChat:
		return m.handleChatKey(msg)
	case modeDocument:
		return m.handleDocumentKey(msg)
	}
	return m, nil
}

func (m *interviewModel) handlePhaseMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.phaseCursor > 0 {
			m.phaseCursor--
		}
	case "down", "j":
		if m.phaseCursor < len(phaseEntries)-1 {
			m.phaseCursor++
		}
	case "enter":
		entry := phaseEntries[m.phaseCursor]
		m.status = ""
		if entry.phase == domain.PhaseReport {
			m.busy = true
			return m, m.reportCmd()
		}
		m.phase = entry.phase
		m.topics = topic.ForPhase(entry.phase)
		m.topicCursor = 0
		m.mode = modeTopicList
	}
	return m, nil
}

func (m *interviewModel) handleTopicListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modePhaseMenu
		m.status = ""
	case "up", "k":
		if m.topicCursor > 0 {
			m.topicCursor--
		}
	case "down", "j":
		if m.topicCursor < len(m.topics)-1 {
			m.topicCursor++
		}
	case "v":
		// View stored results without re-running anything.
		t := m.topics[m.topicCursor]
		switch m.phase {
		case domain.PhaseResearch:
			if text, ok := m.app.State.Research(t.ID); ok {
				m.activeTopic = t
				m.showDocument(t.Title, text, false, modeTopicList)
			}
		case domain.PhaseAssets:
			if text, ok := m.app.State.Assets(t.ID); ok {
				m.activeTopic = t
				m.showDocument(t.Title, text, false, modeTopicList)
			}
		}
	case "a":
		if m.phase == domain.PhaseResearch {
			if text := m.app.State.Analysis(); text != "" {
				m.showDocument("Comprehensive Analysis", text, false, modeTopicList)
				return m, nil
			}
			m.busy = true
			return m, m.analysisCmd()
		}
	case "enter":
		t := m.topics[m.topicCursor]
		m.activeTopic = t
		m.status = ""
		switch m.phase {
		case domain.PhaseConversation, domain.PhaseAspirations:
			m.busy = true
			return m, m.selectTopicCmd(m.phase, t.ID)
		case domain.PhaseResearch:
			m.busy = true
			m.mode = modeResearchRun
			m.pct = 0
			m.stageLabel = "Starting..."
			run, wait := m.startResearchCmds(t.ID)
			return m, tea.Batch(run, wait)
		case domain.PhaseAssets:
			m.busy = true
			return m, m.assetsCmd(t.ID)
		}
	}
	return m, nil
}

func (m *interviewModel) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeTopicList
		m.input.Reset()
		m.status = ""
		return m, nil
	case tea.KeyEnter:
		if m.busy {
			return m, nil
		}
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		m.input.Reset()
		m.busy = true
		m.status = ""
		return m, m.submitCmd(m.phase, m.activeTopic.ID, text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interviewModel) handleDocumentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = m.docBack
		m.status = ""
	case "s":
		if m.exportable {
			return m, m.exportCmd(m.document)
		}
	}
	return m, nil
}

// ── view ─────────────────────────────────────────────────────────────────────

func (m *interviewModel) View() string {
	var b strings.Builder

	village := m.app.State.Village()
	title := "Community Research"
	if village.Name != "" {
		title = fmt.Sprintf("%s — %s, %s", title, village.Name, village.Country)
	}
	b.WriteString(formatter.Header(title))
	b.WriteString("\n\n")

	switch m.mode {
	case modePhaseMenu:
		b.WriteString(m.viewPhaseMenu())
	case modeTopicList:
		b.WriteString(m.viewTopicList())
	case modeChat:
		b.WriteString(m.viewChat())
	case modeResearchRun:
		b.WriteString(m.viewResearchRun())
	case modeDocument:
		b.WriteString(m.viewDocument())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(formatter.StyleYellow.Render(m.status))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *interviewModel) viewPhaseMenu() string {
	var b strings.Builder
	for i, entry := range phaseEntries {
		cursor := "  "
		line := entry.title
		if i == m.phaseCursor {
			cursor = formatter.StyleHeader.Render("> ")
			line = formatter.Bold(entry.title)
		}
		b.WriteString(cursor + line + "  " + formatter.Dim(entry.desc) + "\n")
	}
	if m.busy {
		b.WriteString("\n" + formatter.Dim("Compiling the final report...") + "\n")
	}
	b.WriteString("\n" + formatter.Dim("enter select · q quit") + "\n")
	return b.String()
}

func (m *interviewModel) topicCompleted(t domain.Topic) bool {
	switch m.phase {
	case domain.PhaseConversation:
		log := m.app.Interview.Log(domain.PhaseConversation, t.ID)
		return domain.UserMessageCount(log) >= domain.PhaseConversation.CompletionThreshold()
	case domain.PhaseResearch:
		_, ok := m.app.State.Research(t.ID)
		return ok
	case domain.PhaseAssets:
		_, ok := m.app.State.Assets(t.ID)
		return ok
	case domain.PhaseAspirations:
		return m.app.State.Completed(domain.AspirationKey(t.ID))
	}
	return false
}

func (m *interviewModel) viewTopicList() string {
	var b strings.Builder
	for i, t := range m.topics {
		cursor := "  "
		line := t.Title
		if i == m.topicCursor {
			cursor = formatter.StyleHeader.Render("> ")
			line = formatter.Bold(t.Title)
		}
		b.WriteString(cursor + formatter.CompletionIndicator(m.topicCompleted(t)) + " " + line + "\n")
	}
	if m.busy {
		b.WriteString("\n" + formatter.Dim("Working...") + "\n")
	}

	help := "enter select · esc back"
	if m.phase == domain.PhaseResearch {
		help = "enter research · v view · a analysis · esc back"
	} else if m.phase == domain.PhaseAssets {
		help = "enter research · v view · esc back"
	}
	b.WriteString("\n" + formatter.Dim(help) + "\n")
	return b.String()
}

func (m *interviewModel) viewChat() string {
	var b strings.Builder
	b.WriteString(formatter.Bold(m.activeTopic.Title) + "\n\n")

	for _, msg := range m.app.Interview.Log(m.phase, m.activeTopic.ID) {
		if msg.Role == domain.RoleUser {
			b.WriteString(formatter.StyleBlue.Render("You: ") + msg.Content + "\n")
		} else {
			b.WriteString(formatter.StyleGreen.Render("Assistant: ") + msg.Content + "\n")
		}
	}

	b.WriteString("\n")
	if m.busy {
		b.WriteString(formatter.Dim("Thinking...") + "\n")
	}
	b.WriteString(formatter.StylePurple.Render("you") + formatter.Dim("> ") + m.input.View())
	b.WriteString("\n" + formatter.Dim("enter send · esc back") + "\n")
	return b.String()
}

func (m *interviewModel) viewResearchRun() string {
	var b strings.Builder
	b.WriteString(formatter.Bold("Researching "+m.activeTopic.Title) + "\n\n")
	b.WriteString(formatter.RenderProgress(m.pct, 30) + "\n")
	b.WriteString(formatter.Dim(m.stageLabel) + "\n")
	return b.String()
}

func (m *interviewModel) viewDocument() string {
	var b strings.Builder
	b.WriteString(formatter.RenderMarkdown("# " + m.docTitle))
	b.WriteString("\n")
	b.WriteString(formatter.RenderMarkdown(m.document))

	help := "esc back"
	if m.exportable {
		help = "s save exports · esc back"
	}
	b.WriteString("\n" + formatter.Dim(help) + "\n")
	return b.String()
}
