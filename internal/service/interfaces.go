// Package service orchestrates the interview phases over the shared
// application state: conversation and aspirations sessions, per-topic web
// research with cross-topic analysis, the assets inventory, and final report
// compilation.
package service

import (
	"context"

	"github.com/khallinan12345/community-research-assistant/internal/domain"
)

// InterviewService runs the conversational phases (conversation and
// aspirations), one topic session per topic.
type InterviewService interface {
	// SelectTopic makes a topic active, seeding its session on first use.
	// Returns the session log.
	SelectTopic(ctx context.Context, phase domain.Phase, topicID string) ([]domain.Message, error)

	// Submit appends a user message and obtains the assistant reply,
	// falling back to a deterministic response on provider failure.
	// Returns the updated log.
	Submit(ctx context.Context, phase domain.Phase, topicID string, text string) ([]domain.Message, error)

	// Log returns the current session log for a topic, or nil if the topic
	// has never been selected.
	Log(phase domain.Phase, topicID string) []domain.Message
}

// ResearchService runs one-shot research-and-summarize per topic and the
// cross-topic comprehensive analysis.
type ResearchService interface {
	// ConductResearch looks up recommended sources, searches the web, and
	// synthesizes a cited narrative report for the topic. Search failures
	// propagate as typed errors; synthesis failures after a successful
	// search yield an apology document instead.
	ConductResearch(ctx context.Context, topicID string, onStage domain.StageFunc) (string, error)

	// GenerateComprehensiveAnalysis consolidates all per-topic research into
	// one cross-cutting report. Called automatically when the last topic
	// completes; may also be invoked explicitly to regenerate.
	GenerateComprehensiveAnalysis(ctx context.Context) string

	// RecommendedSources returns the static source list shown alongside a
	// topic's research.
	RecommendedSources(topicID string) []SourceRef
}

// AssetsService runs the one-shot assets inventory per asset topic.
type AssetsService interface {
	ResearchAssets(ctx context.Context, topicID string) (string, error)
}

// ReportService compiles the final narrative document from all phase data.
type ReportService interface {
	// Compile issues one synthesis request over the full data snapshot. On
	// failure it returns a literal user-facing error string; callers display
	// whatever comes back verbatim.
	Compile(ctx context.Context) string
}

// SourceRef is a recommended external source surfaced with research results.
type SourceRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
