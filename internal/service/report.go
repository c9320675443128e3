package service

import (
	"context"
	"encoding/json"

	"github.com/khallinan12345/community-research-assistant/internal/llm"
)

// reportFailureText is returned verbatim on any compile failure; callers
// display whatever string comes back.
const reportFailureText = "Error generating report. Please try again later."

type reportService struct {
	state *State
	llm   llm.CompletionClient
}

// NewReportService creates the final report compiler.
func NewReportService(state *State, completion llm.CompletionClient) ReportService {
	return &reportService{state: state, llm: completion}
}

// Compile issues a fresh synthesis request each time it is called. There is
// no caching: regenerating is expected whenever upstream data changes.
func (s *reportService) Compile(ctx context.Context) string {
	data := s.state.Snapshot()

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return reportFailureText
	}

	resp, err := s.llm.Complete(ctx, llm.CompletionRequest{
		Task:   llm.TaskReport,
		System: "You are a professional report writer.",
		Prompt: reportPrompt(data, string(raw)),
	})
	if err != nil || resp.Text == "" {
		return reportFailureText
	}
	return resp.Text
}
