package service

import (
	"context"
	"strings"

	"github.com/khallinan12345/community-research-assistant/internal/domain"
	"github.com/khallinan12345/community-research-assistant/internal/llm"
	"github.com/khallinan12345/community-research-assistant/internal/topic"
)

type assetsService struct {
	state *State
	llm   llm.CompletionClient
}

// NewAssetsService creates the one-shot assets inventory runner.
func NewAssetsService(state *State, completion llm.CompletionClient) AssetsService {
	return &assetsService{state: state, llm: completion}
}

func (s *assetsService) ResearchAssets(ctx context.Context, topicID string) (string, error) {
	if _, ok := topic.Find(domain.PhaseAssets, topicID); !ok {
		return "", ErrUnknownTopic
	}
	village := s.state.Village()

	title := topic.Title(domain.PhaseAssets, topicID)
	text := assetsIncompleteNotice
	resp, err := s.llm.Complete(ctx, llm.CompletionRequest{
		Task:   llm.TaskAssets,
		Prompt: assetPrompt(title, village.Name),
	})
	if err == nil && strings.TrimSpace(resp.Text) != "" {
		text = strings.TrimSpace(resp.Text)
	}

	s.state.SetAssets(topicID, text)
	return text, nil
}
