package service

import (
	"context"
	"strings"

	"github.com/khallinan12345/community-research-assistant/internal/domain"
	"github.com/khallinan12345/community-research-assistant/internal/llm"
	"github.com/khallinan12345/community-research-assistant/internal/search"
	"github.com/khallinan12345/community-research-assistant/internal/topic"
)

type researchService struct {
	state  *State
	llm    llm.CompletionClient
	search search.Client
	topics []domain.Topic
}

// NewResearchService creates the research aggregator over the configured
// research topic list.
func NewResearchService(state *State, completion llm.CompletionClient, searcher search.Client) ResearchService {
	return &researchService{
		state:  state,
		llm:    completion,
		search: searcher,
		topics: topic.ResearchTopics,
	}
}

func (s *researchService) ConductResearch(ctx context.Context, topicID string, onStage domain.StageFunc) (string, error) {
	if _, ok := topic.Find(domain.PhaseResearch, topicID); !ok {
		return "", ErrUnknownTopic
	}
	village := s.state.Village()
	if !village.Complete() {
		return "", ErrVillageNotSet
	}

	results, err := s.search.Search(ctx, search.Query{
		Topic:   topicID,
		Village: village.Name,
		Country: village.Country,
		OnTier:  tierStages(onStage),
	})
	if err != nil {
		// No safe synthetic substitute exists for missing research data;
		// the topic stays incomplete.
		return "", err
	}

	reportStage(onStage, domain.StageSynthesizing)

	title := topic.Title(domain.PhaseResearch, topicID)
	var text string
	resp, err := s.llm.Complete(ctx, llm.CompletionRequest{
		Task:   llm.TaskResearch,
		Prompt: researchPrompt(topicID, title, village, results),
	})
	if err != nil || strings.TrimSpace(resp.Text) == "" {
		if err == nil {
			err = llm.ErrMalformedResponse
		}
		text = researchApology(title, village, err)
	} else {
		text = CleanResponse(resp.Text, title, village)
	}

	s.state.SetResearch(topicID, text)
	reportStage(onStage, domain.StageDone)

	if AllTopicsResearched(s.topics, s.state.CompletionSnapshot()) && s.state.beginAnalysis() {
		s.state.SetAnalysis(s.generateAnalysis(ctx))
	}

	return text, nil
}

func (s *researchService) GenerateComprehensiveAnalysis(ctx context.Context) string {
	text := s.generateAnalysis(ctx)
	s.state.SetAnalysis(text)
	return text
}

func (s *researchService) RecommendedSources(topicID string) []SourceRef {
	country := s.state.Village().Country
	sources := topic.RecommendedSources(topicID, country)
	out := make([]SourceRef, 0, len(sources))
	for _, src := range sources {
		out = append(out, SourceRef{Name: src.Name, URL: src.URL})
	}
	return out
}

func (s *researchService) generateAnalysis(ctx context.Context) string {
	village := s.state.Village()
	research := s.state.ResearchSnapshot()

	hasData := false
	for _, text := range research {
		if text != "" {
			hasData = true
			break
		}
	}
	if !hasData {
		return insufficientDataNotice
	}

	resp, err := s.llm.Complete(ctx, llm.CompletionRequest{
		Task:   llm.TaskAnalysis,
		Prompt: analysisPrompt(village, research, s.topics),
	})
	if err != nil {
		return analysisApology(village, err)
	}
	return CleanResponse(resp.Text, "", village)
}

// AllTopicsResearched reports whether every topic in the configured list has
// a true entry in the completion map.
func AllTopicsResearched(topics []domain.Topic, completed map[string]bool) bool {
	if len(topics) == 0 {
		return false
	}
	for _, t := range topics {
		if !completed[t.ID] {
			return false
		}
	}
	return true
}

// tierStages maps search query variants onto the research progress stages.
func tierStages(onStage domain.StageFunc) func(search.SourceTier) {
	if onStage == nil {
		return nil
	}
	return func(tier search.SourceTier) {
		switch tier {
		case search.TierVillage:
			onStage(domain.StageSearching)
		case search.TierRegional:
			onStage(domain.StageRegionalLookup)
		case search.TierCountry:
			onStage(domain.StageCountryLookup)
		}
	}
}

func reportStage(onStage domain.StageFunc, stage domain.ResearchStage) {
	if onStage != nil {
		onStage(stage)
	}
}
