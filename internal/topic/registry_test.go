package topic

import (
	"testing"

	"github.com/khallinan12345/community-research-assistant/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForPhase_TopicCounts(t *testing.T) {
	tests := []struct {
		phase domain.Phase
		want  int
	}{
		{domain.PhaseConversation, 9},
		{domain.PhaseResearch, 9},
		{domain.PhaseAspirations, 9},
		{domain.PhaseAssets, 5},
		{domain.PhaseReport, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.phase), func(t *testing.T) {
			assert.Len(t, ForPhase(tt.phase), tt.want)
		})
	}
}

func TestTopicIDsSharedAcrossPhases(t *testing.T) {
	research := map[string]bool{}
	for _, tp := range ResearchTopics {
		research[tp.ID] = true
	}
	for _, tp := range AspirationTopics {
		assert.True(t, research[tp.ID], "aspiration topic %q missing from research list", tp.ID)
	}
	for _, tp := range AssetTopics {
		assert.True(t, research[tp.ID], "asset topic %q missing from research list", tp.ID)
	}
}

func TestFind(t *testing.T) {
	tp, ok := Find(domain.PhaseResearch, "agriculture")
	require.True(t, ok)
	assert.Equal(t, "Agriculture & Animal Production", tp.Title)

	_, ok = Find(domain.PhaseAssets, "political")
	assert.False(t, ok)
}

func TestTitle_UnknownFallsBackToID(t *testing.T) {
	assert.Equal(t, "water", Title(domain.PhaseResearch, "water"))
}

func TestEveryTopicHasStarterQuestions(t *testing.T) {
	for _, tp := range ResearchTopics {
		assert.NotEmpty(t, ConversationStarter(tp.ID, "Nyumbani"), "starter for %s", tp.ID)
		assert.NotEmpty(t, AspirationQuestion(tp.ID), "aspiration question for %s", tp.ID)
		assert.NotEmpty(t, ResearchFocus(tp.ID), "research focus for %s", tp.ID)
	}
}

func TestStarter_UnknownTopicTemplated(t *testing.T) {
	q := ConversationStarter("water", "Nyumbani")
	assert.Contains(t, q, "water")
	assert.Contains(t, q, "Nyumbani")
}

func TestRecommendedSources_CountryPrepended(t *testing.T) {
	srcs := RecommendedSources("agriculture", "Kenya")
	require.GreaterOrEqual(t, len(srcs), 5)

	// Topic-specific national source first, national office second, then the
	// topic-generic list.
	assert.Equal(t, "Kenya Agricultural Research Institute", srcs[0].Name)
	assert.Equal(t, "Kenya National Bureau of Statistics", srcs[1].Name)
	assert.Equal(t, "FAO Country Profiles", srcs[2].Name)
}

func TestRecommendedSources_UnknownCountryBaseOnly(t *testing.T) {
	srcs := RecommendedSources("healthcare", "Atlantis")
	require.Len(t, srcs, 3)
	assert.Equal(t, "WHO Country Profiles", srcs[0].Name)
}

func TestRecommendedSources_DoesNotMutateBaseTable(t *testing.T) {
	before := len(baseSources["demographics"])
	_ = RecommendedSources("demographics", "Tanzania")
	assert.Len(t, baseSources["demographics"], before)
}
