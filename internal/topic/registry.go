// Package topic holds the static topic registries for the four question
// domains, the deterministic opening questions per topic, and the
// recommended-sources lookup table. Pure data, no behavior beyond lookups.
package topic

import "github.com/khallinan12345/community-research-assistant/internal/domain"

// ResearchTopics are the subject areas covered by web research. The
// conversation phase walks the same list.
var ResearchTopics = []domain.Topic{
	{ID: "demographics", Title: "Demographics"},
	{ID: "agriculture", Title: "Agriculture & Animal Production"},
	{ID: "power", Title: "Power Availability"},
	{ID: "education", Title: "Education Access"},
	{ID: "livelihoods", Title: "Livelihoods & Jobs"},
	{ID: "healthcare", Title: "Healthcare Access"},
	{ID: "political", Title: "Political Stability"},
	{ID: "food", Title: "Food Stability"},
	{ID: "leadership", Title: "Leadership Structures"},
}

// ConversationTopics are the subject areas for the guided conversation phase.
var ConversationTopics = ResearchTopics

// AssetTopics are the categories inventoried during the assets phase.
var AssetTopics = []domain.Topic{
	{ID: "agriculture", Title: "Agriculture Assets"},
	{ID: "power", Title: "Power Assets"},
	{ID: "education", Title: "Education Assets"},
	{ID: "livelihoods", Title: "Livelihood Assets"},
	{ID: "healthcare", Title: "Healthcare Assets"},
}

// AspirationTopics are the subject areas for the aspirations phase.
var AspirationTopics = []domain.Topic{
	{ID: "demographics", Title: "Demographics Aspirations"},
	{ID: "agriculture", Title: "Agriculture Aspirations"},
	{ID: "power", Title: "Power Aspirations"},
	{ID: "education", Title: "Education Aspirations"},
	{ID: "livelihoods", Title: "Livelihood Aspirations"},
	{ID: "healthcare", Title: "Healthcare Aspirations"},
	{ID: "political", Title: "Political Aspirations"},
	{ID: "food", Title: "Food Aspirations"},
	{ID: "leadership", Title: "Leadership Aspirations"},
}

// ForPhase returns the topic list configured for a phase. The report phase
// has no topic list of its own.
func ForPhase(p domain.Phase) []domain.Topic {
	switch p {
	case domain.PhaseConversation:
		return ConversationTopics
	case domain.PhaseResearch:
		return ResearchTopics
	case domain.PhaseAssets:
		return AssetTopics
	case domain.PhaseAspirations:
		return AspirationTopics
	default:
		return nil
	}
}

// Find looks a topic up by id within a phase's list.
func Find(p domain.Phase, id string) (domain.Topic, bool) {
	for _, t := range ForPhase(p) {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Topic{}, false
}

// Title returns the display title for a topic id in a phase, falling back to
// the id itself when the topic is unknown.
func Title(p domain.Phase, id string) string {
	if t, ok := Find(p, id); ok {
		return t.Title
	}
	return id
}
