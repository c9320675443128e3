package domain

import "strings"

// Phase identifies one data-collection stage of the guided interview.
type Phase string

const (
	PhaseConversation Phase = "conversation"
	PhaseResearch     Phase = "research"
	PhaseAssets       Phase = "assets"
	PhaseAspirations  Phase = "aspirations"
	PhaseReport       Phase = "report"
)

// ValidPhases is the canonical set of accepted phase strings.
var ValidPhases = map[Phase]bool{
	PhaseConversation: true,
	PhaseResearch:     true,
	PhaseAssets:       true,
	PhaseAspirations:  true,
	PhaseReport:       true,
}

// CompletionThreshold returns the number of user-authored messages required
// before a topic counts as completed in this phase. Zero means completion is
// not message-driven: research and assets topics are latched by their
// aggregator when a research call succeeds.
func (p Phase) CompletionThreshold() int {
	switch p {
	case PhaseConversation:
		return 3
	case PhaseAspirations:
		return 1
	default:
		return 0
	}
}

const aspirationSuffix = "_aspirations"

// AspirationKey returns the session key for a topic's aspirations
// conversation, e.g. "agriculture" -> "agriculture_aspirations".
func AspirationKey(topicID string) string {
	return topicID + aspirationSuffix
}

// AssetKey returns the completion-map key for a topic's assets research.
func AssetKey(topicID string) string {
	return topicID + "_assets"
}

// BaseTopicID strips an aspirations suffix, if present, from a session key.
// Aggregated aspiration answers are always published under the base id.
func BaseTopicID(key string) string {
	return strings.TrimSuffix(key, aspirationSuffix)
}
