package domain

// AspirationUpdate is the tagged payload delivered to the aspirations
// aggregator. Upstream callers use either form depending on context: a
// conversation-log update (from which an aggregated answer is derived) or a
// direct final answer that bypasses the conversational path.
type AspirationUpdate interface {
	aspirationUpdate()
}

// ConversationUpdate carries a full message log keyed by the aspirations
// session key (base topic id plus "_aspirations").
type ConversationUpdate struct {
	TopicKey string
	Messages []Message
}

// DirectAnswerUpdate carries a plain-text final answer for a base topic id.
type DirectAnswerUpdate struct {
	TopicID string
	Text    string
}

func (ConversationUpdate) aspirationUpdate() {}
func (DirectAnswerUpdate) aspirationUpdate() {}
