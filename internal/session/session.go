// Package session manages one topic's conversational exchange: the ordered
// message log, seeding, assistant replies with deterministic fallbacks, and
// the phase-specific completion latch.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/khallinan12345/community-research-assistant/internal/domain"
	"github.com/khallinan12345/community-research-assistant/internal/llm"
	"github.com/khallinan12345/community-research-assistant/internal/topic"
)

// Session is the per-topic conversational state for one phase. The key may
// carry a phase suffix (e.g. "agriculture_aspirations"); the base topic id is
// used for starters and fallbacks.
type Session struct {
	mu        sync.Mutex
	phase     domain.Phase
	key       string
	village   domain.VillageInfo
	client    llm.CompletionClient
	log       []domain.Message
	pending   bool
	completed bool
}

// New creates an empty session for a topic key within a phase.
func New(phase domain.Phase, key string, village domain.VillageInfo, client llm.CompletionClient) *Session {
	return &Session{
		phase:   phase,
		key:     key,
		village: village,
		client:  client,
	}
}

// Key returns the session's topic key, suffix included.
func (s *Session) Key() string { return s.key }

// Seed appends the deterministic opening question for the topic as the first
// log entry and returns it. Seeding a non-empty log is a no-op returning the
// existing first message. Seeding never fails; unknown topics get a generic
// templated question.
func (s *Session) Seed() domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.log) > 0 {
		return s.log[0]
	}

	baseID := domain.BaseTopicID(s.key)
	var question string
	if s.phase == domain.PhaseAspirations {
		question = topic.AspirationQuestion(baseID)
	} else {
		question = topic.ConversationStarter(baseID, s.village.Name)
	}

	msg := domain.NewMessage(domain.RoleAssistant, question)
	s.log = append(s.log, msg)
	return msg
}

// AppendUserMessage appends a user message and marks the session as awaiting
// an assistant reply. Empty or whitespace-only text is rejected without state
// mutation, as is a submission while a prior reply is still pending. Returns
// a snapshot of the updated log.
func (s *Session) AppendUserMessage(text string) ([]domain.Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending {
		return nil, ErrReplyPending
	}

	s.log = append(s.log, domain.NewMessage(domain.RoleUser, trimmed))
	s.pending = true
	return s.snapshotLocked(), nil
}

// RequestAssistantReply sends the full log to the completion service and
// appends the returned content as an assistant message. On provider failure
// it appends a deterministic fallback instead; the caller always gets a
// non-empty assistant message. The completion latch is recomputed after the
// append. The reply lands in the log even if the topic is no longer active
// when the call resolves.
func (s *Session) RequestAssistantReply(ctx context.Context) domain.Message {
	s.mu.Lock()
	history := s.snapshotLocked()
	baseID := domain.BaseTopicID(s.key)
	title := topic.Title(s.phase, baseID)
	s.mu.Unlock()

	content := ""
	resp, err := s.client.Complete(ctx, llm.CompletionRequest{
		Task:     llm.TaskConversation,
		System:   systemPrompt(s.phase, title, s.village),
		Messages: llm.FromLog(history),
	})
	if err == nil {
		content = strings.TrimSpace(resp.Text)
	}
	if content == "" {
		content = fallbackReply(s.phase, baseID, s.village, history)
	}

	msg := domain.NewMessage(domain.RoleAssistant, content)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = append(s.log, msg)
	s.pending = false
	if IsCompleted(s.log, s.phase) {
		s.completed = true
	}
	return msg
}

// Log returns a snapshot of the message log.
func (s *Session) Log() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Completed reports the latched completion flag. The latch is monotone: once
// set it never reverts within the session's lifetime.
func (s *Session) Completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed
}

// AggregatedAnswer returns the space-joined user message contents in log
// order. Only meaningful once Completed reports true.
func (s *Session) AggregatedAnswer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.JoinUserContent(s.log)
}

func (s *Session) snapshotLocked() []domain.Message {
	out := make([]domain.Message, len(s.log))
	copy(out, s.log)
	return out
}

// IsCompleted reports whether a log meets the phase's user-message threshold.
// Phases without a message-driven threshold never complete this way; their
// aggregator latches completion on the first successful generation.
func IsCompleted(log []domain.Message, phase domain.Phase) bool {
	threshold := phase.CompletionThreshold()
	if threshold == 0 {
		return false
	}
	return domain.UserMessageCount(log) >= threshold
}
