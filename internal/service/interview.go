package service

import (
	"context"
	"sync"

	"github.com/khallinan12345/community-research-assistant/internal/domain"
	"github.com/khallinan12345/community-research-assistant/internal/llm"
	"github.com/khallinan12345/community-research-assistant/internal/session"
	"github.com/khallinan12345/community-research-assistant/internal/topic"
)

type interviewService struct {
	state  *State
	client llm.CompletionClient

	mu       sync.Mutex
	sessions map[string]*session.Session
}

// NewInterviewService creates the orchestrator for the conversation and
// aspirations phases.
func NewInterviewService(state *State, client llm.CompletionClient) InterviewService {
	return &interviewService{
		state:    state,
		client:   client,
		sessions: map[string]*session.Session{},
	}
}

func (s *interviewService) SelectTopic(_ context.Context, phase domain.Phase, topicID string) ([]domain.Message, error) {
	sess, err := s.session(phase, topicID)
	if err != nil {
		return nil, err
	}
	sess.Seed()
	s.publish(phase, topicID, sess)
	return sess.Log(), nil
}

func (s *interviewService) Submit(ctx context.Context, phase domain.Phase, topicID string, text string) ([]domain.Message, error) {
	sess, err := s.session(phase, topicID)
	if err != nil {
		return nil, err
	}
	sess.Seed()

	if _, err := sess.AppendUserMessage(text); err != nil {
		return nil, err
	}
	sess.RequestAssistantReply(ctx)

	s.publish(phase, topicID, sess)
	return sess.Log(), nil
}

func (s *interviewService) Log(phase domain.Phase, topicID string) []domain.Message {
	key, err := sessionKey(phase, topicID)
	if err != nil {
		return nil
	}

	s.mu.Lock()
	sess := s.sessions[key]
	s.mu.Unlock()

	if sess == nil {
		return nil
	}
	return sess.Log()
}

// session returns the lazily created topic session for a phase. Sessions for
// the aspirations phase are keyed with the phase suffix so completion entries
// stay distinct from the conversation phase's.
func (s *interviewService) session(phase domain.Phase, topicID string) (*session.Session, error) {
	if _, ok := topic.Find(phase, topicID); !ok {
		return nil, ErrUnknownTopic
	}
	key, err := sessionKey(phase, topicID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[key]
	if !ok {
		sess = session.New(phase, key, s.state.Village(), s.client)
		s.sessions[key] = sess
	}
	return sess, nil
}

// publish pushes the session's current log into the shared state, latching
// completion and recomputing the aggregated answer when the threshold is met.
func (s *interviewService) publish(phase domain.Phase, topicID string, sess *session.Session) {
	log := sess.Log()
	if phase == domain.PhaseAspirations {
		s.state.ApplyAspirationUpdate(domain.ConversationUpdate{
			TopicKey: sess.Key(),
			Messages: log,
		})
		return
	}
	s.state.RecordConversation(topicID, log)
}

func sessionKey(phase domain.Phase, topicID string) (string, error) {
	switch phase {
	case domain.PhaseConversation:
		return topicID, nil
	case domain.PhaseAspirations:
		return domain.AspirationKey(topicID), nil
	default:
		return "", ErrUnknownPhase
	}
}
