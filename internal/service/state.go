package service

import (
	"sync"

	"github.com/khallinan12345/community-research-assistant/internal/domain"
)

// State is the in-memory application state shared across phases. All
// mutation flows through explicit update operations; the per-key maps are
// safe for concurrent independent-topic writes since each write touches a
// disjoint key under the mutex. Nothing here persists past process end.
type State struct {
	mu sync.RWMutex

	village domain.VillageInfo

	research        map[string]string
	conversations   map[string][]domain.Message
	conversationAns map[string]string
	aspirationLogs  map[string][]domain.Message
	aspirations     map[string]string
	assets          map[string]string
	analysis        string
	analysisDone    bool
	completed       map[string]bool
}

// NewState returns an empty application state.
func NewState() *State {
	return &State{
		research:        map[string]string{},
		conversations:   map[string][]domain.Message{},
		conversationAns: map[string]string{},
		aspirationLogs:  map[string][]domain.Message{},
		aspirations:     map[string]string{},
		assets:          map[string]string{},
		completed:       map[string]bool{},
	}
}

// SetVillage records the village identity from the introduction step.
func (s *State) SetVillage(v domain.VillageInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.village = v
}

// Village returns the recorded village identity.
func (s *State) Village() domain.VillageInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.village
}

// RecordConversation stores a conversation-phase transcript. When the log
// meets the phase threshold the topic is latched complete and its aggregated
// answer is recomputed from the user messages.
func (s *State) RecordConversation(topicID string, log []domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversations[topicID] = append([]domain.Message(nil), log...)
	if domain.UserMessageCount(log) >= domain.PhaseConversation.CompletionThreshold() {
		s.completed[topicID] = true
		s.conversationAns[topicID] = domain.JoinUserContent(log)
	}
}

// ConversationAnswer returns a topic's aggregated conversation answer. Only
// populated once the topic's completion threshold is met.
func (s *State) ConversationAnswer(topicID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.conversationAns[topicID]
	return text, ok
}

// AspirationAnswer returns a topic's aggregated aspiration answer, keyed by
// the base topic id.
func (s *State) AspirationAnswer(topicID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.aspirations[topicID]
	return text, ok
}

// ApplyAspirationUpdate applies either form of aspiration update. A
// conversation-log update with at least one user message latches the session
// key complete and republishes the aggregated answer under the base topic id
// with the phase suffix stripped. A direct answer bypasses the conversational
// path entirely.
func (s *State) ApplyAspirationUpdate(u domain.AspirationUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch upd := u.(type) {
	case domain.ConversationUpdate:
		s.aspirationLogs[upd.TopicKey] = append([]domain.Message(nil), upd.Messages...)
		if domain.UserMessageCount(upd.Messages) >= domain.PhaseAspirations.CompletionThreshold() {
			s.completed[upd.TopicKey] = true
			s.aspirations[domain.BaseTopicID(upd.TopicKey)] = domain.JoinUserContent(upd.Messages)
		}
	case domain.DirectAnswerUpdate:
		s.aspirations[upd.TopicID] = upd.Text
		s.completed[domain.AspirationKey(upd.TopicID)] = true
	}
}

// SetResearch stores a topic's research report and latches it complete. Any
// refresh re-arms the comprehensive analysis so it regenerates once the full
// topic set is covered again.
func (s *State) SetResearch(topicID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.research[topicID] = text
	s.completed[topicID] = true
	s.analysisDone = false
	s.analysis = ""
}

// Research returns a topic's research report, if any.
func (s *State) Research(topicID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.research[topicID]
	return text, ok
}

// ResearchSnapshot returns a copy of all research reports keyed by topic id.
func (s *State) ResearchSnapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyMap(s.research)
}

// beginAnalysis claims the one comprehensive-analysis run for the current
// all-researched transition. Returns false if the run already fired and no
// research has been refreshed since.
func (s *State) beginAnalysis() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analysisDone {
		return false
	}
	s.analysisDone = true
	return true
}

// SetAnalysis stores the comprehensive analysis text.
func (s *State) SetAnalysis(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analysis = text
	s.analysisDone = true
}

// Analysis returns the comprehensive analysis text, empty until generated.
func (s *State) Analysis() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analysis
}

// SetAssets stores an asset topic's inventory text and latches its
// completion key.
func (s *State) SetAssets(topicID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[topicID] = text
	s.completed[domain.AssetKey(topicID)] = true
}

// Assets returns an asset topic's inventory text, if any.
func (s *State) Assets(topicID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.assets[topicID]
	return text, ok
}

// Completed reports a completion-map entry. Entries are monotone.
func (s *State) Completed(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.completed[key]
}

// CompletionSnapshot returns a copy of the completion map.
func (s *State) CompletionSnapshot() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]bool, len(s.completed))
	for k, v := range s.completed {
		out[k] = v
	}
	return out
}

// ExportData is the raw snapshot of all accumulated phase data, serialized
// verbatim for the JSON download and embedded in the final report prompt.
type ExportData struct {
	VillageInfo     domain.VillageInfo          `json:"villageInfo"`
	ResearchData    map[string]string           `json:"researchData"`
	Conversations   map[string][]domain.Message `json:"conversations"`
	AnalysisData    string                      `json:"analysisData"`
	AssetsData      map[string]string           `json:"assetsData"`
	AspirationsData map[string]string           `json:"aspirationsData"`
}

// Snapshot returns a deep copy of everything accumulated so far.
func (s *State) Snapshot() ExportData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	convs := make(map[string][]domain.Message, len(s.conversations))
	for k, v := range s.conversations {
		convs[k] = append([]domain.Message(nil), v...)
	}

	return ExportData{
		VillageInfo:     s.village,
		ResearchData:    copyMap(s.research),
		Conversations:   convs,
		AnalysisData:    s.analysis,
		AssetsData:      copyMap(s.assets),
		AspirationsData: copyMap(s.aspirations),
	}
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
