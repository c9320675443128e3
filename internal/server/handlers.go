package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/khallinan12345/community-research-assistant/internal/domain"
	"github.com/khallinan12345/community-research-assistant/internal/search"
	"github.com/khallinan12345/community-research-assistant/internal/service"
	"github.com/khallinan12345/community-research-assistant/internal/session"
	"github.com/khallinan12345/community-research-assistant/internal/topic"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeServiceError maps domain errors onto HTTP statuses. Unrecognized
// errors become 500s.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownTopic), errors.Is(err, service.ErrUnknownPhase):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, session.ErrEmptyMessage):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, session.ErrReplyPending):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrVillageNotSet):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, search.ErrNotConfigured), errors.Is(err, search.ErrNoResults):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func pathPhase(r *http.Request) (domain.Phase, bool) {
	p := domain.Phase(r.PathValue("phase"))
	return p, domain.ValidPhases[p]
}

func (s *Server) getVillage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.State.Village())
}

func (s *Server) postVillage(w http.ResponseWriter, r *http.Request) {
	var v domain.VillageInfo
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !v.Complete() {
		http.Error(w, "name and country are required", http.StatusBadRequest)
		return
	}
	s.deps.State.SetVillage(v)
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) getTopics(w http.ResponseWriter, r *http.Request) {
	phase, ok := pathPhase(r)
	if !ok {
		http.Error(w, "unknown phase", http.StatusNotFound)
		return
	}
	topics := topic.ForPhase(phase)
	if topics == nil {
		topics = []domain.Topic{}
	}
	writeJSON(w, http.StatusOK, topics)
}

func (s *Server) getProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.State.CompletionSnapshot())
}

type logResponse struct {
	Topic    string           `json:"topic"`
	Messages []domain.Message `json:"messages"`
}

func (s *Server) selectTopic(w http.ResponseWriter, r *http.Request) {
	phase, ok := pathPhase(r)
	if !ok {
		http.Error(w, "unknown phase", http.StatusNotFound)
		return
	}
	topicID := r.PathValue("topic")
	log, err := s.deps.Interview.SelectTopic(r.Context(), phase, topicID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logResponse{Topic: topicID, Messages: log})
}

func (s *Server) getMessages(w http.ResponseWriter, r *http.Request) {
	phase, ok := pathPhase(r)
	if !ok {
		http.Error(w, "unknown phase", http.StatusNotFound)
		return
	}
	topicID := r.PathValue("topic")
	log := s.deps.Interview.Log(phase, topicID)
	if log == nil {
		log = []domain.Message{}
	}
	writeJSON(w, http.StatusOK, logResponse{Topic: topicID, Messages: log})
}

type messageRequest struct {
	Text string `json:"text"`
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	phase, ok := pathPhase(r)
	if !ok {
		http.Error(w, "unknown phase", http.StatusNotFound)
		return
	}
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	topicID := r.PathValue("topic")
	log, err := s.deps.Interview.Submit(r.Context(), phase, topicID, req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logResponse{Topic: topicID, Messages: log})
}

func (s *Server) postAspirationAnswer(w http.ResponseWriter, r *http.Request) {
	topicID := r.PathValue("topic")
	if _, ok := topic.Find(domain.PhaseAspirations, topicID); !ok {
		writeServiceError(w, fmt.Errorf("%w: %s", service.ErrUnknownTopic, topicID))
		return
	}
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}
	s.deps.State.ApplyAspirationUpdate(domain.DirectAnswerUpdate{TopicID: topicID, Text: req.Text})
	w.WriteHeader(http.StatusNoContent)
}

type researchResponse struct {
	Topic   string              `json:"topic"`
	Report  string              `json:"report"`
	Sources []service.SourceRef `json:"sources"`
}

func (s *Server) conductResearch(w http.ResponseWriter, r *http.Request) {
	topicID := r.PathValue("topic")
	report, err := s.deps.Research.ConductResearch(r.Context(), topicID, nil)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, researchResponse{
		Topic:   topicID,
		Report:  report,
		Sources: s.deps.Research.RecommendedSources(topicID),
	})
}

func (s *Server) getResearch(w http.ResponseWriter, r *http.Request) {
	topicID := r.PathValue("topic")
	report, ok := s.deps.State.Research(topicID)
	if !ok {
		http.Error(w, "no research stored for topic", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, researchResponse{
		Topic:   topicID,
		Report:  report,
		Sources: s.deps.Research.RecommendedSources(topicID),
	})
}

func (s *Server) getSources(w http.ResponseWriter, r *http.Request) {
	topicID := r.PathValue("topic")
	if _, ok := topic.Find(domain.PhaseResearch, topicID); !ok {
		http.Error(w, "unknown topic", http.StatusNotFound)
		return
	}
	sources := s.deps.Research.RecommendedSources(topicID)
	if sources == nil {
		sources = []service.SourceRef{}
	}
	writeJSON(w, http.StatusOK, sources)
}

type analysisResponse struct {
	Analysis string `json:"analysis"`
}

func (s *Server) generateAnalysis(w http.ResponseWriter, r *http.Request) {
	text := s.deps.Research.GenerateComprehensiveAnalysis(r.Context())
	writeJSON(w, http.StatusOK, analysisResponse{Analysis: text})
}

func (s *Server) getAnalysis(w http.ResponseWriter, r *http.Request) {
	text := s.deps.State.Analysis()
	if text == "" {
		http.Error(w, "no analysis available", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, analysisResponse{Analysis: text})
}

type assetsResponse struct {
	Topic  string `json:"topic"`
	Report string `json:"report"`
}

func (s *Server) researchAssets(w http.ResponseWriter, r *http.Request) {
	topicID := r.PathValue("topic")
	report, err := s.deps.Assets.ResearchAssets(r.Context(), topicID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assetsResponse{Topic: topicID, Report: report})
}

func (s *Server) getAssets(w http.ResponseWriter, r *http.Request) {
	topicID := r.PathValue("topic")
	report, ok := s.deps.State.Assets(topicID)
	if !ok {
		http.Error(w, "no assets research stored for topic", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, assetsResponse{Topic: topicID, Report: report})
}

type reportResponse struct {
	Report string `json:"report"`
}

func (s *Server) compileReport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, reportResponse{Report: s.deps.Report.Compile(r.Context())})
}

func (s *Server) exportWord(w http.ResponseWriter, r *http.Request) {
	report := s.deps.Report.Compile(r.Context())
	village := s.deps.State.Village().Name
	if village == "" {
		village = "Village"
	}
	doc := service.ExportWordHTML(village, report)
	w.Header().Set("Content-Type", "application/msword")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", village+"_Final_Report.doc"))
	w.Write(doc)
}

func (s *Server) exportJSON(w http.ResponseWriter, r *http.Request) {
	data, err := service.ExportJSON(s.deps.State.Snapshot())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=\"community_data.json\"")
	w.Write(data)
}

type fetchRequest struct {
	URL string `json:"url"`
}

func (s *Server) fetchContent(w http.ResponseWriter, r *http.Request) {
	var req fetchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.URL == "" {
		http.Error(w, "URL is required", http.StatusBadRequest)
		return
	}
	page, err := s.deps.Fetcher.Fetch(r.Context(), req.URL)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
