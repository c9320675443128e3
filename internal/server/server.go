// Package server exposes the interview phases over an HTTP JSON API so a
// web frontend can drive the same services the terminal client uses.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/khallinan12345/community-research-assistant/internal/config"
	"github.com/khallinan12345/community-research-assistant/internal/fetch"
	"github.com/khallinan12345/community-research-assistant/internal/service"
)

// Deps are the collaborators the server routes requests to.
type Deps struct {
	State     *service.State
	Interview service.InterviewService
	Research  service.ResearchService
	Assets    service.AssetsService
	Report    service.ReportService
	Fetcher   *fetch.Fetcher
	Logger    *slog.Logger
}

// Server is the HTTP adapter over the interview services.
type Server struct {
	cfg  config.Config
	deps Deps
	log  *slog.Logger
}

// New builds a server. A nil Logger disables request logging regardless of
// configuration.
func New(cfg config.Config, deps Deps) *Server {
	return &Server{cfg: cfg, deps: deps, log: deps.Logger}
}

// Handler returns the fully wired HTTP handler: routes, CORS, and the
// request logging middleware when enabled.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /api/village", s.getVillage)
	mux.HandleFunc("POST /api/village", s.postVillage)

	mux.HandleFunc("GET /api/topics/{phase}", s.getTopics)
	mux.HandleFunc("GET /api/progress", s.getProgress)

	mux.HandleFunc("POST /api/phases/{phase}/topics/{topic}/select", s.selectTopic)
	mux.HandleFunc("GET /api/phases/{phase}/topics/{topic}/messages", s.getMessages)
	mux.HandleFunc("POST /api/phases/{phase}/topics/{topic}/messages", s.postMessage)
	mux.HandleFunc("POST /api/aspirations/{topic}/answer", s.postAspirationAnswer)

	mux.HandleFunc("POST /api/research/{topic}", s.conductResearch)
	mux.HandleFunc("GET /api/research/{topic}", s.getResearch)
	mux.HandleFunc("GET /api/research/{topic}/sources", s.getSources)
	mux.HandleFunc("POST /api/analysis", s.generateAnalysis)
	mux.HandleFunc("GET /api/analysis", s.getAnalysis)

	mux.HandleFunc("POST /api/assets/{topic}", s.researchAssets)
	mux.HandleFunc("GET /api/assets/{topic}", s.getAssets)

	mux.HandleFunc("POST /api/report", s.compileReport)
	mux.HandleFunc("GET /api/export/report.doc", s.exportWord)
	mux.HandleFunc("GET /api/export/data.json", s.exportJSON)

	mux.HandleFunc("POST /api/fetch-content", s.fetchContent)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	handler := c.Handler(mux)
	if s.cfg.RequestLogging() && s.log != nil {
		handler = s.logRequests(handler)
	}
	return handler
}

// ListenAndServe blocks serving the API on the configured address.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if s.log != nil {
		s.log.Info("api server listening", "addr", s.cfg.Addr)
	}
	return srv.ListenAndServe()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
