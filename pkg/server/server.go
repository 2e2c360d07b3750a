// Package server exposes the mission runner and council over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sanhedrin-ai/sanhedrin/pkg/agent"
	"github.com/sanhedrin-ai/sanhedrin/pkg/config"
	"github.com/sanhedrin-ai/sanhedrin/pkg/mission"
	"github.com/sanhedrin-ai/sanhedrin/pkg/observability"
	"github.com/sanhedrin-ai/sanhedrin/pkg/pinkas"
)

// Backend bundles the components a request is served against. A config
// reload installs a whole new backend; the registry inside one is never
// mutated.
type Backend struct {
	Runner   *mission.Runner
	Registry *agent.Registry
	Store    pinkas.Store
}

// Server is the HTTP entrypoint. Mission outcomes are always reported as
// envelopes with status 200; non-200 statuses are reserved for requests the
// server could not parse.
type Server struct {
	backend    atomic.Pointer[Backend]
	logger     *slog.Logger
	httpServer *http.Server
}

// New builds a server bound per configuration.
func New(cfg *config.ServerConfig, backend *Backend) *Server {
	s := &Server{
		logger: slog.Default().With("component", "server"),
	}
	s.backend.Store(backend)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// SwapBackend atomically replaces the serving backend and returns the
// previous one so the caller can release its resources. In-flight requests
// finish against the backend they started with.
func (s *Server) SwapBackend(b *Backend) *Backend {
	return s.backend.Swap(b)
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestLogging)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/metrics", observability.Handler().ServeHTTP)

	r.Post("/v1/missions", s.handleRunMission)
	r.Get("/v1/agents", s.handleListAgents)
	r.Get("/v1/agents/{agent}/actions", s.handleListActions)

	return r
}

func (s *Server) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

// missionRequest is the POST /v1/missions body.
type missionRequest struct {
	MissionType string                 `json:"mission_type"`
	UserID      string                 `json:"user_id"`
	Payload     map[string]interface{} `json:"payload"`
}

func (s *Server) handleRunMission(w http.ResponseWriter, r *http.Request) {
	var req missionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.MissionType == "" {
		writeError(w, http.StatusBadRequest, "mission_type is required")
		return
	}

	result := s.backend.Load().Runner.Run(r.Context(), req.MissionType, req.UserID, req.Payload)
	writeJSON(w, http.StatusOK, result)
}

// agentSummary is one row of GET /v1/agents.
type agentSummary struct {
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Capabilities []string `json:"capabilities,omitempty"`
}

func (s *Server) handleListAgents(w http.ResponseWriter, r *http.Request) {
	members := s.backend.Load().Registry.List()

	agents := make([]agentSummary, 0, len(members))
	for _, d := range members {
		agents = append(agents, agentSummary{
			Name:         d.Name,
			Role:         d.Role,
			Capabilities: d.Capabilities,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(agents),
		"agents": agents,
	})
}

func (s *Server) handleListActions(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "agent")
	b := s.backend.Load()

	if _, err := b.Registry.Lookup(name); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	if b.Store == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"agent": name, "actions": []pinkas.Entry{}})
		return
	}

	actions, err := b.Store.ListActions(r.Context(), name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read action log: %v", err))
		return
	}
	if actions == nil {
		actions = []pinkas.Entry{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"agent":   name,
		"actions": actions,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
