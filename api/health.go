package api

import (
	"net/http"

	"github.com/agentpay/agentpay/internal/agent"
	"github.com/agentpay/agentpay/internal/log"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	sessions *agent.SessionStore
	agent    *agent.Agent
	logger   log.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(sessions *agent.SessionStore, ag *agent.Agent, logger log.Logger) *HealthHandler {
	return &HealthHandler{sessions: sessions, agent: ag, logger: logger}
}

// RegisterRoutes registers health routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.liveness)
	mux.HandleFunc("GET /ready", h.readiness)
}

// liveness is a liveness probe endpoint.
// Returns 200 OK if the process is alive.
func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// readiness reports whether the agent can take traffic and which
// conversation path it will use. The rule-based path needs nothing
// external, so a wired agent is always ready.
func (h *HealthHandler) readiness(w http.ResponseWriter, _ *http.Request) {
	if h.agent == nil || h.sessions == nil {
		h.logger.Error("readiness check failed: agent not wired")
		http.Error(w, "agent not configured", http.StatusServiceUnavailable)
		return
	}
	mode := "rules"
	if h.agent.AIAvailable() {
		mode = "ai"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
		"mode":   mode,
	})
}
