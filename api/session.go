package api

import (
	"net/http"
	"sort"
	"time"

	"github.com/agentpay/agentpay/internal/agent"
	"github.com/agentpay/agentpay/internal/log"
)

// SessionHandler handles session-related HTTP endpoints.
type SessionHandler struct {
	sessions *agent.SessionStore
	logger   log.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessions *agent.SessionStore, logger log.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger}
}

// RegisterRoutes registers session routes on the given mux.
func (h *SessionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/sessions", h.list)
	mux.HandleFunc("GET /api/sessions/{id}", h.get)
	mux.HandleFunc("POST /api/sessions", h.create)
}

// SessionSummary is the wire representation of a session.
type SessionSummary struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Messages  int       `json:"messages"`
	CartItems int       `json:"cart_items"`
	Orders    int       `json:"orders"`
}

func summarize(s *agent.Session) SessionSummary {
	return SessionSummary{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Messages:  s.Messages.Len(),
		CartItems: s.Cart.ItemCount(),
		Orders:    s.Orders.Count(),
	}
}

// list returns all sessions, newest first.
func (h *SessionHandler) list(w http.ResponseWriter, _ *http.Request) {
	if h.sessions == nil {
		h.logger.Error("session store is nil")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	live := h.sessions.List()
	sort.Slice(live, func(i, j int) bool { return live[i].CreatedAt.After(live[j].CreatedAt) })

	summaries := make([]SessionSummary, len(live))
	for i, s := range live {
		summaries[i] = summarize(s)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sessions": summaries,
		"total":    len(summaries),
	})
}

// get returns a single session by ID.
func (h *SessionHandler) get(w http.ResponseWriter, r *http.Request) {
	if h.sessions == nil {
		h.logger.Error("session store is nil")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	s, ok := h.sessions.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "session_not_found", "no such session")
		return
	}
	writeJSON(w, http.StatusOK, summarize(s))
}

// create creates a new session.
func (h *SessionHandler) create(w http.ResponseWriter, _ *http.Request) {
	if h.sessions == nil {
		h.logger.Error("session store is nil")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	s := h.sessions.Create()
	h.logger.Debug("session created", "session", s.ID)
	writeJSON(w, http.StatusCreated, summarize(s))
}
