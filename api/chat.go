package api

import (
	"encoding/json"
	"net/http"

	"github.com/agentpay/agentpay/internal/agent"
	"github.com/agentpay/agentpay/internal/log"
	"github.com/agentpay/agentpay/internal/store"
)

// MaxMessageLength bounds a single chat message body.
const MaxMessageLength = 4000

// ChatHandler handles the chat turn and transcript endpoints.
type ChatHandler struct {
	sessions *agent.SessionStore
	agent    *agent.Agent
	logger   log.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(sessions *agent.SessionStore, ag *agent.Agent, logger log.Logger) *ChatHandler {
	return &ChatHandler{sessions: sessions, agent: ag, logger: logger}
}

// RegisterRoutes registers chat routes on the given mux.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/chat", h.chat)
	mux.HandleFunc("GET /api/messages", h.messages)
}

// ChatRequest is the request body for a chat turn.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ChatResponse carries the agent messages a turn produced.
type ChatResponse struct {
	SessionID string          `json:"session_id"`
	Messages  []store.Message `json:"messages"`
}

// chat runs one conversational turn. Turns on the same session are processed
// one at a time; concurrent requests queue.
func (h *ChatHandler) chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "missing_message", "message is required")
		return
	}
	if len(req.Message) > MaxMessageLength {
		writeError(w, http.StatusBadRequest, "message_too_long", "message exceeds 4000 characters")
		return
	}

	s, ok := h.resolveSession(w, req.SessionID)
	if !ok {
		return
	}

	msgs, err := h.agent.Process(r.Context(), s, req.Message)
	if err != nil {
		h.logger.Error("chat turn failed", "session", s.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "turn_failed", "could not complete the turn")
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{SessionID: s.ID, Messages: msgs})
}

// messages returns the full transcript for a session.
func (h *ChatHandler) messages(w http.ResponseWriter, r *http.Request) {
	s, ok := h.resolveSession(w, r.URL.Query().Get("session_id"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": s.ID,
		"messages":   s.Messages.All(),
		"typing":     s.Messages.Typing(),
	})
}

// resolveSession looks up a session by ID, writing the error response on
// failure.
func (h *ChatHandler) resolveSession(w http.ResponseWriter, id string) (*agent.Session, bool) {
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing_session_id", "session_id is required")
		return nil, false
	}
	s, ok := h.sessions.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session_not_found", "no such session")
		return nil, false
	}
	return s, true
}
