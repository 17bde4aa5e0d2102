package api

import (
	"net/http"

	"github.com/agentpay/agentpay/internal/agent"
	"github.com/agentpay/agentpay/internal/log"
)

// StateHandler exposes read-only views of a session's cart and orders.
type StateHandler struct {
	sessions *agent.SessionStore
	logger   log.Logger
}

// NewStateHandler creates a new state handler.
func NewStateHandler(sessions *agent.SessionStore, logger log.Logger) *StateHandler {
	return &StateHandler{sessions: sessions, logger: logger}
}

// RegisterRoutes registers cart and order routes on the given mux.
func (h *StateHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/cart", h.cart)
	mux.HandleFunc("GET /api/orders", h.orders)
}

func (h *StateHandler) cart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": s.ID,
		"items":      s.Cart.Items(),
		"total":      s.Cart.Total(),
		"item_count": s.Cart.ItemCount(),
	})
}

func (h *StateHandler) orders(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": s.ID,
		"orders":     s.Orders.All(),
	})
}

func (h *StateHandler) session(w http.ResponseWriter, r *http.Request) (*agent.Session, bool) {
	id := r.URL.Query().Get("session_id")
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
