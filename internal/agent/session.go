package agent

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/agentpay/agentpay/internal/store"
)

// Session bundles everything one conversation owns: its cart, order list,
// transcript, model history and the most recent search results. Sessions are
// independent; nothing is shared between them.
type Session struct {
	ID        string
	CreatedAt time.Time

	Catalog  *store.Catalog
	Cart     *store.Cart
	Orders   *store.Orders
	Messages *store.Messages

	// mu serializes turns. Overlapping Process calls on the same session
	// queue up rather than interleave their reads and writes.
	mu         sync.Mutex
	history    []*genai.Content
	lastSearch []store.Product
}

// NewSession creates an empty session backed by the given catalog.
func NewSession(catalog *store.Catalog) *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Catalog:   catalog,
		Cart:      store.NewCart(),
		Orders:    store.NewOrders(),
		Messages:  store.NewMessages(),
	}
}

// setLastSearch replaces the remembered search results. The previous set is
// discarded wholesale; indices from an older search are deliberately
// invalidated.
func (s *Session) setLastSearch(products []store.Product) {
	s.lastSearch = products
}

// LastSearch returns a copy of the most recent search results.
func (s *Session) LastSearch() []store.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]store.Product, len(s.lastSearch))
	copy(out, s.lastSearch)
	return out
}

// SessionStore is a registry of live sessions keyed by ID.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	catalog  *store.Catalog
}

// NewSessionStore creates an empty registry whose sessions share catalog.
func NewSessionStore(catalog *store.Catalog) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		catalog:  catalog,
	}
}

// Create registers and returns a fresh session.
func (r *SessionStore) Create() *Session {
	s := NewSession(r.catalog)
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// Get looks up a session by ID.
func (r *SessionStore) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// List returns all live sessions in unspecified order.
func (r *SessionStore) List() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out
}

// Len reports the number of live sessions.
func (r *SessionStore) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
