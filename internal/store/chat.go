package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Message roles.
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// Message is one chat transcript entry.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Rich      *Content  `json:"rich,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Messages is the chat transcript plus the typing indicator flag.
//
// Messages is safe for concurrent use by multiple goroutines.
type Messages struct {
	mu       sync.Mutex
	messages []Message
	typing   bool
}

// NewMessages creates an empty transcript.
func NewMessages() *Messages {
	return &Messages{}
}

// AddUserMessage records a user message.
func (m *Messages) AddUserMessage(text string) Message {
	msg := Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Text:      text,
		Timestamp: time.Now(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return msg
}

// AddAgentMessage records an agent reply with optional structured content
// and clears the typing flag.
func (m *Messages) AddAgentMessage(text string, rich *Content) Message {
	msg := Message{
		ID:        uuid.NewString(),
		Role:      RoleAgent,
		Text:      text,
		Rich:      rich,
		Timestamp: time.Now(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	m.typing = false
	return msg
}

// SetTyping sets the typing indicator.
func (m *Messages) SetTyping(typing bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.typing = typing
}

// Typing reports whether the agent is marked as typing.
func (m *Messages) Typing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.typing
}

// All returns a snapshot copy of the transcript in insertion order.
func (m *Messages) All() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// Len returns the number of recorded messages.
func (m *Messages) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}
