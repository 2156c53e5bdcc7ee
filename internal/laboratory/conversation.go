package laboratory

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Welcome is the first message of every conversation.
const Welcome = "Welcome to the SpaceCanva Laboratory. I can help you analyze stellar data, exoplanets, and cosmic phenomena. What would you like to explore?"

// Conversation is an ordered, append-only list of messages.
type Conversation struct {
	ID string

	mu       sync.RWMutex
	messages []Message
}

// NewConversation creates a conversation seeded with the welcome message.
func NewConversation(id string, now time.Time) *Conversation {
	return &Conversation{
		ID:       id,
		messages: []Message{textMessage(RoleAssistant, Welcome, now)},
	}
}

// Append adds messages in order.
func (c *Conversation) Append(msgs ...Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msgs...)
}

// Messages returns a copy of the message list.
func (c *Conversation) Messages() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Message(nil), c.messages...)
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// Sessions holds the in-memory conversations keyed by id.
type Sessions struct {
	mu    sync.RWMutex
	convs map[string]*Conversation
	now   func() time.Time
}

// NewSessions creates an empty session store.
func NewSessions() *Sessions {
	return &Sessions{convs: make(map[string]*Conversation), now: time.Now}
}

// Create starts a new conversation with a fresh id.
func (s *Sessions) Create() *Conversation {
	conv := NewConversation(uuid.NewString(), s.now())
	s.mu.Lock()
	s.convs[conv.ID] = conv
	s.mu.Unlock()
	return conv
}

// Get returns the conversation with id.
func (s *Sessions) Get(id string) (*Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.convs[id]
	return conv, ok
}

// GetOrCreate returns the conversation with id, or a new one when id is
// empty or unknown.
func (s *Sessions) GetOrCreate(id string) *Conversation {
	if id != "" {
		if conv, ok := s.Get(id); ok {
			return conv
		}
	}
	return s.Create()
}

// Len returns the number of conversations.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.convs)
}
