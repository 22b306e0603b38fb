package assistant

import (
	"sync"

	"github.com/aurybot/aury-backend/internal/llm"
)

// ContextCache keeps a bounded window of recent conversation turns per
// user. When a user's window is full the oldest turn is evicted.
type ContextCache struct {
	mu       sync.Mutex
	turns    map[string][]llm.Message
	maxTurns int
}

// NewContextCache creates a cache holding up to maxTurns turns per user
func NewContextCache(maxTurns int) *ContextCache {
	if maxTurns < 1 {
		maxTurns = 1
	}
	return &ContextCache{
		turns:    make(map[string][]llm.Message),
		maxTurns: maxTurns,
	}
}

// Append records a turn for the user, evicting the oldest if the
// window is full
func (c *ContextCache) Append(userID string, msg llm.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	window := append(c.turns[userID], msg)
	if len(window) > c.maxTurns {
		window = window[len(window)-c.maxTurns:]
	}
	c.turns[userID] = window
}

// History returns a copy of the user's cached turns, oldest first
func (c *ContextCache) History(userID string) []llm.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	window := c.turns[userID]
	out := make([]llm.Message, len(window))
	copy(out, window)
	return out
}

// Len returns how many turns are cached for the user
func (c *ContextCache) Len(userID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.turns[userID])
}

// Clear drops the user's cached turns
func (c *ContextCache) Clear(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.turns, userID)
}
