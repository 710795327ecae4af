package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// MaxHistory bounds the number of received messages kept in memory.
const MaxHistory = 1000

// Entry is a received message with its sender and arrival time.
type Entry struct {
	Sender   uuid.UUID
	Position byte
	Received time.Time
	Message  Message
}

// History keeps the most recent received messages, oldest first.
type History struct {
	mu      sync.RWMutex
	limit   int
	entries []Entry
}

// NewHistory returns a History holding at most limit entries. A limit <= 0
// means MaxHistory.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = MaxHistory
	}
	return &History{limit: limit, entries: make([]Entry, 0, min(limit, 64))}
}

// Add records e, evicting the oldest entry when full.
func (h *History) Add(e Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) >= h.limit {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, e)
}

// Recent returns up to n of the newest entries, oldest first.
func (h *History) Recent(n int) []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if n <= 0 || n > len(h.entries) {
		n = len(h.entries)
	}
	out := make([]Entry, n)
	copy(out, h.entries[len(h.entries)-n:])
	return out
}

// Len returns the number of recorded entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}
