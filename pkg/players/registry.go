// Package players tracks the server's online player roster as seen by the client.
package players

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Player is one roster entry.
type Player struct {
	UUID uuid.UUID
	Name string
}

// Registry maps player identity to display name. Entries are added by roster
// "add" actions, first seen wins, and removed by "remove" actions.
type Registry struct {
	mu      sync.RWMutex
	players map[uuid.UUID]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{players: make(map[uuid.UUID]string)}
}

// Add inserts id with name unless id is already present. It reports whether
// the entry was inserted.
func (r *Registry) Add(id uuid.UUID, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.players[id]; exists {
		return false
	}
	r.players[id] = name
	return true
}

// Remove deletes id. Removing an absent id is a no-op that returns false.
func (r *Registry) Remove(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.players[id]; !exists {
		return false
	}
	delete(r.players, id)
	return true
}

// Name returns the name recorded for id.
func (r *Registry) Name(id uuid.UUID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.players[id]
	return name, ok
}

// Len returns the number of online players.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

// Snapshot returns a copy of the roster.
func (r *Registry) Snapshot() map[uuid.UUID]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[uuid.UUID]string, len(r.players))
	for id, name := range r.players {
		out[id] = name
	}
	return out
}

// Sorted returns the roster ordered by name, case-insensitively.
func (r *Registry) Sorted() []Player {
	snap := r.Snapshot()
	out := make([]Player, 0, len(snap))
	for id, name := range snap {
		out = append(out, Player{UUID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].UUID.String() < out[j].UUID.String()
	})
	return out
}

// Reset clears the roster, e.g. before a new session.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players = make(map[uuid.UUID]string)
}
