package model

import (
	"cmp"
	"slices"
	"sync"
)

// Registry is an in-memory Roster fed by the network layer.
// Thread-safe: writers update positions while the tick loop reads snapshots.
type Registry struct {
	mu      sync.RWMutex
	players map[PlayerID]Player
}

// NewRegistry creates an empty player registry.
func NewRegistry() *Registry {
	return &Registry{players: make(map[PlayerID]Player, 64)}
}

// Upsert adds or replaces the player's snapshot.
func (r *Registry) Upsert(p Player) {
	r.mu.Lock()
	r.players[p.ID] = p
	r.mu.Unlock()
}

// Remove drops a player that went offline. Returns false if unknown.
func (r *Registry) Remove(id PlayerID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[id]; !ok {
		return false
	}
	delete(r.players, id)
	return true
}

// Get returns the player's latest snapshot.
func (r *Registry) Get(id PlayerID) (Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[id]
	return p, ok
}

// Len returns the number of online players.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

// OnlinePlayers returns a copy of all snapshots ordered by ID,
// so iteration order is stable between ticks.
func (r *Registry) OnlinePlayers() []Player {
	r.mu.RLock()
	out := make([]Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b Player) int { return cmp.Compare(a.ID, b.ID) })
	return out
}
