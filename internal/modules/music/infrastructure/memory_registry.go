package infrastructure

import (
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"github.com/npcx42/icutils/internal/modules/music/domain"
)

// MemoryRegistry is an in-memory implementation of domain.Registry.
// The RWMutex guards only the map; each PlayerState carries its own lock,
// so operations on different guilds proceed fully in parallel.
type MemoryRegistry struct {
	mu     sync.RWMutex
	states map[snowflake.ID]*domain.PlayerState
}

// NewMemoryRegistry creates a new MemoryRegistry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		states: make(map[snowflake.ID]*domain.PlayerState),
	}
}

// GetOrCreate returns the state for the guild, creating an idle one if absent.
func (r *MemoryRegistry) GetOrCreate(guildID snowflake.ID) *domain.PlayerState {
	r.mu.RLock()
	state, ok := r.states[guildID]
	r.mu.RUnlock()
	if ok {
		return state
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another goroutine may have created it between the locks.
	if state, ok := r.states[guildID]; ok {
		return state
	}
	state = domain.NewPlayerState(guildID)
	r.states[guildID] = state
	return state
}

// Get returns the state for the guild, or nil if absent.
func (r *MemoryRegistry) Get(guildID snowflake.ID) *domain.PlayerState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.states[guildID]
}

// Remove deletes the state for the guild. Idempotent.
func (r *MemoryRegistry) Remove(guildID snowflake.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, guildID)
}

// Count returns the number of tracked guilds (for testing/monitoring).
func (r *MemoryRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.states)
}

// Ensure MemoryRegistry implements domain.Registry.
var _ domain.Registry = (*MemoryRegistry)(nil)
