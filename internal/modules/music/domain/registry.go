package domain

import (
	"github.com/disgoorg/snowflake/v2"
)

// Registry owns the mapping from guild id to PlayerState. States are
// created implicitly on first use and removed only by an explicit
// stop/disconnect; nothing is persisted across restarts.
type Registry interface {
	// GetOrCreate returns the state for the guild, creating an idle one if
	// absent. Creation is atomic; callers never observe a half-initialized
	// state.
	GetOrCreate(guildID snowflake.ID) *PlayerState

	// Get returns the state for the guild, or nil if absent.
	Get(guildID snowflake.ID) *PlayerState

	// Remove deletes the state for the guild. Idempotent.
	Remove(guildID snowflake.ID)
}
