package domain

import (
	"sync"

	"github.com/disgoorg/snowflake/v2"
)

// maxHistory bounds the previous-track history kept for the back command.
const maxHistory = 10

// PlayerState holds the playback state for a single guild.
//
// Every mutation of current, queue, loop mode, or volume happens inside a
// method that holds the state's own lock for the full read-decide-write
// sequence. Callers issue backend commands before or after these methods,
// never while a method holds the lock.
type PlayerState struct {
	mu sync.Mutex

	guildID        snowflake.ID
	voiceChannelID snowflake.ID // voice channel the bot is connected to, 0 if none

	current  *QueueEntry
	queue    Queue
	previous []*QueueEntry // finished tracks, newest first, bounded
	loopMode LoopMode
	volume   int
	paused   bool
}

// NewPlayerState creates an idle PlayerState for the given guild.
func NewPlayerState(guildID snowflake.ID) *PlayerState {
	return &PlayerState{
		guildID:  guildID,
		loopMode: LoopModeNone,
		volume:   100,
	}
}

// GuildID returns the guild this state belongs to.
func (p *PlayerState) GuildID() snowflake.ID {
	// No lock: guildID is immutable after construction
	return p.guildID
}

// VoiceChannelID returns the connected voice channel, or 0 if disconnected.
func (p *PlayerState) VoiceChannelID() snowflake.ID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.voiceChannelID
}

// SetVoiceChannelID records the connected voice channel.
func (p *PlayerState) SetVoiceChannelID(channelID snowflake.ID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.voiceChannelID = channelID
}

// Current returns the entry the backend is outputting, or nil if idle.
func (p *PlayerState) Current() *QueueEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// IsIdle returns true if no track is current.
func (p *PlayerState) IsIdle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current == nil
}

// IsPaused returns true if playback is paused.
func (p *PlayerState) IsPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// SetPaused records the paused state.
func (p *PlayerState) SetPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = paused
}

// PauseTransition is the outcome of BeginPause or BeginResume.
type PauseTransition int

const (
	// PauseApplied means the flag was flipped and the caller owns the
	// backend command. A rejected command is rolled back with SetPaused.
	PauseApplied PauseTransition = iota
	// PauseIdle means no track is current.
	PauseIdle
	// PauseUnchanged means the player was already in the requested state.
	PauseUnchanged
)

// BeginPause marks the player paused. The check and the flag flip happen
// under one lock, so of two racing callers exactly one gets PauseApplied.
func (p *PlayerState) BeginPause() PauseTransition {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return PauseIdle
	}
	if p.paused {
		return PauseUnchanged
	}
	p.paused = true
	return PauseApplied
}

// BeginResume clears the paused flag. Counterpart of BeginPause.
func (p *PlayerState) BeginResume() PauseTransition {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return PauseIdle
	}
	if !p.paused {
		return PauseUnchanged
	}
	p.paused = false
	return PauseApplied
}

// LoopMode returns the current loop mode.
func (p *PlayerState) LoopMode() LoopMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loopMode
}

// SetLoopMode sets the loop mode.
func (p *PlayerState) SetLoopMode(mode LoopMode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loopMode = mode
}

// Volume returns the playback volume.
func (p *PlayerState) Volume() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// SetVolume records the playback volume.
func (p *PlayerState) SetVolume(volume int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = volume
}

// EnqueueOrStart makes the entry current if the player is idle, otherwise
// appends it to the queue tail. Returns true if the entry became current
// and the caller should issue a play command.
func (p *PlayerState) EnqueueOrStart(entry *QueueEntry) (started bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		p.current = entry
		p.paused = false
		return true
	}
	p.queue.Append(entry)
	return false
}

// AdvanceOnTrackEnd applies the loop-mode transition for a finished track
// and returns the entry the caller should play next, or nil if nothing
// should be played.
//
//   - track loop: the current entry is returned unchanged for replay.
//   - queue loop, non-empty queue: the head becomes current and the
//     finished entry is appended to the tail, so the cycle repeats.
//   - queue loop, empty queue: no-op; there is nothing to rotate against.
//   - no loop, non-empty queue: the head becomes current.
//   - no loop, empty queue: current is cleared and the player goes idle.
func (p *PlayerState) AdvanceOnTrackEnd() *QueueEntry {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return nil
	}

	switch p.loopMode {
	case LoopModeTrack:
		return p.current

	case LoopModeQueue:
		if p.queue.IsEmpty() {
			return nil
		}
		finished := p.current
		p.current = p.queue.Next()
		p.queue.Append(finished)
		p.rememberLocked(finished)
		return p.current

	default: // LoopModeNone
		finished := p.current
		p.current = p.queue.Next()
		p.rememberLocked(finished)
		return p.current
	}
}

// SkipToNext drops the current entry and promotes the queue head,
// regardless of loop mode. Returns the skipped entry and the new current
// entry (nil if the queue was empty and the player is now idle).
func (p *PlayerState) SkipToNext() (skipped, next *QueueEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return nil, nil
	}
	skipped = p.current
	p.current = p.queue.Next()
	p.rememberLocked(skipped)
	return skipped, p.current
}

// Back pops the most recent entry from the history, pushes the current
// entry (if any) to the queue head, and makes the popped entry current.
// Returns nil if the history is empty.
func (p *PlayerState) Back() *QueueEntry {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.previous) == 0 {
		return nil
	}
	prev := p.previous[0]
	p.previous = p.previous[1:]

	if p.current != nil {
		p.queue.Prepend(p.current)
	}
	p.current = prev
	return prev
}

// ClearCurrent drops the current entry, marking the player idle. Used when
// a play command fails or playback is stopped.
func (p *PlayerState) ClearCurrent() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = nil
	p.paused = false
}

// QueueSnapshot returns a copy of the queued entries in play order.
func (p *PlayerState) QueueSnapshot() []*QueueEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.List()
}

// QueueLen returns the number of queued entries.
func (p *PlayerState) QueueLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Len()
}

// ShuffleQueue permutes the queued entries. Returns the number of entries
// shuffled; 0 means the queue was empty.
func (p *PlayerState) ShuffleQueue() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	count := p.queue.Len()
	p.queue.Shuffle()
	return count
}

// RemoveQueued removes the entry at the given 0-based index. Returns the
// removed entry (nil if out of bounds) and the queue length observed under
// the lock before removal.
func (p *PlayerState) RemoveQueued(index int) (*QueueEntry, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	length := p.queue.Len()
	return p.queue.RemoveAt(index), length
}

// MoveQueued moves the entry at from to to (both 0-based, destination
// clamped to the tail). Returns the moved entry (nil if from is out of
// bounds) and the queue length observed under the lock.
func (p *PlayerState) MoveQueued(from, to int) (*QueueEntry, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	length := p.queue.Len()
	return p.queue.Move(from, to), length
}

// ClearQueue empties the waiting list without touching the current entry.
// Returns the number of entries removed.
func (p *PlayerState) ClearQueue() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Clear()
}

// rememberLocked pushes a finished entry onto the bounded history.
// Caller must hold p.mu.
func (p *PlayerState) rememberLocked(entry *QueueEntry) {
	p.previous = append([]*QueueEntry{entry}, p.previous...)
	if len(p.previous) > maxHistory {
		p.previous = p.previous[:maxHistory]
	}
}
