package usecases

import (
	"github.com/disgoorg/snowflake/v2"
	"github.com/npcx42/icutils/internal/modules/music/domain"
)

// DefaultPageSize is the number of queued tracks shown per page.
const DefaultPageSize = 10

// QueueListOutput contains the result of listing the queue.
type QueueListOutput struct {
	Current   *domain.QueueEntry
	Entries   []*domain.QueueEntry // first page, at most DefaultPageSize
	Remaining int                  // entries beyond the first page
	Total     int
}

// QueueService handles queue inspection and manipulation. Every operation
// requires a non-empty queue; positions are 1-based at this boundary.
type QueueService struct {
	registry domain.Registry
}

// NewQueueService creates a new QueueService.
func NewQueueService(registry domain.Registry) *QueueService {
	return &QueueService{registry: registry}
}

// List returns the current track plus the first page of queued entries and
// the count of what remains.
func (q *QueueService) List(guildID snowflake.ID) (*QueueListOutput, error) {
	state := q.registry.Get(guildID)
	if state == nil {
		return nil, ErrNotConnected
	}

	entries := state.QueueSnapshot()
	total := len(entries)
	page := entries
	if len(page) > DefaultPageSize {
		page = page[:DefaultPageSize]
	}

	return &QueueListOutput{
		Current:   state.Current(),
		Entries:   page,
		Remaining: total - len(page),
		Total:     total,
	}, nil
}

// Shuffle applies a uniform random permutation to the queue. The current
// track is untouched.
func (q *QueueService) Shuffle(guildID snowflake.ID) error {
	state := q.registry.Get(guildID)
	if state == nil {
		return ErrNotConnected
	}
	if state.ShuffleQueue() == 0 {
		return ErrQueueEmpty
	}
	return nil
}

// Remove removes the entry at the given 1-based position.
func (q *QueueService) Remove(guildID snowflake.ID, position int) (*domain.QueueEntry, error) {
	state := q.registry.Get(guildID)
	if state == nil {
		return nil, ErrNotConnected
	}

	removed, length := state.RemoveQueued(position - 1)
	if length == 0 {
		return nil, ErrQueueEmpty
	}
	if removed == nil {
		return nil, ErrInvalidPosition
	}
	return removed, nil
}

// Move pops the entry at from and reinserts it at to (1-based). A
// destination beyond the queue clamps to the tail.
func (q *QueueService) Move(guildID snowflake.ID, from, to int) (*domain.QueueEntry, error) {
	state := q.registry.Get(guildID)
	if state == nil {
		return nil, ErrNotConnected
	}

	moved, length := state.MoveQueued(from-1, to-1)
	if length == 0 {
		return nil, ErrQueueEmpty
	}
	if moved == nil {
		return nil, ErrInvalidPosition
	}
	return moved, nil
}

// Clear empties the waiting list. The current track and backend playback
// are untouched.
func (q *QueueService) Clear(guildID snowflake.ID) (int, error) {
	state := q.registry.Get(guildID)
	if state == nil {
		return 0, ErrNotConnected
	}

	count := state.ClearQueue()
	if count == 0 {
		return 0, ErrQueueEmpty
	}
	return count, nil
}
