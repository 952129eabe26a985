package domain

import "math/rand/v2"

// Queue is the ordered list of entries waiting to play. Index 0 plays next.
// Queue itself is not safe for concurrent use; PlayerState serializes
// access through its lock.
type Queue struct {
	entries []*QueueEntry
}

// Len returns the number of queued entries.
func (q *Queue) Len() int {
	return len(q.entries)
}

// IsEmpty returns true if nothing is waiting to play.
func (q *Queue) IsEmpty() bool {
	return len(q.entries) == 0
}

// Append adds entries to the tail of the queue.
func (q *Queue) Append(entries ...*QueueEntry) {
	q.entries = append(q.entries, entries...)
}

// Next removes and returns the head of the queue, or nil if empty.
func (q *Queue) Next() *QueueEntry {
	if len(q.entries) == 0 {
		return nil
	}
	head := q.entries[0]
	q.entries = q.entries[1:]
	return head
}

// Prepend adds an entry to the front of the queue.
func (q *Queue) Prepend(entry *QueueEntry) {
	q.entries = append([]*QueueEntry{entry}, q.entries...)
}

// List returns a copy of the queued entries in play order.
func (q *Queue) List() []*QueueEntry {
	result := make([]*QueueEntry, len(q.entries))
	copy(result, q.entries)
	return result
}

// RemoveAt removes and returns the entry at the given 0-based index.
// Returns nil if the index is out of bounds; the queue is not modified.
func (q *Queue) RemoveAt(index int) *QueueEntry {
	if index < 0 || index >= len(q.entries) {
		return nil
	}
	entry := q.entries[index]
	q.entries = append(q.entries[:index], q.entries[index+1:]...)
	return entry
}

// Move pops the entry at from and reinserts it at to (both 0-based).
// A destination past the new length clamps to the tail. Returns the moved
// entry, or nil if from is out of bounds.
func (q *Queue) Move(from, to int) *QueueEntry {
	entry := q.RemoveAt(from)
	if entry == nil {
		return nil
	}
	if to < 0 {
		to = 0
	}
	if to > len(q.entries) {
		to = len(q.entries)
	}
	q.entries = append(q.entries[:to], append([]*QueueEntry{entry}, q.entries[to:]...)...)
	return entry
}

// Shuffle applies a uniform random permutation to the queued entries.
func (q *Queue) Shuffle() {
	rand.Shuffle(len(q.entries), func(i, j int) {
		q.entries[i], q.entries[j] = q.entries[j], q.entries[i]
	})
}

// Clear empties the queue.
func (q *Queue) Clear() int {
	count := len(q.entries)
	q.entries = nil
	return count
}
