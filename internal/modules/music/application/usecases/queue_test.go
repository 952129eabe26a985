package usecases

import (
	"errors"
	"fmt"
	"testing"

	"github.com/npcx42/icutils/internal/modules/music/domain"
)

func seedQueue(env *testEnv, count int) *domain.PlayerState {
	state := env.registry.createConnectedState(testGuildID)
	state.EnqueueOrStart(&domain.QueueEntry{Track: mockTrack("current")})
	for i := 1; i <= count; i++ {
		state.EnqueueOrStart(&domain.QueueEntry{Track: mockTrack(fmt.Sprintf("t%d", i))})
	}
	return state
}

func TestQueueList(t *testing.T) {
	env := newTestEnv()
	seedQueue(env, 3)

	output, err := env.queue.List(testGuildID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.Current == nil || output.Current.Track.Title != "current" {
		t.Errorf("expected current track, got %v", output.Current)
	}
	if len(output.Entries) != 3 {
		t.Errorf("expected 3 entries, got %d", len(output.Entries))
	}
	if output.Remaining != 0 {
		t.Errorf("expected 0 remaining, got %d", output.Remaining)
	}
	if output.Total != 3 {
		t.Errorf("expected total 3, got %d", output.Total)
	}
}

func TestQueueList_Paginates(t *testing.T) {
	env := newTestEnv()
	seedQueue(env, DefaultPageSize+7)

	output, err := env.queue.List(testGuildID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(output.Entries) != DefaultPageSize {
		t.Errorf("expected %d entries on the first page, got %d", DefaultPageSize, len(output.Entries))
	}
	if output.Remaining != 7 {
		t.Errorf("expected 7 remaining, got %d", output.Remaining)
	}
}

func TestQueueList_NotConnected(t *testing.T) {
	env := newTestEnv()

	if _, err := env.queue.List(testGuildID); !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
}

func TestQueueShuffle_EmptyQueue(t *testing.T) {
	env := newTestEnv()
	env.registry.createConnectedState(testGuildID)

	if err := env.queue.Shuffle(testGuildID); !errors.Is(err, ErrQueueEmpty) {
		t.Errorf("expected ErrQueueEmpty, got %v", err)
	}
}

func TestQueueShuffle(t *testing.T) {
	env := newTestEnv()
	state := seedQueue(env, 5)

	if err := env.queue.Shuffle(testGuildID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.QueueLen() != 5 {
		t.Errorf("expected queue length unchanged at 5, got %d", state.QueueLen())
	}
	if state.Current().Track.Title != "current" {
		t.Error("expected current track untouched by shuffle")
	}
}

func TestQueueRemove(t *testing.T) {
	env := newTestEnv()
	state := seedQueue(env, 3)

	removed, err := env.queue.Remove(testGuildID, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed.Track.Title != "t2" {
		t.Errorf("expected t2 removed, got %q", removed.Track.Title)
	}
	if state.QueueLen() != 2 {
		t.Errorf("expected queue length 2, got %d", state.QueueLen())
	}
}

func TestQueueRemove_Errors(t *testing.T) {
	env := newTestEnv()
	env.registry.createConnectedState(testGuildID)

	if _, err := env.queue.Remove(testGuildID, 1); !errors.Is(err, ErrQueueEmpty) {
		t.Errorf("expected ErrQueueEmpty, got %v", err)
	}

	seedQueue(env, 2)
	if _, err := env.queue.Remove(testGuildID, 5); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("expected ErrInvalidPosition, got %v", err)
	}
	if _, err := env.queue.Remove(testGuildID, 0); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("expected ErrInvalidPosition for position 0, got %v", err)
	}
}

func TestQueueMove(t *testing.T) {
	env := newTestEnv()
	state := seedQueue(env, 3)

	moved, err := env.queue.Move(testGuildID, 3, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if moved.Track.Title != "t3" {
		t.Errorf("expected t3 moved, got %q", moved.Track.Title)
	}

	snapshot := state.QueueSnapshot()
	want := []string{"t3", "t1", "t2"}
	for i := range want {
		if snapshot[i].Track.Title != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], snapshot[i].Track.Title)
		}
	}
}

func TestQueueMove_Errors(t *testing.T) {
	env := newTestEnv()
	env.registry.createConnectedState(testGuildID)

	if _, err := env.queue.Move(testGuildID, 1, 2); !errors.Is(err, ErrQueueEmpty) {
		t.Errorf("expected ErrQueueEmpty, got %v", err)
	}

	seedQueue(env, 2)
	if _, err := env.queue.Move(testGuildID, 9, 1); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("expected ErrInvalidPosition, got %v", err)
	}
}

func TestQueueClear(t *testing.T) {
	env := newTestEnv()
	state := seedQueue(env, 4)

	count, err := env.queue.Clear(testGuildID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 4 {
		t.Errorf("expected 4 cleared, got %d", count)
	}
	if state.Current() == nil {
		t.Error("expected current track to survive the clear")
	}

	if _, err := env.queue.Clear(testGuildID); !errors.Is(err, ErrQueueEmpty) {
		t.Errorf("expected ErrQueueEmpty on second clear, got %v", err)
	}
}
