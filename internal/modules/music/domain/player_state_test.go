package domain

import (
	"testing"

	"github.com/disgoorg/snowflake/v2"
)

const testGuildID = snowflake.ID(1)

func newTestPlayerState() *PlayerState {
	return NewPlayerState(testGuildID)
}

func TestNewPlayerState(t *testing.T) {
	state := NewPlayerState(snowflake.ID(123456789))

	if state.GuildID() != snowflake.ID(123456789) {
		t.Errorf("expected GuildID 123456789, got %d", state.GuildID())
	}
	if !state.IsIdle() {
		t.Error("expected new state to be idle")
	}
	if state.IsPaused() {
		t.Error("expected not to be paused")
	}
	if state.LoopMode() != LoopModeNone {
		t.Errorf("expected LoopModeNone, got %v", state.LoopMode())
	}
	if state.Volume() != 100 {
		t.Errorf("expected default volume 100, got %d", state.Volume())
	}
	if state.QueueLen() != 0 {
		t.Error("expected queue to be empty")
	}
}

func TestPlayerState_EnqueueOrStart(t *testing.T) {
	state := newTestPlayerState()
	first := entryWithTitle("first")
	second := entryWithTitle("second")

	if started := state.EnqueueOrStart(first); !started {
		t.Error("expected first entry to start playback")
	}
	if state.Current() != first {
		t.Errorf("expected current to be first, got %v", state.Current())
	}

	if started := state.EnqueueOrStart(second); started {
		t.Error("expected second entry to be queued, not started")
	}
	if state.Current() != first {
		t.Error("expected current to be unchanged")
	}
	if state.QueueLen() != 1 {
		t.Errorf("expected queue length 1, got %d", state.QueueLen())
	}
}

func TestPlayerState_AdvanceOnTrackEnd_NoLoop(t *testing.T) {
	state := newTestPlayerState()
	a := entryWithTitle("a")
	b := entryWithTitle("b")
	state.EnqueueOrStart(a)
	state.EnqueueOrStart(b)

	if got := state.AdvanceOnTrackEnd(); got != b {
		t.Errorf("expected b to become current, got %v", got)
	}
	if got := state.AdvanceOnTrackEnd(); got != nil {
		t.Errorf("expected idle after queue drained, got %v", got)
	}
	if !state.IsIdle() {
		t.Error("expected state to be idle")
	}
}

func TestPlayerState_AdvanceOnTrackEnd_TrackLoop(t *testing.T) {
	state := newTestPlayerState()
	a := entryWithTitle("a")
	state.EnqueueOrStart(a)
	state.EnqueueOrStart(entryWithTitle("b"))
	state.SetLoopMode(LoopModeTrack)

	// The same entry replays indefinitely; the queue is untouched.
	for i := 0; i < 3; i++ {
		if got := state.AdvanceOnTrackEnd(); got != a {
			t.Fatalf("iteration %d: expected a to replay, got %v", i, got)
		}
	}
	if state.QueueLen() != 1 {
		t.Errorf("expected queue untouched with length 1, got %d", state.QueueLen())
	}
}

func TestPlayerState_AdvanceOnTrackEnd_QueueLoop(t *testing.T) {
	state := newTestPlayerState()
	a := entryWithTitle("a")
	b := entryWithTitle("b")
	c := entryWithTitle("c")
	state.EnqueueOrStart(a)
	state.EnqueueOrStart(b)
	state.EnqueueOrStart(c)
	state.SetLoopMode(LoopModeQueue)

	// With 3 entries the rotation has period 3: a b c a b c ...
	want := []*QueueEntry{b, c, a, b, c, a}
	for i, expected := range want {
		if got := state.AdvanceOnTrackEnd(); got != expected {
			t.Fatalf("step %d: expected %q, got %v", i, expected.Track.Title, got)
		}
		if state.QueueLen() != 2 {
			t.Fatalf("step %d: expected queue length 2, got %d", i, state.QueueLen())
		}
	}
}

func TestPlayerState_AdvanceOnTrackEnd_QueueLoopEmptyQueue(t *testing.T) {
	state := newTestPlayerState()
	a := entryWithTitle("a")
	state.EnqueueOrStart(a)
	state.SetLoopMode(LoopModeQueue)

	// Nothing to rotate against: the transition is a no-op and the
	// current entry stays in place.
	if got := state.AdvanceOnTrackEnd(); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
	if state.Current() != a {
		t.Errorf("expected current to remain a, got %v", state.Current())
	}
}

func TestPlayerState_AdvanceOnTrackEnd_Idle(t *testing.T) {
	state := newTestPlayerState()

	if got := state.AdvanceOnTrackEnd(); got != nil {
		t.Errorf("expected nil for idle player, got %v", got)
	}
}

func TestPlayerState_SkipToNext(t *testing.T) {
	state := newTestPlayerState()
	a := entryWithTitle("a")
	b := entryWithTitle("b")
	state.EnqueueOrStart(a)
	state.EnqueueOrStart(b)

	skipped, next := state.SkipToNext()
	if skipped != a {
		t.Errorf("expected skipped a, got %v", skipped)
	}
	if next != b {
		t.Errorf("expected next b, got %v", next)
	}
}

func TestPlayerState_SkipToNext_IgnoresTrackLoop(t *testing.T) {
	state := newTestPlayerState()
	a := entryWithTitle("a")
	b := entryWithTitle("b")
	state.EnqueueOrStart(a)
	state.EnqueueOrStart(b)
	state.SetLoopMode(LoopModeTrack)

	// Skip is an explicit user intent and always advances.
	skipped, next := state.SkipToNext()
	if skipped != a || next != b {
		t.Errorf("expected skip to advance past the looped track, got skipped=%v next=%v", skipped, next)
	}
}

func TestPlayerState_SkipToNext_EmptyQueue(t *testing.T) {
	state := newTestPlayerState()
	a := entryWithTitle("a")
	state.EnqueueOrStart(a)

	skipped, next := state.SkipToNext()
	if skipped != a {
		t.Errorf("expected skipped a, got %v", skipped)
	}
	if next != nil {
		t.Errorf("expected nil next, got %v", next)
	}
	if !state.IsIdle() {
		t.Error("expected state to be idle after skipping the last track")
	}
}

func TestPlayerState_SkipToNext_Idle(t *testing.T) {
	state := newTestPlayerState()

	skipped, next := state.SkipToNext()
	if skipped != nil || next != nil {
		t.Errorf("expected nil, nil for idle player, got %v, %v", skipped, next)
	}
}

func TestPlayerState_Back(t *testing.T) {
	state := newTestPlayerState()
	a := entryWithTitle("a")
	b := entryWithTitle("b")
	state.EnqueueOrStart(a)
	state.EnqueueOrStart(b)
	state.AdvanceOnTrackEnd() // a finishes, b becomes current

	prev := state.Back()
	if prev != a {
		t.Errorf("expected a from history, got %v", prev)
	}
	if state.Current() != a {
		t.Errorf("expected current a, got %v", state.Current())
	}
	// b was displaced to the queue head.
	if got := state.QueueSnapshot(); len(got) != 1 || got[0] != b {
		t.Errorf("expected queue [b], got %v", entryTitles(got))
	}
}

func TestPlayerState_Back_EmptyHistory(t *testing.T) {
	state := newTestPlayerState()

	if got := state.Back(); got != nil {
		t.Errorf("expected nil for empty history, got %v", got)
	}
}

func TestPlayerState_Back_HistoryBounded(t *testing.T) {
	state := newTestPlayerState()
	state.EnqueueOrStart(entryWithTitle("seed"))
	for i := 0; i < maxHistory+5; i++ {
		state.EnqueueOrStart(entryWithTitle("t"))
	}
	for i := 0; i < maxHistory+5; i++ {
		state.AdvanceOnTrackEnd()
	}

	count := 0
	for state.Back() != nil {
		count++
	}
	if count != maxHistory {
		t.Errorf("expected exactly %d history entries, got %d", maxHistory, count)
	}
}

func TestPlayerState_ClearCurrent(t *testing.T) {
	state := newTestPlayerState()
	state.EnqueueOrStart(entryWithTitle("a"))
	state.SetPaused(true)

	state.ClearCurrent()

	if !state.IsIdle() {
		t.Error("expected idle after ClearCurrent")
	}
	if state.IsPaused() {
		t.Error("expected paused flag reset")
	}
}

func TestPlayerState_ClearQueue_KeepsCurrent(t *testing.T) {
	state := newTestPlayerState()
	a := entryWithTitle("a")
	state.EnqueueOrStart(a)
	state.EnqueueOrStart(entryWithTitle("b"))
	state.EnqueueOrStart(entryWithTitle("c"))

	if got := state.ClearQueue(); got != 2 {
		t.Errorf("expected 2 cleared, got %d", got)
	}
	if state.Current() != a {
		t.Error("expected current to survive a queue clear")
	}
}

func TestPlayerState_RemoveQueued(t *testing.T) {
	state := newTestPlayerState()
	state.EnqueueOrStart(entryWithTitle("current"))
	b := entryWithTitle("b")
	state.EnqueueOrStart(b)

	entry, length := state.RemoveQueued(0)
	if entry != b {
		t.Errorf("expected removed b, got %v", entry)
	}
	if length != 1 {
		t.Errorf("expected observed length 1, got %d", length)
	}

	entry, length = state.RemoveQueued(0)
	if entry != nil {
		t.Errorf("expected nil for empty queue, got %v", entry)
	}
	if length != 0 {
		t.Errorf("expected observed length 0, got %d", length)
	}
}

func TestPlayerState_BeginPause(t *testing.T) {
	state := NewPlayerState(1)

	if got := state.BeginPause(); got != PauseIdle {
		t.Errorf("expected PauseIdle while idle, got %v", got)
	}

	state.EnqueueOrStart(entryWithTitle("a"))
	if got := state.BeginPause(); got != PauseApplied {
		t.Errorf("expected PauseApplied, got %v", got)
	}
	if !state.IsPaused() {
		t.Error("expected state to be paused")
	}
	if got := state.BeginPause(); got != PauseUnchanged {
		t.Errorf("expected PauseUnchanged when already paused, got %v", got)
	}
}

func TestPlayerState_BeginResume(t *testing.T) {
	state := NewPlayerState(1)

	if got := state.BeginResume(); got != PauseIdle {
		t.Errorf("expected PauseIdle while idle, got %v", got)
	}

	state.EnqueueOrStart(entryWithTitle("a"))
	if got := state.BeginResume(); got != PauseUnchanged {
		t.Errorf("expected PauseUnchanged when not paused, got %v", got)
	}

	state.SetPaused(true)
	if got := state.BeginResume(); got != PauseApplied {
		t.Errorf("expected PauseApplied, got %v", got)
	}
	if state.IsPaused() {
		t.Error("expected state to be unpaused")
	}
}
