package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/npcx42/icutils/internal/modules/music/application/ports"
	"github.com/npcx42/icutils/internal/modules/music/domain"
)

// ContinuationEngine reacts to track-ended events and decides what the
// guild plays next according to its loop mode. Each event is an ordinary
// serialized operation against the guild's state lock; a user command and
// a backend event for the same guild cannot interleave their mutations.
type ContinuationEngine struct {
	registry    domain.Registry
	audioPlayer ports.AudioPlayer
	bus         *Bus

	wg   sync.WaitGroup
	done chan struct{}
}

// NewContinuationEngine creates a new ContinuationEngine.
func NewContinuationEngine(
	registry domain.Registry,
	audioPlayer ports.AudioPlayer,
	bus *Bus,
) *ContinuationEngine {
	return &ContinuationEngine{
		registry:    registry,
		audioPlayer: audioPlayer,
		bus:         bus,
		done:        make(chan struct{}),
	}
}

// Start begins consuming events in a background goroutine.
func (e *ContinuationEngine) Start(ctx context.Context) {
	e.wg.Add(1)

	go func() {
		defer e.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-e.done:
				return
			case event, ok := <-e.bus.TrackEnded():
				if !ok {
					return
				}
				e.handleTrackEnded(ctx, event)
			}
		}
	}()

	slog.Debug("continuation engine started")
}

// Stop stops the engine and waits for its goroutine to finish.
func (e *ContinuationEngine) Stop() {
	close(e.done)
	e.wg.Wait()
	slog.Debug("continuation engine stopped")
}

func (e *ContinuationEngine) handleTrackEnded(ctx context.Context, event domain.TrackEndedEvent) {
	if !event.Reason.ShouldAdvanceQueue() {
		slog.Debug("track ended but should not advance queue",
			"guild", event.GuildID,
			"reason", event.Reason,
		)
		return
	}

	// The guild may have been torn down between the backend firing the
	// event and us processing it; a stale notification is a no-op.
	state := e.registry.Get(event.GuildID)
	if state == nil {
		slog.Debug("track ended for unknown guild", "guild", event.GuildID)
		return
	}

	next := state.AdvanceOnTrackEnd()
	if next == nil {
		slog.Debug("queue exhausted, guild idle",
			"guild", event.GuildID,
			"loop_mode", state.LoopMode().String(),
		)
		return
	}

	slog.Debug("advancing playback",
		"guild", event.GuildID,
		"reason", event.Reason,
		"loop_mode", state.LoopMode().String(),
		"track", next.Track.Title,
	)

	// A rejected play command leaves the guild idle; no automatic retry.
	if err := e.audioPlayer.Play(ctx, event.GuildID, next.Track); err != nil {
		slog.Error("failed to play next track",
			"guild", event.GuildID,
			"track", next.Track.Title,
			"error", err,
		)
		state.ClearCurrent()
	}
}
