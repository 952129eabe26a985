package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/npcx42/icutils/internal/modules/music/application/ports"
	"github.com/npcx42/icutils/internal/modules/music/domain"
)

// PlayInput contains the input for the direct single-track path.
type PlayInput struct {
	GuildID snowflake.ID
	UserID  snowflake.ID
	Query   string
}

// PlayOutput contains the result of the direct single-track path.
type PlayOutput struct {
	Started bool // true if playback started, false if appended to the queue
	Entry   *domain.QueueEntry
}

// NowPlayingOutput describes the current track and its live position.
type NowPlayingOutput struct {
	Entry    *domain.QueueEntry
	Position time.Duration
}

// PlaybackService drives the playback backend for a guild.
type PlaybackService struct {
	registry    domain.Registry
	audioPlayer ports.AudioPlayer
	voiceConn   ports.VoiceConnection
	voiceState  ports.VoiceStateProvider
	resolver    *ResolverService
	notifier    ports.Notifier
}

// NewPlaybackService creates a new PlaybackService.
func NewPlaybackService(
	registry domain.Registry,
	audioPlayer ports.AudioPlayer,
	voiceConn ports.VoiceConnection,
	voiceState ports.VoiceStateProvider,
	resolver *ResolverService,
	notifier ports.Notifier,
) *PlaybackService {
	return &PlaybackService{
		registry:    registry,
		audioPlayer: audioPlayer,
		voiceConn:   voiceConn,
		voiceState:  voiceState,
		resolver:    resolver,
		notifier:    notifier,
	}
}

// PlayOrEnqueue resolves the query and either starts playback (if the
// guild is idle) or appends the track to the queue tail. Search and
// metadata lookups happen before the tenant lock is taken.
func (p *PlaybackService) PlayOrEnqueue(ctx context.Context, input PlayInput) (*PlayOutput, error) {
	state, err := p.EnsureConnected(ctx, input.GuildID, input.UserID)
	if err != nil {
		return nil, err
	}

	track, err := p.resolver.ResolveQuery(ctx, input.Query)
	if err != nil {
		return nil, err
	}

	// Display-only enrichment; absence must not change the enqueue decision.
	metadata := p.resolver.FetchMetadata(ctx, track.Title)

	entry := &domain.QueueEntry{Track: track, Metadata: metadata}
	started := state.EnqueueOrStart(entry)
	if started {
		if err := p.startPlayback(ctx, state, entry); err != nil {
			return nil, err
		}
	}

	return &PlayOutput{Started: started, Entry: entry}, nil
}

// EnsureConnected returns the guild's state, joining the requesting user's
// voice channel first if the bot has no active session there.
func (p *PlaybackService) EnsureConnected(
	ctx context.Context,
	guildID, userID snowflake.ID,
) (*domain.PlayerState, error) {
	state := p.registry.GetOrCreate(guildID)
	if state.VoiceChannelID() != 0 {
		return state, nil
	}

	channelID, err := p.voiceState.GetUserVoiceChannel(guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up voice state: %w", err)
	}
	if channelID == 0 {
		return nil, ErrUserNotInVoice
	}

	if err := p.voiceConn.JoinChannel(ctx, guildID, channelID); err != nil {
		return nil, fmt.Errorf("failed to join voice channel: %w", err)
	}
	state.SetVoiceChannelID(channelID)

	return state, nil
}

// startPlayback issues the play command for an entry that just became
// current. A rejected command puts the guild back to idle.
func (p *PlaybackService) startPlayback(
	ctx context.Context,
	state *domain.PlayerState,
	entry *domain.QueueEntry,
) error {
	if volume := state.Volume(); volume != 100 {
		if err := p.audioPlayer.SetVolume(ctx, state.GuildID(), volume); err != nil {
			slog.Warn("failed to apply volume", "guild", state.GuildID(), "error", err)
		}
	}

	if err := p.audioPlayer.Play(ctx, state.GuildID(), entry.Track); err != nil {
		state.ClearCurrent()
		return fmt.Errorf("failed to start playback: %w", err)
	}
	return nil
}

// Pause pauses the current playback. The paused flag is claimed atomically
// before the backend command, so a concurrent second pause is rejected
// instead of commanding the backend twice.
func (p *PlaybackService) Pause(ctx context.Context, guildID snowflake.ID) error {
	state := p.registry.Get(guildID)
	if state == nil {
		return ErrNotConnected
	}

	switch state.BeginPause() {
	case domain.PauseIdle:
		return ErrNotPlaying
	case domain.PauseUnchanged:
		return ErrAlreadyPaused
	}

	if err := p.audioPlayer.Pause(ctx, guildID); err != nil {
		state.SetPaused(false)
		return err
	}
	return nil
}

// Resume resumes the paused playback. Counterpart of Pause, with the same
// claim-then-command ordering.
func (p *PlaybackService) Resume(ctx context.Context, guildID snowflake.ID) error {
	state := p.registry.Get(guildID)
	if state == nil {
		return ErrNotConnected
	}

	switch state.BeginResume() {
	case domain.PauseIdle:
		return ErrNotPlaying
	case domain.PauseUnchanged:
		return ErrNotPaused
	}

	if err := p.audioPlayer.Resume(ctx, guildID); err != nil {
		state.SetPaused(true)
		return err
	}
	return nil
}

// SkipOutput contains the result of a skip.
type SkipOutput struct {
	Skipped *domain.QueueEntry
	Next    *domain.QueueEntry // nil if the queue was empty and the guild went idle
}

// Skip drops the current track and plays the queue head. Skip always
// advances, regardless of loop mode.
func (p *PlaybackService) Skip(ctx context.Context, guildID snowflake.ID) (*SkipOutput, error) {
	state := p.registry.Get(guildID)
	if state == nil {
		return nil, ErrNotConnected
	}

	skipped, next := state.SkipToNext()
	if skipped == nil {
		return nil, ErrNotPlaying
	}

	if next == nil {
		if err := p.audioPlayer.Stop(ctx, guildID); err != nil {
			return nil, err
		}
		return &SkipOutput{Skipped: skipped}, nil
	}

	if err := p.startPlayback(ctx, state, next); err != nil {
		return nil, err
	}
	return &SkipOutput{Skipped: skipped, Next: next}, nil
}

// Back replays the most recently finished track. The interrupted current
// track returns to the queue head.
func (p *PlaybackService) Back(ctx context.Context, guildID snowflake.ID) (*domain.QueueEntry, error) {
	state := p.registry.Get(guildID)
	if state == nil {
		return nil, ErrNotConnected
	}

	prev := state.Back()
	if prev == nil {
		return nil, ErrNoHistory
	}

	if err := p.startPlayback(ctx, state, prev); err != nil {
		return nil, err
	}
	return prev, nil
}

// Stop tears the guild down: stops the backend, leaves the voice channel,
// and removes the state from the registry.
func (p *PlaybackService) Stop(ctx context.Context, guildID snowflake.ID) error {
	state := p.registry.Get(guildID)
	if state == nil {
		return ErrNotConnected
	}

	state.ClearQueue()
	state.ClearCurrent()

	if err := p.audioPlayer.Stop(ctx, guildID); err != nil {
		slog.Warn("failed to stop playback", "guild", guildID, "error", err)
	}
	if err := p.voiceConn.LeaveChannel(ctx, guildID); err != nil {
		slog.Warn("failed to leave voice channel", "guild", guildID, "error", err)
	}

	p.registry.Remove(guildID)
	return nil
}

// Seek moves the playback position. The position string is validated
// before any backend command is issued.
func (p *PlaybackService) Seek(ctx context.Context, guildID snowflake.ID, position string) (time.Duration, error) {
	target, err := ParseSeekPosition(position)
	if err != nil {
		return 0, err
	}

	state := p.registry.Get(guildID)
	if state == nil {
		return 0, ErrNotConnected
	}
	if state.IsIdle() {
		return 0, ErrNotPlaying
	}

	if err := p.audioPlayer.Seek(ctx, guildID, target); err != nil {
		return 0, err
	}
	return target, nil
}

// SetLoopMode sets the guild's loop mode.
func (p *PlaybackService) SetLoopMode(guildID snowflake.ID, mode string) (domain.LoopMode, error) {
	state := p.registry.Get(guildID)
	if state == nil {
		return domain.LoopModeNone, ErrNotConnected
	}

	parsed := domain.ParseLoopMode(mode)
	state.SetLoopMode(parsed)
	return parsed, nil
}

// SetVolume sets the guild's playback volume.
func (p *PlaybackService) SetVolume(ctx context.Context, guildID snowflake.ID, volume int) error {
	if volume < 0 || volume > 200 {
		return ErrInvalidVolume
	}

	state := p.registry.Get(guildID)
	if state == nil {
		return ErrNotConnected
	}

	if err := p.audioPlayer.SetVolume(ctx, guildID, volume); err != nil {
		return err
	}
	state.SetVolume(volume)
	return nil
}

// NowPlaying returns the current entry and its live playback position.
func (p *PlaybackService) NowPlaying(guildID snowflake.ID) (*NowPlayingOutput, error) {
	state := p.registry.Get(guildID)
	if state == nil {
		return nil, ErrNotConnected
	}

	entry := state.Current()
	if entry == nil {
		return nil, ErrNotPlaying
	}

	return &NowPlayingOutput{
		Entry:    entry,
		Position: p.audioPlayer.Position(guildID),
	}, nil
}

// SaveTrack DMs the current track's details to the requesting user.
func (p *PlaybackService) SaveTrack(guildID, userID snowflake.ID) error {
	state := p.registry.Get(guildID)
	if state == nil {
		return ErrNotConnected
	}

	entry := state.Current()
	if entry == nil {
		return ErrNotPlaying
	}

	return p.notifier.SendTrackToUser(userID, entry)
}

// ParseSeekPosition parses "mm:ss" or a raw number of seconds into a
// duration. Negative or non-numeric input is rejected, never clamped.
func ParseSeekPosition(position string) (time.Duration, error) {
	if minutePart, secondPart, ok := strings.Cut(position, ":"); ok {
		minutes, err := strconv.Atoi(minutePart)
		if err != nil || minutes < 0 {
			return 0, ErrInvalidSeekFormat
		}
		seconds, err := strconv.Atoi(secondPart)
		if err != nil || seconds < 0 || seconds > 59 {
			return 0, ErrInvalidSeekFormat
		}
		return time.Duration(minutes*60+seconds) * time.Second, nil
	}

	seconds, err := strconv.Atoi(position)
	if err != nil || seconds < 0 {
		return 0, ErrInvalidSeekFormat
	}
	return time.Duration(seconds) * time.Second, nil
}
