package ports

import (
	"context"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/npcx42/icutils/internal/modules/music/domain"
)

// AudioPlayer defines the playback backend command surface.
type AudioPlayer interface {
	// Play starts playback of the given track.
	Play(ctx context.Context, guildID snowflake.ID, track *domain.Track) error

	// Stop stops the current playback.
	Stop(ctx context.Context, guildID snowflake.ID) error

	// Pause pauses the current playback.
	Pause(ctx context.Context, guildID snowflake.ID) error

	// Resume resumes the paused playback.
	Resume(ctx context.Context, guildID snowflake.ID) error

	// Seek moves the playback position of the current track.
	Seek(ctx context.Context, guildID snowflake.ID, position time.Duration) error

	// SetVolume sets the playback volume (0-200, 100 is unity).
	SetVolume(ctx context.Context, guildID snowflake.ID, volume int) error

	// Position returns the playback position of the current track.
	Position(guildID snowflake.ID) time.Duration
}
