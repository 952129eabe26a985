package ports

import (
	"github.com/disgoorg/snowflake/v2"
	"github.com/npcx42/icutils/internal/modules/music/domain"
)

// Notifier sends user-facing messages outside the interaction
// request/response cycle.
type Notifier interface {
	// SendTrackToUser DMs the track's details to the given user.
	SendTrackToUser(userID snowflake.ID, entry *domain.QueueEntry) error
}

// VoiceStateProvider defines the interface for reading Discord voice state.
type VoiceStateProvider interface {
	// GetUserVoiceChannel returns the voice channel ID the user is
	// currently in, or 0 if the user is not in a voice channel.
	GetUserVoiceChannel(guildID, userID snowflake.ID) (snowflake.ID, error)
}
