package ports

import "github.com/npcx42/icutils/internal/modules/music/domain"

// EventPublisher defines the interface for publishing playback events
// asynchronously.
type EventPublisher interface {
	PublishTrackEnded(event domain.TrackEndedEvent)
}
