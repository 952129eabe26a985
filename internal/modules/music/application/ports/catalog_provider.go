package ports

import (
	"context"

	"github.com/npcx42/icutils/internal/modules/music/domain"
)

// CatalogProvider exposes the external catalog (album/playlist) service.
// Authentication and rate limiting are the implementation's concern.
type CatalogProvider interface {
	// SearchTrack returns the best metadata match for a free-text query,
	// or an error if the provider fails or nothing matches.
	SearchTrack(ctx context.Context, query string) (*domain.TrackMetadata, error)

	// PlaylistEntries pages through the playlist until limit entries are
	// gathered or the playlist is exhausted, whichever comes first.
	PlaylistEntries(ctx context.Context, playlistID string, limit int) ([]domain.CatalogEntry, error)

	// AlbumEntries pages through the entire album.
	AlbumEntries(ctx context.Context, albumID string) ([]domain.CatalogEntry, error)
}
