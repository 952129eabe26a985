package infrastructure

import (
	"context"
	"errors"
	"fmt"

	"github.com/npcx42/icutils/internal/modules/music/application/ports"
	"github.com/npcx42/icutils/internal/modules/music/domain"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
)

// SpotifyConfig contains Spotify API credentials.
type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
}

// SpotifyCatalog implements ports.CatalogProvider against the Spotify Web
// API using the client-credentials flow. Token refresh is handled by the
// oauth2 transport.
type SpotifyCatalog struct {
	client *spotify.Client
}

// NewSpotifyCatalog creates a SpotifyCatalog with the given credentials.
func NewSpotifyCatalog(ctx context.Context, config SpotifyConfig) *SpotifyCatalog {
	creds := &clientcredentials.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}

	return &SpotifyCatalog{
		client: spotify.New(creds.Client(ctx)),
	}
}

// SearchTrack returns the best metadata match for a free-text query.
func (s *SpotifyCatalog) SearchTrack(ctx context.Context, query string) (*domain.TrackMetadata, error) {
	results, err := s.client.Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(1))
	if err != nil {
		return nil, fmt.Errorf("spotify search failed: %w", err)
	}
	if results.Tracks == nil || len(results.Tracks.Tracks) == 0 {
		return nil, fmt.Errorf("no spotify match for %q", query)
	}

	track := results.Tracks.Tracks[0]
	metadata := &domain.TrackMetadata{
		Title:      track.Name,
		Album:      track.Album.Name,
		CoverURL:   firstImageURL(track.Album.Images),
		CatalogURL: track.ExternalURLs["spotify"],
	}
	if len(track.Artists) > 0 {
		metadata.Artist = track.Artists[0].Name
	}
	return metadata, nil
}

// PlaylistEntries pages through the playlist until limit entries are
// gathered or the playlist is exhausted.
func (s *SpotifyCatalog) PlaylistEntries(
	ctx context.Context,
	playlistID string,
	limit int,
) ([]domain.CatalogEntry, error) {
	page, err := s.client.GetPlaylistItems(ctx, spotify.ID(playlistID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist %s: %w", playlistID, err)
	}

	var entries []domain.CatalogEntry
	for {
		for _, item := range page.Items {
			// Episodes and removed tracks come back with a nil track.
			track := item.Track.Track
			if track == nil {
				continue
			}
			entries = append(entries, catalogEntryFromTrack(track))
			if len(entries) >= limit {
				return entries, nil
			}
		}

		err = s.client.NextPage(ctx, page)
		if errors.Is(err, spotify.ErrNoMorePages) {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to page playlist %s: %w", playlistID, err)
		}
	}
}

// AlbumEntries pages through the entire album. Album tracks carry no album
// context of their own, so the album's name and artwork are fetched once
// and applied to every entry.
func (s *SpotifyCatalog) AlbumEntries(ctx context.Context, albumID string) ([]domain.CatalogEntry, error) {
	album, err := s.client.GetAlbum(ctx, spotify.ID(albumID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch album %s: %w", albumID, err)
	}

	page, err := s.client.GetAlbumTracks(ctx, spotify.ID(albumID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch album tracks %s: %w", albumID, err)
	}

	var entries []domain.CatalogEntry
	for {
		for _, track := range page.Tracks {
			artist := ""
			if len(track.Artists) > 0 {
				artist = track.Artists[0].Name
			}
			entries = append(entries, domain.CatalogEntry{
				Query: track.Name + " " + artist,
				Metadata: domain.TrackMetadata{
					Title:      track.Name,
					Artist:     artist,
					Album:      album.Name,
					CoverURL:   firstImageURL(album.Images),
					CatalogURL: track.ExternalURLs["spotify"],
				},
			})
		}

		err = s.client.NextPage(ctx, page)
		if errors.Is(err, spotify.ErrNoMorePages) {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to page album %s: %w", albumID, err)
		}
	}
}

func catalogEntryFromTrack(track *spotify.FullTrack) domain.CatalogEntry {
	artist := ""
	if len(track.Artists) > 0 {
		artist = track.Artists[0].Name
	}
	return domain.CatalogEntry{
		Query: track.Name + " " + artist,
		Metadata: domain.TrackMetadata{
			Title:      track.Name,
			Artist:     artist,
			Album:      track.Album.Name,
			CoverURL:   firstImageURL(track.Album.Images),
			CatalogURL: track.ExternalURLs["spotify"],
		},
	}
}

func firstImageURL(images []spotify.Image) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}

// Ensure SpotifyCatalog implements the port interface.
var _ ports.CatalogProvider = (*SpotifyCatalog)(nil)
