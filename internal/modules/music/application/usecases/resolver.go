package usecases

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/npcx42/icutils/internal/modules/music/application/ports"
	"github.com/npcx42/icutils/internal/modules/music/domain"
)

// Timeouts for external provider calls. Provider calls never run while a
// tenant lock is held, so a slow provider cannot stall other commands.
const (
	searchTimeout   = 15 * time.Second
	metadataTimeout = 10 * time.Second
	catalogTimeout  = 30 * time.Second
)

// playlistMaxEntries is the hard ceiling on playlist imports. Playlists
// are unbounded by nature; albums are not and load in full.
const playlistMaxEntries = 30

// searchPrefix is prepended to non-URL queries for the backend's search.
const searchPrefix = "ytsearch:"

// CatalogKind identifies the kind of catalog reference in a URL.
type CatalogKind int

const (
	CatalogNone CatalogKind = iota
	CatalogAlbum
	CatalogPlaylist
)

// ResolverService turns free-text queries and catalog references into
// playable tracks and display metadata.
type ResolverService struct {
	resolver ports.TrackResolver
	catalog  ports.CatalogProvider
}

// NewResolverService creates a new ResolverService.
func NewResolverService(
	resolver ports.TrackResolver,
	catalog ports.CatalogProvider,
) *ResolverService {
	return &ResolverService{
		resolver: resolver,
		catalog:  catalog,
	}
}

// ResolveQuery searches the playback backend and returns the first match.
// Returns ErrNoResults when the search comes back empty.
func (s *ResolverService) ResolveQuery(ctx context.Context, query string) (*domain.Track, error) {
	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	searchQuery := query
	if !strings.HasPrefix(query, "http://") && !strings.HasPrefix(query, "https://") {
		searchQuery = searchPrefix + query
	}

	result, err := s.resolver.LoadTracks(ctx, searchQuery)
	if err != nil {
		return nil, err
	}
	if result.Type == ports.LoadTypeEmpty || result.Type == ports.LoadTypeError ||
		len(result.Tracks) == 0 {
		return nil, ErrNoResults
	}

	info := result.Tracks[0]
	return &domain.Track{
		Encoded:    info.Encoded,
		Title:      info.Title,
		Artist:     info.Artist,
		Duration:   info.Duration,
		URI:        info.URI,
		ArtworkURL: info.ArtworkURL,
		SourceName: info.SourceName,
		IsStream:   info.IsStream,
	}, nil
}

// FetchMetadata looks up display metadata for a track title. Best-effort:
// any provider failure degrades to nil and never aborts the caller.
func (s *ResolverService) FetchMetadata(ctx context.Context, titleHint string) *domain.TrackMetadata {
	if s.catalog == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()

	metadata, err := s.catalog.SearchTrack(ctx, titleHint)
	if err != nil {
		slog.Debug("metadata lookup failed", "title", titleHint, "error", err)
		return nil
	}
	return metadata
}

// ResolveCatalog resolves an album or playlist URL to its ordered entries.
// Playlist imports are clamped to playlistMaxEntries regardless of the
// requested limit; albums load in full.
func (s *ResolverService) ResolveCatalog(
	ctx context.Context,
	catalogURL string,
	limit int,
) ([]domain.CatalogEntry, error) {
	kind, id := ParseCatalogURL(catalogURL)
	if kind == CatalogNone {
		return nil, ErrUnsupportedCatalogURL
	}
	if s.catalog == nil {
		return nil, ErrCatalogUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, catalogTimeout)
	defer cancel()

	switch kind {
	case CatalogAlbum:
		entries, err := s.catalog.AlbumEntries(ctx, id)
		if err != nil {
			slog.Warn("album resolution failed", "album", id, "error", err)
			return nil, ErrCatalogUnavailable
		}
		return entries, nil

	default: // CatalogPlaylist
		if limit <= 0 || limit > playlistMaxEntries {
			limit = playlistMaxEntries
		}
		entries, err := s.catalog.PlaylistEntries(ctx, id, limit)
		if err != nil {
			slog.Warn("playlist resolution failed", "playlist", id, "error", err)
			return nil, ErrCatalogUnavailable
		}
		return entries, nil
	}
}

// ParseCatalogURL extracts the catalog kind and item id from a Spotify
// album or playlist URL. Returns CatalogNone for anything else.
func ParseCatalogURL(raw string) (CatalogKind, string) {
	u, err := url.Parse(raw)
	if err != nil || u.Host != "open.spotify.com" {
		return CatalogNone, ""
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[len(parts)-1] == "" {
		return CatalogNone, ""
	}

	id := parts[len(parts)-1]
	switch parts[len(parts)-2] {
	case "album":
		return CatalogAlbum, id
	case "playlist":
		return CatalogPlaylist, id
	default:
		return CatalogNone, ""
	}
}
