package domain

import (
	"strconv"
	"time"
)

// Track is a playable handle returned by the playback backend's search.
// It is immutable once resolved; queues share tracks by pointer.
type Track struct {
	Encoded    string // Lavalink encoded track data
	Title      string
	Artist     string
	Duration   time.Duration
	URI        string
	ArtworkURL string
	SourceName string // e.g., "youtube", "soundcloud"
	IsStream   bool
}

// IsValid returns true if the track has the minimum required fields.
func (t *Track) IsValid() bool {
	return t.Encoded != "" && t.Title != ""
}

// FormattedDuration returns the duration as a human-readable string (mm:ss or hh:mm:ss).
func (t *Track) FormattedDuration() string {
	if t.IsStream {
		return "LIVE"
	}
	return FormatDuration(t.Duration)
}

// FormatDuration renders a duration as mm:ss, or hh:mm:ss for long tracks.
func FormatDuration(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return pad(hours) + ":" + pad(minutes) + ":" + pad(seconds)
	}
	return pad(minutes) + ":" + pad(seconds)
}

func pad(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// TrackMetadata is best-effort display enrichment from the catalog provider.
// Any field may be empty; absence never blocks playback.
type TrackMetadata struct {
	Title      string
	Artist     string
	Album      string
	CoverURL   string
	CatalogURL string // canonical URL on the catalog provider
}

// CatalogEntry describes a single album/playlist item before resolution.
// It exists only during a bulk enqueue; a successful resolution turns it
// into a QueueEntry and a failed one drops it with a logged skip.
type CatalogEntry struct {
	Query    string // free-text search query, usually "title artist"
	Metadata TrackMetadata
}

// QueueEntry pairs a resolved track with its optional catalog metadata.
type QueueEntry struct {
	Track    *Track
	Metadata *TrackMetadata
}

// DisplayTitle returns the best available title for user-facing output.
func (e *QueueEntry) DisplayTitle() string {
	if e.Metadata != nil && e.Metadata.Title != "" {
		return e.Metadata.Title
	}
	return e.Track.Title
}
