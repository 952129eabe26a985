package usecases

import "errors"

// Domain errors for the music module.
var (
	// ErrNoResults is returned when a search yields nothing. This is an
	// expected outcome, not a fault; no state is mutated.
	ErrNoResults = errors.New("no results found")

	// ErrNotConnected is returned when an operation requires the bot to be
	// in a voice channel.
	ErrNotConnected = errors.New("not connected to a voice channel")

	// ErrUserNotInVoice is returned when the user is not in a voice channel.
	ErrUserNotInVoice = errors.New("you must be in a voice channel")

	// ErrNotPlaying is returned when no track is currently playing.
	ErrNotPlaying = errors.New("nothing is currently playing")

	// ErrAlreadyPaused is returned when trying to pause while already paused.
	ErrAlreadyPaused = errors.New("playback is already paused")

	// ErrNotPaused is returned when trying to resume while not paused.
	ErrNotPaused = errors.New("playback is not paused")

	// ErrQueueEmpty is returned when an operation requires a non-empty queue.
	ErrQueueEmpty = errors.New("the queue is empty")

	// ErrInvalidPosition is returned when a queue position is out of range.
	ErrInvalidPosition = errors.New("invalid queue position")

	// ErrInvalidSeekFormat is returned for a malformed or negative seek
	// position. Rejected before any state mutation.
	ErrInvalidSeekFormat = errors.New("invalid position format, use mm:ss or seconds")

	// ErrInvalidVolume is returned for a volume outside 0-200.
	ErrInvalidVolume = errors.New("volume must be between 0 and 200")

	// ErrNoHistory is returned when there is no previous track to go back to.
	ErrNoHistory = errors.New("no previous track")

	// ErrUnsupportedCatalogURL is returned when a catalog reference is not
	// a recognized album or playlist URL.
	ErrUnsupportedCatalogURL = errors.New("unsupported catalog URL")

	// ErrCatalogUnavailable is returned when the catalog provider cannot
	// deliver the referenced album or playlist.
	ErrCatalogUnavailable = errors.New("could not load catalog")

	// ErrNoTracksAdded is returned when every entry of a catalog failed to
	// resolve; a fully-failed batch is a terminal failure, not a silent
	// success.
	ErrNoTracksAdded = errors.New("could not add any tracks from the catalog")
)
