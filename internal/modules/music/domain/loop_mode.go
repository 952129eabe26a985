package domain

// LoopMode is the per-guild policy applied when a track finishes.
type LoopMode int

const (
	LoopModeNone  LoopMode = iota // Default: play through the queue once
	LoopModeTrack                 // Repeat the current track indefinitely
	LoopModeQueue                 // Rotate finished tracks back to the tail
)

// String returns a human-readable representation of the loop mode.
func (m LoopMode) String() string {
	switch m {
	case LoopModeTrack:
		return "track"
	case LoopModeQueue:
		return "queue"
	default:
		return "none"
	}
}

// ParseLoopMode converts a string to a LoopMode.
func ParseLoopMode(s string) LoopMode {
	switch s {
	case "track":
		return LoopModeTrack
	case "queue":
		return LoopModeQueue
	default:
		return LoopModeNone
	}
}
