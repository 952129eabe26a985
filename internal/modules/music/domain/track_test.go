package domain

import (
	"testing"
	"time"
)

func TestTrack_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		track Track
		want  bool
	}{
		{name: "valid", track: Track{Encoded: "abc", Title: "Song"}, want: true},
		{name: "missing encoded", track: Track{Title: "Song"}, want: false},
		{name: "missing title", track: Track{Encoded: "abc"}, want: false},
		{name: "empty", track: Track{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.track.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{5 * time.Second, "00:05"},
		{90 * time.Second, "01:30"},
		{59*time.Minute + 59*time.Second, "59:59"},
		{time.Hour, "01:00:00"},
		{2*time.Hour + 3*time.Minute + 4*time.Second, "02:03:04"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestTrack_FormattedDuration_Stream(t *testing.T) {
	track := Track{Encoded: "abc", Title: "Radio", IsStream: true}

	if got := track.FormattedDuration(); got != "LIVE" {
		t.Errorf("expected LIVE for a stream, got %q", got)
	}
}

func TestQueueEntry_DisplayTitle(t *testing.T) {
	entry := &QueueEntry{Track: &Track{Title: "Backend Title"}}
	if got := entry.DisplayTitle(); got != "Backend Title" {
		t.Errorf("expected backend title, got %q", got)
	}

	entry.Metadata = &TrackMetadata{Title: "Catalog Title"}
	if got := entry.DisplayTitle(); got != "Catalog Title" {
		t.Errorf("expected catalog title to win, got %q", got)
	}

	entry.Metadata = &TrackMetadata{}
	if got := entry.DisplayTitle(); got != "Backend Title" {
		t.Errorf("expected fallback to backend title for empty metadata, got %q", got)
	}
}
