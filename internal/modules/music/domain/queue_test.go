package domain

import "testing"

func entryWithTitle(title string) *QueueEntry {
	return &QueueEntry{Track: &Track{Encoded: "enc-" + title, Title: title}}
}

func entryTitles(entries []*QueueEntry) []string {
	titles := make([]string, len(entries))
	for i, e := range entries {
		titles[i] = e.Track.Title
	}
	return titles
}

func TestQueue_AppendAndNext(t *testing.T) {
	var q Queue

	if !q.IsEmpty() {
		t.Error("expected new queue to be empty")
	}
	if got := q.Next(); got != nil {
		t.Errorf("expected nil from empty queue, got %v", got)
	}

	a := entryWithTitle("a")
	b := entryWithTitle("b")
	q.Append(a, b)

	if got := q.Len(); got != 2 {
		t.Errorf("expected length 2, got %d", got)
	}
	if got := q.Next(); got != a {
		t.Errorf("expected head a, got %v", got)
	}
	if got := q.Next(); got != b {
		t.Errorf("expected head b, got %v", got)
	}
	if !q.IsEmpty() {
		t.Error("expected queue to be empty after draining")
	}
}

func TestQueue_Prepend(t *testing.T) {
	var q Queue
	q.Append(entryWithTitle("b"))
	q.Prepend(entryWithTitle("a"))

	got := entryTitles(q.List())
	want := []string{"a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestQueue_ListReturnsCopy(t *testing.T) {
	var q Queue
	q.Append(entryWithTitle("a"), entryWithTitle("b"))

	list := q.List()
	list[0] = entryWithTitle("mutated")

	if q.List()[0].Track.Title != "a" {
		t.Error("expected List to return a copy, queue was mutated")
	}
}

func TestQueue_RemoveAt(t *testing.T) {
	var q Queue
	a := entryWithTitle("a")
	b := entryWithTitle("b")
	c := entryWithTitle("c")
	q.Append(a, b, c)

	if got := q.RemoveAt(1); got != b {
		t.Errorf("expected to remove b, got %v", got)
	}
	got := entryTitles(q.List())
	want := []string{"a", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestQueue_RemoveAt_OutOfBounds(t *testing.T) {
	var q Queue
	q.Append(entryWithTitle("a"))

	if got := q.RemoveAt(-1); got != nil {
		t.Errorf("expected nil for negative index, got %v", got)
	}
	if got := q.RemoveAt(1); got != nil {
		t.Errorf("expected nil for index past tail, got %v", got)
	}
	if q.Len() != 1 {
		t.Errorf("expected queue to be untouched, got length %d", q.Len())
	}
}

func TestQueue_Move(t *testing.T) {
	tests := []struct {
		name string
		from int
		to   int
		want []string
	}{
		{name: "forward", from: 0, to: 2, want: []string{"b", "c", "a"}},
		{name: "backward", from: 2, to: 0, want: []string{"c", "a", "b"}},
		{name: "same position", from: 1, to: 1, want: []string{"a", "b", "c"}},
		{name: "destination clamped to tail", from: 0, to: 99, want: []string{"b", "c", "a"}},
		{name: "destination clamped to head", from: 1, to: -5, want: []string{"b", "a", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q Queue
			q.Append(entryWithTitle("a"), entryWithTitle("b"), entryWithTitle("c"))

			if got := q.Move(tt.from, tt.to); got == nil {
				t.Fatal("expected moved entry, got nil")
			}
			got := entryTitles(q.List())
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("position %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestQueue_Move_OutOfBounds(t *testing.T) {
	var q Queue
	q.Append(entryWithTitle("a"))

	if got := q.Move(5, 0); got != nil {
		t.Errorf("expected nil for out-of-bounds source, got %v", got)
	}
	if q.Len() != 1 {
		t.Errorf("expected queue to be untouched, got length %d", q.Len())
	}
}

func TestQueue_Shuffle_PreservesEntries(t *testing.T) {
	var q Queue
	entries := []*QueueEntry{
		entryWithTitle("a"), entryWithTitle("b"), entryWithTitle("c"),
		entryWithTitle("d"), entryWithTitle("e"),
	}
	q.Append(entries...)

	q.Shuffle()

	if q.Len() != len(entries) {
		t.Fatalf("expected length %d after shuffle, got %d", len(entries), q.Len())
	}
	seen := make(map[*QueueEntry]bool)
	for _, e := range q.List() {
		seen[e] = true
	}
	for _, e := range entries {
		if !seen[e] {
			t.Errorf("entry %q missing after shuffle", e.Track.Title)
		}
	}
}

func TestQueue_Clear(t *testing.T) {
	var q Queue
	q.Append(entryWithTitle("a"), entryWithTitle("b"))

	if got := q.Clear(); got != 2 {
		t.Errorf("expected 2 cleared, got %d", got)
	}
	if !q.IsEmpty() {
		t.Error("expected queue to be empty after clear")
	}
	if got := q.Clear(); got != 0 {
		t.Errorf("expected 0 cleared from empty queue, got %d", got)
	}
}
