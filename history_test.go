package termline

import (
	"reflect"
	"testing"
)

func TestHistoryPush(t *testing.T) {
	h := NewHistory(10)

	h.Push("first")
	h.Push("second")
	if got := h.Entries(); !reflect.DeepEqual(got, []string{"first", "second"}) {
		t.Fatalf("Entries() = %v", got)
	}

	// Whitespace-only entries are ignored.
	h.Push("")
	h.Push("   ")
	h.Push("\t")
	if h.Len() != 2 {
		t.Errorf("Len() = %d after blank pushes, want 2", h.Len())
	}

	// Consecutive duplicates are stored once.
	h.Push("second")
	if h.Len() != 2 {
		t.Errorf("Len() = %d after duplicate push, want 2", h.Len())
	}

	// Non-consecutive repeats are fine.
	h.Push("first")
	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3", h.Len())
	}
}

func TestHistoryEviction(t *testing.T) {
	h := NewHistory(3)
	for _, entry := range []string{"a", "b", "c", "d"} {
		h.Push(entry)
	}
	if got := h.Entries(); !reflect.DeepEqual(got, []string{"b", "c", "d"}) {
		t.Errorf("Entries() = %v, want oldest evicted", got)
	}
}

func TestHistoryBrowsing(t *testing.T) {
	h := NewHistory(10)
	h.Push("a")
	h.Push("b")
	h.Push("c")

	entry, ok := h.Previous()
	if !ok || entry != "c" {
		t.Fatalf("Previous() = %q, %v, want \"c\", true", entry, ok)
	}
	entry, ok = h.Previous()
	if !ok || entry != "b" {
		t.Fatalf("Previous() = %q, %v, want \"b\", true", entry, ok)
	}

	// Next returns to the entry the first Previous produced.
	entry, ok = h.Next()
	if !ok || entry != "c" {
		t.Fatalf("Next() = %q, %v, want \"c\", true", entry, ok)
	}

	// Past-the-end reports no entry.
	if _, ok := h.Next(); ok {
		t.Error("Next() past the end should report no entry")
	}
}

func TestHistoryPreviousIdempotentAtOldest(t *testing.T) {
	h := NewHistory(10)
	h.Push("only")

	for i := 0; i < 3; i++ {
		entry, ok := h.Previous()
		if !ok || entry != "only" {
			t.Fatalf("Previous() #%d = %q, %v, want \"only\", true", i+1, entry, ok)
		}
	}
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory(10)
	if _, ok := h.Previous(); ok {
		t.Error("Previous() on empty history should report no entry")
	}
	if _, ok := h.Next(); ok {
		t.Error("Next() on empty history should report no entry")
	}
}

func TestHistoryRewind(t *testing.T) {
	h := NewHistory(10)
	h.Push("a")
	h.Push("b")

	h.Previous()
	h.Previous()
	h.Rewind()

	entry, ok := h.Previous()
	if !ok || entry != "b" {
		t.Errorf("Previous() after Rewind = %q, %v, want \"b\", true", entry, ok)
	}
}

func TestHistoryPushResetsCursor(t *testing.T) {
	h := NewHistory(10)
	h.Push("a")
	h.Push("b")
	h.Previous()
	h.Previous()

	h.Push("c")
	entry, ok := h.Previous()
	if !ok || entry != "c" {
		t.Errorf("Previous() after Push = %q, %v, want \"c\", true", entry, ok)
	}
}

func TestHistoryDefaultCapacity(t *testing.T) {
	h := NewHistory(0)
	for i := 0; i < 15; i++ {
		h.Push(string(rune('a' + i)))
	}
	if h.Len() != 10 {
		t.Errorf("Len() = %d with default capacity, want 10", h.Len())
	}
}
