package store

import (
	"testing"
	"time"
)

func waitEvent(t *testing.T, a *Autosaver, within time.Duration) SaveEvent {
	t.Helper()
	select {
	case ev := <-a.Events():
		return ev
	case <-time.After(within):
		t.Fatal("no save event")
		return SaveEvent{}
	}
}

func TestAutosaverDebouncesBursts(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	a := NewAutosaver(s, 80*time.Millisecond)
	defer a.Close()

	// A burst of edits inside the debounce window: only the last snapshot
	// may reach the disk.
	for _, text := range []string{"type", "typing", "typing f", "typing fast"} {
		a.MarkDirty(testSnapshot(text))
		time.Sleep(10 * time.Millisecond)
	}

	ev := waitEvent(t, a, 2*time.Second)
	if ev.Err != nil {
		t.Fatalf("save failed: %v", ev.Err)
	}
	result, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if result.Snapshot.Text != "typing fast" {
		t.Errorf("saved %q, want the latest snapshot", result.Snapshot.Text)
	}

	// No second save follows for the same burst.
	select {
	case ev := <-a.Events():
		t.Fatalf("unexpected extra save: %+v", ev)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestAutosaverFlushesOnClose(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	// Debounce far longer than the test: only the shutdown flush can write.
	a := NewAutosaver(s, time.Hour)
	a.MarkDirty(testSnapshot("last words"))
	a.Close()

	result, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if result.Snapshot == nil || result.Snapshot.Text != "last words" {
		t.Fatalf("pending snapshot lost on close: %+v", result.Snapshot)
	}
}

func TestAutosaverCloseWithoutWork(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	a := NewAutosaver(s, time.Hour)
	a.Close()

	result, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if result.Snapshot != nil {
		t.Fatal("idle close wrote a save file")
	}
}

func TestAutosaverMarkDirtyNeverBlocks(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	a := NewAutosaver(s, time.Hour)
	defer a.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			a.MarkDirty(testSnapshot("spam"))
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("MarkDirty blocked")
	}
}

func TestAutosaverSaveNow(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	a := NewAutosaver(s, time.Hour)
	defer a.Close()

	if err := a.SaveNow(testSnapshot("right now")); err != nil {
		t.Fatalf("SaveNow: %v", err)
	}
	result, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if result.Snapshot.Text != "right now" {
		t.Errorf("text = %q", result.Snapshot.Text)
	}
}
