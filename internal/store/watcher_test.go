package store

import (
	"os"
	"testing"
	"time"
)

func TestWatcherReportsExternalChange(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(s)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	// Give the watcher a moment to arm before the write.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(s.DocumentPath(), []byte(`{"version":1,"text":"x"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case change := <-w.Events():
		if change.Op == "" {
			t.Errorf("change = %+v", change)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("external write not reported")
	}
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(s)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(dir+"/notes.txt", []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case change := <-w.Events():
		t.Fatalf("unrelated file reported: %+v", change)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherIgnoresOwnSaves(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(s)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	time.Sleep(50 * time.Millisecond)
	if err := s.Save(testSnapshot("our own write")); err != nil {
		t.Fatal(err)
	}

	select {
	case change := <-w.Events():
		t.Fatalf("own save reported as external: %+v", change)
	case <-time.After(300 * time.Millisecond):
	}
}
