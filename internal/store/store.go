// Package store persists the document to a fixed user-data location: one
// structured, versioned JSON file plus a plaintext backup of the raw buffer
// text. Writes are atomic; loads never fail hard on corrupt metadata.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"buffmon-tui/internal/core/document"
)

const (
	// DocumentFile is the structured whole-document save file.
	DocumentFile = "document.json"
	// BackupFile holds only the raw buffer text, rewritten on every
	// structured save. It is the recovery artifact when DocumentFile fails
	// to parse.
	BackupFile = "backup.txt"
)

// Store reads and writes the save files under one directory. Save is safe to
// call from the persistence worker and from shutdown at the same time.
type Store struct {
	dir string

	mu       sync.Mutex
	lastSave time.Time
}

// LoadResult is what came off the disk. FromBackup is set when the
// structured file was missing or corrupt and only the plaintext survived;
// ParseErr then carries the structured failure for a UI notice.
type LoadResult struct {
	Snapshot   *document.Snapshot
	FromBackup bool
	ParseErr   error
}

// New ensures the data directory exists and returns a store over it.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("store: empty data directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// DocumentPath returns the structured save file path.
func (s *Store) DocumentPath() string {
	return filepath.Join(s.dir, DocumentFile)
}

// BackupPath returns the plaintext backup path.
func (s *Store) BackupPath() string {
	return filepath.Join(s.dir, BackupFile)
}

// LastSave returns the completion time of the most recent successful save.
// The watcher uses it to tell our own writes from external ones.
func (s *Store) LastSave() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSave
}

// Save writes the snapshot: first the structured file, then the plaintext
// backup. Each file is written to a temporary sibling and renamed over the
// target, so a crash mid-write never corrupts the last good state.
func (s *Store) Save(snap *document.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode document: %w", err)
	}
	if err := s.writeAtomic(s.DocumentPath(), append(data, '\n')); err != nil {
		return fmt.Errorf("store: write document: %w", err)
	}
	if err := s.writeAtomic(s.BackupPath(), []byte(snap.Text)); err != nil {
		return fmt.Errorf("store: write backup: %w", err)
	}
	s.lastSave = time.Now()
	return nil
}

// Load reads the structured file. A missing pair of files yields a nil
// snapshot (fresh start). A corrupt or unreadable structured file falls back
// to the plaintext backup: raw text with an empty tag set, never a fatal
// error.
func (s *Store) Load() (LoadResult, error) {
	data, err := os.ReadFile(s.DocumentPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s.loadBackup(nil)
		}
		return s.loadBackup(err)
	}

	var snap document.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return s.loadBackup(fmt.Errorf("store: parse %s: %w", DocumentFile, err))
	}
	if snap.Version != document.SnapshotVersion {
		return s.loadBackup(fmt.Errorf("store: unsupported save version %d", snap.Version))
	}
	return LoadResult{Snapshot: &snap}, nil
}

func (s *Store) loadBackup(cause error) (LoadResult, error) {
	text, err := os.ReadFile(s.BackupPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && cause == nil {
			// Nothing on disk at all: first run.
			return LoadResult{}, nil
		}
		if cause != nil {
			return LoadResult{ParseErr: cause}, nil
		}
		return LoadResult{}, fmt.Errorf("store: read backup: %w", err)
	}
	return LoadResult{
		Snapshot: &document.Snapshot{
			Version: document.SnapshotVersion,
			Text:    string(text),
		},
		FromBackup: true,
		ParseErr:   cause,
	}, nil
}

func (s *Store) writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
