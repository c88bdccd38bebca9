package store

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// selfWriteGrace is how long after our own save we keep ignoring events on
// the save files. Rename-based writes surface as a small burst of events.
const selfWriteGrace = 2 * time.Second

// ExternalChange reports that something other than this process touched one
// of the save files, e.g. a sync tool replacing the data directory contents.
type ExternalChange struct {
	Path string
	Op   string
}

// Watcher watches the store's data directory and surfaces external
// modifications of the save files. The store's own atomic writes are filtered
// out by save timestamps.
type Watcher struct {
	store  *Store
	fsw    *fsnotify.Watcher
	events chan ExternalChange
	done   chan struct{}
}

// NewWatcher starts watching the store directory.
func NewWatcher(st *Store) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(st.Dir()); err != nil {
		fsw.Close()
		return nil, err
	}
	w := &Watcher{
		store:  st,
		fsw:    fsw,
		events: make(chan ExternalChange, 8),
		done:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Events returns external change notifications.
func (w *Watcher) Events() <-chan ExternalChange {
	return w.events
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if name != DocumentFile && name != BackupFile {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}
	if time.Since(w.store.LastSave()) < selfWriteGrace {
		return
	}
	change := ExternalChange{Path: event.Name, Op: opString(event.Op)}
	select {
	case w.events <- change:
	default:
	}
}

func opString(op fsnotify.Op) string {
	switch {
	case op&fsnotify.Remove != 0:
		return "deleted"
	case op&fsnotify.Rename != 0:
		return "renamed"
	case op&fsnotify.Create != 0:
		return "created"
	default:
		return "modified"
	}
}
