package store

import (
	"time"

	"buffmon-tui/internal/core/document"
)

// SaveEvent reports the outcome of one background save.
type SaveEvent struct {
	Err error
	At  time.Time
}

// Autosaver coalesces dirty marks into debounced background saves. The
// mutator hands over a fresh snapshot with every mark; only the latest one is
// ever pending, so a burst of edits produces a single write. A save already
// in flight runs to completion; marks arriving meanwhile trigger exactly one
// more save afterwards.
type Autosaver struct {
	store *Store
	delay time.Duration

	updates chan *document.Snapshot
	events  chan SaveEvent
	done    chan struct{}
	stopped chan struct{}
}

// NewAutosaver starts the persistence worker. delay is the debounce window.
func NewAutosaver(store *Store, delay time.Duration) *Autosaver {
	if delay <= 0 {
		delay = 1500 * time.Millisecond
	}
	a := &Autosaver{
		store:   store,
		delay:   delay,
		updates: make(chan *document.Snapshot, 1),
		events:  make(chan SaveEvent, 8),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go a.loop()
	return a
}

// MarkDirty hands the latest snapshot to the worker. It never blocks: a
// pending older snapshot is simply replaced.
func (a *Autosaver) MarkDirty(snap *document.Snapshot) {
	for {
		select {
		case a.updates <- snap:
			return
		default:
			select {
			case <-a.updates:
			default:
			}
		}
	}
}

// Events returns save outcomes for the UI. The channel is never closed while
// the autosaver runs; slow consumers drop old events, not saves.
func (a *Autosaver) Events() <-chan SaveEvent {
	return a.events
}

// SaveNow writes the snapshot synchronously, for shutdown paths that cannot
// wait out the debounce window.
func (a *Autosaver) SaveNow(snap *document.Snapshot) error {
	return a.store.Save(snap)
}

// Close flushes any pending snapshot and stops the worker.
func (a *Autosaver) Close() {
	close(a.done)
	<-a.stopped
}

func (a *Autosaver) loop() {
	defer close(a.stopped)

	var (
		pending *document.Snapshot
		timer   *time.Timer
		fire    <-chan time.Time
	)
	for {
		select {
		case snap := <-a.updates:
			pending = snap
			if timer == nil {
				timer = time.NewTimer(a.delay)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(a.delay)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if pending != nil {
				a.emit(SaveEvent{Err: a.store.Save(pending), At: time.Now()})
				pending = nil
			}
		case <-a.done:
			select {
			case snap := <-a.updates:
				pending = snap
			default:
			}
			if pending != nil {
				a.emit(SaveEvent{Err: a.store.Save(pending), At: time.Now()})
			}
			return
		}
	}
}

func (a *Autosaver) emit(ev SaveEvent) {
	for {
		select {
		case a.events <- ev:
			return
		default:
			select {
			case <-a.events:
			default:
			}
		}
	}
}
