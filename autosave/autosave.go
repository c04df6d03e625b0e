// Package autosave implements the debounced project writer: every
// store-mutation event schedules a write a fixed delay in the future,
// coalescing bursts of edits into a single write, and rejects payloads
// over a size cap rather than writing a truncated project. Grounded on
// core/windowgeometry.go's WindowGeometrySaver, whose RecordPref/
// saveTimer pattern (cache the latest value, arm a single time.AfterFunc,
// clear the timer once it fires) is the same debounce shape applied here
// to project snapshots instead of window geometry.
package autosave

import (
	"log/slog"
	"sync"
	"time"

	"tileloom.dev/tileloom/kvstore"
	"tileloom.dev/tileloom/tileerr"
)

// Key is the kvstore key an autosaved project is written under.
const Key = "autosave"

// Delay is how long a store mutation waits, unextended by further
// mutations, before it is written out.
const Delay = 2 * time.Second

// MaxBytes is the largest serialized project Autosave will write. Over
// this, Schedule's eventual write is skipped and Err is populated
// instead, rather than silently truncating the document.
const MaxBytes = 5 * 1024 * 1024

// Snapshot produces the current project's serialized bytes on demand,
// called from the writer's goroutine just before it writes, so the
// payload reflects the most recent state rather than whatever was
// current when Schedule was called.
type Snapshot func() ([]byte, error)

// Writer debounces Snapshot calls through a kvstore.Store.
type Writer struct {
	Store    kvstore.Store
	Snapshot Snapshot

	// Delay overrides the package Delay constant, mainly so tests don't
	// wait two real seconds per case. Zero means use Delay.
	Delay time.Duration

	mu    sync.Mutex
	timer *time.Timer

	// Err receives any error from the most recent write attempt (nil on
	// success), if set.
	Err func(error)
}

// NewWriter returns a Writer that writes through store, producing
// payloads via snap.
func NewWriter(store kvstore.Store, snap Snapshot) *Writer {
	return &Writer{Store: store, Snapshot: snap}
}

// Schedule arms the debounce timer if no write is already pending.
// Calls made while a write is pending coalesce into that write, which
// runs Delay after the call that armed the timer and writes whatever
// the project looks like when the timer fires.
func (w *Writer) Schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		return
	}
	delay := w.Delay
	if delay == 0 {
		delay = Delay
	}
	w.timer = time.AfterFunc(delay, func() {
		w.mu.Lock()
		w.timer = nil
		w.mu.Unlock()
		w.writeNow()
	})
}

// Abort cancels any pending write. Used when the project closes or a
// new project is loaded before the debounce fires.
func (w *Writer) Abort() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Writer) writeNow() {
	data, err := w.Snapshot()
	if err != nil {
		slog.Error("autosave: snapshot failed", "err", err)
		w.reportErr(err)
		return
	}
	if len(data) > MaxBytes {
		slog.Error("autosave: payload exceeds size cap, skipping write", "bytes", len(data), "max", MaxBytes)
		w.reportErr(tileerr.ResourceExhaustion)
		return
	}
	if err := w.Store.Put(Key, data); err != nil {
		slog.Error("autosave: write failed", "err", err)
		w.reportErr(err)
		return
	}
	w.reportErr(nil)
}

func (w *Writer) reportErr(err error) {
	if w.Err != nil {
		w.Err(err)
	}
}

// Recover returns the autosaved project's raw bytes, if one exists, for
// the caller to present as a recovery prompt at startup. The bool is
// false if no autosave record exists.
func Recover(store kvstore.Store) ([]byte, bool, error) {
	return store.Get(Key)
}

// Discard removes any existing autosave record, typically called after
// the user accepts or declines a recovery prompt.
func Discard(store kvstore.Store) error {
	return store.Delete(Key)
}
