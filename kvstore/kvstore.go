// Package kvstore defines the abstract key-value blob store Autosave
// writes through, plus a filesystem-backed default adapter. Grounded
// on the teacher's debounced-writer convention (one background
// goroutine per store instance, never touching caller state directly);
// external-change detection uses github.com/fsnotify/fsnotify, and
// deletion goes through github.com/Bios-Marcel/wastebasket/v2 so a
// removed record lands in the OS trash rather than being unrecoverably
// erased.
package kvstore

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/Bios-Marcel/wastebasket/v2"
	"github.com/fsnotify/fsnotify"
)

// Store is the abstract blob store behind Autosave: string keys to
// byte-slice values.
type Store interface {
	Put(key string, data []byte) error
	Get(key string) ([]byte, bool, error)
	Delete(key string) error
}

// FileStore is a Store backed by one file per key inside a directory.
type FileStore struct {
	dir string

	mu      sync.Mutex
	watcher *fsnotify.Watcher

	// Changed is called (on the watcher goroutine) for every filesystem
	// event on a "<key>.json" file in the store directory, passing the
	// key; writes made through this FileStore's own Put are reported too.
	Changed func(key string)
}

// NewFileStore returns a FileStore rooted at dir, creating it if
// necessary.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Put writes data under key, replacing any existing value.
func (f *FileStore) Put(key string, data []byte) error {
	return os.WriteFile(f.path(key), data, 0o644)
}

// Get reads the value stored under key. The bool return is false if no
// record exists yet, matching the "present a recovery prompt only if a
// record exists" contract.
func (f *FileStore) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Delete moves key's file to the OS trash rather than unlinking it, so
// a mistaken autosave clear is recoverable outside the application.
func (f *FileStore) Delete(key string) error {
	p := f.path(key)
	if _, err := os.Stat(p); os.IsNotExist(err) {
		return nil
	}
	return wastebasket.Trash(p)
}

// Watch starts watching the store directory for changes, calling
// Changed for any event naming a key's file. The
// caller must call Close when done. Safe to call once per FileStore.
func (f *FileStore) Watch() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.watcher != nil {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(f.dir); err != nil {
		w.Close()
		return err
	}
	f.watcher = w
	go f.watchLoop(w)
	return nil
}

func (f *FileStore) watchLoop(w *fsnotify.Watcher) {
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if f.Changed != nil {
				key := keyFromPath(ev.Name)
				if key != "" {
					f.Changed(key)
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			slog.Error("kvstore: watcher error", "dir", f.dir, "err", err)
		}
	}
}

func keyFromPath(p string) string {
	base := filepath.Base(p)
	const suffix = ".json"
	if len(base) <= len(suffix) || base[len(base)-len(suffix):] != suffix {
		return ""
	}
	return base[:len(base)-len(suffix)]
}

// Close stops the watcher, if one was started.
func (f *FileStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.watcher == nil {
		return nil
	}
	err := f.watcher.Close()
	f.watcher = nil
	return err
}

var _ Store = (*FileStore)(nil)
