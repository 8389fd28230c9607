package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadHandler receives freshly loaded settings, or the error that
// prevented loading them, each time the watched file changes.
type ReloadHandler func(s Settings, err error)

const defaultDebounce = 100 * time.Millisecond

// Watcher reloads a settings file when it changes on disk.
//
// It watches the file's parent directory rather than the file itself,
// because editors commonly replace config files by rename, which would
// silently detach a direct watch.
type Watcher struct {
	path    string
	handler ReloadHandler

	fsw      *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	pending *time.Timer
	closed  bool

	closeCh chan struct{}
	wg      sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the watcher waits for rapid successive
// writes to settle before reloading.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// NewWatcher starts watching path and invokes handler on every change,
// after debouncing. The initial load is the caller's job; the watcher
// only reports subsequent changes.
func NewWatcher(path string, handler ReloadHandler, opts ...WatcherOption) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}

	w := &Watcher{
		path:     absPath,
		handler:  handler,
		fsw:      fsw,
		debounce: defaultDebounce,
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching config dir: %w", err)
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher. Pending debounced reloads are dropped, and
// the handler is never invoked after Close returns.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.pending != nil && w.pending.Stop() {
		w.wg.Done()
	}
	w.mu.Unlock()

	close(w.closeCh)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename) {
				w.scheduleReload()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.handler(Default(), fmt.Errorf("config watcher: %w", err))
		}
	}
}

// scheduleReload arms (or re-arms) the debounce timer. The timer
// callback joins the wait group, so Close blocks until any in-flight
// handler call has finished.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.pending != nil && w.pending.Stop() {
		w.wg.Done()
	}
	w.wg.Add(1)
	w.pending = time.AfterFunc(w.debounce, func() {
		defer w.wg.Done()

		w.mu.Lock()
		closed := w.closed
		w.mu.Unlock()
		if closed {
			return
		}
		w.handler(Load(w.path))
	})
}
