package catalog

import (
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

// DefaultDebounce is how long the watcher waits for a burst of file events
// to settle before reloading.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a catalog file whenever it is written or replaced.
// A reload that fails validation is reported and the previous catalog
// remains in effect.
type Watcher struct {
	fs       afero.Fs
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration

	onReload func(Catalog)
	onError  func(error)

	mu       sync.Mutex
	current  Catalog
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
	started  atomic.Bool
}

// NewWatcher loads path and prepares to watch it. The parent directory is
// watched so that editors which save by rename are still observed.
func NewWatcher(fs afero.Fs, path string) (*Watcher, error) {
	initial, err := Load(fs, path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	return &Watcher{
		fs:       fs,
		path:     filepath.Clean(path),
		watcher:  fw,
		debounce: DefaultDebounce,
		current:  initial,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// OnReload sets the callback invoked with each successfully reloaded catalog.
func (w *Watcher) OnReload(cb func(Catalog)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = cb
}

// OnError sets the callback invoked when a reload fails.
func (w *Watcher) OnError(cb func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = cb
}

// Current returns the most recent valid catalog.
func (w *Watcher) Current() Catalog {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current.Clone()
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	if !w.started.CompareAndSwap(false, true) {
		return
	}
	go w.watchLoop()
}

// Stop stops watching and waits for the watch goroutine to exit.
// It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		_ = w.watcher.Close()
	})
	if w.started.Load() {
		<-w.doneCh
	}
}

func (w *Watcher) watchLoop() {
	defer close(w.doneCh)

	debounceTimer := time.NewTimer(w.debounce)
	if !debounceTimer.Stop() {
		<-debounceTimer.C
	}
	defer debounceTimer.Stop()

	for {
		select {
		case <-w.stopCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounceTimer.Reset(w.debounce)

		case <-debounceTimer.C:
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)
		}
	}
}

func (w *Watcher) reload() {
	c, err := Load(w.fs, w.path)
	if err != nil {
		w.report(err)
		return
	}

	w.mu.Lock()
	w.current = c
	cb := w.onReload
	w.mu.Unlock()

	if cb != nil {
		cb(c.Clone())
	}
}

func (w *Watcher) report(err error) {
	w.mu.Lock()
	cb := w.onError
	w.mu.Unlock()

	if cb != nil {
		cb(err)
	}
}
