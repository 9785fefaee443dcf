package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/veldin/keyweave/internal/input/mapping"
)

const defaultDebounce = 100 * time.Millisecond

// Watcher reloads one remap file into a mapping table whenever it
// changes on disk. It watches the file's directory rather than the
// file itself: most editors replace files by rename, which would
// otherwise silently drop the watch.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	base     string
	debounce time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	closed bool

	done chan struct{}
	wg   sync.WaitGroup

	reload func()
}

// WatchRemaps starts watching path and swaps its mappings into table
// on every change. report, if non-nil, receives the outcome of each
// reload: the number of mappings installed, or the parse error (the
// table keeps its previous contents on error).
func WatchRemaps(path string, table *mapping.Table, report func(n int, err error)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		path:     abs,
		base:     filepath.Base(abs),
		debounce: defaultDebounce,
		done:     make(chan struct{}),
	}
	w.reload = func() {
		n, err := ApplyRemaps(table, abs)
		if report != nil {
			report(n, err)
		}
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Close stops watching. Pending debounced reloads are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.done)
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != w.base {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename) {
				w.schedule()
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

// schedule coalesces a burst of events into one reload.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}
