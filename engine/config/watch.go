package config

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last file event before
// reloading.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a tuning file when it changes on disk. Only the most recent valid
// settings are kept in Updates; failed reloads are reported on Errors and the previous
// settings stay in effect.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration

	Updates chan Settings
	Errors  chan error

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches the tuning file at path. The containing directory is watched so
// editors that replace the file on save are picked up.
//
// Parameters:
//   - path: the YAML file
//   - debounce: quiet period before reloading; non-positive uses DefaultDebounce
//
// Returns:
//   - *Watcher: the running watcher
//   - error: if the directory cannot be watched
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher:  w,
		path:     abs,
		debounce: debounce,
		Updates:  make(chan Settings, 1),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher and closes both channels. Safe to call more than once.
//
// Returns:
//   - error: from the underlying fsnotify watcher
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Updates)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	var reload <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			reload = time.After(w.debounce)
		case <-reload:
			reload = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	s, err := Load(w.path)
	if err != nil {
		w.report(err)
		return
	}
	log.Printf("[Config] reloaded %s", w.path)
	// keep only the latest settings
	select {
	case <-w.Updates:
	default:
	}
	w.Updates <- s
}

func (w *Watcher) report(err error) {
	log.Printf("[Config] %v", err)
	select {
	case w.Errors <- err:
	default:
	}
}
