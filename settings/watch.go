package settings

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce is the window in which repeated events for one file are merged.
const debounce = 100 * time.Millisecond

// Watcher reports changes to a fixed set of files. Editors often replace a
// file instead of writing it, so the parent directories are watched.
type Watcher struct {
	watcher *fsnotify.Watcher
	files   map[string]struct{}

	Events chan string
	Errors chan error

	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher starts watching files. Empty paths are skipped.
func NewWatcher(files ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		files:   make(map[string]struct{}),
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	dirs := make(map[string]struct{})
	for _, file := range files {
		if file == "" {
			continue
		}
		abs, err := filepath.Abs(file)
		if err != nil {
			_ = w.Close()
			return nil, err
		}
		watcher.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. Events and Errors are closed once it has stopped.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, ok := w.files[name]; !ok {
				continue
			}
			now := time.Now()
			if t, ok := last[name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[name] = now
			select {
			case w.Events <- name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}
