package feeders

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches property files for changes and invokes a callback with
// the path of each changed file. It does not rewire a built scope — bean
// maps are immutable — but lets applications reload their property plugin
// and decide what to do about the change.
type Watcher struct {
	watcher *fsnotify.Watcher
	quit    chan struct{}
}

// NewWatcher creates a watcher for the given files.
func NewWatcher(paths ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	for _, path := range paths {
		if err := fsw.Add(path); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", path, err)
		}
	}
	return &Watcher{watcher: fsw, quit: make(chan struct{})}, nil
}

// Watch starts delivering change notifications to onChange from a
// background goroutine until Close is called. Write and create events
// trigger the callback; watch errors are delivered to onError when
// non-nil and dropped otherwise.
func (w *Watcher) Watch(onChange func(path string), onError func(error)) {
	go func() {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
					onChange(event.Name)
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				if onError != nil {
					onError(err)
				}
			case <-w.quit:
				return
			}
		}
	}()
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	close(w.quit)
	return w.watcher.Close()
}
