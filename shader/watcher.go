package shader

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to shader source files so programs can be reloaded.
//
// Changes are only recorded by the watching goroutine; the caller polls
// Changed from the thread owning the graphics context and calls Reload there.
type Watcher struct {
	watcher *fsnotify.Watcher
	files   map[string]struct{}
	logger  *slog.Logger
	pending atomic.Bool
	done    chan struct{}
}

// NewWatcher watches the given files. The parent directories are watched rather
// than the files themselves so that editors which replace files on save are
// still noticed.
func NewWatcher(paths []string, opts ...Option) (*Watcher, error) {
	o := newOptions(opts)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify.NewWatcher: %w", err)
	}

	w := &Watcher{
		watcher: fw,
		files:   make(map[string]struct{}),
		logger:  o.logger,
		done:    make(chan struct{}),
	}

	dirs := make(map[string]struct{})
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("watching %q: %w", path, err)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watching %q: %w", dir, err)
		}
	}

	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if _, ok := w.files[filepath.Clean(event.Name)]; !ok {
				continue
			}

			w.logger.Debug("shader source changed", "path", event.Name, "op", event.Op.String())
			w.pending.Store(true)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("shader watcher error", "err", err)
		}
	}
}

// Changed reports whether a watched file changed since the last call.
func (w *Watcher) Changed() bool {
	return w.pending.Swap(false)
}

func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
