// Package watch re-runs a callback when files below a set of directories
// are created or written. Bursts of events are debounced into one call.
package watch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/specialistvlad/amalgamate/internal/ctxlog"
)

// DefaultDebounce is how long the directories must stay quiet before the
// callback runs.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches directories. fsnotify is not recursive, so every
// directory of interest must be listed; directories created later below a
// watched one are added as they appear.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	ignore   func(path string) bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithIgnore drops events for paths matching fn, such as the output file.
func WithIgnore(fn func(path string) bool) Option {
	return func(w *Watcher) { w.ignore = fn }
}

// New starts watching dirs.
func New(dirs []string, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fs:       fsw,
		debounce: DefaultDebounce,
		ignore:   func(string) bool { return false },
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	return w, nil
}

// Run calls onChange after every debounced burst of changes until ctx is
// done. onChange runs on the caller's goroutine, one call at a time.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context)) error {
	logger := ctxlog.FromContext(ctx)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if w.ignore(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) {
				w.addIfDir(ctx, event.Name)
			}
			logger.Debug("Change detected.", "file", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error.", "error", err)

		case <-fire:
			fire = nil
			onChange(ctx)
		}
	}
}

func (w *Watcher) addIfDir(ctx context.Context, path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.fs.Add(path); err != nil {
		ctxlog.FromContext(ctx).Warn("Failed to watch new directory.", "dir", path, "error", err)
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
