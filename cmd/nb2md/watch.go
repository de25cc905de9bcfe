package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	nb2md "github.com/alnah/go-nb2md"
	"github.com/alnah/go-nb2md/internal/fileutil"
	"github.com/alnah/go-nb2md/internal/logfields"
)

// watch converts once, then re-runs the full conversion whenever a notebook
// in the source directory changes. Bursts of events within the debounce
// interval trigger a single run. Returns ctx.Err() when ctx is done.
func (s *session) watch(ctx context.Context) error {
	w, err := newDirWatcher(s.sourceDir(), s.flags.debounce, s.logger)
	if err != nil {
		return err
	}
	defer w.close()

	s.runWatched(ctx)
	fmt.Fprintf(s.out.stdout, "%s %s (Ctrl+C to stop)\n", s.out.note("Watching"), s.sourceDir())

	return w.run(ctx, func() {
		fmt.Fprintf(s.out.stdout, "\n[%s] change detected\n", s.env.Now().Format("15:04:05"))
		s.runWatched(ctx)
	})
}

// runWatched runs one conversion, reporting run-level errors without
// stopping the watch.
func (s *session) runWatched(ctx context.Context) {
	if _, err := s.runOnce(ctx); err != nil && ctx.Err() == nil {
		s.out.printError(err, s.outputDir())
	}
}

// dirWatcher turns filesystem events on notebook files into debounced
// triggers.
type dirWatcher struct {
	dir      string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger
	trigger  chan struct{}
}

func newDirWatcher(dir string, debounce time.Duration, logger *slog.Logger) (*dirWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("%w: watching %s: %v", nb2md.ErrSourceDir, dir, err)
	}

	return &dirWatcher{
		dir:      dir,
		watcher:  watcher,
		debounce: debounce,
		logger:   logger,
		trigger:  make(chan struct{}, 1),
	}, nil
}

func (w *dirWatcher) close() {
	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("closing file watcher", logfields.Error(err))
	}
}

// run calls onChange on the calling goroutine once per debounced burst of
// relevant events, until ctx is done.
func (w *dirWatcher) run(ctx context.Context, onChange func()) error {
	w.logger.Info("watching notebooks", logfields.Dir(w.dir))

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return ctx.Err()
			}
			if !isNotebookChange(event) {
				continue
			}
			w.logger.Debug("notebook changed", logfields.File(event.Name), slog.String("op", event.Op.String()))
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, w.fire)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return ctx.Err()
			}
			w.logger.Error("file watcher error", logfields.Error(err))

		case <-w.trigger:
			onChange()
		}
	}
}

// fire queues one run; a run already pending absorbs it.
func (w *dirWatcher) fire() {
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

// isNotebookChange reports whether event touches a notebook in a way that
// changes its content or presence.
func isNotebookChange(event fsnotify.Event) bool {
	if !fileutil.IsNotebook(filepath.Base(event.Name)) {
		return false
	}
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}
