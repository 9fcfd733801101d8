// Package watch reruns the build whenever the site sources change.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/pinmap/internal/checksum"
)

// RebuildFunc runs one full build.
type RebuildFunc func(ctx context.Context) error

type watcher struct {
	roots   []string
	rebuild RebuildFunc
	logger  *slog.Logger
	last    string
}

// Watch starts an fsnotify watcher on roots and calls rebuild after each
// burst of changes settles for debounce. Rebuilds are skipped when the
// content fingerprint of the roots did not change. A failing rebuild is
// logged and watching continues. Watch returns when ctx is cancelled.
//
// New directories created at runtime are automatically added to the watch
// list. Roots that do not exist when Watch starts are not watched.
func Watch(ctx context.Context, roots []string, debounce time.Duration, logger *slog.Logger, rebuild RebuildFunc) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	for _, root := range roots {
		if err := addDirsRecursive(w, root); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Warn("watcher: root missing, not watching", slog.String("path", root))
				continue
			}
			return err
		}
	}

	st := &watcher{roots: roots, rebuild: rebuild, logger: logger}
	if st.last, err = checksum.Tree(roots...); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.Any("roots", roots))

	// timer debounces bursts of events into a single rebuild.
	var timer *time.Timer
	var timerCh <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerCh = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			st.flush(ctx)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, ev.Name); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", ev.Name),
							slog.String("error", addErr.Error()))
					}
				}
			}
			logger.Debug("watcher: event", slog.String("path", ev.Name), slog.String("op", ev.Op.String()))
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// flush rebuilds when the fingerprint moved since the last build attempt.
func (st *watcher) flush(ctx context.Context) bool {
	fp, err := checksum.Tree(st.roots...)
	if err != nil {
		st.logger.Warn("watcher: fingerprint failed", slog.String("error", err.Error()))
		return false
	}
	if fp == st.last {
		st.logger.Debug("watcher: sources unchanged, skipping rebuild")
		return false
	}
	st.last = fp

	st.logger.Info("watcher: rebuilding")
	if err := st.rebuild(ctx); err != nil {
		st.logger.Error("watcher: rebuild failed", slog.String("error", err.Error()))
	}
	return true
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
