package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce is how long to wait after the last change to the document before
// rebuilding. Editors often write a file in several steps.
const debounce = 100 * time.Millisecond

// watch builds the track and rebuilds it whenever the document changes,
// until ctx is done. Build errors are logged, not returned, so that a broken
// document can be fixed without restarting.
func watch(ctx context.Context, o *options, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, not the file; editors replace files by renaming
	// new ones over them, which ends a watch on the file itself.
	abs, err := filepath.Abs(o.in)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	rebuild := func() {
		if err := generate(o, logger); err != nil {
			logger.Error("build failed", "err", err)
		}
	}
	rebuild()
	logger.Info("watching", "file", o.in)

	timer := time.NewTimer(debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				logger.Debug("document changed", "op", event.Op.String())
				timer.Reset(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		case <-timer.C:
			rebuild()
		}
	}
}
