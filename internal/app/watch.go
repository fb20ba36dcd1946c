package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/vk/flywheelcfg/internal/configfile"
	"github.com/vk/flywheelcfg/internal/ctxlog"
)

// Watch validates the config at path once and then again every time the
// file is written, until ctx is cancelled. The parent directory is watched
// rather than the file so editors that save by renaming are still seen.
func (a *App) Watch(ctx context.Context, path string) error {
	ctx = a.withLogger(ctx)
	logger := ctxlog.FromContext(ctx).With("path", path)

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(abs)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	logger.Info("Watching config for changes.", "dir", dir)

	check := func() {
		res := configfile.Result{Path: path}
		res.Config, res.Err = a.loader.Load(ctx, path)
		a.report(res)
	}
	check()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Watch stopped.", "reason", ctx.Err())
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			logger.Debug("File event received.", "op", ev.Op.String())
			switch {
			case ev.Has(fsnotify.Write | fsnotify.Create):
				check()
			case ev.Has(fsnotify.Remove | fsnotify.Rename):
				fmt.Fprintf(a.outW, "GONE %s\n", path)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher reported an error.", "error", err)
		}
	}
}
