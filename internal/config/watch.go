package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config file at path whenever it changes and passes each
// successfully loaded Config to onChange. Invalid edits are logged and
// skipped. The parent directory is watched rather than the file itself so
// that editors replacing the file atomically are still seen. Watch blocks
// until ctx is done.
//
// Callers decide which settings may change at runtime; the transport choice
// is not one of them.
func Watch(ctx context.Context, path string, logger *slog.Logger, onChange func(*Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating config watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	target := filepath.Clean(path)

	logger.Debug("watching config file", slog.String("path", target))

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(ev.Name) != target || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}

			cfg, loadErr := Load(target)
			if loadErr != nil {
				logger.Warn("ignoring invalid config change",
					slog.String("path", target),
					slog.String("error", loadErr.Error()),
				)

				continue
			}

			logger.Info("config file reloaded", slog.String("path", target))
			onChange(cfg)

		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}

			logger.Warn("config watcher error", slog.String("error", werr.Error()))
		}
	}
}
