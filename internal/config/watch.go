package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the configuration whenever path is written or replaced and
// passes the result to onChange. A reload that fails validation is reported
// through the error argument. Watch blocks until ctx is cancelled.
//
// The parent directory is watched rather than the file itself so editors that
// save by rename keep triggering reloads.
func (l *Loader) Watch(ctx context.Context, path string, onChange func(*Config, error)) error {
	if path == "" {
		return fmt.Errorf("no config file to watch")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !isReloadEvent(event, abs) {
				continue
			}
			onChange(l.LoadConfig(abs))

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			onChange(nil, fmt.Errorf("watcher error: %w", err))
		}
	}
}

func isReloadEvent(event fsnotify.Event, target string) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil || name != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
