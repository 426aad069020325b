package config

import (
	"fmt"
	"os"
	"path/filepath"

	"log/slog"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// DaemonSelection is the hot-reloadable part of the daemon config file:
// which checks the daemon runs each cycle.
type DaemonSelection struct {
	Checks []string `yaml:"checks"`
}

// ReadDaemonSelection parses a daemon selection file.
func ReadDaemonSelection(path string) (DaemonSelection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DaemonSelection{}, fmt.Errorf("reading daemon selection: %w", err)
	}
	var sel DaemonSelection
	if err := yaml.Unmarshal(data, &sel); err != nil {
		return DaemonSelection{}, fmt.Errorf("parsing daemon selection: %w", err)
	}
	return sel, nil
}

// WatchDaemonSelection re-reads path whenever it changes and hands the new
// selection to apply. Watching stops when the returned closer is called.
// Editors replace files rather than rewriting them, so the parent directory
// is watched and events are filtered by name.
func WatchDaemonSelection(path string, logger *slog.Logger, apply func(DaemonSelection) error) (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				sel, err := ReadDaemonSelection(path)
				if err != nil {
					logger.Warn("ignoring unreadable daemon selection", "error", err)
					continue
				}
				if err := apply(sel); err != nil {
					logger.Warn("rejected daemon selection", "error", err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", "error", err)
			}
		}
	}()

	return watcher.Close, nil
}
