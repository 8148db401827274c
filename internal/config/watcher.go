package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 100 * time.Millisecond

// Watcher reloads a config file when it changes on disk.
type Watcher struct {
	path     string
	flags    Flags
	fs       *fsnotify.Watcher
	onChange func(Config)
}

// NewWatcher watches the directory of path, so editors that replace the file
// on save are still seen. onChange receives each successfully resolved and
// validated reload.
func NewWatcher(path string, flags Flags, onChange func(Config)) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: create watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(path)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	return &Watcher{path: path, flags: flags, fs: fs, onChange: onChange}, nil
}

// Run processes events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, w.reload)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			slog.Warn("config watch error", "path", w.path, "error", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		slog.Warn("config reload failed", "error", err)
		return
	}
	cfg.Resolve(w.flags)
	if err := cfg.Validate(); err != nil {
		slog.Warn("config reload rejected", "error", err)
		return
	}
	slog.Info("config reloaded", "path", w.path)
	w.onChange(cfg)
}
