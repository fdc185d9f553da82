// Package watch reloads configuration when the config file changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fatimanet/hr-mcp-server/internal/audit"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher observes a config file and applies changes after a debounce
// window, so rapid editor write sequences trigger a single reload.
type Watcher struct {
	// Path is the config file to observe.
	Path string
	// Apply re-renders and re-loads the config; a failed Apply keeps
	// the previous dataset in place.
	Apply func() error
	// Logger is used for structured logging.
	Logger *slog.Logger
	// Audit records successful reloads.
	Audit audit.Logger
	// Debounce overrides the debounce window.
	Debounce time.Duration
}

// Run blocks watching the config file until ctx is done.
func (w Watcher) Run(ctx context.Context) error {
	if w.Apply == nil {
		return fmt.Errorf("apply is nil")
	}
	if w.Path == "" {
		return fmt.Errorf("path is empty")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors and configmap mounts replace the
	// file instead of writing it in place.
	if err := watcher.Add(filepath.Dir(w.Path)); err != nil {
		return fmt.Errorf("watch %s: %w", w.Path, err)
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	target := filepath.Clean(w.Path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)
		case <-timer.C:
			if err := w.Apply(); err != nil {
				if w.Logger != nil {
					w.Logger.Warn("config reload failed", "path", w.Path, "error", err)
				}
				continue
			}
			if w.Logger != nil {
				w.Logger.Info("config reloaded", "path", w.Path)
			}
			if w.Audit != nil {
				w.Audit.Record(ctx, audit.Event{Type: audit.TypeReload, Reason: w.Path})
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if w.Logger != nil {
				w.Logger.Warn("watch error", "error", err)
			}
		}
	}
}
