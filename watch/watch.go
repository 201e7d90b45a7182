// Package watch re-reads a file every time it changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 150 * time.Millisecond

// File calls onChange with the content of path once immediately and again
// after every write, until ctx is done. Bursts of writes within debounce are
// reported once.
//
// The parent directory is watched instead of the file so that editors which
// save by renaming a temporary file keep being followed.
func File(ctx context.Context, path string, debounce time.Duration, onChange func(content string)) error {
	target, err := resolve(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	if err := emit(target, onChange); err != nil {
		return err
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Debug("watcher error", "path", target, "err", err)
		case <-fire:
			fire = nil
			if err := emit(target, onChange); err != nil {
				slog.Debug("failed to read changed file", "path", target, "err", err)
			}
		}
	}
}

func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	dir, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.Base(abs)), nil
}

func emit(path string, onChange func(string)) error {
	bs, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	onChange(string(bs))
	return nil
}
