package keywords

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period Watch waits for before reloading.
const DefaultDebounce = 200 * time.Millisecond

// Watch reloads the keyword file at path whenever it changes and calls
// onChange with the result. Bursts of events within debounce collapse into
// one reload. The parent directory is watched rather than the file so that
// editors replacing the file by rename are still seen.
//
// onChange runs on the watcher goroutine. Watch blocks until ctx is done and
// then returns nil.
func Watch(ctx context.Context, path string, debounce time.Duration, onChange func([]string, error)) error {
	if _, err := FormatFromPath(path); err != nil {
		return err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			onChange(nil, fmt.Errorf("watch %s: %w", path, err))

		case <-timer.C:
			kws, err := Load(abs)
			onChange(kws, err)
		}
	}
}
