package keywords

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(path, []byte("arts\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan []string, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, 20*time.Millisecond, func(kws []string, err error) {
			if err == nil {
				updates <- kws
			}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("arts\nstar\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-updates:
		if !slices.Equal(got, []string{"arts", "star"}) {
			t.Errorf("reloaded keywords = %q", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatchUnsupportedFormat(t *testing.T) {
	err := Watch(context.Background(), "words.csv", 0, func([]string, error) {})
	if err == nil {
		t.Error("Watch should reject unsupported formats")
	}
}
