package feeders

import (
	"os"
	"testing"
	"time"
)

func TestWatcher_NotifiesOnWrite(t *testing.T) {
	path := writeTempFile(t, "app.yaml", "port: 1\n")

	watcher, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	defer watcher.Close()

	changed := make(chan string, 4)
	watcher.Watch(func(p string) { changed <- p }, nil)

	if err := os.WriteFile(path, []byte("port: 2\n"), 0o600); err != nil {
		t.Fatalf("Failed to rewrite file: %v", err)
	}

	select {
	case got := <-changed:
		if got != path {
			t.Errorf("Expected change for %q, got %q", path, got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for change notification")
	}
}

func TestWatcher_MissingPath(t *testing.T) {
	if _, err := NewWatcher("/nonexistent/app.yaml"); err == nil {
		t.Fatal("Expected an error for a missing path, got nil")
	}
}

func TestWatcher_CloseStopsDelivery(t *testing.T) {
	path := writeTempFile(t, "app.yaml", "port: 1\n")

	watcher, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	watcher.Watch(func(string) {}, nil)
	if err := watcher.Close(); err != nil {
		t.Fatalf("Expected clean close, got %v", err)
	}
}
