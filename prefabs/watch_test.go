package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsSpecEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "candle_red.yaml"), []byte("color: red\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-w.Events:
			if c.Name != "candle_red.yaml" {
				t.Fatalf("unexpected change %+v", c)
			}
			if c.Kind != ChangeSpec {
				t.Fatalf("expected spec change, got %v", c.Kind)
			}
			return
		case err := <-w.Errors:
			t.Fatalf("watch error: %v", err)
		case <-deadline:
			t.Fatalf("timed out waiting for change")
		}
	}
}

func TestWatcherPollAndClose(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if _, ok := w.Poll(); ok {
		t.Fatalf("expected no pending changes")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestWatcherMissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for missing dir")
	}
}
