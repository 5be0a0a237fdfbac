package workspace_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"clipforge/internal/logging"
	"clipforge/internal/workspace"
)

func TestAcquireAndRelease(t *testing.T) {
	manager, err := workspace.NewManager(filepath.Join(t.TempDir(), "workspace"))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	dir, err := manager.Acquire("vid-1")
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "narration.mp3"), []byte("audio"), 0o644); err != nil {
		t.Fatalf("write scratch file: %v", err)
	}

	// Re-acquiring on resume must keep prior intermediate files.
	again, err := manager.Acquire("vid-1")
	if err != nil {
		t.Fatalf("second Acquire failed: %v", err)
	}
	if again != dir {
		t.Fatalf("expected stable run directory, got %s then %s", dir, again)
	}
	if _, err := os.Stat(filepath.Join(dir, "narration.mp3")); err != nil {
		t.Fatalf("expected scratch file to survive reacquire: %v", err)
	}

	if err := manager.Release("vid-1"); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("expected run directory removed, stat err = %v", err)
	}
	if err := manager.Release("vid-1"); err != nil {
		t.Fatalf("expected repeat Release to be a no-op, got %v", err)
	}
}

func TestReleaseScopedToRun(t *testing.T) {
	manager, err := workspace.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	first, err := manager.Acquire("vid-1")
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	second, err := manager.Acquire("vid-2")
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	if err := manager.Release("vid-1"); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if _, err := os.Stat(first); !os.IsNotExist(err) {
		t.Fatal("expected released directory gone")
	}
	if _, err := os.Stat(second); err != nil {
		t.Fatalf("sibling run directory must survive: %v", err)
	}
	if _, err := os.Stat(manager.Root()); err != nil {
		t.Fatalf("workspace root must survive: %v", err)
	}
}

func TestRejectsUnsafeIDs(t *testing.T) {
	manager, err := workspace.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	for _, id := range []string{"", "..", "a/b", `a\b`} {
		if _, err := manager.Acquire(id); err == nil {
			t.Fatalf("expected Acquire(%q) to fail", id)
		}
	}
}

func TestCleanStale(t *testing.T) {
	manager, err := workspace.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	stale, err := manager.Acquire("vid-old")
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	fresh, err := manager.Acquire("vid-new")
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	old := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}

	result := manager.CleanStale(24*time.Hour, logging.NewNop())
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected cleanup errors: %#v", result.Errors)
	}
	if len(result.Removed) != 1 || result.Removed[0] != stale {
		t.Fatalf("expected only stale directory removed, got %#v", result.Removed)
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Fatalf("fresh directory must survive: %v", err)
	}
}
