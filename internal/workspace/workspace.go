// Package workspace manages per-run scratch directories for generation runs.
//
// Each pipeline run gets a scoped directory under the configured workspace
// root. Cleanup removes only the run's own directory, never sibling runs or
// the root itself.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Manager allocates and releases scoped scratch directories.
type Manager struct {
	root string
}

// NewManager validates the workspace root and returns a Manager. The root
// directory is created if it does not exist.
func NewManager(root string) (*Manager, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("workspace root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace root: %w", err)
	}
	return &Manager{root: abs}, nil
}

// Root returns the absolute workspace root directory.
func (m *Manager) Root() string {
	return m.root
}

// Acquire creates (or reuses) the scratch directory for a run. Reuse matters
// for resume: intermediate files from a prior attempt stay available.
func (m *Manager) Acquire(videoID string) (string, error) {
	dir, err := m.dirFor(videoID)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create run workspace: %w", err)
	}
	return dir, nil
}

// Release removes the run's scratch directory and everything under it.
// Releasing a directory that no longer exists is not an error.
func (m *Manager) Release(videoID string) error {
	dir, err := m.dirFor(videoID)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove run workspace: %w", err)
	}
	return nil
}

func (m *Manager) dirFor(videoID string) (string, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return "", fmt.Errorf("video id is required")
	}
	// The id becomes a path component; reject separators outright rather than
	// sanitizing so a malformed id can never escape the root.
	if strings.ContainsAny(videoID, `/\`) || videoID == "." || videoID == ".." {
		return "", fmt.Errorf("invalid video id %q", videoID)
	}
	return filepath.Join(m.root, videoID), nil
}
