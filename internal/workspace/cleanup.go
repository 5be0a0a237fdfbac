package workspace

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"clipforge/internal/logging"
)

// CleanupError pairs a directory path with its cleanup error.
type CleanupError struct {
	Path  string
	Error error
}

// CleanStaleResult contains the outcome of a stale directory sweep.
type CleanStaleResult struct {
	Removed []string
	Errors  []CleanupError
}

// CleanStale removes run directories whose last modification is older than
// maxAge. Runs abandoned by a crashed daemon are reclaimed this way on the
// next startup.
func (m *Manager) CleanStale(maxAge time.Duration, logger *slog.Logger) CleanStaleResult {
	result := CleanStaleResult{}

	entries, err := os.ReadDir(m.root)
	if err != nil {
		if !os.IsNotExist(err) {
			result.Errors = append(result.Errors, CleanupError{Path: m.root, Error: err})
		}
		return result
	}

	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dirPath := filepath.Join(m.root, entry.Name())
		info, err := entry.Info()
		if err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: dirPath, Error: err})
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.RemoveAll(dirPath); err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: dirPath, Error: err})
			if logger != nil {
				logger.Warn("failed to remove stale workspace directory",
					logging.String("path", dirPath),
					logging.Error(err),
					logging.String(logging.FieldEventType, "workspace_cleanup_failed"),
					logging.String(logging.FieldErrorHint, "check workspace_dir permissions"),
				)
			}
			continue
		}
		result.Removed = append(result.Removed, dirPath)
		if logger != nil {
			logger.Info("removed stale workspace directory",
				logging.String("path", dirPath),
				logging.Duration("age", time.Since(info.ModTime())),
				logging.String(logging.FieldEventType, "workspace_cleanup"),
			)
		}
	}
	return result
}
