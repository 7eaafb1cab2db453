package binary

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// pruneResult records what a prune removed and what it could not.
type pruneResult struct {
	Removed []string
	Failed  map[string]error
}

// pruneInstallDir removes every top-level entry of root except keep and the
// install root marker.
//
// Only listing root is fatal. A failure to remove one entry is recorded and
// logged; a stale version left behind does not affect the new one.
func pruneInstallDir(root, keep string, logger *slog.Logger) (*pruneResult, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", ErrCleanup, root, err)
	}

	result := &pruneResult{Failed: map[string]error{}}
	for _, entry := range entries {
		name := entry.Name()
		if name == keep || name == InstallRootMarker {
			continue
		}

		path := filepath.Join(root, name)
		if err := os.RemoveAll(path); err != nil {
			result.Failed[name] = err
			logger.Warn("failed to remove stale install entry", "path", path, "error", err)
			continue
		}
		result.Removed = append(result.Removed, name)
	}

	if len(result.Removed) > 0 {
		logger.Debug("pruned stale install entries", "root", root, "removed", result.Removed)
	}

	return result, nil
}

// claimInstallRoot creates root if needed and makes sure it belongs to
// golangci-ls. An empty root is claimed by writing the marker; a non-empty
// root without the marker is refused because pruning would delete its
// contents.
func claimInstallRoot(root string) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("create install dir: %w", err)
	}

	marker := filepath.Join(root, InstallRootMarker)
	if _, err := os.Lstat(marker); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("check install root marker: %w", err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("list install dir: %w", err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("%w: %s is not empty and has no %s; choose a dedicated directory",
			ErrInstallRoot, root, InstallRootMarker)
	}

	content := []byte("This directory is managed by golangci-ls. Other entries are deleted.\n")
	if err := os.WriteFile(marker, content, 0o644); err != nil {
		return fmt.Errorf("write install root marker: %w", err)
	}
	return nil
}
