// Package testutil provides utilities for testing golangci-ls in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Env describes the isolated directories created by SetupTestEnv.
type Env struct {
	// InstallDir is exported as GOLANGCI_LS_INSTALL_DIR.
	InstallDir string
	// CacheDir is exported as XDG_CACHE_HOME.
	CacheDir string
	// BinDir is the only PATH entry.
	BinDir string
	// Worktree is an empty project root.
	Worktree string
}

// SetupTestEnv points every golangci-ls environment variable at a fresh
// temp directory so tests never touch a real install root, a real
// language server on PATH, or api.github.com.
//
// Directories are removed by t.TempDir(); callers don't clean up.
func SetupTestEnv(t *testing.T) Env {
	t.Helper()

	tmpDir := t.TempDir()
	e := Env{
		InstallDir: filepath.Join(tmpDir, "install"),
		CacheDir:   filepath.Join(tmpDir, "cache"),
		BinDir:     filepath.Join(tmpDir, "bin"),
		Worktree:   filepath.Join(tmpDir, "worktree"),
	}

	for _, dir := range []string{e.InstallDir, e.CacheDir, e.BinDir, e.Worktree} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create test directory %s: %v", dir, err)
		}
	}

	t.Setenv("GOLANGCI_LS_INSTALL_DIR", e.InstallDir)
	t.Setenv("XDG_CACHE_HOME", e.CacheDir)
	t.Setenv("PATH", e.BinDir)

	// Unreachable registry; tests that need one start an httptest server.
	t.Setenv("GOLANGCI_LS_GITHUB_API", "http://127.0.0.1:1")
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GOLANGCI_LS_HTTP_TIMEOUT", "0s")
	t.Setenv("GOLANGCI_LS_LOG_LEVEL", "info")

	return e
}

// WriteExecutable creates an executable file named name in dir and returns
// its path.
func WriteExecutable(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("failed to write executable %s: %v", path, err)
	}
	return path
}
