// Package host models the editor-side collaborators of the resolver: the
// worktree a language server is started for and the installation status
// channel back to the editor.
package host

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

const isWindows = runtime.GOOS == "windows"

// Worktree is a project tree a language server is started for.
type Worktree interface {
	// RootPath returns the absolute root of the worktree.
	RootPath() string
	// Which returns the path of the named executable on the worktree's
	// search path.
	Which(name string) (string, bool)
}

// LocalWorktree is a worktree on the local filesystem whose search path comes
// from its environment.
type LocalWorktree struct {
	root string
	env  []string
}

// NewLocalWorktree creates a worktree rooted at root. A nil env means the
// process environment.
func NewLocalWorktree(root string, env []string) (*LocalWorktree, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if env == nil {
		env = os.Environ()
	}
	return &LocalWorktree{root: abs, env: env}, nil
}

// RootPath implements Worktree.
func (w *LocalWorktree) RootPath() string {
	return w.root
}

// Env returns a copy of the worktree environment.
func (w *LocalWorktree) Env() []string {
	return append([]string(nil), w.env...)
}

// Which implements Worktree by scanning the PATH entry of the worktree
// environment. Relative PATH entries are resolved against the worktree root.
func (w *LocalWorktree) Which(name string) (string, bool) {
	pathList := lookupEnv(w.env, "PATH")
	if pathList == "" {
		return "", false
	}

	for _, dir := range filepath.SplitList(pathList) {
		if dir == "" {
			continue
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(w.root, dir)
		}
		for _, candidate := range executableNames(name, w.env) {
			path, err := exec.LookPath(filepath.Join(dir, candidate))
			if err == nil {
				return path, true
			}
		}
	}

	return "", false
}

// lookupEnv returns the last value of key in env. Keys are matched
// case-insensitively on Windows.
func lookupEnv(env []string, key string) string {
	value := ""
	for _, kv := range env {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if k == key || (isWindows && strings.EqualFold(k, key)) {
			value = v
		}
	}
	return value
}

// executableNames returns the file names name may have on disk. On Windows
// this expands PATHEXT.
func executableNames(name string, env []string) []string {
	if !isWindows || filepath.Ext(name) != "" {
		return []string{name}
	}

	exts := lookupEnv(env, "PATHEXT")
	if exts == "" {
		exts = ".com;.exe;.bat;.cmd"
	}

	names := make([]string, 0, 4)
	for _, ext := range strings.Split(exts, ";") {
		if ext != "" {
			names = append(names, name+strings.ToLower(ext))
		}
	}
	return names
}
