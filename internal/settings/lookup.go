package settings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/golangci-ls/internal/platform"
)

// FileLookup reads settings from a file in the worktree root.
type FileLookup struct {
	lua    *LuaParser
	logger *slog.Logger
}

// NewFileLookup creates a lookup that evaluates Lua settings with the
// platform reported by detector.
func NewFileLookup(detector platform.Detector, logger *slog.Logger) *FileLookup {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FileLookup{
		lua:    NewLuaParser(detector),
		logger: logger,
	}
}

// ForWorktree implements Lookup. Files are tried in the order Lua, TOML,
// YAML and only the first one found is read.
func (l *FileLookup) ForWorktree(ctx context.Context, toolID, root string) (*LspSettings, error) {
	if root == "" {
		return nil, nil
	}

	luaPath := filepath.Join(root, LuaFileName)
	data, err := readSettingsFile(luaPath)
	if err != nil {
		return nil, err
	}
	if data != nil {
		l.logger.Debug("reading settings", "file", luaPath, "tool", toolID)
		s, err := l.lua.ParseString(ctx, string(data), toolID)
		return s, withFile(err, luaPath)
	}

	tomlPath := filepath.Join(root, TOMLFileName)
	data, err = readSettingsFile(tomlPath)
	if err != nil {
		return nil, err
	}
	if data != nil {
		l.logger.Debug("reading settings", "file", tomlPath, "tool", toolID)
		s, err := ParseTOML(data, toolID)
		return s, withFile(err, tomlPath)
	}

	yamlPath := filepath.Join(root, YAMLFileName)
	data, err = readSettingsFile(yamlPath)
	if err != nil {
		return nil, err
	}
	if data != nil {
		l.logger.Debug("reading settings", "file", yamlPath, "tool", toolID)
		s, err := ParseYAML(data, toolID)
		return s, withFile(err, yamlPath)
	}

	return nil, nil
}

// readSettingsFile returns nil data when path does not exist.
func readSettingsFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}
	return data, nil
}

// withFile records the source file on parse errors.
func withFile(err error, path string) error {
	var parseErr *ParseError
	if errors.As(err, &parseErr) && parseErr.File == "" {
		parseErr.File = path
	}
	return err
}
