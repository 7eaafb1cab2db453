// Package settings reads per-worktree language server settings.
//
// Settings live in one file at the worktree root: Lua (.golangci-ls.lua,
// evaluated in a sandboxed gopher-lua VM with a read-only platform table),
// TOML (.golangci-ls.toml) or YAML (.golangci-ls.yaml). Each maps tool
// identifiers to LspSettings:
//
//	lsp = {
//	    ["golang-ci"] = {
//	        binary = { path = "/opt/bin/golangci-lint-langserver" },
//	    },
//	}
//
//	[lsp.golang-ci.binary]
//	path = "/opt/bin/golangci-lint-langserver"
//
//	lsp:
//	  golang-ci:
//	    binary:
//	      path: /opt/bin/golangci-lint-langserver
package settings

import (
	"context"
	"fmt"
	"strings"
)

const (
	// LuaFileName is the Lua settings file looked up in a worktree root.
	LuaFileName = ".golangci-ls.lua"
	// TOMLFileName is the TOML settings file, used when no Lua file exists.
	TOMLFileName = ".golangci-ls.toml"
	// YAMLFileName is read when neither the Lua nor the TOML file exists.
	YAMLFileName = ".golangci-ls.yaml"
)

// LspSettings holds the settings for one language server.
type LspSettings struct {
	Binary *BinarySettings `toml:"binary"`
}

// BinarySettings configures which server binary to launch.
type BinarySettings struct {
	// Path is used verbatim as the server binary when set.
	Path string `toml:"path"`
}

// BinaryPath returns the configured binary path, if any.
func (s *LspSettings) BinaryPath() (string, bool) {
	if s == nil || s.Binary == nil || s.Binary.Path == "" {
		return "", false
	}
	return s.Binary.Path, true
}

// Lookup resolves settings for a tool within a worktree.
type Lookup interface {
	// ForWorktree returns the settings for toolID in the worktree rooted at
	// root. It returns nil settings and a nil error when nothing is configured.
	ForWorktree(ctx context.Context, toolID, root string) (*LspSettings, error)
}

// ParseError represents a malformed settings file.
type ParseError struct {
	File    string // settings file path
	Message string // user-friendly message
	Detail  string // technical details
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", e.File, e.Message, e.Detail)
}

// validatePath rejects a binary path that is present but blank.
func validatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return &ParseError{
			Message: "invalid 'binary.path' value",
			Detail:  "path must not be empty",
		}
	}
	return nil
}
