package settings

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/ZebulonRouseFrantzich/golangci-ls/internal/platform"
)

const (
	luaGlobalLSP      = "lsp"
	luaFieldBinary    = "binary"
	luaFieldPath      = "path"
	luaGlobalPlatform = "platform"
)

// LuaParser evaluates Lua settings code.
type LuaParser struct {
	detector platform.Detector
}

// NewLuaParser creates a parser that injects the platform table reported by
// detector. A nil detector leaves the platform global unset.
func NewLuaParser(detector platform.Detector) *LuaParser {
	return &LuaParser{detector: detector}
}

// ParseString evaluates luaCode and extracts the settings for toolID.
func (p *LuaParser) ParseString(ctx context.Context, luaCode, toolID string) (*LspSettings, error) {
	L := newSandboxedVM()
	defer L.Close()
	L.SetContext(ctx)

	if p.detector != nil {
		info, err := p.detector.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("platform detection failed: %w", err)
		}
		if err := platform.InjectPlatformTable(L, info); err != nil {
			return nil, fmt.Errorf("inject %s table: %w", luaGlobalPlatform, err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &ParseError{
			Message: "Lua error",
			Detail:  err.Error(),
		}
	}

	return extractSettings(L, toolID)
}

// extractSettings reads lsp[toolID] from the global "lsp" table.
func extractSettings(L *lua.LState, toolID string) (*LspSettings, error) {
	lspVal := L.GetGlobal(luaGlobalLSP)
	switch lspVal.Type() {
	case lua.LTNil:
		return nil, nil
	case lua.LTTable:
	default:
		return nil, &ParseError{
			Message: "invalid 'lsp' value",
			Detail:  fmt.Sprintf("expected table, got %s", lspVal.Type()),
		}
	}

	toolVal := lspVal.(*lua.LTable).RawGetString(toolID)
	switch toolVal.Type() {
	case lua.LTNil:
		return nil, nil
	case lua.LTTable:
	default:
		return nil, &ParseError{
			Message: fmt.Sprintf("invalid lsp[%q] value", toolID),
			Detail:  fmt.Sprintf("expected table, got %s", toolVal.Type()),
		}
	}

	s := &LspSettings{}

	binaryVal := toolVal.(*lua.LTable).RawGetString(luaFieldBinary)
	switch binaryVal.Type() {
	case lua.LTNil:
		return s, nil
	case lua.LTTable:
	default:
		return nil, &ParseError{
			Message: "invalid 'binary' value",
			Detail:  fmt.Sprintf("expected table, got %s", binaryVal.Type()),
		}
	}

	binary, err := extractBinary(binaryVal.(*lua.LTable))
	if err != nil {
		return nil, err
	}
	s.Binary = binary

	return s, nil
}

func extractBinary(table *lua.LTable) (*BinarySettings, error) {
	binary := &BinarySettings{}

	pathVal := table.RawGetString(luaFieldPath)
	switch pathVal.Type() {
	case lua.LTNil:
	case lua.LTString:
		if err := validatePath(pathVal.String()); err != nil {
			return nil, err
		}
		binary.Path = pathVal.String()
	default:
		return nil, &ParseError{
			Message: "invalid 'binary.path' value",
			Detail:  fmt.Sprintf("expected string, got %s", pathVal.Type()),
		}
	}

	return binary, nil
}
