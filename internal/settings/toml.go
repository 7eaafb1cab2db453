package settings

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// settingsFile is the layout shared by the TOML and YAML settings files.
type settingsFile struct {
	LSP map[string]fileLspSettings `toml:"lsp" yaml:"lsp"`
}

type fileLspSettings struct {
	Binary *fileBinarySettings `toml:"binary" yaml:"binary"`
}

type fileBinarySettings struct {
	Path *string `toml:"path" yaml:"path"`
}

// forTool converts the entry for toolID. A missing entry yields nil.
func (f *settingsFile) forTool(toolID string) (*LspSettings, error) {
	tool, ok := f.LSP[toolID]
	if !ok {
		return nil, nil
	}

	s := &LspSettings{}
	if tool.Binary == nil {
		return s, nil
	}

	s.Binary = &BinarySettings{}
	if tool.Binary.Path != nil {
		if err := validatePath(*tool.Binary.Path); err != nil {
			return nil, err
		}
		s.Binary.Path = *tool.Binary.Path
	}

	return s, nil
}

// ParseTOML decodes TOML settings and extracts the settings for toolID.
// Unknown keys are rejected so that typos do not silently drop an override.
func ParseTOML(data []byte, toolID string) (*LspSettings, error) {
	var file settingsFile

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, tomlParseError(err)
	}

	return file.forTool(toolID)
}

func tomlParseError(err error) *ParseError {
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return &ParseError{
			Message: "TOML syntax error",
			Detail:  fmt.Sprintf("%s (line %d, column %d)", decodeErr.Error(), row, col),
		}
	}

	var strictErr *toml.StrictMissingError
	if errors.As(err, &strictErr) {
		return &ParseError{
			Message: "unknown settings key",
			Detail:  strictErr.String(),
		}
	}

	return &ParseError{
		Message: "TOML error",
		Detail:  err.Error(),
	}
}
