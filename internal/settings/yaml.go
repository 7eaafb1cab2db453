package settings

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes YAML settings and extracts the settings for toolID.
// Like TOML, unknown keys are rejected.
func ParseYAML(data []byte, toolID string) (*LspSettings, error) {
	var file settingsFile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, &ParseError{
			Message: "YAML error",
			Detail:  err.Error(),
		}
	}

	return file.forTool(toolID)
}
