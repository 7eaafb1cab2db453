package settings

import (
	"errors"
	"testing"
)

func TestParseTOML(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantNil  bool
		wantPath string
		wantErr  bool
	}{
		{
			name:    "empty",
			data:    ``,
			wantNil: true,
		},
		{
			name: "binary path",
			data: `
[lsp.golang-ci.binary]
path = "/opt/bin/golangci-lint-langserver"
`,
			wantPath: "/opt/bin/golangci-lint-langserver",
		},
		{
			name: "other tool",
			data: `
[lsp.gopls.binary]
path = "/usr/bin/gopls"
`,
			wantNil: true,
		},
		{
			name: "tool without binary",
			data: `
[lsp.golang-ci]
`,
		},
		{
			name: "binary without path",
			data: `
[lsp.golang-ci.binary]
`,
		},
		{
			name: "unknown key",
			data: `
[lsp.golang-ci.binary]
pth = "/typo"
`,
			wantErr: true,
		},
		{
			name: "wrong type",
			data: `
[lsp.golang-ci.binary]
path = 12
`,
			wantErr: true,
		},
		{
			name: "blank path",
			data: `
[lsp.golang-ci.binary]
path = ""
`,
			wantErr: true,
		},
		{
			name:    "syntax error",
			data:    `[lsp`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseTOML([]byte(tt.data), toolID)
			if tt.wantErr {
				var parseErr *ParseError
				if !errors.As(err, &parseErr) {
					t.Fatalf("ParseTOML() error = %v, want *ParseError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTOML() error = %v", err)
			}
			if tt.wantNil {
				if s != nil {
					t.Errorf("ParseTOML() = %+v, want nil", s)
				}
				return
			}
			if s == nil {
				t.Fatal("ParseTOML() = nil, want settings")
			}
			path, ok := s.BinaryPath()
			if tt.wantPath == "" {
				if ok {
					t.Errorf("BinaryPath() = %q, want unset", path)
				}
				return
			}
			if !ok || path != tt.wantPath {
				t.Errorf("BinaryPath() = %q, %v, want %q", path, ok, tt.wantPath)
			}
		})
	}
}
