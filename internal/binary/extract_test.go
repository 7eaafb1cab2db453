package binary

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestExtractTarGz(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr bool
	}{
		{
			name: "simple_extraction",
			files: map[string]string{
				"golangci-lint-langserver": "binary",
				"LICENSE":                  "license",
			},
		},
		{
			name: "nested_directories",
			files: map[string]string{
				"docs/":           "",
				"docs/README.md":  "readme",
				"a/b/c/notes.txt": "deep",
			},
		},
		{
			name: "dot_entry",
			files: map[string]string{
				"./":                         "",
				"./golangci-lint-langserver": "binary",
			},
		},
		{
			name: "path_traversal",
			files: map[string]string{
				"../evil": "nope",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			archivePath := writeArchive(t, "test.tar.gz", tarGzBytes(t, tt.files))
			destDir := t.TempDir()

			err := NewExtractor().ExtractTarGz(archivePath, destDir)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("extraction failed: %v", err)
			}

			for name, want := range tt.files {
				if name[len(name)-1] == '/' {
					continue
				}
				content, err := os.ReadFile(filepath.Join(destDir, name))
				if err != nil {
					t.Errorf("failed to read extracted file %s: %v", name, err)
					continue
				}
				if string(content) != want {
					t.Errorf("content mismatch for %s:\ngot:  %q\nwant: %q", name, content, want)
				}
			}
		})
	}
}

func TestExtractTarGz_PreservesExecutableMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}

	archivePath := writeArchive(t, "test.tar.gz", tarGzBytes(t, map[string]string{"tool": "#!/bin/sh\n"}))
	destDir := t.TempDir()

	if err := NewExtractor().ExtractTarGz(archivePath, destDir); err != nil {
		t.Fatalf("extraction failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(destDir, "tool"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o111 == 0 {
		t.Errorf("mode = %v, want executable", info.Mode())
	}
}

func TestExtractTarGz_Symlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	content := []byte("binary")
	if err := tw.WriteHeader(&tar.Header{Name: "bin/real", Mode: 0o755, Size: int64(len(content))}); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := tw.WriteHeader(&tar.Header{Name: "link", Typeflag: tar.TypeSymlink, Linkname: "bin/real"}); err != nil {
		t.Fatal(err)
	}
	tw.Close()
	gw.Close()

	archivePath := writeArchive(t, "test.tar.gz", buf.Bytes())
	destDir := t.TempDir()

	if err := NewExtractor().ExtractTarGz(archivePath, destDir); err != nil {
		t.Fatalf("extraction failed: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(destDir, "link"))
	if err != nil {
		t.Fatalf("failed to read through symlink: %v", err)
	}
	if string(got) != "binary" {
		t.Errorf("symlink content = %q, want binary", got)
	}
}

func TestExtractTarGz_NotGzip(t *testing.T) {
	archivePath := writeArchive(t, "test.tar.gz", []byte("plain text"))
	if err := NewExtractor().ExtractTarGz(archivePath, t.TempDir()); err == nil {
		t.Error("expected error for non-gzip input")
	}
}

func TestExtractZip(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr bool
	}{
		{
			name: "simple_extraction",
			files: map[string]string{
				"golangci-lint-langserver.exe": "binary",
				"README.md":                    "readme",
			},
		},
		{
			name: "nested_directories",
			files: map[string]string{
				"docs/a/b.txt": "deep",
			},
		},
		{
			name: "path_traversal",
			files: map[string]string{
				"../../evil.exe": "nope",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			archivePath := writeArchive(t, "test.zip", zipBytes(t, tt.files))
			destDir := t.TempDir()

			err := NewExtractor().ExtractZip(archivePath, destDir)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("extraction failed: %v", err)
			}

			for name, want := range tt.files {
				content, err := os.ReadFile(filepath.Join(destDir, filepath.FromSlash(name)))
				if err != nil {
					t.Errorf("failed to read extracted file %s: %v", name, err)
					continue
				}
				if string(content) != want {
					t.Errorf("content mismatch for %s:\ngot:  %q\nwant: %q", name, content, want)
				}
			}
		})
	}
}

func TestExtractZip_NotZip(t *testing.T) {
	archivePath := writeArchive(t, "test.zip", []byte("plain text"))
	if err := NewExtractor().ExtractZip(archivePath, t.TempDir()); err == nil {
		t.Error("expected error for non-zip input")
	}
}

func TestEntryName(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{name: "file", want: "file"},
		{name: "a/b", want: filepath.Join("a", "b")},
		{name: "./a/./b/", want: filepath.Join("a", "b")},
		{name: ".", want: ""},
		{name: "./", want: ""},
		{name: "../x", wantErr: true},
		{name: "a/../../x", wantErr: true},
		{name: "/etc/passwd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := entryName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("entryName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("entryName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestCheckLinkTarget(t *testing.T) {
	tests := []struct {
		name     string
		linkname string
		wantErr  bool
	}{
		{name: "link", linkname: "bin/real"},
		{name: "bin/link", linkname: "../LICENSE"},
		{name: "link", linkname: "/tmp", wantErr: true},
		{name: "link", linkname: "../outside", wantErr: true},
		{name: "a/link", linkname: "../../outside", wantErr: true},
		{name: "link", linkname: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name+"->"+tt.linkname, func(t *testing.T) {
			err := checkLinkTarget(tt.name, tt.linkname)
			if (err != nil) != tt.wantErr {
				t.Errorf("checkLinkTarget(%q, %q) error = %v, wantErr %v", tt.name, tt.linkname, err, tt.wantErr)
			}
		})
	}
}

// symlinkArchive builds a tar.gz with a symlink entry followed by a regular
// file written beneath it.
func symlinkArchive(t *testing.T, linkTarget string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	if err := tw.WriteHeader(&tar.Header{Name: "link", Typeflag: tar.TypeSymlink, Linkname: linkTarget}); err != nil {
		t.Fatal(err)
	}
	content := []byte("escaped")
	if err := tw.WriteHeader(&tar.Header{Name: "link/evil", Mode: 0o644, Size: int64(len(content))}); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write(content); err != nil {
		t.Fatal(err)
	}
	tw.Close()
	gw.Close()
	return buf.Bytes()
}

func TestExtractTarGz_SymlinkEscape(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	base := t.TempDir()
	outside := filepath.Join(base, "outside")
	if err := os.Mkdir(outside, 0o755); err != nil {
		t.Fatal(err)
	}
	destDir := filepath.Join(base, "dest")

	tests := []struct {
		name   string
		target string
	}{
		{name: "absolute_target", target: outside},
		{name: "relative_target", target: "../outside"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			archivePath := writeArchive(t, "test.tar.gz", symlinkArchive(t, tt.target))

			if err := NewExtractor().ExtractTarGz(archivePath, destDir); err == nil {
				t.Error("expected error for escaping symlink")
			}
			if _, err := os.Stat(filepath.Join(outside, "evil")); !os.IsNotExist(err) {
				t.Errorf("archive wrote outside destDir: stat error = %v", err)
			}
		})
	}
}

func TestExtractTarGz_ExistingSymlinkInDest(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	base := t.TempDir()
	outside := filepath.Join(base, "outside")
	destDir := filepath.Join(base, "dest")
	for _, dir := range []string{outside, destDir} {
		if err := os.Mkdir(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Symlink(outside, filepath.Join(destDir, "link")); err != nil {
		t.Fatal(err)
	}

	archivePath := writeArchive(t, "test.tar.gz", tarGzBytes(t, map[string]string{"link/evil": "escaped"}))
	if err := NewExtractor().ExtractTarGz(archivePath, destDir); err == nil {
		t.Error("expected error writing through a symlink that leaves destDir")
	}
	if _, err := os.Stat(filepath.Join(outside, "evil")); !os.IsNotExist(err) {
		t.Errorf("archive wrote outside destDir: stat error = %v", err)
	}
}
