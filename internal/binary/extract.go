package binary

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Extractor handles archive extraction
type Extractor struct{}

// NewExtractor creates a new extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractTarGz extracts a .tar.gz archive to a destination directory.
// All writes go through an os.Root on destDir, so no entry, including one
// reached through a symlink, can land outside it.
func (e *Extractor) ExtractTarGz(archivePath, destDir string) error {
	archiveFile, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer archiveFile.Close()

	gzipReader, err := gzip.NewReader(archiveFile)
	if err != nil {
		return fmt.Errorf("create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	tarReader := tar.NewReader(gzipReader)

	root, err := openDestRoot(destDir)
	if err != nil {
		return err
	}
	defer root.Close()

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read tar header: %w", err)
		}

		name, err := entryName(header.Name)
		if err != nil {
			return err
		}
		if name == "" {
			continue
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := root.MkdirAll(name, 0o755); err != nil {
				return fmt.Errorf("create directory %s: %w", name, err)
			}

		case tar.TypeReg:
			if err := writeFile(root, name, tarReader, os.FileMode(header.Mode).Perm()); err != nil {
				return err
			}

		case tar.TypeSymlink:
			if err := checkLinkTarget(name, header.Linkname); err != nil {
				return err
			}
			if err := mkdirParent(root, name); err != nil {
				return err
			}
			if err := root.Symlink(header.Linkname, name); err != nil {
				return fmt.Errorf("create symlink %s: %w", name, err)
			}

		default:
			// Skip other types (char devices, block devices, etc.)
			continue
		}
	}

	return nil
}

// ExtractZip extracts a .zip archive to a destination directory
func (e *Extractor) ExtractZip(archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer reader.Close()

	root, err := openDestRoot(destDir)
	if err != nil {
		return err
	}
	defer root.Close()

	for _, f := range reader.File {
		name, err := entryName(f.Name)
		if err != nil {
			return err
		}
		if name == "" {
			continue
		}

		mode := f.Mode()
		switch {
		case mode.IsDir():
			if err := root.MkdirAll(name, 0o755); err != nil {
				return fmt.Errorf("create directory %s: %w", name, err)
			}

		case mode.IsRegular():
			rc, err := f.Open()
			if err != nil {
				return fmt.Errorf("open %s: %w", f.Name, err)
			}
			err = writeFile(root, name, rc, mode.Perm())
			rc.Close()
			if err != nil {
				return err
			}

		default:
			continue
		}
	}

	return nil
}

func openDestRoot(destDir string) (*os.Root, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("create dest dir: %w", err)
	}
	root, err := os.OpenRoot(destDir)
	if err != nil {
		return nil, fmt.Errorf("open dest dir: %w", err)
	}
	return root, nil
}

// entryName returns the archive entry name as a path relative to the
// destination. It returns "" for entries naming the destination itself and
// an error for absolute or escaping names.
func entryName(name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if clean == "." {
		return "", nil
	}
	if !filepath.IsLocal(clean) {
		return "", fmt.Errorf("illegal file path: %s", name)
	}
	return clean, nil
}

// checkLinkTarget rejects symlinks at name whose target is absolute or
// resolves outside the destination.
func checkLinkTarget(name, linkname string) error {
	target := filepath.FromSlash(linkname)
	if linkname == "" || filepath.IsAbs(target) || filepath.VolumeName(target) != "" {
		return fmt.Errorf("illegal symlink target: %s -> %s", name, linkname)
	}
	if !filepath.IsLocal(filepath.Join(filepath.Dir(name), target)) {
		return fmt.Errorf("illegal symlink target: %s -> %s", name, linkname)
	}
	return nil
}

func mkdirParent(root *os.Root, name string) error {
	dir := filepath.Dir(name)
	if dir == "." {
		return nil
	}
	if err := root.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create parent dir for %s: %w", name, err)
	}
	return nil
}

func writeFile(root *os.Root, name string, r io.Reader, perm os.FileMode) error {
	if err := mkdirParent(root, name); err != nil {
		return err
	}

	// Owner must be able to read and write what it extracted.
	outFile, err := root.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm|0o600)
	if err != nil {
		return fmt.Errorf("create file %s: %w", name, err)
	}

	if _, err := io.Copy(outFile, r); err != nil {
		outFile.Close()
		return fmt.Errorf("write file %s: %w", name, err)
	}

	if err := outFile.Close(); err != nil {
		return fmt.Errorf("close file %s: %w", name, err)
	}
	return nil
}

// SetExecutable sets executable permissions on a file
func SetExecutable(path string) error {
	if err := os.Chmod(path, 0o755); err != nil {
		return fmt.Errorf("set executable: %w", err)
	}
	return nil
}
