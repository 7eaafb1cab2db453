package binary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// maxRedirects bounds redirects; GitHub asset downloads redirect once to
// their storage host.
const maxRedirects = 10

// DownloaderOptions configures a Downloader.
type DownloaderOptions struct {
	// Timeout bounds each download. Zero means no client timeout.
	Timeout time.Duration
	// HTTPClient replaces the default client; Timeout is then ignored.
	HTTPClient *http.Client
}

// Downloader implements Fetcher over HTTP.
type Downloader struct {
	client    *http.Client
	userAgent string
	extractor *Extractor
}

// NewDownloader creates a new downloader
func NewDownloader(opts DownloaderOptions) *Downloader {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		}
	}

	return &Downloader{
		client:    client,
		userAgent: DefaultUserAgent,
		extractor: NewExtractor(),
	}
}

// DownloadFile implements Fetcher. The archive is streamed to a temporary
// file and unpacked into a temporary sibling of destDir, which is renamed
// onto destDir only once extraction has finished. A failed call leaves
// destDir as it was.
func (d *Downloader) DownloadFile(ctx context.Context, url, destDir string, fileType FileType) error {
	parent := filepath.Dir(destDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("create install dir: %w", err)
	}

	archivePath, err := d.fetch(ctx, url, parent)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDownload, url, err)
	}
	defer os.Remove(archivePath)

	stageDir, err := os.MkdirTemp(parent, filepath.Base(destDir)+".tmp-")
	if err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	defer os.RemoveAll(stageDir)

	switch fileType {
	case FileTypeGzipTar:
		err = d.extractor.ExtractTarGz(archivePath, stageDir)
	case FileTypeZip:
		err = d.extractor.ExtractZip(archivePath, stageDir)
	default:
		err = fmt.Errorf("unsupported file type: %s", fileType)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExtract, err)
	}

	// destDir only exists here when a previous attempt left it incomplete.
	if err := os.RemoveAll(destDir); err != nil {
		return fmt.Errorf("remove incomplete %s: %w", destDir, err)
	}
	if err := os.Rename(stageDir, destDir); err != nil {
		return fmt.Errorf("rename staging dir: %w", err)
	}

	return nil
}

// fetch downloads url into a new temporary file in dir and returns its path.
func (d *Downloader) fetch(ctx context.Context, url, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	tmpFile, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("write archive: %w", err)
	}

	return tmpPath, nil
}
