package binary

import (
	"context"
)

const (
	// ServerID identifies the language server in status signals.
	ServerID = "golangci-lint"
	// ToolID is the settings key for the language server.
	ToolID = "golang-ci"
	// BinaryName is the conventional name of the server executable.
	BinaryName = "golangci-lint-langserver"
	// Repository is the GitHub repository releases are fetched from.
	Repository = "nametake/golangci-lint-langserver"
	// InstallRootMarker is written into an install root on first use. Only a
	// root carrying it, or an empty one, is pruned.
	InstallRootMarker = ".golangci-ls-install-root"
)

// ResolvedBinary is a server binary that can be executed.
type ResolvedBinary struct {
	Path string
}

// InstallationState remembers the provisioned binary for the lifetime of a
// process. It is owned by the caller of Resolve; the zero value is empty.
// It is not safe for concurrent use.
type InstallationState struct {
	// CachedBinaryPath is set after a successful remote provisioning.
	CachedBinaryPath string
}

// Asset is a downloadable file attached to a release.
type Asset struct {
	Name        string
	DownloadURL string
}

// Release is a snapshot of one release in the artifact registry.
type Release struct {
	Version    string
	Prerelease bool
	Draft      bool
	Assets     []Asset
}

// FindAsset returns the asset whose name equals name exactly.
func (r *Release) FindAsset(name string) (*Asset, bool) {
	for i := range r.Assets {
		if r.Assets[i].Name == name {
			return &r.Assets[i], true
		}
	}
	return nil, false
}

// ReleaseOptions filters which release counts as latest.
type ReleaseOptions struct {
	// RequireAssets skips releases without any assets.
	RequireAssets bool
	// PreRelease allows prereleases to be returned.
	PreRelease bool
}

// matches reports whether r qualifies under the options. Drafts never do.
func (o ReleaseOptions) matches(r *Release) bool {
	if r.Draft {
		return false
	}
	if r.Prerelease && !o.PreRelease {
		return false
	}
	if o.RequireAssets && len(r.Assets) == 0 {
		return false
	}
	return true
}

// ReleaseSource queries the artifact registry.
type ReleaseSource interface {
	// LatestRelease returns the newest release of repo matching opts.
	LatestRelease(ctx context.Context, repo string, opts ReleaseOptions) (*Release, error)
}

// FileType is the archive format of a downloaded asset.
type FileType int

const (
	FileTypeGzipTar FileType = iota
	FileTypeZip
)

// String returns the conventional file extension without the leading dot.
func (f FileType) String() string {
	switch f {
	case FileTypeGzipTar:
		return "tar.gz"
	case FileTypeZip:
		return "zip"
	default:
		return "unknown"
	}
}

// Fetcher downloads an archive and unpacks it into a directory.
type Fetcher interface {
	// DownloadFile fetches url and extracts it into destDir as fileType.
	// destDir is replaced when the operation succeeds.
	DownloadFile(ctx context.Context, url, destDir string, fileType FileType) error
}
