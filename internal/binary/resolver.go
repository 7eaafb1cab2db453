package binary

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZebulonRouseFrantzich/golangci-ls/internal/host"
	"github.com/ZebulonRouseFrantzich/golangci-ls/internal/launch"
	"github.com/ZebulonRouseFrantzich/golangci-ls/internal/platform"
	"github.com/ZebulonRouseFrantzich/golangci-ls/internal/settings"
)

// Config holds the collaborators of a Resolver.
type Config struct {
	// InstallDir is the root holding version directories. Required.
	InstallDir string
	// Settings provides the per-worktree binary override. Required.
	Settings settings.Lookup
	// Releases queries the release registry. Required.
	Releases ReleaseSource
	// Fetcher downloads and unpacks release assets. Required.
	Fetcher Fetcher
	// Detector reports the platform to provision for. Required.
	Detector platform.Detector
	// Status receives installation status signals. Optional.
	Status host.StatusReporter
	// Logger receives diagnostics. Optional.
	Logger *slog.Logger
}

// Resolver finds or provisions the language server binary.
type Resolver struct {
	installDir string
	settings   settings.Lookup
	releases   ReleaseSource
	fetcher    Fetcher
	detector   platform.Detector
	status     host.StatusReporter
	logger     *slog.Logger
}

// NewResolver creates a resolver.
func NewResolver(config Config) (*Resolver, error) {
	if config.InstallDir == "" {
		return nil, fmt.Errorf("InstallDir is required")
	}
	if config.Settings == nil {
		return nil, fmt.Errorf("Settings is required")
	}
	if config.Releases == nil {
		return nil, fmt.Errorf("Releases is required")
	}
	if config.Fetcher == nil {
		return nil, fmt.Errorf("Fetcher is required")
	}
	if config.Detector == nil {
		return nil, fmt.Errorf("Detector is required")
	}

	installDir, err := filepath.Abs(config.InstallDir)
	if err != nil {
		return nil, fmt.Errorf("resolve install dir: %w", err)
	}

	status := config.Status
	if status == nil {
		status = host.NopReporter{}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Resolver{
		installDir: installDir,
		settings:   config.Settings,
		releases:   config.Releases,
		fetcher:    config.Fetcher,
		detector:   config.Detector,
		status:     status,
		logger:     logger,
	}, nil
}

// InstallDir returns the absolute install root.
func (r *Resolver) InstallDir() string {
	return r.installDir
}

// Resolve returns the binary to launch for worktree. state carries the
// provisioned path between calls and is updated only when provisioning
// succeeds.
func (r *Resolver) Resolve(ctx context.Context, worktree host.Worktree, state *InstallationState) (*ResolvedBinary, error) {
	lspSettings, err := r.settings.ForWorktree(ctx, ToolID, worktree.RootPath())
	if err != nil {
		return nil, fmt.Errorf("load %s settings: %w", ToolID, err)
	}
	if path, ok := lspSettings.BinaryPath(); ok {
		r.logger.Debug("using configured binary", "path", path)
		return &ResolvedBinary{Path: path}, nil
	}

	if path, ok := worktree.Which(BinaryName); ok {
		r.logger.Debug("using binary from PATH", "path", path)
		return &ResolvedBinary{Path: path}, nil
	}

	if state != nil && state.CachedBinaryPath != "" {
		if isRegularFile(state.CachedBinaryPath) {
			r.logger.Debug("using cached binary", "path", state.CachedBinaryPath)
			return &ResolvedBinary{Path: state.CachedBinaryPath}, nil
		}
		r.logger.Debug("cached binary missing", "path", state.CachedBinaryPath)
	}

	path, err := r.provision(ctx)
	if err != nil {
		return nil, err
	}

	if state != nil {
		state.CachedBinaryPath = path
	}
	return &ResolvedBinary{Path: path}, nil
}

// Command resolves the binary and returns its launch command.
func (r *Resolver) Command(ctx context.Context, worktree host.Worktree, state *InstallationState) (launch.Command, error) {
	resolved, err := r.Resolve(ctx, worktree, state)
	if err != nil {
		return launch.Command{}, err
	}
	return launch.Build(resolved.Path), nil
}

// provision installs the latest release if needed and returns the binary path.
func (r *Resolver) provision(ctx context.Context) (string, error) {
	r.status.SetInstallationStatus(ServerID, host.StatusCheckingForUpdate)

	release, err := r.releases.LatestRelease(ctx, Repository, ReleaseOptions{
		RequireAssets: true,
		PreRelease:    false,
	})
	if err != nil {
		return "", fmt.Errorf("query latest release: %w", err)
	}

	info, err := r.detector.Detect(ctx)
	if err != nil {
		return "", fmt.Errorf("detect platform: %w", err)
	}

	assetName, err := AssetName(info.Key)
	if err != nil {
		return "", err
	}

	asset, ok := release.FindAsset(assetName)
	if !ok {
		return "", &AssetNotFoundError{Name: assetName, Version: release.Version}
	}

	if err := validateVersion(release.Version); err != nil {
		return "", err
	}

	versionDirName := VersionDirName(release.Version)
	versionDir := filepath.Join(r.installDir, versionDirName)
	binaryPath := filepath.Join(versionDir, executableName(info.Key.OS))

	if isRegularFile(binaryPath) {
		r.logger.Debug("release already installed", "version", release.Version, "path", binaryPath)
		return binaryPath, nil
	}

	if err := claimInstallRoot(r.installDir); err != nil {
		return "", err
	}

	r.status.SetInstallationStatus(ServerID, host.StatusDownloading)

	fileType, err := fileTypeFor(info.Key.OS)
	if err != nil {
		return "", err
	}

	r.logger.Info("downloading language server",
		"version", release.Version,
		"asset", asset.Name,
		"platform", info.Key.String(),
		"dest", versionDir,
	)

	if err := r.fetcher.DownloadFile(ctx, asset.DownloadURL, versionDir, fileType); err != nil {
		return "", fmt.Errorf("download %s: %w", asset.Name, err)
	}

	if !isRegularFile(binaryPath) {
		return "", fmt.Errorf("%w: %s does not contain %s", ErrExtract, asset.Name, executableName(info.Key.OS))
	}

	if info.Key.OS != platform.OSWindows {
		if err := SetExecutable(binaryPath); err != nil {
			return "", err
		}
	}

	if _, err := pruneInstallDir(r.installDir, versionDirName, r.logger); err != nil {
		return "", err
	}

	return binaryPath, nil
}

// validateVersion rejects release versions that cannot name a single
// directory inside the install root.
func validateVersion(version string) error {
	if version == "" || version == "." || version == ".." ||
		strings.ContainsAny(version, `/\`) || strings.ContainsRune(version, 0) {
		return fmt.Errorf("%w: invalid release version %q", ErrNoRelease, version)
	}
	return nil
}

// isRegularFile reports whether path exists and is a regular file.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
