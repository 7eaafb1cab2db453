package binary

import (
	"errors"
	"fmt"
)

// Sentinel errors for provisioning failures. They are wrapped with detail,
// so test with errors.Is.
var (
	// ErrRegistry indicates the release registry could not be queried.
	ErrRegistry = errors.New("release registry request failed")

	// ErrNoRelease indicates no release matched the release options.
	ErrNoRelease = errors.New("no matching release found")

	// ErrAssetNotFound indicates the release has no asset for this platform.
	ErrAssetNotFound = errors.New("no matching release asset")

	// ErrDownload indicates an asset download failed.
	ErrDownload = errors.New("download failed")

	// ErrExtract indicates an archive could not be unpacked.
	ErrExtract = errors.New("extraction failed")

	// ErrInstallRoot indicates the install root is not owned by golangci-ls.
	ErrInstallRoot = errors.New("install root not managed by golangci-ls")

	// ErrCleanup indicates the install root could not be listed for pruning.
	ErrCleanup = errors.New("cleanup failed")
)

// AssetNotFoundError reports the asset name that was expected in a release.
type AssetNotFoundError struct {
	Name    string
	Version string
}

func (e *AssetNotFoundError) Error() string {
	return fmt.Sprintf("no asset found matching %q in release %s", e.Name, e.Version)
}

// Is makes AssetNotFoundError match ErrAssetNotFound.
func (e *AssetNotFoundError) Is(target error) bool {
	return target == ErrAssetNotFound
}
