package binary

import (
	"fmt"

	"github.com/ZebulonRouseFrantzich/golangci-ls/internal/platform"
)

// AssetName returns the release asset name for key.
// Pattern: golangci-lint-langserver_{Linux|Darwin|Windows}_{arm64|i386|x86_64}.{tar.gz|zip}
func AssetName(key platform.Key) (string, error) {
	osName, err := osLabel(key.OS)
	if err != nil {
		return "", err
	}

	archName, err := archLabel(key.Arch)
	if err != nil {
		return "", err
	}

	ft, err := fileTypeFor(key.OS)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s_%s_%s.%s", BinaryName, osName, archName, ft), nil
}

// osLabel maps an OS to the goreleaser OS title used in asset names.
func osLabel(o platform.OS) (string, error) {
	switch o {
	case platform.OSLinux:
		return "Linux", nil
	case platform.OSMac:
		return "Darwin", nil
	case platform.OSWindows:
		return "Windows", nil
	default:
		return "", fmt.Errorf("unsupported OS for %s: %s", BinaryName, o)
	}
}

// archLabel maps an Arch to the architecture used in asset names.
func archLabel(a platform.Arch) (string, error) {
	switch a {
	case platform.ArchAarch64:
		return "arm64", nil
	case platform.ArchX86:
		return "i386", nil
	case platform.ArchX8664:
		return "x86_64", nil
	default:
		return "", fmt.Errorf("unsupported architecture for %s: %s", BinaryName, a)
	}
}

// fileTypeFor returns the archive format releases use on o.
func fileTypeFor(o platform.OS) (FileType, error) {
	switch o {
	case platform.OSWindows:
		return FileTypeZip, nil
	case platform.OSLinux, platform.OSMac:
		return FileTypeGzipTar, nil
	default:
		return 0, fmt.Errorf("unsupported OS for %s: %s", BinaryName, o)
	}
}

// executableName returns the file name of the server binary on o.
func executableName(o platform.OS) string {
	if o == platform.OSWindows {
		return BinaryName + ".exe"
	}
	return BinaryName
}

// VersionDirName returns the install root entry holding version.
func VersionDirName(version string) string {
	return BinaryName + "-" + version
}
