// Package binary resolves and provisions the golangci-lint-langserver binary.
//
// # Resolution order
//
// Resolver.Resolve tries four strategies and returns the first hit:
//
//  1. Explicit override: binary.path from the worktree settings, returned
//     verbatim without an existence check.
//  2. Search path: golangci-lint-langserver on the worktree PATH.
//  3. Cache: the path recorded in InstallationState by an earlier
//     provisioning in this process, if it is still a regular file.
//  4. Remote provisioning: the latest stable GitHub release with assets.
//
// # Provisioning
//
// The release asset for the current platform is named
//
//	golangci-lint-langserver_<Linux|Darwin|Windows>_<arm64|i386|x86_64>.<tar.gz|zip>
//
// and is matched exactly. It is unpacked into a version directory
// golangci-lint-langserver-<version> under the install root. Extraction
// happens in a temporary sibling that is renamed into place, and other
// entries of the install root are removed only after the new version is in
// place, so a failed download never leaves the root without a usable binary.
// An existing version directory is reused without touching the network
// beyond the release query.
//
// # Usage
//
//	resolver, err := binary.NewResolver(binary.Config{
//	    InstallDir: "/home/user/.cache/golangci-ls",
//	    Settings:   settings.NewFileLookup(detector, logger),
//	    Releases:   binary.NewGitHubClient(binary.GitHubOptions{}),
//	    Fetcher:    binary.NewDownloader(binary.DownloaderOptions{}),
//	    Detector:   detector,
//	})
//	if err != nil {
//	    return err
//	}
//
//	var state binary.InstallationState
//	cmd, err := resolver.Command(ctx, worktree, &state)
package binary
