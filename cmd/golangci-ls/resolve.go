package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"

	"github.com/ZebulonRouseFrantzich/golangci-ls/internal/binary"
	"github.com/ZebulonRouseFrantzich/golangci-ls/internal/host"
	"github.com/ZebulonRouseFrantzich/golangci-ls/internal/launch"
	"github.com/ZebulonRouseFrantzich/golangci-ls/internal/platform"
	"github.com/ZebulonRouseFrantzich/golangci-ls/internal/settings"
)

// WorktreeFlags selects the project whose settings and PATH are used.
type WorktreeFlags struct {
	Worktree string `help:"Project root directory." type:"path" default:"." placeholder:"DIR"`
}

// ResolveCmd prints the resolved binary path.
type ResolveCmd struct {
	WorktreeFlags `embed:""`
}

// Run resolves the binary and prints its path.
func (c *ResolveCmd) Run(a *app) error {
	cmd, _, err := a.command(c.Worktree)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, cmd.Command)
	return err
}

// CommandCmd prints the launch command as JSON.
type CommandCmd struct {
	WorktreeFlags `embed:""`
}

// Run resolves the binary and prints the launch command.
func (c *CommandCmd) Run(a *app) error {
	cmd, _, err := a.command(c.Worktree)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(cmd)
}

// RunCmd resolves the binary and runs it with stdio passthrough.
type RunCmd struct {
	WorktreeFlags `embed:""`

	Args []string `arg:"" optional:"" passthrough:"" help:"Arguments passed to the language server."`
}

// Run execs the language server and forwards its exit status.
func (c *RunCmd) Run(a *app) error {
	cmd, worktree, err := a.command(c.Worktree)
	if err != nil {
		return err
	}
	cmd.Args = append(cmd.Args, c.Args...)

	a.logger.Debug("starting language server", "command", cmd.Command, "args", cmd.Args)

	proc := cmd.ExecEnv(a.ctx, worktree.Env())
	proc.Stdin = a.stdin
	proc.Stdout = a.stdout
	proc.Stderr = a.stderr

	if err := proc.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
			return &exitCodeError{code: exitErr.ExitCode()}
		}
		return fmt.Errorf("run %s: %w", cmd.Command, err)
	}
	return nil
}

// command resolves the launch command for the worktree at root.
func (a *app) command(root string) (launch.Command, *host.LocalWorktree, error) {
	worktree, err := host.NewLocalWorktree(root, nil)
	if err != nil {
		return launch.Command{}, nil, err
	}

	resolver, err := a.newResolver()
	if err != nil {
		return launch.Command{}, nil, err
	}
	a.logger.Debug("resolving language server", "worktree", worktree.RootPath(), "install_dir", resolver.InstallDir())

	// The CLI is one process per resolution, so the cache starts empty and
	// the on-disk version directory provides reuse.
	cmd, err := resolver.Command(a.ctx, worktree, &binary.InstallationState{})
	if err != nil {
		return launch.Command{}, nil, err
	}
	return cmd, worktree, nil
}

func (a *app) newResolver() (*binary.Resolver, error) {
	detector := platform.NewDetector()
	return binary.NewResolver(binary.Config{
		InstallDir: a.config.InstallDir,
		Settings:   settings.NewFileLookup(detector, a.logger),
		Releases: binary.NewGitHubClient(binary.GitHubOptions{
			BaseURL: a.config.GitHubAPI,
			Token:   a.config.GitHubToken,
			Timeout: a.config.HTTPTimeout,
		}),
		Fetcher:  binary.NewDownloader(binary.DownloaderOptions{Timeout: a.config.HTTPTimeout}),
		Detector: detector,
		Status:   host.NewLogReporter(a.logger),
		Logger:   a.logger,
	})
}
