package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ZebulonRouseFrantzich/golangci-ls/internal/envconfig"
)

// version will be set at build time via -ldflags
var version = "v0.1.0-dev"

// CLI is the command-line interface.
type CLI struct {
	InstallDir string `help:"Dedicated install root for downloaded servers (overrides GOLANGCI_LS_INSTALL_DIR). Other entries in it are deleted; a non-empty directory not created by golangci-ls is refused." type:"path" placeholder:"DIR"`
	Verbose    bool   `short:"v" help:"Enable debug logging."`

	Resolve ResolveCmd `cmd:"" help:"Print the path of the language server binary."`
	Command CommandCmd `cmd:"" help:"Print the launch command as JSON."`
	Run     RunCmd     `cmd:"" help:"Resolve the language server and run it on stdio."`
	Version VersionCmd `cmd:"" help:"Print the version."`
}

// app carries what every command needs.
type app struct {
	ctx    context.Context
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	config *envconfig.Config
	logger *slog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute parses args, runs the selected command and returns the process
// exit code.
func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("golangci-ls"),
		kong.Description("Locate, provision and launch golangci-lint-langserver."),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%v", err)
		return 2
	}

	config, err := envconfig.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if cli.InstallDir != "" {
		config.InstallDir = cli.InstallDir
	}

	logger, err := newLogger(stderr, config, cli.Verbose)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	a := &app{
		ctx:    ctx,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		config: config,
		logger: logger,
	}

	if err := kctx.Run(a); err != nil {
		var exitErr *exitCodeError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// newLogger builds a text logger on w. verbose forces debug level.
func newLogger(w io.Writer, config *envconfig.Config, verbose bool) (*slog.Logger, error) {
	level, err := config.Level()
	if err != nil {
		return nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// exitCodeError reports a child exit status to forward as our own.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("language server exited with status %d", e.code)
}

// VersionCmd prints the version.
type VersionCmd struct{}

// Run prints the version.
func (c *VersionCmd) Run(a *app) error {
	_, err := fmt.Fprintf(a.stdout, "golangci-ls %s\n", version)
	return err
}
