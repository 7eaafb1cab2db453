// Package launch describes how the host starts a resolved language server.
package launch

import (
	"context"
	"os"
	"os/exec"
	"slices"
)

// Command is the process invocation handed to the host. The host spawns and
// supervises the process; Env entries are added to the host environment.
type Command struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env"`
}

// Build returns the invocation for the binary at path: no arguments and no
// extra environment.
func Build(path string) Command {
	return Command{
		Command: path,
		Args:    []string{},
		Env:     map[string]string{},
	}
}

// Exec converts c into an *exec.Cmd that inherits the process environment.
// Stdio is left for the caller to wire.
func (c Command) Exec(ctx context.Context) *exec.Cmd {
	return c.ExecEnv(ctx, nil)
}

// ExecEnv is like Exec but starts from environ instead of the process
// environment when environ is non-nil. Env entries are appended last so they
// take precedence.
func (c Command) ExecEnv(ctx context.Context, environ []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.Command, c.Args...)
	if environ == nil && len(c.Env) == 0 {
		return cmd
	}
	if environ == nil {
		environ = os.Environ()
	}
	cmd.Env = slices.Clone(environ)
	for k, v := range c.Env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	return cmd
}
