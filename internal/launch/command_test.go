package launch

import (
	"context"
	"encoding/json"
	"slices"
	"testing"
)

func TestBuild(t *testing.T) {
	cmd := Build("/opt/golangci-lint-langserver")

	if cmd.Command != "/opt/golangci-lint-langserver" {
		t.Errorf("Command = %q", cmd.Command)
	}
	if cmd.Args == nil || len(cmd.Args) != 0 {
		t.Errorf("Args = %#v, want empty non-nil slice", cmd.Args)
	}
	if cmd.Env == nil || len(cmd.Env) != 0 {
		t.Errorf("Env = %#v, want empty non-nil map", cmd.Env)
	}
}

func TestBuild_JSON(t *testing.T) {
	data, err := json.Marshal(Build("golangci-lint-langserver"))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"command":"golangci-lint-langserver","args":[],"env":{}}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}

func TestCommand_Exec(t *testing.T) {
	cmd := Build("/bin/true").Exec(context.Background())

	if cmd.Path != "/bin/true" {
		t.Errorf("Path = %q, want /bin/true", cmd.Path)
	}
	if !slices.Equal(cmd.Args, []string{"/bin/true"}) {
		t.Errorf("Args = %v, want [/bin/true]", cmd.Args)
	}
	if cmd.Env != nil {
		t.Errorf("Env = %v, want nil (inherit)", cmd.Env)
	}
}

func TestCommand_ExecWithEnv(t *testing.T) {
	c := Build("/bin/true")
	c.Env["GOLANGCI_LINT_CACHE"] = "/tmp/cache"

	cmd := c.Exec(context.Background())
	if !slices.Contains(cmd.Env, "GOLANGCI_LINT_CACHE=/tmp/cache") {
		t.Errorf("Env missing override: %v", cmd.Env)
	}
}

func TestCommand_ExecEnv(t *testing.T) {
	c := Build("/bin/true")
	c.Env["GOLANGCI_LINT_CACHE"] = "/tmp/cache"
	environ := []string{"PATH=/worktree/bin", "HOME=/home/dev"}

	cmd := c.ExecEnv(context.Background(), environ)

	want := []string{"PATH=/worktree/bin", "HOME=/home/dev", "GOLANGCI_LINT_CACHE=/tmp/cache"}
	if !slices.Equal(cmd.Env, want) {
		t.Errorf("Env = %v, want %v", cmd.Env, want)
	}
	if len(environ) != 2 {
		t.Errorf("caller environment modified: %v", environ)
	}
}

func TestCommand_ExecEnvEmpty(t *testing.T) {
	cmd := Build("/bin/true").ExecEnv(context.Background(), []string{})
	if cmd.Env == nil || len(cmd.Env) != 0 {
		t.Errorf("Env = %#v, want empty non-nil (no inheritance)", cmd.Env)
	}
}
