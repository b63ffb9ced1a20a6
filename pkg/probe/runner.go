package probe

import (
	"context"
	"os/exec"
)

// Runner abstracts executable lookup and invocation so probes can be
// exercised without the real tools installed.
type Runner interface {
	// LookPath resolves name to an executable path.
	LookPath(name string) (string, error)

	// Output runs path with args and returns its standard output. A
	// non-zero exit status is an error.
	Output(ctx context.Context, path string, args ...string) ([]byte, error)
}

// ExecRunner is the Runner backed by os/exec.
type ExecRunner struct{}

// LookPath implements Runner.
func (ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Output implements Runner.
func (ExecRunner) Output(ctx context.Context, path string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, path, args...).Output()
}
