package build

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Invocation is a fully assembled engine command line.
type Invocation struct {
	Path string
	Args []string
	Dir  string
	Env  []string // KEY=VALUE pairs added to the inherited environment
}

// Arg appends arguments.
func (i *Invocation) Arg(args ...string) {
	i.Args = append(i.Args, args...)
}

func (i Invocation) String() string {
	return strings.Join(append([]string{i.Path}, i.Args...), " ")
}

// Runner executes engine invocations.
type Runner interface {
	// Run executes inv, streaming its output, and fails on a non-zero exit.
	Run(ctx context.Context, inv Invocation) error
	// Output executes inv and returns its stdout.
	Output(ctx context.Context, inv Invocation) ([]byte, error)
}

// CommandError reports an engine invocation that failed to start or exited non-zero.
type CommandError struct {
	Command  string
	ExitCode int    // -1 when the process did not exit normally
	Stderr   string // tail of the engine's diagnostic output
	Err      error
}

func (e *CommandError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("%s: exit code %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// stderrTail bounds how much diagnostic output a CommandError keeps.
const stderrTail = 4096

// ExecRunner runs invocations with os/exec.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner creates a runner writing to the process stdout and stderr.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func (r *ExecRunner) Run(ctx context.Context, inv Invocation) error {
	var tail tailBuffer
	cmd := r.command(ctx, inv)
	cmd.Stdout = r.Stdout
	cmd.Stderr = io.MultiWriter(r.Stderr, &tail)

	if err := cmd.Run(); err != nil {
		return newCommandError(inv, err, tail.String())
	}
	return nil
}

func (r *ExecRunner) Output(ctx context.Context, inv Invocation) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := r.command(ctx, inv)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, newCommandError(inv, err, stderr.String())
	}
	return out, nil
}

func (r *ExecRunner) command(ctx context.Context, inv Invocation) *exec.Cmd {
	cmd := exec.CommandContext(ctx, inv.Path, inv.Args...) //nolint:gosec // engine path and args are assembled by us
	cmd.Dir = inv.Dir
	if len(inv.Env) > 0 {
		cmd.Env = append(os.Environ(), inv.Env...)
	}
	return cmd
}

func newCommandError(inv Invocation, err error, stderr string) *CommandError {
	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return &CommandError{
		Command:  inv.String(),
		ExitCode: code,
		Stderr:   strings.TrimSpace(stderr),
		Err:      err,
	}
}

// tailBuffer keeps the last stderrTail bytes written to it.
type tailBuffer struct {
	buf []byte
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - stderrTail; over > 0 {
		t.buf = t.buf[over:]
	}
	return len(p), nil
}

func (t *tailBuffer) String() string { return string(t.buf) }
