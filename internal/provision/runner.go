// Package provision runs external tooling against a freshly generated project.
//
// Commands always receive the project root as their working directory; the
// CLI's own working directory is never changed.
package provision

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/vango-dev/create-webapp/internal/errors"
)

// Command is an external process invocation.
type Command struct {
	// Name is the executable, looked up on PATH.
	Name string

	// Args are the command arguments.
	Args []string

	// Dir is the working directory.
	Dir string
}

// String returns the command line.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// ExitStatus is the outcome of a process that ran.
type ExitStatus struct {
	// Code is the process exit code, or -1 if the process never started.
	Code int
}

// Success reports whether the process exited with code 0.
func (s ExitStatus) Success() bool {
	return s.Code == 0
}

// Runner runs external commands.
//
// Run returns an error only when the process could not be started or was
// interrupted; a process that ran and exited non-zero is reported through
// ExitStatus alone.
type Runner interface {
	Run(ctx context.Context, cmd Command) (ExitStatus, error)
}

// ExecRunner runs commands as child processes with the given standard streams.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner creates an ExecRunner that inherits the CLI's standard streams,
// so package manager output is shown live.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, c Command) (ExitStatus, error) {
	path, err := exec.LookPath(c.Name)
	if err != nil {
		return ExitStatus{Code: -1}, errors.New("E131").WithPath(c.Name).Wrap(err)
	}

	cmd := exec.CommandContext(ctx, path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	err = cmd.Run()
	if err == nil {
		return ExitStatus{Code: 0}, nil
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) && ctx.Err() == nil {
		return ExitStatus{Code: exitErr.ExitCode()}, nil
	}
	if ctx.Err() != nil {
		return ExitStatus{Code: -1}, ctx.Err()
	}
	return ExitStatus{Code: -1}, err
}
