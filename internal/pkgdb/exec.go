package pkgdb

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/cockroachdb/errors"
)

// Runner executes an external command and returns its standard output.
// A command that ran but exited non-zero is reported as *ExitError so that
// bindings can tell "package not found" apart from a broken tool.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)

	// LookPath reports the resolved path of an executable, as exec.LookPath.
	LookPath(file string) (string, error)
}

// ExitError is returned by a Runner when the command exited with a non-zero status.
type ExitError struct {
	Command string
	Code    int
	Stdout  []byte
	Stderr  []byte
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
	if stderr := bytes.TrimSpace(e.Stderr); len(stderr) > 0 {
		msg += ": " + string(stderr)
	}
	return msg
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// DefaultRunner is the Runner used when a binding is constructed with nil.
var DefaultRunner Runner = ExecRunner{}

// Run executes name with args and captures stdout and stderr.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	// Package tools localise their "not found" diagnostics
	cmd.Env = append(cmd.Environ(), "LC_ALL=C")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.Bytes(), &ExitError{
			Command: name,
			Code:    exitErr.ExitCode(),
			Stdout:  stdout.Bytes(),
			Stderr:  stderr.Bytes(),
		}
	}
	return nil, errors.Wrapf(err, "running %s", name)
}

// LookPath wraps exec.LookPath.
func (ExecRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}
