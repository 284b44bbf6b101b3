// Package toolchain invokes the external TypeScript toolchain: the
// type-checking compiler and the unused-bindings linter. Both are
// treated as black boxes; their output text is parsed elsewhere and
// assumed to be version- and format-unstable.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrCompilerUnavailable indicates the compiler binary could not be
// started at all, as opposed to exiting non-zero with diagnostics.
var ErrCompilerUnavailable = errors.New("compiler unavailable")

// CheckResult carries the raw outcome of one compiler invocation.
type CheckResult struct {
	// Output is the combined stdout and stderr text.
	Output string

	// Ok is true when the compiler exited successfully (no errors).
	Ok bool
}

// Compiler type-checks a project and returns its raw output.
type Compiler interface {
	// Check runs the compiler in dir and returns its combined output.
	// A non-zero exit with diagnostics is a successful Check; only a
	// failure to invoke the compiler is an error.
	Check(ctx context.Context, dir string) (CheckResult, error)
}

// TSC invokes the TypeScript compiler as a subprocess.
type TSC struct {
	// Command is the executable name, "tsc" by default.
	Command string

	// Project is an optional tsconfig path passed via --project.
	Project string

	// Args are extra arguments appended after the defaults.
	Args []string
}

// Compile-time interface verification.
var _ Compiler = (*TSC)(nil)

// NewTSC creates a TSC runner with the given command, defaulting to
// "tsc" when empty.
func NewTSC(command, project string, args []string) *TSC {
	if command == "" {
		command = "tsc"
	}
	return &TSC{Command: command, Project: project, Args: args}
}

// Check runs tsc --noEmit in dir and captures its combined output.
// --pretty false keeps the output in the machine-parsable format.
func (t *TSC) Check(ctx context.Context, dir string) (CheckResult, error) {
	args := []string{"--noEmit", "--pretty", "false"}
	if t.Project != "" {
		args = append(args, "--project", t.Project)
	}
	args = append(args, t.Args...)

	cmd := exec.CommandContext(ctx, t.Command, args...)
	cmd.Dir = dir

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Diagnostics present; the output is the result.
			return CheckResult{Output: buf.String(), Ok: false}, nil
		}
		return CheckResult{}, fmt.Errorf("%w: %s: %w", ErrCompilerUnavailable, t.Command, err)
	}

	return CheckResult{Output: buf.String(), Ok: true}, nil
}
