package cli

import (
	"errors"

	"github.com/yaklabco/tsfix/internal/configloader"
	"github.com/yaklabco/tsfix/pkg/fixer"
	"github.com/yaklabco/tsfix/pkg/toolchain"
)

// Exit codes for tsfix.
const (
	// ExitSuccess indicates successful execution with no remaining errors.
	ExitSuccess = 0

	// ExitErrorsRemain indicates the run completed but compiler errors
	// remain (including verification regressions).
	ExitErrorsRemain = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrErrorsRemain signals a completed run with remaining compiler
// errors. It carries no message worth logging; it exists to select the
// exit code.
var ErrErrorsRemain = errors.New("compiler errors remain")

// ErrConfig wraps configuration loading failures.
var ErrConfig = errors.New("configuration error")

// ErrIO wraps file I/O failures on outputs such as the report.
var ErrIO = errors.New("i/o error")

// ErrUsage wraps command-line flag parse failures.
var ErrUsage = errors.New("invalid usage")

// ExitCodeForError maps an Execute error to a process exit code.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validationErr *configloader.ValidationError
	switch {
	case errors.Is(err, ErrErrorsRemain):
		return ExitErrorsRemain
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, toolchain.ErrCompilerUnavailable), errors.Is(err, ErrIO):
		return ExitIOError
	case errors.Is(err, fixer.ErrVerificationRegression):
		return ExitErrorsRemain
	default:
		return ExitInternalError
	}
}

// ExitCodeFromResult determines the exit code from a completed batch.
func ExitCodeFromResult(batch *fixer.BatchResult) int {
	if batch == nil {
		return ExitSuccess
	}
	if batch.Succeeded() {
		return ExitSuccess
	}
	return ExitErrorsRemain
}
