// Package fixer drives the scan, fix, and reverify cycle: it invokes
// the external compiler, structures the diagnostics, applies per-file
// import rewrites, and measures the result with a single reverification.
package fixer

import (
	"errors"

	"github.com/yaklabco/tsfix/pkg/diag"
	"github.com/yaklabco/tsfix/pkg/fix"
)

// State is the orchestrator's position in its fixed cycle.
type State int

const (
	StateIdle State = iota
	StateChecking
	StateFixing
	StateReverifying
	StateDone
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateChecking:
		return "checking"
	case StateFixing:
		return "fixing"
	case StateReverifying:
		return "reverifying"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// ErrVerificationRegression indicates the post-fix diagnostic count
// increased. Fixes are not rolled back; the regression is surfaced in
// the report and the exit code.
var ErrVerificationRegression = errors.New("error count increased after fixes")

// FixResult records the outcome of one file's fix attempt.
type FixResult struct {
	// File is the normalized project-relative path.
	File string

	// Fixed is true when the file was modified (or would be, in dry
	// run) by at least one rewrite.
	Fixed bool

	// ChangeCount is the number of individual changes applied:
	// statements merged away, bindings removed, empty lines swept.
	ChangeCount int

	// Message summarizes the outcome for the report.
	Message string

	// Err is set when the file could not be processed. Per-file errors
	// never abort the batch.
	Err error

	// Skipped is true when the file was deliberately not touched
	// (unfixable source, concurrent modification).
	Skipped bool

	// Diff carries the would-be changes in dry-run mode.
	Diff *fix.Diff

	// BackupCreated is true when a sidecar backup was written.
	BackupCreated bool

	// Warnings records lossy merge choices made while fixing.
	Warnings []string
}

// BatchResult aggregates a whole orchestration cycle.
type BatchResult struct {
	// Total is the number of files implicated by diagnostics.
	Total int

	// Processed counts files that completed the pipeline.
	Processed int

	// Fixed counts files that were modified.
	Fixed int

	// Failed counts files whose processing errored.
	Failed int

	// Skipped counts files deliberately left untouched.
	Skipped int

	// Details holds per-file results, sorted by file.
	Details []FixResult

	// Diagnostics is the pre-fix diagnostic list, sorted.
	Diagnostics []diag.Diagnostic

	// ErrorsBefore and ErrorsAfter are the diagnostic counts around the
	// fix pass. ErrorsAfter equals ErrorsBefore when no reverification
	// ran.
	ErrorsBefore int
	ErrorsAfter  int

	// Reverified is true when the post-fix compiler run happened.
	Reverified bool

	// Regressed is true when ErrorsAfter exceeds ErrorsBefore.
	Regressed bool

	// Warnings aggregates non-fatal issues from the whole run.
	Warnings []string
}

// Clean reports whether the cycle ended with zero diagnostics.
func (b *BatchResult) Clean() bool {
	if b == nil {
		return false
	}
	return b.ErrorsAfter == 0
}

// Succeeded reports whether the process should exit zero: no remaining
// diagnostics and no verification regression.
func (b *BatchResult) Succeeded() bool {
	return b.Clean() && !b.Regressed
}

// accumulate folds one file result into the batch counters.
func (b *BatchResult) accumulate(fr FixResult) {
	b.Details = append(b.Details, fr)
	switch {
	case fr.Err != nil:
		b.Failed++
	case fr.Skipped:
		b.Skipped++
	default:
		b.Processed++
		if fr.Fixed {
			b.Fixed++
		}
	}
	b.Warnings = append(b.Warnings, fr.Warnings...)
}
