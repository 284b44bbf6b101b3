// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldFile       = "file"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldFix      = "fix"
	FieldDryRun   = "dry_run"
	FieldJobs     = "jobs"
	FieldCompiler = "compiler"
	FieldLinter   = "linter"

	// Run fields.
	FieldState            = "state"
	FieldTier             = "tier"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldErrorsBefore     = "errors_before"
	FieldErrorsAfter      = "errors_after"
	FieldFilesFixed       = "files_fixed"
	FieldFilesFailed      = "files_failed"
	FieldFilesSkipped     = "files_skipped"
	FieldMerged           = "merged"
	FieldRemoved          = "removed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
