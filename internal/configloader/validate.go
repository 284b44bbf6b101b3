package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/tsfix/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "compiler.command").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if cfg.Compiler.Command == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "compiler.command",
			Value:   cfg.Compiler.Command,
			Message: "compiler command must not be empty",
		})
	}

	if cfg.Linter.Command == "" && !cfg.Linter.Disabled {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "linter.command",
			Value:   cfg.Linter.Command,
			Message: "linter command empty; unused-import evidence limited to compiler codes",
		})
	}

	if cfg.Report && cfg.ReportPath == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "report_path",
			Value:   cfg.ReportPath,
			Message: "report_path must not be empty when report is enabled",
		})
	}

	if !cfg.Fix && cfg.DryRun {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "dry_run",
			Value:   cfg.DryRun,
			Message: "dry_run has no effect when fix is disabled",
		})
	}

	validateIgnorePatterns(cfg, result)

	return result
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		// filepath.Match returns an error only for malformed patterns
		_, err := filepath.Match(pattern, "")
		if err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
