// Package diag defines the diagnostic model for tsfix and the parsers
// that build it from raw TypeScript compiler output.
package diag

import (
	"cmp"
	"slices"
)

// Severity represents the severity level of a compiler diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Source identifies which parser tier produced a diagnostic.
// Lower tiers carry less positional evidence, so downstream fixers
// calibrate their confidence against it.
type Source int

const (
	// SourcePrimary is the common compiler form: file(line,col): error TSxxxx.
	SourcePrimary Source = iota

	// SourceAlternate is the colon-separated form: file:line:col - error TSxxxx.
	SourceAlternate

	// SourceSummary comes from an aggregate "N errors" table; line numbers
	// are present but codes are generic.
	SourceSummary

	// SourceScan comes from a raw path scan of otherwise unparsable output;
	// no position information at all.
	SourceScan
)

// String returns the tier name for logging and reports.
func (s Source) String() string {
	switch s {
	case SourcePrimary:
		return "primary"
	case SourceAlternate:
		return "alternate"
	case SourceSummary:
		return "summary"
	case SourceScan:
		return "scan"
	default:
		return "unknown"
	}
}

// Precise reports whether the diagnostic carries trustworthy line and
// column information. Only precise diagnostics may drive per-line edits.
func (s Source) Precise() bool {
	return s == SourcePrimary || s == SourceAlternate
}

// Diagnostic is one structured compiler-reported issue.
// Diagnostics are immutable once parsed.
type Diagnostic struct {
	// File is the normalized, forward-slash, project-relative path.
	File string

	// Line is the 1-based line number (0 when unknown).
	Line int

	// Column is the 1-based column number (0 when unknown).
	Column int

	// Code is the compiler error code (e.g., "TS2307").
	Code string

	// Message is the human-readable description.
	Message string

	// Category is the coarse classification assigned by Categorize.
	Category Category

	// Severity indicates the importance of the diagnostic.
	Severity Severity

	// Snippet optionally carries the offending source line.
	Snippet string

	// Source records which parser tier produced this diagnostic.
	Source Source
}

// Sort orders diagnostics by (file, line, column) for deterministic
// processing and reporting.
func Sort(diags []Diagnostic) {
	slices.SortFunc(diags, func(a, b Diagnostic) int {
		if c := cmp.Compare(a.File, b.File); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Line, b.Line); c != 0 {
			return c
		}
		return cmp.Compare(a.Column, b.Column)
	})
}

// GroupByFile buckets diagnostics by their normalized file path.
// Within each bucket the input order is preserved.
func GroupByFile(diags []Diagnostic) map[string][]Diagnostic {
	groups := make(map[string][]Diagnostic)
	for _, d := range diags {
		groups[d.File] = append(groups[d.File], d)
	}
	return groups
}

// AllImprecise reports whether every diagnostic in the slice comes from
// a low-confidence tier (summary or scan). Files in this state are
// eligible only for the heuristic fallback fixer.
func AllImprecise(diags []Diagnostic) bool {
	if len(diags) == 0 {
		return false
	}
	for _, d := range diags {
		if d.Source.Precise() {
			return false
		}
	}
	return true
}
