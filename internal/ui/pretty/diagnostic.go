package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/tsfix/pkg/diag"
)

// FormatDiagnostic formats a single compiler diagnostic for terminal output.
func (s *Styles) FormatDiagnostic(d *diag.Diagnostic, showContext bool, sourceLine string) string {
	var builder strings.Builder

	// Location: path:line:col
	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(d.File),
		d.Line,
		d.Column,
	)

	severity := s.FormatSeverity(d.Severity)

	codeDisplay := s.Code.Render("(" + d.Code + ")")
	if d.Category != "" {
		codeDisplay = s.Code.Render("("+d.Code+"/") +
			s.Category.Render(string(d.Category)) + s.Code.Render(")")
	}

	// Main line: location  severity  message  (code/category)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		severity,
		s.Message.Render(d.Message),
		codeDisplay,
	))

	// Imprecise tiers cannot anchor a caret, so location context is elided.
	if !d.Source.Precise() {
		builder.WriteString("    " + s.Dim.Render("parsed from: "+d.Source.String()) + "\n")
	}

	// Source context
	if showContext && sourceLine != "" && d.Source.Precise() {
		builder.WriteString(s.FormatSourceContext(sourceLine, d.Column))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev diag.Severity) string {
	switch sev {
	case diag.SeverityError:
		return s.Error.Render("error")
	case diag.SeverityWarning:
		return s.Warning.Render("warning")
	default:
		return s.Info.Render(string(sev))
	}
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	// Indent to align with diagnostic output
	const indent = "        "

	// Source line
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	// Caret marker
	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatSuggestions formats category hints beneath a diagnostic.
func (s *Styles) FormatSuggestions(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	var builder strings.Builder
	builder.WriteString("    " + s.Dim.Render("Suggestions:") + "\n")
	for _, hint := range hints {
		builder.WriteString("      " + s.Suggestion.Render("- "+hint) + "\n")
	}
	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, errorCount int) string {
	header := s.FilePath.Render(path)
	if errorCount > 0 {
		word := "errors"
		if errorCount == 1 {
			word = "error"
		}
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", errorCount, word))
	}
	return header
}

// FormatDiff renders a unified diff with per-line styling.
func (s *Styles) FormatDiff(text string) string {
	if text == "" {
		return ""
	}
	var builder strings.Builder
	for line := range strings.Lines(text) {
		trimmed := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(trimmed, "---"), strings.HasPrefix(trimmed, "+++"):
			builder.WriteString(s.DiffHeader.Render(trimmed))
		case strings.HasPrefix(trimmed, "@@"):
			builder.WriteString(s.DiffHunk.Render(trimmed))
		case strings.HasPrefix(trimmed, "+"):
			builder.WriteString(s.DiffAdd.Render(trimmed))
		case strings.HasPrefix(trimmed, "-"):
			builder.WriteString(s.DiffRemove.Render(trimmed))
		default:
			builder.WriteString(s.DiffContext.Render(trimmed))
		}
		builder.WriteString("\n")
	}
	return builder.String()
}
