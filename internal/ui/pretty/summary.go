package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/tsfix/pkg/fixer"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats a batch result as a single line.
// Example: "12 errors in 3 files, 2 files fixed, 4 errors remain".
func (s *Styles) FormatSummaryOneLine(batch *fixer.BatchResult) string {
	if batch == nil || batch.ErrorsBefore == 0 {
		return s.Success.Render("No compiler errors found") + "\n"
	}

	var parts []string

	errorWord := "errors"
	if batch.ErrorsBefore == 1 {
		errorWord = "error"
	}
	fileWord := wordFiles
	if batch.Total == 1 {
		fileWord = wordFile
	}
	parts = append(parts, fmt.Sprintf("%d %s in %d %s", batch.ErrorsBefore, errorWord, batch.Total, fileWord))

	if batch.Fixed > 0 {
		fixedWord := wordFiles
		if batch.Fixed == 1 {
			fixedWord = wordFile
		}
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s fixed", batch.Fixed, fixedWord)))
	}
	if batch.Failed > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", batch.Failed)))
	}

	switch {
	case batch.Regressed:
		parts = append(parts, s.Failure.Render(fmt.Sprintf("regression: %d errors now", batch.ErrorsAfter)))
	case batch.Reverified && batch.ErrorsAfter == 0:
		parts = append(parts, s.Success.Render("all errors resolved"))
	case batch.Reverified:
		parts = append(parts, fmt.Sprintf("%d remain", batch.ErrorsAfter))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats a batch result as a summary block.
func (s *Styles) FormatSummary(batch *fixer.BatchResult) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	// Files
	builder.WriteString("  Files implicated:  " +
		s.SummaryValue.Render(strconv.Itoa(batch.Total)) + "\n")
	builder.WriteString("  Files processed:   " +
		s.SummaryValue.Render(strconv.Itoa(batch.Processed)) + "\n")

	if batch.Fixed > 0 {
		builder.WriteString("  Files fixed:       " +
			s.Success.Render(strconv.Itoa(batch.Fixed)) + "\n")
	}
	if batch.Failed > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(batch.Failed)) + "\n")
	}
	if batch.Skipped > 0 {
		builder.WriteString("  Files skipped:     " +
			s.SummaryValue.Render(strconv.Itoa(batch.Skipped)) + "\n")
	}

	builder.WriteString("\n")

	// Error counts around the fix pass
	builder.WriteString("  Errors before:     " +
		s.SummaryValue.Render(strconv.Itoa(batch.ErrorsBefore)) + "\n")
	if batch.Reverified {
		after := s.SummaryValue.Render(strconv.Itoa(batch.ErrorsAfter))
		if batch.Regressed {
			after = s.Failure.Render(strconv.Itoa(batch.ErrorsAfter))
		} else if batch.ErrorsAfter == 0 {
			after = s.Success.Render("0")
		}
		builder.WriteString("  Errors after:      " + after + "\n")
	}

	if len(batch.Warnings) > 0 {
		builder.WriteString("\n")
		for _, w := range batch.Warnings {
			builder.WriteString("  " + s.Warning.Render("warning:") + " " + w + "\n")
		}
	}

	builder.WriteString("\n")

	// Overall status
	switch {
	case batch.Regressed:
		builder.WriteString(s.Failure.Render("Verification regressed: more errors than before fixing"))
	case batch.Clean():
		builder.WriteString(s.Success.Render("No compiler errors remain"))
	case batch.Failed > 0:
		builder.WriteString(s.Failure.Render("Completed with per-file failures"))
	default:
		builder.WriteString(s.Warning.Render("Compiler errors remain"))
	}
	builder.WriteString("\n")

	return builder.String()
}
