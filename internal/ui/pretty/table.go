package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/tsfix/pkg/diag"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minFileWidth     = 20
	minLocWidth      = 8
	minMessageWidth  = 32
	minCodeWidth     = 6
	minCategoryWidth = 12
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableFormatter formats diagnostics as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// tableRow is one rendered diagnostic line.
type tableRow struct {
	File     string
	Location string
	Message  string
	Code     string
	Category string
	Severity diag.Severity
}

// FormatTable formats diagnostics as a styled table grouped by file.
func (t *TableFormatter) FormatTable(diags []diag.Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}

	rows := make([]tableRow, 0, len(diags))
	for _, d := range diags {
		loc := fmt.Sprintf("%d:%d", d.Line, d.Column)
		if !d.Source.Precise() {
			loc = "?"
			if d.Line > 0 {
				loc = fmt.Sprintf("~%d", d.Line)
			}
		}
		rows = append(rows, tableRow{
			File:     d.File,
			Location: loc,
			Message:  d.Message,
			Code:     d.Code,
			Category: string(d.Category),
			Severity: d.Severity,
		})
	}

	widths := t.columnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.styles.TableBorder.Render(strings.Repeat(heavySeparator, t.totalWidth(widths))))
	builder.WriteString("\n")

	lastFile := ""
	for _, row := range rows {
		if row.File != lastFile && lastFile != "" {
			builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(lightSeparator, t.totalWidth(widths))))
			builder.WriteString("\n")
		}
		display := row
		if row.File == lastFile {
			display.File = ""
		}
		builder.WriteString(t.formatRow(display, widths))
		builder.WriteString("\n")
		lastFile = row.File
	}

	return builder.String()
}

type columnWidths struct {
	File     int
	Loc      int
	Message  int
	Code     int
	Category int
}

func (t *TableFormatter) totalWidth(w columnWidths) int {
	return w.File + w.Loc + w.Message + w.Code + w.Category + 4*tablePadding
}

// columnWidths sizes columns from content, then squeezes the message
// column to fit the terminal.
func (t *TableFormatter) columnWidths(rows []tableRow) columnWidths {
	w := columnWidths{
		File:     minFileWidth,
		Loc:      minLocWidth,
		Message:  minMessageWidth,
		Code:     minCodeWidth,
		Category: minCategoryWidth,
	}
	for _, row := range rows {
		w.File = max(w.File, len(row.File))
		w.Loc = max(w.Loc, len(row.Location))
		w.Message = max(w.Message, len(row.Message))
		w.Code = max(w.Code, len(row.Code))
		w.Category = max(w.Category, len(row.Category))
	}

	if t.totalWidth(w) > t.termWidth {
		overflow := t.totalWidth(w) - t.termWidth
		w.Message = max(minMessageWidth, w.Message-overflow)
	}
	return w
}

func (t *TableFormatter) formatHeader(w columnWidths) string {
	cells := []string{
		pad("FILE", w.File),
		pad("LOC", w.Loc),
		pad("MESSAGE", w.Message),
		pad("CODE", w.Code),
		pad("CATEGORY", w.Category),
	}
	return t.styles.TableHeader.Render(strings.Join(cells, strings.Repeat(" ", tablePadding)))
}

func (t *TableFormatter) formatRow(row tableRow, w columnWidths) string {
	cells := []string{
		pad(row.File, w.File),
		pad(row.Location, w.Loc),
		pad(truncate(row.Message, w.Message), w.Message),
		pad(row.Code, w.Code),
		pad(row.Category, w.Category),
	}
	line := strings.Join(cells, strings.Repeat(" ", tablePadding))

	style := t.rowStyle(row.Severity)
	return style.Render(line)
}

func (t *TableFormatter) rowStyle(sev diag.Severity) lipgloss.Style {
	switch sev {
	case diag.SeverityError:
		return t.styles.TableErrorRow
	case diag.SeverityWarning:
		return t.styles.TableWarnRow
	default:
		return t.styles.SummaryValue
	}
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}
