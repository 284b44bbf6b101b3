// Package report renders the plain-text report artifact: diagnostics
// grouped by file, fix outcomes, and the verification delta.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/tsfix/pkg/diag"
	"github.com/yaklabco/tsfix/pkg/fixer"
	"github.com/yaklabco/tsfix/pkg/fsutil"
)

// Options controls report content.
type Options struct {
	// Suggestions includes the advisory remediation hints per
	// diagnostic category.
	Suggestions bool
}

// Write renders the report for one orchestration cycle to w.
func Write(w io.Writer, batch *fixer.BatchResult, opts Options) error {
	var b strings.Builder

	b.WriteString("tsfix report\n")
	b.WriteString("============\n\n")

	writeDiagnostics(&b, batch.Diagnostics, opts)
	writeOutcomes(&b, batch)
	writeVerification(&b, batch)

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// WriteFile renders the report and writes it atomically to path.
func WriteFile(ctx context.Context, path string, batch *fixer.BatchResult, opts Options) error {
	var b strings.Builder
	if err := Write(&b, batch, opts); err != nil {
		return err
	}
	if err := fsutil.WriteAtomic(ctx, path, []byte(b.String()), 0); err != nil {
		return fmt.Errorf("write report file: %w", err)
	}
	return nil
}

func writeDiagnostics(b *strings.Builder, diags []diag.Diagnostic, opts Options) {
	if len(diags) == 0 {
		b.WriteString("No diagnostics.\n\n")
		return
	}

	fmt.Fprintf(b, "%d diagnostics\n\n", len(diags))

	for file, group := range groupedInOrder(diags) {
		fmt.Fprintf(b, "%s (%d)\n", file, len(group))

		seenCategories := make(map[diag.Category]struct{})
		for _, d := range group {
			loc := ""
			if d.Line > 0 {
				loc = fmt.Sprintf("%d:%d ", d.Line, d.Column)
			}
			fmt.Fprintf(b, "  %s%s %s [%s, %s tier]\n", loc, d.Code, d.Message, d.Category, d.Source)

			if opts.Suggestions {
				if _, seen := seenCategories[d.Category]; !seen {
					seenCategories[d.Category] = struct{}{}
					for _, hint := range diag.Suggest(d.Category) {
						fmt.Fprintf(b, "      hint: %s\n", hint)
					}
				}
			}
		}
		b.WriteString("\n")
	}
}

func writeOutcomes(b *strings.Builder, batch *fixer.BatchResult) {
	if len(batch.Details) == 0 {
		return
	}

	b.WriteString("Fix outcomes\n")
	b.WriteString("------------\n")
	for _, fr := range batch.Details {
		status := "unchanged"
		switch {
		case fr.Err != nil:
			status = "failed"
		case fr.Skipped:
			status = "skipped"
		case fr.Fixed:
			status = "fixed"
		}
		fmt.Fprintf(b, "  %-10s %s: %s\n", status, fr.File, fr.Message)
	}
	fmt.Fprintf(b, "\n  total %d, processed %d, fixed %d, failed %d, skipped %d\n\n",
		batch.Total, batch.Processed, batch.Fixed, batch.Failed, batch.Skipped)

	if len(batch.Warnings) > 0 {
		b.WriteString("Warnings\n")
		b.WriteString("--------\n")
		for _, w := range batch.Warnings {
			fmt.Fprintf(b, "  %s\n", w)
		}
		b.WriteString("\n")
	}
}

func writeVerification(b *strings.Builder, batch *fixer.BatchResult) {
	b.WriteString("Verification\n")
	b.WriteString("------------\n")
	if !batch.Reverified {
		fmt.Fprintf(b, "  not reverified; %d diagnostics outstanding\n", batch.ErrorsAfter)
		return
	}

	fmt.Fprintf(b, "  errors before: %d\n", batch.ErrorsBefore)
	fmt.Fprintf(b, "  errors after:  %d\n", batch.ErrorsAfter)
	switch {
	case batch.Regressed:
		b.WriteString("  REGRESSION: error count increased after fixes\n")
	case batch.ErrorsAfter == 0:
		b.WriteString("  all diagnostics resolved\n")
	case batch.ErrorsAfter < batch.ErrorsBefore:
		b.WriteString("  improved, diagnostics remain\n")
	default:
		b.WriteString("  no change\n")
	}
}

// groupedInOrder yields file groups in sorted-file order. Diagnostics
// arrive sorted, so grouping preserves that order.
func groupedInOrder(diags []diag.Diagnostic) func(func(string, []diag.Diagnostic) bool) {
	return func(yield func(string, []diag.Diagnostic) bool) {
		start := 0
		for i := 1; i <= len(diags); i++ {
			if i == len(diags) || diags[i].File != diags[start].File {
				if !yield(diags[start].File, diags[start:i]) {
					return
				}
				start = i
			}
		}
	}
}
