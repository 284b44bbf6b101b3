package imports

import (
	"regexp"

	"github.com/yaklabco/tsfix/pkg/fix"
)

// Unused identifies one import binding certified unused by an external
// linter: the 1-based line of its statement and its local name.
type Unused struct {
	Line int
	Name string
}

// RemoveUnused produces edits deleting the flagged bindings. For each
// flagged (line, name) the covering statement is located in the table;
// named bindings are removed by local name, and a default, namespace,
// or whole-module require binding removes itself from the statement the
// same way. A statement left with no bindings has its line deleted.
//
// This function never decides "unused" itself: it only executes
// removals already certified by the caller, so its false-positive risk
// is bounded by the caller's evidence. Bindings not present in unused
// are preserved byte for byte.
func RemoveUnused(src []byte, table Table, unused []Unused) ([]fix.TextEdit, int) {
	if len(unused) == 0 {
		return nil, 0
	}

	spans := fix.SplitLineSpans(src)

	// Coalesce flags per line so multiple removals on one statement
	// produce a single edit.
	byLine := make(map[int]map[string]struct{})
	for _, u := range unused {
		if byLine[u.Line] == nil {
			byLine[u.Line] = make(map[string]struct{})
		}
		byLine[u.Line][u.Name] = struct{}{}
	}

	var edits []fix.TextEdit
	removed := 0

	for line, names := range byLine {
		st, ok := table.StatementAt(line)
		if !ok || line < 1 || line > len(spans) {
			continue
		}

		kept := make([]Binding, 0, len(st.Bindings))
		for _, b := range st.Bindings {
			if _, flagged := names[b.LocalName]; flagged {
				removed++
				continue
			}
			kept = append(kept, b)
		}
		if len(kept) == len(st.Bindings) {
			continue
		}

		span := spans[line-1]
		if len(kept) == 0 {
			edits = append(edits, fix.DeleteLine(span))
			continue
		}

		st.Bindings = kept
		edits = append(edits, fix.ReplaceLine(span, Render(st)))
	}

	fix.SortEdits(edits)
	return edits, removed
}

// Empty brace clauses left behind by earlier rewrites.
var (
	emptyImportRe  = regexp.MustCompile(`^\s*import\s+(?:type\s+)?\{\s*\}\s*from\s+['"][^'"]+['"]\s*;?\s*$`)
	emptyRequireRe = regexp.MustCompile(`^\s*(?:const|let|var)\s+\{\s*\}\s*=\s*require\(\s*['"][^'"]+['"]\s*\)\s*;?\s*$`)
)

// SweepEmptiedImports deletes import or require lines whose binding
// clause is empty. Run after other rewrites as a cleanup sweep for
// interactions between the merger and the remover.
//
// Lines whose exact text was already an empty import in original are
// kept: an empty ES import still loads its module for side effects,
// so pre-existing ones are not leftovers to clean up.
func SweepEmptiedImports(original, src []byte) ([]fix.TextEdit, int) {
	prior := make(map[string]struct{})
	for _, span := range fix.SplitLineSpans(original) {
		if line := span.Text(original); isEmptyImportLine(line) {
			prior[line] = struct{}{}
		}
	}

	var edits []fix.TextEdit
	for _, span := range fix.SplitLineSpans(src) {
		line := span.Text(src)
		if _, preexisting := prior[line]; preexisting {
			continue
		}
		if isEmptyImportLine(line) {
			edits = append(edits, fix.DeleteLine(span))
		}
	}

	return edits, len(edits)
}

func isEmptyImportLine(line string) bool {
	return emptyImportRe.MatchString(line) || emptyRequireRe.MatchString(line)
}
