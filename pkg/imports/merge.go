package imports

import (
	"fmt"
	"slices"

	"github.com/yaklabco/tsfix/pkg/fix"
)

// MergeResult describes the outcome of merging duplicate imports.
type MergeResult struct {
	// Edits are the text edits that realize the merge.
	Edits []fix.TextEdit

	// Merged is the number of statements eliminated by merging.
	Merged int

	// Warnings records lossy choices: conflicting default or namespace
	// bindings where the first encountered name won.
	Warnings []string
}

// Merge rewrites multiple import statements for the same module into
// one. Only statements sharing module, style, and type-only flag are
// merged; the union of local names is preserved, deduplicated by local
// name, with named bindings sorted for determinism. The first
// occurrence's line receives the merged statement and later lines are
// deleted.
//
// When more than one distinct default import or namespace alias exists
// for a module, the first encountered name wins and a warning is
// recorded. Keeping several default bindings for one module is not
// valid syntax, so a choice has to be made.
func Merge(src []byte, table Table) MergeResult {
	var result MergeResult

	spans := fix.SplitLineSpans(src)

	for _, module := range table.Modules() {
		groups := groupStatements(table[module])
		for _, group := range groups {
			mergeGroup(module, group, spans, &result)
		}
	}

	fix.SortEdits(result.Edits)
	return result
}

// groupStatements partitions a module's statements into mergeable
// groups, in first-occurrence order. CommonJS whole-module requires and
// destructured requires are kept apart: the two shapes cannot share a
// single declaration.
func groupStatements(stmts []Statement) [][]Statement {
	byKey := make(map[string][]Statement)
	var order []string

	for _, st := range stmts {
		key := groupKey(st)
		if st.Style == StyleCommonJS {
			if findKind(st.Bindings, KindRequire) != nil {
				key += "/whole"
			} else {
				key += "/destructured"
			}
		}
		if _, ok := byKey[key]; !ok {
			order = append(order, key)
		}
		byKey[key] = append(byKey[key], st)
	}

	groups := make([][]Statement, 0, len(order))
	for _, key := range order {
		groups = append(groups, byKey[key])
	}
	return groups
}

// mergeGroup merges one group of ≥2 statements in place, appending
// edits and warnings to result. Groups of one are never touched.
func mergeGroup(module string, group []Statement, spans []fix.LineSpan, result *MergeResult) {
	if len(group) < 2 {
		return
	}

	first := group[0]

	// An ES statement can carry a namespace clause or a named clause,
	// not both. A group mixing the two shapes has no single-statement
	// form that preserves every binding, so it is left alone.
	if first.Style == StyleES && hasNamespaceAndNamed(group) {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"module %q: namespace and named imports cannot merge into one statement; left unmerged", module))
		return
	}

	merged := first
	merged.Bindings = unionBindings(module, group, result)
	merged.Raw = ""

	for i, st := range group {
		if st.Line < 1 || st.Line > len(spans) {
			return
		}
		span := spans[st.Line-1]
		if i == 0 {
			result.Edits = append(result.Edits, fix.ReplaceLine(span, Render(merged)))
		} else {
			result.Edits = append(result.Edits, fix.DeleteLine(span))
			result.Merged++
		}
	}
}

func hasNamespaceAndNamed(group []Statement) bool {
	var ns, named bool
	for _, st := range group {
		if findKind(st.Bindings, KindNamespace) != nil {
			ns = true
		}
		if len(filterKind(st.Bindings, KindNamed)) > 0 {
			named = true
		}
	}
	return ns && named
}

// unionBindings computes the deduplicated union of the group's
// bindings: at most one default, at most one namespace alias (first
// wins, with a warning on conflict), and named bindings deduplicated by
// local name and sorted.
func unionBindings(module string, group []Statement, result *MergeResult) []Binding {
	var def, ns, whole *Binding
	named := make([]Binding, 0, 4)
	seenNamed := make(map[string]struct{})

	keepFirst := func(slot **Binding, b Binding, what string) {
		if *slot == nil {
			copied := b
			*slot = &copied
			return
		}
		if (*slot).LocalName != b.LocalName {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"module %q: conflicting %s bindings %q and %q; keeping %q",
				module, what, (*slot).LocalName, b.LocalName, (*slot).LocalName))
		}
	}

	for _, st := range group {
		for _, b := range st.Bindings {
			switch b.Kind {
			case KindDefault:
				keepFirst(&def, b, "default")
			case KindNamespace:
				keepFirst(&ns, b, "namespace")
			case KindRequire:
				keepFirst(&whole, b, "require")
			case KindNamed:
				if _, ok := seenNamed[b.LocalName]; ok {
					continue
				}
				seenNamed[b.LocalName] = struct{}{}
				named = append(named, b)
			}
		}
	}

	slices.SortFunc(named, func(a, b Binding) int {
		switch {
		case a.LocalName < b.LocalName:
			return -1
		case a.LocalName > b.LocalName:
			return 1
		default:
			return 0
		}
	})

	out := make([]Binding, 0, len(named)+3)
	if def != nil {
		out = append(out, *def)
	}
	if ns != nil {
		out = append(out, *ns)
	}
	if whole != nil {
		out = append(out, *whole)
	}
	out = append(out, named...)
	return out
}
