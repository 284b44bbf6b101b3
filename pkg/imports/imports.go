// Package imports builds a structural, text-level model of a file's
// import and require statements and rewrites them.
//
// The model is deliberately regex-based and line-oriented rather than a
// full parser: one recognized line is one statement. Multi-line import
// clauses and unusual formatting fall outside the model and are left
// untouched. Conservative non-matching is preferred over false positives.
package imports

import (
	"slices"
	"strings"
)

// Kind classifies how a binding is introduced.
type Kind string

const (
	// KindDefault is an ES default import: import X from 'm'.
	KindDefault Kind = "default"

	// KindNamespace is an ES namespace import: import * as X from 'm'.
	KindNamespace Kind = "namespace"

	// KindNamed is an ES named import: import { a, b } from 'm'.
	KindNamed Kind = "named"

	// KindRequire is a whole-module CommonJS require: const X = require('m').
	KindRequire Kind = "require"
)

// Style distinguishes ES imports from CommonJS requires.
type Style string

const (
	StyleES       Style = "es"
	StyleCommonJS Style = "commonjs"
)

// Binding represents one name introduced by an import or require.
type Binding struct {
	// LocalName is the name bound in the file's scope.
	LocalName string

	// ImportedName is the exported name when it differs from LocalName
	// (aliased named imports, destructured requires). Empty otherwise.
	ImportedName string

	// Kind classifies the binding.
	Kind Kind

	// TypeOnly marks a per-binding "type" prefix.
	TypeOnly bool
}

// Statement is one import or require statement, corresponding to
// exactly one source line at parse time.
type Statement struct {
	// Module is the module specifier.
	Module string

	// Bindings are the names this statement introduces.
	Bindings []Binding

	// Line is the 1-based source line number.
	Line int

	// Raw is the original line text, without the newline.
	Raw string

	// Style is ES or CommonJS.
	Style Style

	// TypeOnly marks a clause-level "import type".
	TypeOnly bool

	// Keyword is the declaration keyword for CommonJS statements
	// (const, let, var). Empty for ES imports.
	Keyword string

	// Quote is the quote character used around the module specifier.
	Quote string

	// Semi records whether the statement ended with a semicolon.
	Semi bool
}

// LocalNames returns the statement's bound local names in order.
func (s Statement) LocalNames() []string {
	names := make([]string, 0, len(s.Bindings))
	for _, b := range s.Bindings {
		names = append(names, b.LocalName)
	}
	return names
}

// Table maps each module specifier to the statements importing from it,
// for a single file. Tables are built fresh per fix pass and never
// persisted, so they cannot go stale against the file contents.
type Table map[string][]Statement

// Modules returns the table's module specifiers in sorted order.
func (t Table) Modules() []string {
	mods := make([]string, 0, len(t))
	for m := range t {
		mods = append(mods, m)
	}
	slices.Sort(mods)
	return mods
}

// StatementAt returns the statement covering the given 1-based line.
func (t Table) StatementAt(line int) (Statement, bool) {
	for _, stmts := range t {
		for _, st := range stmts {
			if st.Line == line {
				return st, true
			}
		}
	}
	return Statement{}, false
}

// HasDuplicates reports whether any module has two or more statements
// of the same style and type-only flag, i.e. whether the merger would
// have anything to do.
func (t Table) HasDuplicates() bool {
	for _, stmts := range t {
		if len(stmts) < 2 {
			continue
		}
		counts := make(map[string]int)
		for _, st := range stmts {
			counts[groupKey(st)]++
		}
		for _, n := range counts {
			if n >= 2 {
				return true
			}
		}
	}
	return false
}

// groupKey buckets statements that are candidates for merging with
// each other. Type-only and value imports never share a bucket.
func groupKey(st Statement) string {
	key := string(st.Style)
	if st.TypeOnly {
		key += "/type"
	}
	return key
}

// isIdent reports whether s is a plausible JavaScript identifier.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// hasSemi reports whether a raw statement line ends with a semicolon.
func hasSemi(raw string) bool {
	return strings.HasSuffix(strings.TrimRight(raw, " \t"), ";")
}
