package imports

import (
	"regexp"
	"strings"
)

// Line-scoped statement shapes. Combined default+namespace and
// default+named clauses are matched before the single-clause forms so
// the simpler patterns cannot shadow them.
var (
	defaultNamespaceRe = regexp.MustCompile(`^\s*import\s+(type\s+)?([A-Za-z_$][\w$]*)\s*,\s*\*\s*as\s+([A-Za-z_$][\w$]*)\s+from\s+(['"])([^'"]+)['"]`)
	defaultNamedRe     = regexp.MustCompile(`^\s*import\s+(type\s+)?([A-Za-z_$][\w$]*)\s*,\s*\{([^}]*)\}\s*from\s+(['"])([^'"]+)['"]`)
	namespaceRe        = regexp.MustCompile(`^\s*import\s+(type\s+)?\*\s*as\s+([A-Za-z_$][\w$]*)\s+from\s+(['"])([^'"]+)['"]`)
	namedRe            = regexp.MustCompile(`^\s*import\s+(type\s+)?\{([^}]*)\}\s*from\s+(['"])([^'"]+)['"]`)
	defaultRe          = regexp.MustCompile(`^\s*import\s+(type\s+)?([A-Za-z_$][\w$]*)\s+from\s+(['"])([^'"]+)['"]`)
	requireDestrRe     = regexp.MustCompile(`^\s*(const|let|var)\s+\{([^}]*)\}\s*=\s*require\(\s*(['"])([^'"]+)['"]\s*\)`)
	requireRe          = regexp.MustCompile(`^\s*(const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*require\(\s*(['"])([^'"]+)['"]\s*\)`)
)

// BuildTable scans file text and produces the import table. Lines that
// match no recognized shape are ignored; files may contain non-import
// code that superficially resembles the patterns, and skipping is safer
// than mis-modeling.
func BuildTable(src []byte) Table {
	table := make(Table)

	lines := strings.Split(string(src), "\n")
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		st, ok := parseLine(line, i+1)
		if !ok {
			continue
		}
		table[st.Module] = append(table[st.Module], st)
	}

	return table
}

// parseLine attempts to recognize one statement shape on a line.
func parseLine(line string, lineNo int) (Statement, bool) {
	if m := defaultNamespaceRe.FindStringSubmatch(line); m != nil {
		st := newStatement(m[5], lineNo, line, StyleES, m[1] != "", "", m[4])
		st.Bindings = append(st.Bindings,
			Binding{LocalName: m[2], Kind: KindDefault},
			Binding{LocalName: m[3], Kind: KindNamespace},
		)
		return st, true
	}

	if m := defaultNamedRe.FindStringSubmatch(line); m != nil {
		st := newStatement(m[5], lineNo, line, StyleES, m[1] != "", "", m[4])
		st.Bindings = append(st.Bindings, Binding{LocalName: m[2], Kind: KindDefault})
		named, ok := parseNamedList(m[3], esNamedItem)
		if !ok {
			return Statement{}, false
		}
		st.Bindings = append(st.Bindings, named...)
		return st, true
	}

	if m := namespaceRe.FindStringSubmatch(line); m != nil {
		st := newStatement(m[4], lineNo, line, StyleES, m[1] != "", "", m[3])
		st.Bindings = append(st.Bindings, Binding{LocalName: m[2], Kind: KindNamespace})
		return st, true
	}

	if m := namedRe.FindStringSubmatch(line); m != nil {
		st := newStatement(m[4], lineNo, line, StyleES, m[1] != "", "", m[3])
		named, ok := parseNamedList(m[2], esNamedItem)
		if !ok {
			return Statement{}, false
		}
		st.Bindings = named
		return st, true
	}

	if m := defaultRe.FindStringSubmatch(line); m != nil {
		st := newStatement(m[4], lineNo, line, StyleES, m[1] != "", "", m[3])
		st.Bindings = append(st.Bindings, Binding{LocalName: m[2], Kind: KindDefault})
		return st, true
	}

	if m := requireDestrRe.FindStringSubmatch(line); m != nil {
		st := newStatement(m[4], lineNo, line, StyleCommonJS, false, m[1], m[3])
		named, ok := parseNamedList(m[2], requireItem)
		if !ok {
			return Statement{}, false
		}
		st.Bindings = named
		return st, true
	}

	if m := requireRe.FindStringSubmatch(line); m != nil {
		st := newStatement(m[4], lineNo, line, StyleCommonJS, false, m[1], m[3])
		st.Bindings = append(st.Bindings, Binding{LocalName: m[2], Kind: KindRequire})
		return st, true
	}

	return Statement{}, false
}

func newStatement(module string, line int, raw string, style Style, typeOnly bool, keyword, quote string) Statement {
	return Statement{
		Module:   module,
		Line:     line,
		Raw:      raw,
		Style:    style,
		TypeOnly: typeOnly,
		Keyword:  keyword,
		Quote:    quote,
		Semi:     hasSemi(raw),
	}
}

// itemParser parses one comma-separated binding item.
type itemParser func(item string) (Binding, bool)

// esNamedItem parses ES named-clause items: "a", "type a", "a as b".
func esNamedItem(item string) (Binding, bool) {
	typeOnly := false
	if rest, ok := strings.CutPrefix(item, "type "); ok {
		typeOnly = true
		item = strings.TrimSpace(rest)
	}

	if before, after, found := strings.Cut(item, " as "); found {
		imported := strings.TrimSpace(before)
		local := strings.TrimSpace(after)
		if !isIdent(imported) || !isIdent(local) {
			return Binding{}, false
		}
		return Binding{LocalName: local, ImportedName: imported, Kind: KindNamed, TypeOnly: typeOnly}, true
	}

	if !isIdent(item) {
		return Binding{}, false
	}
	return Binding{LocalName: item, Kind: KindNamed, TypeOnly: typeOnly}, true
}

// requireItem parses destructured require items: "a", "a: b".
func requireItem(item string) (Binding, bool) {
	if before, after, found := strings.Cut(item, ":"); found {
		imported := strings.TrimSpace(before)
		local := strings.TrimSpace(after)
		if !isIdent(imported) || !isIdent(local) {
			return Binding{}, false
		}
		return Binding{LocalName: local, ImportedName: imported, Kind: KindNamed}, true
	}
	if !isIdent(item) {
		return Binding{}, false
	}
	return Binding{LocalName: item, Kind: KindNamed}, true
}

// parseNamedList splits a brace clause into bindings. A clause with any
// unrecognizable item disqualifies the whole line; rewriting a line we
// only partially understand would lose text.
func parseNamedList(list string, parse itemParser) ([]Binding, bool) {
	var bindings []Binding

	for item := range strings.SplitSeq(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		b, ok := parse(item)
		if !ok {
			return nil, false
		}
		bindings = append(bindings, b)
	}

	return bindings, true
}
