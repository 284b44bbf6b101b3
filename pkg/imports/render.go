package imports

import "strings"

// Render returns the canonical single-line source text for a statement.
// Quote character and trailing semicolon follow the statement's own
// recorded style so rewrites blend into the file.
func Render(st Statement) string {
	quote := st.Quote
	if quote == "" {
		quote = "'"
	}
	module := quote + st.Module + quote

	var b strings.Builder

	if st.Style == StyleCommonJS {
		keyword := st.Keyword
		if keyword == "" {
			keyword = "const"
		}
		b.WriteString(keyword)
		b.WriteString(" ")
		if whole := findKind(st.Bindings, KindRequire); whole != nil {
			b.WriteString(whole.LocalName)
		} else {
			b.WriteString("{ ")
			b.WriteString(joinNamed(st.Bindings, requireNamedText))
			b.WriteString(" }")
		}
		b.WriteString(" = require(")
		b.WriteString(module)
		b.WriteString(")")
	} else {
		b.WriteString("import ")
		if st.TypeOnly {
			b.WriteString("type ")
		}

		var clauses []string
		if def := findKind(st.Bindings, KindDefault); def != nil {
			clauses = append(clauses, def.LocalName)
		}
		if ns := findKind(st.Bindings, KindNamespace); ns != nil {
			clauses = append(clauses, "* as "+ns.LocalName)
		}
		if named := filterKind(st.Bindings, KindNamed); len(named) > 0 {
			clauses = append(clauses, "{ "+joinNamed(named, esNamedText)+" }")
		}

		b.WriteString(strings.Join(clauses, ", "))
		b.WriteString(" from ")
		b.WriteString(module)
	}

	if st.Semi {
		b.WriteString(";")
	}

	return b.String()
}

func esNamedText(bind Binding) string {
	var b strings.Builder
	if bind.TypeOnly {
		b.WriteString("type ")
	}
	if bind.ImportedName != "" && bind.ImportedName != bind.LocalName {
		b.WriteString(bind.ImportedName)
		b.WriteString(" as ")
	}
	b.WriteString(bind.LocalName)
	return b.String()
}

func requireNamedText(bind Binding) string {
	if bind.ImportedName != "" && bind.ImportedName != bind.LocalName {
		return bind.ImportedName + ": " + bind.LocalName
	}
	return bind.LocalName
}

func joinNamed(bindings []Binding, text func(Binding) string) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, text(b))
	}
	return strings.Join(parts, ", ")
}

func findKind(bindings []Binding, kind Kind) *Binding {
	for i := range bindings {
		if bindings[i].Kind == kind {
			return &bindings[i]
		}
	}
	return nil
}

func filterKind(bindings []Binding, kind Kind) []Binding {
	var out []Binding
	for _, b := range bindings {
		if b.Kind == kind {
			out = append(out, b)
		}
	}
	return out
}
