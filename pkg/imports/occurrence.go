package imports

import "regexp"

// UnusedByOccurrence flags bindings whose local name occurs exactly
// once in the file, i.e. only on the import line itself.
//
// This is a conservative fallback for projects with no linter
// configured. Counting word occurrences cannot see shadowing, comments,
// or string contents, so names that appear anywhere else in the text
// are never flagged, trading missed removals for safety. Callers must
// opt in explicitly.
func UnusedByOccurrence(src []byte, table Table) []Unused {
	var unused []Unused

	for _, module := range table.Modules() {
		for _, st := range table[module] {
			for _, b := range st.Bindings {
				if len(b.LocalName) < 2 {
					continue
				}
				re, err := regexp.Compile(`\b` + regexp.QuoteMeta(b.LocalName) + `\b`)
				if err != nil {
					continue
				}
				if len(re.FindAllIndex(src, 2)) == 1 {
					unused = append(unused, Unused{Line: st.Line, Name: b.LocalName})
				}
			}
		}
	}

	return unused
}
