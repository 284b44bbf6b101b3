package diag

import (
	"regexp"
	"strings"
)

// driveLetterRe matches a Windows drive-letter prefix like "C:".
var driveLetterRe = regexp.MustCompile(`^[A-Za-z]:`)

// NormalizePath converts a compiler-reported path into a canonical
// project-relative form so that identical issues reported on different
// operating systems compare equal:
//
//   - backslashes become forward slashes
//   - a drive-letter prefix is stripped
//   - leading slashes and "./" are stripped
//   - the project root prefix, when configured, is stripped
func NormalizePath(path, root string) string {
	p := strings.ReplaceAll(strings.TrimSpace(path), `\`, "/")
	p = driveLetterRe.ReplaceAllString(p, "")
	p = strings.TrimLeft(p, "/")
	p = strings.TrimPrefix(p, "./")

	if root != "" {
		r := strings.ReplaceAll(root, `\`, "/")
		r = driveLetterRe.ReplaceAllString(r, "")
		r = strings.Trim(r, "/")
		if r != "" {
			if p == r {
				return ""
			}
			p = strings.TrimPrefix(p, r+"/")
		}
	}

	return p
}
