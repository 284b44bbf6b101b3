// Package langdetect decides whether a file is TypeScript source that
// tsfix may safely rewrite. It uses go-enry so that generated files,
// vendored JavaScript, and misnamed files are filtered by content, not
// just by extension.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language names as reported by enry.
const (
	langTypeScript = "TypeScript"
	langTSX        = "TSX"
	langJavaScript = "JavaScript"
)

// IsFixableSource reports whether the file at path, with the given
// content, is TypeScript (or TSX) source that the fixer may rewrite.
// Declaration files are never fixable: they carry no runtime imports
// worth merging and are frequently generated.
func IsFixableSource(path string, content []byte) bool {
	base := filepath.Base(path)
	if strings.HasSuffix(base, ".d.ts") {
		return false
	}

	ext := filepath.Ext(base)
	if ext != ".ts" && ext != ".tsx" {
		return false
	}

	if enry.IsVendor(path) || enry.IsGenerated(path, content) {
		return false
	}

	// An extension can lie (e.g., an XML translation file named .ts in
	// Qt projects). Let content-based detection veto those.
	if len(content) > 0 {
		lang := enry.GetLanguage(base, content)
		switch lang {
		case langTypeScript, langTSX, langJavaScript, "":
		default:
			return false
		}
	}

	return true
}
