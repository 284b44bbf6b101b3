// Package fix provides text edit types, validation, and application
// logic for tsfix's source rewrites.
package fix

// TextEdit represents a single text replacement in a file.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// IsDelete reports whether the edit removes text without replacement.
func (e TextEdit) IsDelete() bool {
	return e.NewText == "" && e.EndOffset > e.StartOffset
}

// ReplaceLine returns an edit that replaces the content of the given
// line span (excluding its newline) with newText.
func ReplaceLine(span LineSpan, newText string) TextEdit {
	return TextEdit{StartOffset: span.Start, EndOffset: span.End, NewText: newText}
}

// DeleteLine returns an edit that removes the given line entirely,
// including its trailing newline when present.
func DeleteLine(span LineSpan) TextEdit {
	return TextEdit{StartOffset: span.Start, EndOffset: span.NextStart}
}
