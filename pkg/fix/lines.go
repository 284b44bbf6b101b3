package fix

import "bytes"

// LineSpan describes the byte extent of one line within a file.
type LineSpan struct {
	// Start is the byte offset of the first character of the line.
	Start int

	// End is the byte offset just past the last character, excluding
	// the newline.
	End int

	// NextStart is the byte offset of the following line's first
	// character (past the newline, or end of content for the last line).
	NextStart int
}

// Text returns the line's content within src, without the newline.
func (s LineSpan) Text(src []byte) string {
	return string(src[s.Start:s.End])
}

// SplitLineSpans computes the span of every line in src.
// Lines are 1-based: the span of line n is the element at index n-1.
// A trailing newline does not produce an extra empty span.
func SplitLineSpans(src []byte) []LineSpan {
	if len(src) == 0 {
		return nil
	}

	var spans []LineSpan
	start := 0
	for start < len(src) {
		idx := bytes.IndexByte(src[start:], '\n')
		if idx < 0 {
			spans = append(spans, LineSpan{Start: start, End: len(src), NextStart: len(src)})
			break
		}
		end := start + idx
		// Exclude a carriage return from the line content.
		contentEnd := end
		if contentEnd > start && src[contentEnd-1] == '\r' {
			contentEnd--
		}
		spans = append(spans, LineSpan{Start: start, End: contentEnd, NextStart: end + 1})
		start = end + 1
	}

	return spans
}
