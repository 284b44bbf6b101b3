package fix

import (
	"fmt"
	"strings"
)

// Diff represents a unified diff between original and modified content.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Hunks contains the diff hunks.
	Hunks []DiffHunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// DiffHunk represents a single hunk in a unified diff.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// DiffLine represents a single line in a diff hunk.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffLineKind indicates the type of diff line.
type DiffLineKind int

const (
	// DiffLineContext is an unchanged context line.
	DiffLineContext DiffLineKind = iota

	// DiffLineAdd is a line added in the modified version.
	DiffLineAdd

	// DiffLineRemove is a line removed from the original version.
	DiffLineRemove
)

// contextLines is the number of context lines to show around changes.
const contextLines = 3

// GenerateDiff creates a unified diff between original and modified
// content. Returns nil if there are no changes.
func GenerateDiff(path string, original, modified []byte) *Diff {
	origLines := splitLines(original)
	modLines := splitLines(modified)

	ops := diffOps(origLines, modLines)

	changed := false
	for _, op := range ops {
		if op.Kind != DiffLineContext {
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}

	hunks := groupHunks(ops)

	var additions, deletions int
	for _, hunk := range hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineAdd:
				additions++
			case DiffLineRemove:
				deletions++
			}
		}
	}

	return &Diff{
		Path:      path,
		Hunks:     hunks,
		Additions: additions,
		Deletions: deletions,
	}
}

// String returns the diff in unified diff format.
func (d *Diff) String() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)

		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineContext:
				fmt.Fprintf(&builder, " %s\n", line.Content)
			case DiffLineAdd:
				fmt.Fprintf(&builder, "+%s\n", line.Content)
			case DiffLineRemove:
				fmt.Fprintf(&builder, "-%s\n", line.Content)
			}
		}
	}

	return builder.String()
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// diffOps computes a line-level edit script using an LCS table.
// Context lines carry the shared content; removes then adds appear in
// original order at each divergence.
func diffOps(orig, mod []string) []DiffLine {
	n, m := len(orig), len(mod)

	// lcs[i][j] is the LCS length of orig[i:] and mod[j:].
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if orig[i] == mod[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	var ops []DiffLine
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case orig[i] == mod[j]:
			ops = append(ops, DiffLine{Kind: DiffLineContext, Content: orig[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, DiffLine{Kind: DiffLineRemove, Content: orig[i]})
			i++
		default:
			ops = append(ops, DiffLine{Kind: DiffLineAdd, Content: mod[j]})
			j++
		}
	}
	for ; i < n; i++ {
		ops = append(ops, DiffLine{Kind: DiffLineRemove, Content: orig[i]})
	}
	for ; j < m; j++ {
		ops = append(ops, DiffLine{Kind: DiffLineAdd, Content: mod[j]})
	}

	return ops
}

// groupHunks splits an edit script into hunks with surrounding context.
func groupHunks(ops []DiffLine) []DiffHunk {
	var hunks []DiffHunk

	origLine, modLine := 1, 1
	idx := 0
	for idx < len(ops) {
		if ops[idx].Kind == DiffLineContext {
			origLine++
			modLine++
			idx++
			continue
		}

		// Found a change; back up for leading context.
		start := idx
		leading := 0
		for start > 0 && leading < contextLines && ops[start-1].Kind == DiffLineContext {
			start--
			leading++
		}

		hunk := DiffHunk{
			OriginalStart: origLine - leading,
			ModifiedStart: modLine - leading,
		}

		// Extend through changes, allowing up to 2*contextLines of
		// interior context before splitting into a new hunk.
		end := idx
		contextRun := 0
		for end < len(ops) {
			if ops[end].Kind == DiffLineContext {
				contextRun++
				if contextRun > 2*contextLines {
					break
				}
			} else {
				contextRun = 0
			}
			end++
		}
		// Trim trailing context down to contextLines.
		trailing := 0
		for end > idx && ops[end-1].Kind == DiffLineContext && trailing < contextRun-contextLines {
			end--
			trailing++
		}

		for _, op := range ops[start:end] {
			hunk.Lines = append(hunk.Lines, op)
			switch op.Kind {
			case DiffLineContext:
				hunk.OriginalCount++
				hunk.ModifiedCount++
			case DiffLineRemove:
				hunk.OriginalCount++
			case DiffLineAdd:
				hunk.ModifiedCount++
			}
		}
		hunks = append(hunks, hunk)

		// Advance line counters over the consumed ops.
		for _, op := range ops[idx:end] {
			switch op.Kind {
			case DiffLineContext:
				origLine++
				modLine++
			case DiffLineRemove:
				origLine++
			case DiffLineAdd:
				modLine++
			}
		}
		idx = end
	}

	return hunks
}

// splitLines splits content into lines, removing the trailing newline
// if present.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	lines := strings.Split(string(content), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
