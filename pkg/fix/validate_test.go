package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsfix/pkg/fix"
)

func TestValidateEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		edits      []fix.TextEdit
		contentLen int
		wantErr    bool
	}{
		{
			name:       "valid edits",
			edits:      []fix.TextEdit{{StartOffset: 0, EndOffset: 5}},
			contentLen: 10,
		},
		{
			name:       "negative start",
			edits:      []fix.TextEdit{{StartOffset: -1, EndOffset: 5}},
			contentLen: 10,
			wantErr:    true,
		},
		{
			name:       "end before start",
			edits:      []fix.TextEdit{{StartOffset: 5, EndOffset: 3}},
			contentLen: 10,
			wantErr:    true,
		},
		{
			name:       "end past content",
			edits:      []fix.TextEdit{{StartOffset: 0, EndOffset: 11}},
			contentLen: 10,
			wantErr:    true,
		},
		{
			name:       "zero-width edit at end",
			edits:      []fix.TextEdit{{StartOffset: 10, EndOffset: 10, NewText: "x"}},
			contentLen: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := fix.ValidateEdits(tt.edits, tt.contentLen)
			if tt.wantErr {
				var verr *fix.ValidationError
				require.ErrorAs(t, err, &verr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDetectConflicts(t *testing.T) {
	t.Parallel()

	overlapping := []fix.TextEdit{
		{StartOffset: 0, EndOffset: 5},
		{StartOffset: 3, EndOffset: 8},
	}
	fix.SortEdits(overlapping)
	var cerr *fix.ConflictError
	require.ErrorAs(t, fix.DetectConflicts(overlapping), &cerr)

	adjacent := []fix.TextEdit{
		{StartOffset: 0, EndOffset: 5},
		{StartOffset: 5, EndOffset: 8},
	}
	fix.SortEdits(adjacent)
	assert.NoError(t, fix.DetectConflicts(adjacent))
}

func TestPrepareEditsSortsAndCopies(t *testing.T) {
	t.Parallel()

	edits := []fix.TextEdit{
		{StartOffset: 6, EndOffset: 8},
		{StartOffset: 0, EndOffset: 2},
	}
	prepared, err := fix.PrepareEdits(edits, 10)
	require.NoError(t, err)
	require.Len(t, prepared, 2)
	assert.Equal(t, 0, prepared[0].StartOffset)
	// Input order untouched.
	assert.Equal(t, 6, edits[0].StartOffset)
}

func TestPrepareEditsRejectsOverlap(t *testing.T) {
	t.Parallel()

	edits := []fix.TextEdit{
		{StartOffset: 0, EndOffset: 5},
		{StartOffset: 4, EndOffset: 6},
	}
	_, err := fix.PrepareEdits(edits, 10)
	require.Error(t, err)
}
