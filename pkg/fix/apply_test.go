package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/tsfix/pkg/fix"
)

func TestApplyEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		edits   []fix.TextEdit
		want    string
	}{
		{
			name:    "empty edits returns original",
			content: "hello world",
			edits:   nil,
			want:    "hello world",
		},
		{
			name:    "single replacement",
			content: "hello world",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 5, NewText: "hi"},
			},
			want: "hi world",
		},
		{
			name:    "single insertion",
			content: "hello world",
			edits: []fix.TextEdit{
				{StartOffset: 5, EndOffset: 5, NewText: " beautiful"},
			},
			want: "hello beautiful world",
		},
		{
			name:    "single deletion",
			content: "hello world",
			edits: []fix.TextEdit{
				{StartOffset: 5, EndOffset: 11, NewText: ""},
			},
			want: "hello",
		},
		{
			name:    "multiple non-overlapping edits",
			content: "hello world",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 5, NewText: "hi"},
				{StartOffset: 6, EndOffset: 11, NewText: "there"},
			},
			want: "hi there",
		},
		{
			name:    "adjacent edits",
			content: "abcdef",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 2, NewText: "XX"},
				{StartOffset: 2, EndOffset: 4, NewText: "YY"},
				{StartOffset: 4, EndOffset: 6, NewText: "ZZ"},
			},
			want: "XXYYZZ",
		},
		{
			name:    "replacement longer than original",
			content: "ab",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 1, NewText: "expanded"},
			},
			want: "expandedb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := fix.ApplyEdits([]byte(tt.content), tt.edits)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestApplyEditsDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	content := []byte("hello")
	fix.ApplyEdits(content, []fix.TextEdit{{StartOffset: 0, EndOffset: 5, NewText: "bye"}})
	assert.Equal(t, "hello", string(content))
}
