package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/tsfix/pkg/diag"
)

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		root string
		want string
	}{
		{
			name: "already relative",
			path: "src/app.ts",
			want: "src/app.ts",
		},
		{
			name: "windows path equals posix path",
			path: `C:\a\b.ts`,
			want: "a/b.ts",
		},
		{
			name: "leading slash stripped",
			path: "/src/app.ts",
			want: "src/app.ts",
		},
		{
			name: "dot slash stripped",
			path: "./src/app.ts",
			want: "src/app.ts",
		},
		{
			name: "root prefix stripped",
			path: "/home/dev/proj/src/app.ts",
			root: "home/dev/proj",
			want: "src/app.ts",
		},
		{
			name: "root with slashes trimmed before matching",
			path: "home/dev/proj/src/app.ts",
			root: "/home/dev/proj/",
			want: "src/app.ts",
		},
		{
			name: "windows root against windows path",
			path: `D:\work\proj\src\app.tsx`,
			root: `D:\work\proj`,
			want: "src/app.tsx",
		},
		{
			name: "path equal to root becomes empty",
			path: "/home/dev/proj",
			root: "home/dev/proj",
			want: "",
		},
		{
			name: "unrelated root leaves path alone",
			path: "src/app.ts",
			root: "other/tree",
			want: "src/app.ts",
		},
		{
			name: "surrounding whitespace trimmed",
			path: "  src/app.ts  ",
			want: "src/app.ts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, diag.NormalizePath(tt.path, tt.root))
		})
	}
}

func TestNormalizePathCrossPlatformEquality(t *testing.T) {
	t.Parallel()

	posix := diag.NormalizePath("/proj/src/util.ts", "proj")
	windows := diag.NormalizePath(`C:\proj\src\util.ts`, "proj")
	assert.Equal(t, posix, windows)
}
