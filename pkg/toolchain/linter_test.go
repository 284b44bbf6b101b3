package toolchain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsfix/pkg/toolchain"
)

func TestParseESLintJSON(t *testing.T) {
	t.Parallel()

	data := []byte(`[
		{
			"filePath": "/proj/src/app.ts",
			"messages": [
				{
					"ruleId": "@typescript-eslint/no-unused-vars",
					"severity": 1,
					"message": "'useState' is defined but never used.",
					"line": 1,
					"column": 17
				},
				{
					"ruleId": "semi",
					"severity": 2,
					"message": "Missing semicolon.",
					"line": 4,
					"column": 22
				}
			]
		},
		{
			"filePath": "/proj/src/util.ts",
			"messages": [
				{
					"ruleId": "unused-imports/no-unused-imports",
					"severity": 2,
					"message": "'lodash' is defined but never used.",
					"line": 2,
					"column": 8
				}
			]
		}
	]`)

	unused, err := toolchain.ParseESLintJSON(data)
	require.NoError(t, err)
	require.Len(t, unused, 2)

	assert.Equal(t, toolchain.UnusedBinding{
		FilePath: "/proj/src/app.ts",
		Line:     1,
		Column:   17,
		Name:     "useState",
		Message:  "'useState' is defined but never used.",
	}, unused[0])

	assert.Equal(t, "lodash", unused[1].Name)
	assert.Equal(t, "/proj/src/util.ts", unused[1].FilePath)
}

func TestParseESLintJSONFiltersRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ruleID  string
		message string
		want    int
	}{
		{
			name:    "base no-unused-vars",
			ruleID:  "no-unused-vars",
			message: "'x' is assigned a value but never used.",
			want:    1,
		},
		{
			name:    "typescript flavor",
			ruleID:  "@typescript-eslint/no-unused-vars",
			message: "'x' is defined but never used.",
			want:    1,
		},
		{
			name:    "unrelated rule with quoted name",
			ruleID:  "no-undef",
			message: "'x' is not defined.",
			want:    0,
		},
		{
			name:    "unused rule without extractable name",
			ruleID:  "no-unused-vars",
			message: "binding is never used.",
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := []byte(`[{"filePath": "a.ts", "messages": [{"ruleId": "` +
				tt.ruleID + `", "severity": 1, "message": "` + tt.message + `", "line": 1, "column": 1}]}]`)

			unused, err := toolchain.ParseESLintJSON(data)
			require.NoError(t, err)
			assert.Len(t, unused, tt.want)
		})
	}
}

func TestParseESLintJSONEmptyAndMalformed(t *testing.T) {
	t.Parallel()

	unused, err := toolchain.ParseESLintJSON(nil)
	require.NoError(t, err)
	assert.Empty(t, unused)

	unused, err = toolchain.ParseESLintJSON([]byte("   \n"))
	require.NoError(t, err)
	assert.Empty(t, unused)

	unused, err = toolchain.ParseESLintJSON([]byte("[]"))
	require.NoError(t, err)
	assert.Empty(t, unused)

	_, err = toolchain.ParseESLintJSON([]byte("Oops! Something went wrong!"))
	require.Error(t, err)
}

func TestNewTSCDefaults(t *testing.T) {
	t.Parallel()

	tsc := toolchain.NewTSC("", "", nil)
	assert.Equal(t, "tsc", tsc.Command)

	tsc = toolchain.NewTSC("npx tsc", "tsconfig.build.json", []string{"--strict"})
	assert.Equal(t, "npx tsc", tsc.Command)
	assert.Equal(t, "tsconfig.build.json", tsc.Project)
	assert.Equal(t, []string{"--strict"}, tsc.Args)
}

func TestNewESLintDefaults(t *testing.T) {
	t.Parallel()

	lint := toolchain.NewESLint("", nil)
	assert.Equal(t, "eslint", lint.Command)
}
