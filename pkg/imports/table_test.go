package imports_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsfix/pkg/imports"
)

func TestBuildTableShapes(t *testing.T) {
	t.Parallel()

	src := []byte(`import React from 'react';
import * as path from 'path';
import { readFile, writeFile as write } from 'fs';
import Default, { named } from 'mod';
import App, * as Everything from 'app';
import type { Props } from './types';
const os = require('os');
const { join, resolve: res } = require("path");
function notAnImport() { return 1; }
`)

	table := imports.BuildTable(src)

	react := table["react"]
	require.Len(t, react, 1)
	assert.Equal(t, imports.StyleES, react[0].Style)
	require.Len(t, react[0].Bindings, 1)
	assert.Equal(t, imports.KindDefault, react[0].Bindings[0].Kind)
	assert.Equal(t, "React", react[0].Bindings[0].LocalName)
	assert.True(t, react[0].Semi)
	assert.Equal(t, 1, react[0].Line)

	// ES namespace and CommonJS destructured require of the same module.
	pathStmts := table["path"]
	require.Len(t, pathStmts, 2)
	assert.Equal(t, imports.KindNamespace, pathStmts[0].Bindings[0].Kind)
	assert.Equal(t, imports.StyleCommonJS, pathStmts[1].Style)
	assert.Equal(t, `"`, pathStmts[1].Quote)
	require.Len(t, pathStmts[1].Bindings, 2)
	assert.Equal(t, "res", pathStmts[1].Bindings[1].LocalName)
	assert.Equal(t, "resolve", pathStmts[1].Bindings[1].ImportedName)

	fs := table["fs"]
	require.Len(t, fs, 1)
	require.Len(t, fs[0].Bindings, 2)
	assert.Equal(t, "write", fs[0].Bindings[1].LocalName)
	assert.Equal(t, "writeFile", fs[0].Bindings[1].ImportedName)

	mod := table["mod"]
	require.Len(t, mod, 1)
	require.Len(t, mod[0].Bindings, 2)
	assert.Equal(t, imports.KindDefault, mod[0].Bindings[0].Kind)
	assert.Equal(t, imports.KindNamed, mod[0].Bindings[1].Kind)

	app := table["app"]
	require.Len(t, app, 1)
	require.Len(t, app[0].Bindings, 2)
	assert.Equal(t, imports.KindNamespace, app[0].Bindings[1].Kind)

	types := table["./types"]
	require.Len(t, types, 1)
	assert.True(t, types[0].TypeOnly)

	osStmts := table["os"]
	require.Len(t, osStmts, 1)
	assert.Equal(t, imports.KindRequire, osStmts[0].Bindings[0].Kind)
	assert.Equal(t, "const", osStmts[0].Keyword)
}

func TestBuildTableSkipsUnrecognizable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{name: "multi-line clause is outside the model", src: "import {\n  a,\n  b,\n} from 'm';\n"},
		{name: "garbage in braces disqualifies the line", src: "import { ...spread } from 'm';\n"},
		{name: "dynamic import ignored", src: "const m = await import('m');\n"},
		{name: "plain code", src: "const x = 1;\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Empty(t, imports.BuildTable([]byte(tt.src)))
		})
	}
}

func TestTableHasDuplicates(t *testing.T) {
	t.Parallel()

	dup := imports.BuildTable([]byte("import { A } from 'x';\nimport { B } from 'x';\n"))
	assert.True(t, dup.HasDuplicates())

	// Type-only and value imports never count as duplicates of each other.
	mixed := imports.BuildTable([]byte("import { A } from 'x';\nimport type { B } from 'x';\n"))
	assert.False(t, mixed.HasDuplicates())

	single := imports.BuildTable([]byte("import { A } from 'x';\nimport { B } from 'y';\n"))
	assert.False(t, single.HasDuplicates())
}

func TestTableStatementAt(t *testing.T) {
	t.Parallel()

	table := imports.BuildTable([]byte("// header\nimport { A } from 'x';\n"))
	st, ok := table.StatementAt(2)
	require.True(t, ok)
	assert.Equal(t, "x", st.Module)

	_, ok = table.StatementAt(1)
	assert.False(t, ok)
}

func TestRenderRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want string
	}{
		{
			name: "named with alias",
			line: "import { writeFile as write, readFile } from 'fs';",
			want: "import { writeFile as write, readFile } from 'fs';",
		},
		{
			name: "default plus named double quotes",
			line: `import D, { a } from "m"`,
			want: `import D, { a } from "m"`,
		},
		{
			name: "namespace type only",
			line: "import type * as T from './t';",
			want: "import type * as T from './t';",
		},
		{
			name: "whole require",
			line: "const os = require('os');",
			want: "const os = require('os');",
		},
		{
			name: "destructured require with alias",
			line: "let { join, resolve: res } = require('path')",
			want: "let { join, resolve: res } = require('path')",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			table := imports.BuildTable([]byte(tt.line + "\n"))
			mods := table.Modules()
			require.Len(t, mods, 1)
			require.Len(t, table[mods[0]], 1)
			assert.Equal(t, tt.want, imports.Render(table[mods[0]][0]))
		})
	}
}
