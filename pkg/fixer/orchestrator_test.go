package fixer_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsfix/internal/logging"
	"github.com/yaklabco/tsfix/pkg/config"
	"github.com/yaklabco/tsfix/pkg/fixer"
	"github.com/yaklabco/tsfix/pkg/toolchain"
)

// fakeCompiler replays a fixed sequence of check results. The last
// result is repeated once the sequence runs out.
type fakeCompiler struct {
	mu      sync.Mutex
	outputs []toolchain.CheckResult
	err     error
	calls   int
}

func (f *fakeCompiler) Check(_ context.Context, _ string) (toolchain.CheckResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return toolchain.CheckResult{}, f.err
	}

	i := f.calls
	f.calls++
	if i >= len(f.outputs) {
		i = len(f.outputs) - 1
	}
	return f.outputs[i], nil
}

func (f *fakeCompiler) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeLinter struct {
	bindings []toolchain.UnusedBinding
	err      error
	calls    int
	files    []string
}

func (f *fakeLinter) UnusedBindings(_ context.Context, _ string, files []string) ([]toolchain.UnusedBinding, error) {
	f.calls++
	f.files = append([]string(nil), files...)
	if f.err != nil {
		return nil, f.err
	}
	return f.bindings, nil
}

// writeProject materializes files (keyed by slash-relative path) under a
// fresh temp dir.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func newTestConfig(dir string) *config.Config {
	cfg := config.NewConfig()
	cfg.Dir = dir
	cfg.Linter.Disabled = true
	return cfg
}

func TestRunCleanProject(t *testing.T) {
	t.Parallel()

	compiler := &fakeCompiler{outputs: []toolchain.CheckResult{{Output: "", Ok: true}}}
	orch := fixer.New(compiler, nil, newTestConfig(t.TempDir()))

	batch, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, fixer.StateDone, orch.State())
	assert.Equal(t, 1, compiler.callCount())
	assert.Zero(t, batch.ErrorsBefore)
	assert.True(t, batch.Clean())
	assert.True(t, batch.Succeeded())
	assert.False(t, batch.Reverified)
}

func TestRunCompilerUnavailable(t *testing.T) {
	t.Parallel()

	compiler := &fakeCompiler{err: toolchain.ErrCompilerUnavailable}
	orch := fixer.New(compiler, nil, newTestConfig(t.TempDir()))

	_, err := orch.Run(context.Background())
	require.ErrorIs(t, err, toolchain.ErrCompilerUnavailable)
	assert.Equal(t, fixer.StateDone, orch.State())
}

func TestRunFixesDuplicateImports(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"src/app.ts": "import { A } from 'x';\n" +
			"import { B } from 'x';\n" +
			"\n" +
			"export const v: number = A + B;\n",
	})

	compiler := &fakeCompiler{outputs: []toolchain.CheckResult{
		{Output: "src/app.ts(2,10): error TS2300: Duplicate identifier 'B'.\n"},
		{Output: "", Ok: true},
	}}

	orch := fixer.New(compiler, nil, newTestConfig(dir))
	batch, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, compiler.callCount())
	assert.Equal(t, 1, batch.Total)
	assert.Equal(t, 1, batch.Fixed)
	assert.Zero(t, batch.Failed)
	assert.True(t, batch.Reverified)
	assert.Equal(t, 1, batch.ErrorsBefore)
	assert.Zero(t, batch.ErrorsAfter)
	assert.True(t, batch.Succeeded())

	content, err := os.ReadFile(filepath.Join(dir, "src", "app.ts"))
	require.NoError(t, err)
	assert.Equal(t,
		"import { A, B } from 'x';\n\nexport const v: number = A + B;\n",
		string(content))
}

func TestRunAnalyzeOnly(t *testing.T) {
	t.Parallel()

	src := "import { A } from 'x';\nimport { B } from 'x';\n"
	dir := writeProject(t, map[string]string{"src/app.ts": src})

	compiler := &fakeCompiler{outputs: []toolchain.CheckResult{
		{Output: "src/app.ts(2,10): error TS2300: Duplicate identifier 'B'.\n"},
	}}

	cfg := newTestConfig(dir)
	cfg.Fix = false

	batch, err := fixer.New(compiler, nil, cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, compiler.callCount())
	assert.Zero(t, batch.Fixed)
	assert.Equal(t, 1, batch.ErrorsBefore)
	assert.Equal(t, 1, batch.ErrorsAfter)
	assert.False(t, batch.Reverified)
	require.Len(t, batch.Diagnostics, 1)
	assert.Equal(t, "TS2300", batch.Diagnostics[0].Code)

	content, err := os.ReadFile(filepath.Join(dir, "src", "app.ts"))
	require.NoError(t, err)
	assert.Equal(t, src, string(content))
}

func TestRunDryRun(t *testing.T) {
	t.Parallel()

	src := "import { A } from 'x';\nimport { B } from 'x';\n"
	dir := writeProject(t, map[string]string{"src/app.ts": src})

	compiler := &fakeCompiler{outputs: []toolchain.CheckResult{
		{Output: "src/app.ts(2,10): error TS2300: Duplicate identifier 'B'.\n"},
	}}

	cfg := newTestConfig(dir)
	cfg.DryRun = true

	batch, err := fixer.New(compiler, nil, cfg).Run(context.Background())
	require.NoError(t, err)

	// Dry run never writes, so reverification is skipped.
	assert.Equal(t, 1, compiler.callCount())
	assert.Equal(t, 1, batch.Fixed)
	assert.False(t, batch.Reverified)

	require.Len(t, batch.Details, 1)
	require.NotNil(t, batch.Details[0].Diff)
	assert.True(t, batch.Details[0].Diff.HasChanges())

	content, err := os.ReadFile(filepath.Join(dir, "src", "app.ts"))
	require.NoError(t, err)
	assert.Equal(t, src, string(content))
}

func TestRunDetectsRegression(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"src/app.ts": "import { A } from 'x';\nimport { B } from 'x';\n",
	})

	compiler := &fakeCompiler{outputs: []toolchain.CheckResult{
		{Output: "src/app.ts(2,10): error TS2300: Duplicate identifier 'B'.\n"},
		{Output: "src/app.ts(1,1): error TS2307: Cannot find module 'x'.\n" +
			"src/app.ts(1,10): error TS2304: Cannot find name 'A'.\n"},
	}}

	batch, err := fixer.New(compiler, nil, newTestConfig(dir)).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, batch.Reverified)
	assert.Equal(t, 1, batch.ErrorsBefore)
	assert.Equal(t, 2, batch.ErrorsAfter)
	assert.True(t, batch.Regressed)
	assert.False(t, batch.Succeeded())
	require.NotEmpty(t, batch.Warnings)
	assert.Contains(t, batch.Warnings, fixer.ErrVerificationRegression.Error())
}

func TestRunMissingFile(t *testing.T) {
	t.Parallel()

	compiler := &fakeCompiler{outputs: []toolchain.CheckResult{
		{Output: "src/gone.ts(1,1): error TS2307: Cannot find module 'x'.\n"},
	}}

	batch, err := fixer.New(compiler, nil, newTestConfig(t.TempDir())).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, batch.Failed)
	assert.Zero(t, batch.Fixed)
	require.Len(t, batch.Details, 1)
	require.Error(t, batch.Details[0].Err)
	assert.Equal(t, "diagnosed file not found on disk", batch.Details[0].Message)
}

func TestRunIgnorePattern(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"src/gen.ts": "import { A } from 'x';\nimport { B } from 'x';\n",
	})

	compiler := &fakeCompiler{outputs: []toolchain.CheckResult{
		{Output: "src/gen.ts(2,10): error TS2300: Duplicate identifier 'B'.\n"},
	}}

	cfg := newTestConfig(dir)
	cfg.Ignore = []string{"src/gen.ts"}

	batch, err := fixer.New(compiler, nil, cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, batch.Skipped)
	assert.Zero(t, batch.Fixed)
	require.Len(t, batch.Details, 1)
	assert.Equal(t, "ignored by configuration", batch.Details[0].Message)
}

func TestRunPathRestriction(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"src/app.ts":    "import { A } from 'x';\nimport { B } from 'x';\n",
		"legacy/old.ts": "import { C } from 'y';\nimport { D } from 'y';\n",
	})

	compiler := &fakeCompiler{outputs: []toolchain.CheckResult{
		{Output: "src/app.ts(2,10): error TS2300: Duplicate identifier 'B'.\n" +
			"legacy/old.ts(2,10): error TS2300: Duplicate identifier 'D'.\n"},
		{Output: "", Ok: true},
	}}

	cfg := newTestConfig(dir)
	cfg.Paths = []string{"src"}

	batch, err := fixer.New(compiler, nil, cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, batch.Total)
	assert.Equal(t, 1, batch.Fixed)

	untouched, err := os.ReadFile(filepath.Join(dir, "legacy", "old.ts"))
	require.NoError(t, err)
	assert.Equal(t, "import { C } from 'y';\nimport { D } from 'y';\n", string(untouched))
}

func TestRunRemovesLinterCertifiedUnused(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"src/app.ts": "import { used, unused } from 'mod';\n" +
			"\n" +
			"export const v = used;\n",
	})

	compiler := &fakeCompiler{outputs: []toolchain.CheckResult{
		{Output: "src/app.ts(3,18): error TS2322: Type 'string' is not assignable to type 'number'.\n"},
		{Output: "", Ok: true},
	}}
	linter := &fakeLinter{bindings: []toolchain.UnusedBinding{
		{FilePath: "src/app.ts", Line: 1, Column: 16, Name: "unused",
			Message: "'unused' is defined but never used."},
	}}

	cfg := newTestConfig(dir)
	cfg.Linter.Disabled = false

	batch, err := fixer.New(compiler, linter, cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, linter.calls)
	assert.Equal(t, 1, batch.Fixed)

	content, err := os.ReadFile(filepath.Join(dir, "src", "app.ts"))
	require.NoError(t, err)
	assert.Equal(t,
		"import { used } from 'mod';\n\nexport const v = used;\n",
		string(content))
}

func TestRunRemovesCompilerCertifiedUnused(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"src/app.ts": "import { used, unused } from 'mod';\n" +
			"\n" +
			"export const v = used;\n",
	})

	// TS6133 certifies the unused binding without any linter at all.
	compiler := &fakeCompiler{outputs: []toolchain.CheckResult{
		{Output: "src/app.ts(1,16): error TS6133: 'unused' is declared but its value is never read.\n"},
		{Output: "", Ok: true},
	}}

	batch, err := fixer.New(compiler, nil, newTestConfig(dir)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, batch.Fixed)

	content, err := os.ReadFile(filepath.Join(dir, "src", "app.ts"))
	require.NoError(t, err)
	assert.Equal(t,
		"import { used } from 'mod';\n\nexport const v = used;\n",
		string(content))
}

func TestRunLinterFailureDegradesToWarning(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"src/app.ts": "import { A } from 'x';\nimport { B } from 'x';\n",
	})

	compiler := &fakeCompiler{outputs: []toolchain.CheckResult{
		{Output: "src/app.ts(2,10): error TS2300: Duplicate identifier 'B'.\n"},
		{Output: "", Ok: true},
	}}
	linter := &fakeLinter{err: errors.New("eslint: command not found")}

	cfg := newTestConfig(dir)
	cfg.Linter.Disabled = false

	batch, err := fixer.New(compiler, linter, cfg).Run(context.Background())
	require.NoError(t, err)

	// The merge still runs; only unused evidence is degraded.
	assert.Equal(t, 1, batch.Fixed)
	require.NotEmpty(t, batch.Warnings)
	assert.Contains(t, batch.Warnings[0], "linter unavailable")
}

func TestRunSkipsUnfixableSource(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"src/types.d.ts": "declare module 'x';\n",
	})

	compiler := &fakeCompiler{outputs: []toolchain.CheckResult{
		{Output: "src/types.d.ts(1,1): error TS2300: Duplicate identifier 'x'.\n"},
	}}

	batch, err := fixer.New(compiler, nil, newTestConfig(dir)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, batch.Skipped)
	assert.Zero(t, batch.Fixed)
	require.Len(t, batch.Details, 1)
	assert.Equal(t, "not fixable TypeScript source", batch.Details[0].Message)
}

func TestRunHeuristicMergesDuplicates(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"src/app.ts": "import { A } from 'x';\n" +
			"import { B } from 'x';\n" +
			"\n" +
			"export const v: number = A + B;\n",
	})

	// Unrecognized output: only a path scan succeeds, so the file is
	// eligible for the duplicate merge and nothing else.
	compiler := &fakeCompiler{outputs: []toolchain.CheckResult{
		{Output: "something went wrong while checking src/app.ts\n"},
		{Output: "", Ok: true},
	}}

	batch, err := fixer.New(compiler, nil, newTestConfig(dir)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, batch.Fixed)
	assert.True(t, batch.Reverified)

	content, err := os.ReadFile(filepath.Join(dir, "src", "app.ts"))
	require.NoError(t, err)
	assert.Equal(t,
		"import { A, B } from 'x';\n\nexport const v: number = A + B;\n",
		string(content))
}

func TestRunHeuristicHonorsDuplicateFixDisabled(t *testing.T) {
	t.Parallel()

	src := "import { A } from 'x';\n" +
		"import { B } from 'x';\n" +
		"\n" +
		"export const v: number = A + B;\n"
	dir := writeProject(t, map[string]string{"src/app.ts": src})

	compiler := &fakeCompiler{outputs: []toolchain.CheckResult{
		{Output: "something went wrong while checking src/app.ts\n"},
	}}

	cfg := newTestConfig(dir)
	cfg.DuplicateFix = false

	batch, err := fixer.New(compiler, nil, cfg).Run(context.Background())
	require.NoError(t, err)

	// Disabling the merger disables it for low-confidence files too.
	assert.Equal(t, 1, compiler.callCount())
	assert.Zero(t, batch.Fixed)
	require.Len(t, batch.Details, 1)
	assert.Equal(t, "no applicable fixes", batch.Details[0].Message)

	content, err := os.ReadFile(filepath.Join(dir, "src", "app.ts"))
	require.NoError(t, err)
	assert.Equal(t, src, string(content))
}

func TestRunAllFixersDisabledLeavesFilesAlone(t *testing.T) {
	t.Parallel()

	src := "import {} from 'side-effect';\n" +
		"\n" +
		"export const v: number = 1;\n"
	dir := writeProject(t, map[string]string{"src/app.ts": src})

	compiler := &fakeCompiler{outputs: []toolchain.CheckResult{
		{Output: "src/app.ts(3,14): error TS2322: Type 'string' is not assignable to type 'number'.\n"},
	}}

	cfg := newTestConfig(dir)
	cfg.DuplicateFix = false
	cfg.UnusedFix = false

	batch, err := fixer.New(compiler, nil, cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, compiler.callCount())
	assert.Zero(t, batch.Fixed)

	content, err := os.ReadFile(filepath.Join(dir, "src", "app.ts"))
	require.NoError(t, err)
	assert.Equal(t, src, string(content))
}

func TestRunKeepsSideEffectImportWhileFixing(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"src/app.ts": "import {} from 'side-effect';\n" +
			"import { A } from 'x';\n" +
			"import { B } from 'x';\n" +
			"\n" +
			"export const v: number = A + B;\n",
	})

	compiler := &fakeCompiler{outputs: []toolchain.CheckResult{
		{Output: "src/app.ts(3,10): error TS2300: Duplicate identifier 'B'.\n"},
		{Output: "", Ok: true},
	}}

	batch, err := fixer.New(compiler, nil, newTestConfig(dir)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, batch.Fixed)

	// The pre-existing empty import still loads its module for side
	// effects; the cleanup sweep must not take it.
	content, err := os.ReadFile(filepath.Join(dir, "src", "app.ts"))
	require.NoError(t, err)
	assert.Equal(t,
		"import {} from 'side-effect';\n"+
			"import { A, B } from 'x';\n"+
			"\n"+
			"export const v: number = A + B;\n",
		string(content))
}

func TestRunLinterScopedToDiscoveredSources(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"src/app.ts": "import { used, unused } from 'mod';\n" +
			"\n" +
			"export const v = used;\n",
		"node_modules/dep/index.ts": "export const d: number = 1;\n",
	})

	compiler := &fakeCompiler{outputs: []toolchain.CheckResult{
		{Output: "src/app.ts(3,18): error TS2322: Type 'string' is not assignable to type 'number'.\n" +
			"node_modules/dep/index.ts(1,14): error TS2322: Type 'string' is not assignable to type 'number'.\n"},
		{Output: "", Ok: true},
	}}
	linter := &fakeLinter{bindings: []toolchain.UnusedBinding{
		{FilePath: "src/app.ts", Line: 1, Column: 16, Name: "unused",
			Message: "'unused' is defined but never used."},
	}}

	cfg := newTestConfig(dir)
	cfg.Linter.Disabled = false

	_, err := fixer.New(compiler, linter, cfg).Run(context.Background())
	require.NoError(t, err)

	// Diagnosed paths under node_modules are never handed to the linter.
	assert.Equal(t, 1, linter.calls)
	assert.Equal(t, []string{"src/app.ts"}, linter.files)

	content, err := os.ReadFile(filepath.Join(dir, "src", "app.ts"))
	require.NoError(t, err)
	assert.Equal(t,
		"import { used } from 'mod';\n\nexport const v = used;\n",
		string(content))
}

func TestRunReportsThroughContextLogger(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"src/app.ts": "import { A } from 'x';\n" +
			"import { B } from 'x';\n" +
			"\n" +
			"export const v: number = A + B;\n",
	})

	compiler := &fakeCompiler{outputs: []toolchain.CheckResult{
		{Output: "src/app.ts(2,10): error TS2300: Duplicate identifier 'B'.\n"},
		{Output: "", Ok: true},
	}}

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{ReportTimestamp: false})
	logger.SetLevel(log.DebugLevel)
	ctx := logging.WithRunLogger(context.Background(), logger)

	_, err := fixer.New(compiler, nil, newTestConfig(dir)).Run(ctx)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "check complete")
	assert.Contains(t, out, "fix pass complete")
	assert.Contains(t, out, "files_fixed=1")
	assert.Contains(t, out, "reverification complete")
}

func TestRunDetailsSortedByFile(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"src/a.ts": "import { A } from 'x';\n" +
			"import { B } from 'x';\n" +
			"\n" +
			"export const v: number = A + B;\n",
		"src/z.ts": "export const w: number = 1;\n",
	})

	// The ignored file is recorded before any pipeline result; Details
	// must still come back in file order.
	compiler := &fakeCompiler{outputs: []toolchain.CheckResult{
		{Output: "src/a.ts(2,10): error TS2300: Duplicate identifier 'B'.\n" +
			"src/z.ts(1,14): error TS2322: Type 'string' is not assignable to type 'number'.\n"},
		{Output: "", Ok: true},
	}}

	cfg := newTestConfig(dir)
	cfg.Ignore = []string{"src/z.ts"}

	batch, err := fixer.New(compiler, nil, cfg).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, batch.Details, 2)
	assert.Equal(t, "src/a.ts", batch.Details[0].File)
	assert.Equal(t, "src/z.ts", batch.Details[1].File)
}

func TestStateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state fixer.State
		want  string
	}{
		{fixer.StateIdle, "idle"},
		{fixer.StateChecking, "checking"},
		{fixer.StateFixing, "fixing"},
		{fixer.StateReverifying, "reverifying"},
		{fixer.StateDone, "done"},
		{fixer.State(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
}
