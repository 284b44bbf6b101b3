package fixer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/tsfix/internal/logging"
	"github.com/yaklabco/tsfix/pkg/config"
	"github.com/yaklabco/tsfix/pkg/diag"
	"github.com/yaklabco/tsfix/pkg/fsutil"
	"github.com/yaklabco/tsfix/pkg/imports"
	"github.com/yaklabco/tsfix/pkg/toolchain"
)

// Orchestrator drives one Idle → Checking → (Done | Fixing) →
// Reverifying → Done cycle. The loop runs at most one fix pass and at
// most one reverification; it never iterates to convergence, which
// bounds runtime and rules out oscillation between heuristic fixes.
type Orchestrator struct {
	// Compiler is the black-box type checker.
	Compiler toolchain.Compiler

	// Linter supplies unused-binding evidence. May be nil.
	Linter toolchain.Linter

	// Config carries the run configuration.
	Config *config.Config

	state State
}

// New creates an Orchestrator in the Idle state.
func New(compiler toolchain.Compiler, linter toolchain.Linter, cfg *config.Config) *Orchestrator {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Orchestrator{
		Compiler: compiler,
		Linter:   linter,
		Config:   cfg,
		state:    StateIdle,
	}
}

// State returns the orchestrator's current state.
func (o *Orchestrator) State() State {
	return o.state
}

// Run executes one full cycle and returns the aggregated result.
// Only a failure to invoke the compiler itself is returned as an
// error; per-file failures are captured in the BatchResult.
func (o *Orchestrator) Run(ctx context.Context) (*BatchResult, error) {
	cfg := o.Config
	logger := logging.RunLogger(ctx)

	// Checking: one compiler invocation, parsed and categorized.
	o.state = StateChecking
	check, err := o.Compiler.Check(ctx, cfg.Dir)
	if err != nil {
		o.state = StateDone
		return nil, fmt.Errorf("initial check: %w", err)
	}

	diags := diag.ParseWithOptions(check.Output, diag.ParseOptions{Root: cfg.Root})
	for i := range diags {
		diags[i].Category = diag.Categorize(diags[i].Code, diags[i].Message)
	}
	logger.Debug("check complete",
		logging.FieldState, o.state.String(),
		logging.FieldDiagnosticsTotal, len(diags),
	)

	batch := &BatchResult{
		Diagnostics:  diags,
		ErrorsBefore: len(diags),
		ErrorsAfter:  len(diags),
	}

	if len(diags) == 0 {
		o.state = StateDone
		if !check.Ok {
			batch.Warnings = append(batch.Warnings,
				"compiler exited non-zero but produced no parsable diagnostics")
		}
		return batch, nil
	}

	if !cfg.Fix {
		o.state = StateDone
		return batch, nil
	}

	// Fixing: one pass, file-level parallelism. Each file is owned by
	// exactly one job, so no two tasks ever write the same path.
	o.state = StateFixing
	jobs := o.buildJobs(ctx, diags, batch)
	batch.Total = len(jobs)

	results := o.runJobs(ctx, jobs)
	for _, fr := range results {
		batch.accumulate(fr)
	}
	sort.SliceStable(batch.Details, func(i, j int) bool {
		return batch.Details[i].File < batch.Details[j].File
	})
	logger.Debug("fix pass complete",
		logging.FieldFilesFixed, batch.Fixed,
		logging.FieldFilesFailed, batch.Failed,
		logging.FieldFilesSkipped, batch.Skipped,
	)

	// Reverifying: exactly one more compiler run, skipped when nothing
	// was written so the pre-fix counts already hold.
	if batch.Fixed > 0 && !cfg.DryRun {
		o.state = StateReverifying
		recheck, err := o.Compiler.Check(ctx, cfg.Dir)
		if err != nil {
			o.state = StateDone
			return batch, fmt.Errorf("reverification: %w", err)
		}
		after := diag.ParseWithOptions(recheck.Output, diag.ParseOptions{Root: cfg.Root})
		batch.Reverified = true
		batch.ErrorsAfter = len(after)
		logger.Debug("reverification complete",
			logging.FieldErrorsBefore, batch.ErrorsBefore,
			logging.FieldErrorsAfter, batch.ErrorsAfter,
		)
		if batch.ErrorsAfter > batch.ErrorsBefore {
			batch.Regressed = true
			batch.Warnings = append(batch.Warnings, ErrVerificationRegression.Error())
		}
	}

	o.state = StateDone
	return batch, nil
}

// buildJobs groups diagnostics per file, resolves paths, and attaches
// unused-binding evidence.
func (o *Orchestrator) buildJobs(ctx context.Context, diags []diag.Diagnostic, batch *BatchResult) []fileJob {
	cfg := o.Config
	groups := diag.GroupByFile(diags)

	files := make([]string, 0, len(groups))
	for file := range groups {
		files = append(files, file)
	}
	sort.Strings(files)

	unusedByFile := o.collectUnused(ctx, diags, files, batch)

	var jobs []fileJob
	for _, file := range files {
		if !underAny(file, cfg.Paths) {
			continue
		}
		if matchesAny(file, cfg.Ignore) {
			batch.accumulate(FixResult{
				File:    file,
				Skipped: true,
				Message: "ignored by configuration",
			})
			continue
		}
		abs := filepath.Join(cfg.Dir, filepath.FromSlash(file))
		if _, err := os.Stat(abs); err != nil {
			batch.accumulate(FixResult{
				File:    file,
				Err:     fmt.Errorf("%w: %s", fsutil.ErrNotFound, file),
				Message: "diagnosed file not found on disk",
			})
			continue
		}
		jobs = append(jobs, fileJob{
			Path:          abs,
			Rel:           file,
			Unused:        unusedByFile[file],
			HeuristicOnly: diag.AllImprecise(groups[file]),
		})
	}

	return jobs
}

// runJobs executes the per-file pipeline concurrently. Results land in
// a preallocated slice indexed by job, so workers share no state.
func (o *Orchestrator) runJobs(ctx context.Context, jobs []fileJob) []FixResult {
	cfg := o.Config

	pipeline := &Pipeline{Options: PipelineOptions{
		DuplicateFix:    cfg.DuplicateFix,
		UnusedFix:       cfg.UnusedFix,
		HeuristicUnused: cfg.HeuristicUnused,
		DryRun:          cfg.DryRun,
		Backup:          fsutil.BackupConfig{Enabled: cfg.Backups.Enabled},
	}}

	workers := cfg.Jobs
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]FixResult, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, job := range jobs {
		g.Go(func() error {
			results[i] = pipeline.ProcessFile(gctx, job)
			return nil
		})
	}
	// Workers never return errors; per-file failures live in results.
	_ = g.Wait()

	return results
}

// collectUnused gathers unused-binding evidence from the compiler's own
// unused-import codes and, when configured, from the external linter.
// Linter failures degrade to a warning; the merger can still run.
func (o *Orchestrator) collectUnused(
	ctx context.Context,
	diags []diag.Diagnostic,
	files []string,
	batch *BatchResult,
) map[string][]imports.Unused {
	cfg := o.Config
	unused := make(map[string][]imports.Unused)

	if !cfg.UnusedFix {
		return unused
	}

	for _, d := range diags {
		if name, ok := unusedNameFromDiagnostic(d); ok {
			unused[d.File] = append(unused[d.File], imports.Unused{Line: d.Line, Name: name})
		}
	}

	if o.Linter == nil || cfg.Linter.Disabled {
		return unused
	}

	// The linter is pointed only at discovered project sources:
	// diagnosed paths outside the source tree (vendored or generated
	// output) are never linted. A failed walk degrades to no scoping.
	lintTargets := files
	if discovered, derr := Discover(ctx, cfg.Dir, cfg.Ignore); derr == nil {
		candidates := make(map[string]struct{}, len(discovered))
		for _, f := range discovered {
			candidates[f] = struct{}{}
		}
		scoped := make([]string, 0, len(files))
		for _, f := range files {
			if _, ok := candidates[f]; ok {
				scoped = append(scoped, f)
			}
		}
		lintTargets = scoped
	}
	if len(lintTargets) == 0 {
		return unused
	}

	records, err := o.Linter.UnusedBindings(ctx, cfg.Dir, lintTargets)
	if err != nil {
		batch.Warnings = append(batch.Warnings,
			fmt.Sprintf("linter unavailable, unused-import evidence limited to compiler codes: %v", err))
		return unused
	}
	for _, rec := range records {
		file := diag.NormalizePath(rec.FilePath, cfg.Root)
		unused[file] = append(unused[file], imports.Unused{Line: rec.Line, Name: rec.Name})
	}

	return unused
}

// underAny reports whether a project-relative file sits under any of
// the given paths. An empty path list means no restriction.
func underAny(file string, paths []string) bool {
	if len(paths) == 0 {
		return true
	}
	for _, p := range paths {
		p = filepath.ToSlash(filepath.Clean(p))
		if p == "." || file == p || strings.HasPrefix(file, p+"/") {
			return true
		}
	}
	return false
}

// unusedImportCodes are compiler codes that certify an unused binding
// with a quoted name in the message.
//
//nolint:gochecknoglobals // Read-only lookup table.
var unusedImportCodes = map[string]struct{}{
	"TS6133": {},
	"TS6192": {},
	"TS6196": {},
}

var quotedNameRe = regexp.MustCompile(`'([^']+)'`)

// unusedNameFromDiagnostic extracts the binding name from a precise
// unused-import diagnostic.
func unusedNameFromDiagnostic(d diag.Diagnostic) (string, bool) {
	if !d.Source.Precise() || d.Line <= 0 {
		return "", false
	}
	if _, ok := unusedImportCodes[d.Code]; !ok {
		return "", false
	}
	m := quotedNameRe.FindStringSubmatch(d.Message)
	if m == nil {
		return "", false
	}
	return m[1], true
}
