package fixer

import (
	"context"
	"fmt"

	"github.com/yaklabco/tsfix/pkg/fix"
	"github.com/yaklabco/tsfix/pkg/fsutil"
	"github.com/yaklabco/tsfix/pkg/imports"
	"github.com/yaklabco/tsfix/pkg/langdetect"
)

// PipelineOptions controls per-file fix behavior.
type PipelineOptions struct {
	// DuplicateFix enables the duplicate-import merger.
	DuplicateFix bool

	// UnusedFix enables the unused-import remover.
	UnusedFix bool

	// HeuristicUnused opts in to the occurrence-count fallback when no
	// linter evidence is available for a file.
	HeuristicUnused bool

	// DryRun collects diffs instead of writing files.
	DryRun bool

	// Backup configures sidecar backups before writes.
	Backup fsutil.BackupConfig
}

// fileJob is one file's unit of work. Jobs partition the file set: no
// two jobs target the same path, so they may run concurrently without
// coordination.
type fileJob struct {
	// Path is the absolute path on disk.
	Path string

	// Rel is the normalized project-relative path used in results.
	Rel string

	// Unused holds linter- or diagnostic-certified unused bindings,
	// keyed to the file's pre-fix line numbers.
	Unused []imports.Unused

	// HeuristicOnly marks files whose diagnostics all lack positional
	// evidence; only the duplicate merge is safe for them.
	HeuristicOnly bool
}

// Pipeline processes a single file: build the import table, apply the
// merger and remover, sweep leftovers, and write the result safely.
type Pipeline struct {
	Options PipelineOptions
}

// ProcessFile runs the full per-file fix pipeline. The import table is
// rebuilt from current file contents at each stage and never carried
// over between files or passes.
func (p *Pipeline) ProcessFile(ctx context.Context, job fileJob) FixResult {
	result := FixResult{File: job.Rel}

	original, info, err := fsutil.ReadFile(ctx, job.Path)
	if err != nil {
		result.Err = err
		result.Message = fmt.Sprintf("read failed: %v", err)
		return result
	}

	if !langdetect.IsFixableSource(job.Path, original) {
		result.Skipped = true
		result.Message = "not fixable TypeScript source"
		return result
	}

	content := original

	// Stage 1: merge duplicate imports. The heuristic fallback for
	// low-confidence files is exactly this stage and nothing else; it
	// is the one rewrite that needs no per-line diagnostic evidence.
	// Disabling DuplicateFix disables it everywhere, heuristic-only
	// files included.
	if p.Options.DuplicateFix {
		content, err = p.applyMerge(content, &result)
		if err != nil {
			result.Err = err
			result.Message = fmt.Sprintf("merge failed: %v", err)
			return result
		}
	}

	// Stage 2: remove bindings certified unused. Skipped for
	// heuristic-only files, whose line evidence is untrustworthy.
	if p.Options.UnusedFix && !job.HeuristicOnly {
		unused := job.Unused
		if len(unused) == 0 && p.Options.HeuristicUnused {
			unused = imports.UnusedByOccurrence(content, imports.BuildTable(content))
		}
		if len(unused) > 0 {
			content, err = p.applyRemove(content, unused, &result)
			if err != nil {
				result.Err = err
				result.Message = fmt.Sprintf("unused removal failed: %v", err)
				return result
			}
		}
	}

	// Stage 3: sweep import lines the earlier stages left with empty
	// braces. Imports that were already empty before the pass are not
	// touched; deleting one would drop a side-effect module load.
	if result.ChangeCount > 0 {
		content, err = p.applySweep(original, content, &result)
		if err != nil {
			result.Err = err
			result.Message = fmt.Sprintf("cleanup failed: %v", err)
			return result
		}
	}

	if result.ChangeCount == 0 {
		result.Message = "no applicable fixes"
		return result
	}

	if p.Options.DryRun {
		result.Fixed = true
		result.Diff = fix.GenerateDiff(job.Rel, original, content)
		result.Message = fmt.Sprintf("%d changes (dry run)", result.ChangeCount)
		return result
	}

	modified, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		result.Err = err
		result.Message = fmt.Sprintf("modification check failed: %v", err)
		return result
	}
	if modified {
		result.Skipped = true
		result.Message = "file modified during processing"
		return result
	}

	if p.Options.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, job.Path, p.Options.Backup)
		if err != nil {
			result.Err = err
			result.Message = fmt.Sprintf("backup failed: %v", err)
			return result
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, job.Path, content, info.Mode); err != nil {
		result.Err = err
		result.Message = fmt.Sprintf("write failed: %v", err)
		return result
	}

	result.Fixed = true
	result.Message = fmt.Sprintf("%d changes applied", result.ChangeCount)
	return result
}

// applyMerge rebuilds the table and applies the duplicate merger.
func (p *Pipeline) applyMerge(content []byte, result *FixResult) ([]byte, error) {
	table := imports.BuildTable(content)
	mr := imports.Merge(content, table)
	result.Warnings = append(result.Warnings, mr.Warnings...)
	if len(mr.Edits) == 0 {
		return content, nil
	}

	prepared, err := fix.PrepareEdits(mr.Edits, len(content))
	if err != nil {
		return nil, err
	}
	result.ChangeCount += mr.Merged
	return fix.ApplyEdits(content, prepared), nil
}

// applyRemove relocates stale line evidence and applies the remover.
// Earlier merge edits may have shifted statements, so a binding that no
// longer sits on its recorded line is found again by local name.
func (p *Pipeline) applyRemove(content []byte, unused []imports.Unused, result *FixResult) ([]byte, error) {
	table := imports.BuildTable(content)
	relocated := relocateUnused(table, unused)
	edits, removed := imports.RemoveUnused(content, table, relocated)
	if len(edits) == 0 {
		return content, nil
	}

	prepared, err := fix.PrepareEdits(edits, len(content))
	if err != nil {
		return nil, err
	}
	result.ChangeCount += removed
	return fix.ApplyEdits(content, prepared), nil
}

// applySweep deletes empty-brace import lines produced by the earlier
// stages, leaving lines that were already empty in the original.
func (p *Pipeline) applySweep(original, content []byte, result *FixResult) ([]byte, error) {
	edits, swept := imports.SweepEmptiedImports(original, content)
	if len(edits) == 0 {
		return content, nil
	}

	prepared, err := fix.PrepareEdits(edits, len(content))
	if err != nil {
		return nil, err
	}
	result.ChangeCount += swept
	return fix.ApplyEdits(content, prepared), nil
}

// relocateUnused maps each unused record onto the current table. A
// record whose line still holds a statement binding that name is kept
// as is; otherwise the binding is searched by local name. Records whose
// name cannot be found anywhere are dropped rather than guessed at.
func relocateUnused(table imports.Table, unused []imports.Unused) []imports.Unused {
	var out []imports.Unused

	for _, u := range unused {
		if st, ok := table.StatementAt(u.Line); ok && bindsName(st, u.Name) {
			out = append(out, u)
			continue
		}
		if line, ok := findBindingLine(table, u.Name); ok {
			out = append(out, imports.Unused{Line: line, Name: u.Name})
		}
	}

	return out
}

func bindsName(st imports.Statement, name string) bool {
	for _, b := range st.Bindings {
		if b.LocalName == name {
			return true
		}
	}
	return false
}

func findBindingLine(table imports.Table, name string) (int, bool) {
	for _, module := range table.Modules() {
		for _, st := range table[module] {
			if bindsName(st, name) {
				return st.Line, true
			}
		}
	}
	return 0, false
}
