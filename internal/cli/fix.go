package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/tsfix/internal/configloader"
	"github.com/yaklabco/tsfix/internal/logging"
	"github.com/yaklabco/tsfix/internal/ui/pretty"
	"github.com/yaklabco/tsfix/pkg/diag"
	"github.com/yaklabco/tsfix/pkg/fixer"
	"github.com/yaklabco/tsfix/pkg/report"
	"github.com/yaklabco/tsfix/pkg/toolchain"
)

type fixFlags struct {
	noFix           bool
	noDuplicateFix  bool
	noUnusedFix     bool
	heuristicUnused bool
	dryRun          bool
	writeReport     bool
	reportPath      string
	verbose         bool
	dir             string
	jobs            int
	ignore          []string
	compiler        string
	project         string
	linter          string
	noLinter        bool
	backups         bool
}

func newFixCommand() *cobra.Command {
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Check the project and fix import problems",
		Long:  fixLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, flags, false)
		},
	}

	addFixFlags(cmd, flags)

	return cmd
}

const fixLongDescription = `Run the TypeScript compiler, parse its diagnostics, and repair the
import problems that can be fixed safely.

Duplicate import statements for the same module are merged into one,
and imports certified unused by the compiler or linter are removed.
After fixing, the compiler runs once more to verify the error count
went down.

Examples:
  tsfix fix                      # Check and fix the current directory
  tsfix fix src/                 # Restrict fixes to files under src/
  tsfix fix --dry-run            # Show fixes as diffs without applying
  tsfix fix --no-unused-fix      # Merge duplicates only
  tsfix fix --report             # Also write a plain-text report`

func runFix(cmd *cobra.Command, args []string, flags *fixFlags, analyzeOnly bool) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithRunLogger(ctx, logger)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIOverlay:   overlayFromFlags(cmd, flags),
	})
	if err != nil {
		return errors.Join(ErrConfig, err)
	}

	cfg := loadResult.Config
	cfg.Paths = args
	if cfg.Dir == "" {
		cfg.Dir = workDir
	}
	if analyzeOnly {
		cfg.Fix = false
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	logger.Debug("configuration loaded",
		logging.FieldWorkingDir, cfg.Dir,
		logging.FieldFix, cfg.Fix,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldCompiler, cfg.Compiler.Command,
		logging.FieldLinter, cfg.Linter.Command,
	)

	compiler := toolchain.NewTSC(cfg.Compiler.Command, cfg.Compiler.Project, cfg.Compiler.Args)

	var linter toolchain.Linter
	if !cfg.Linter.Disabled && cfg.Linter.Command != "" {
		linter = toolchain.NewESLint(cfg.Linter.Command, cfg.Linter.Args)
	}

	orch := fixer.New(compiler, linter, cfg)
	batch, err := orch.Run(ctx)
	if err != nil {
		return fmt.Errorf("fix run: %w", err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))

	printBatch(out, styles, batch, cfg.Verbose, cfg.DryRun)

	if cfg.Report {
		if werr := report.WriteFile(ctx, cfg.ReportPath, batch, report.Options{
			Suggestions: cfg.Verbose,
		}); werr != nil {
			return errors.Join(ErrIO, fmt.Errorf("write report: %w", werr))
		}
		logger.Info("report written", logging.FieldPath, cfg.ReportPath)
	}

	if ExitCodeFromResult(batch) != ExitSuccess {
		return ErrErrorsRemain
	}

	return nil
}

// printBatch renders diagnostics, dry-run diffs, and the summary.
func printBatch(out io.Writer, styles *pretty.Styles, batch *fixer.BatchResult, verbose, dryRun bool) {
	if len(batch.Diagnostics) > 0 {
		if verbose {
			printGrouped(out, styles, batch.Diagnostics)
		} else {
			formatter := pretty.NewTableFormatter(styles, terminalWidth(out))
			fmt.Fprint(out, formatter.FormatTable(batch.Diagnostics))
		}
	}

	if dryRun {
		for _, fr := range batch.Details {
			if fr.Diff == nil || !fr.Diff.HasChanges() {
				continue
			}
			fmt.Fprintln(out)
			fmt.Fprint(out, styles.FormatDiff(fr.Diff.String()))
		}
	}

	if verbose {
		fmt.Fprint(out, styles.FormatSummary(batch))
	} else {
		fmt.Fprint(out, styles.FormatSummaryOneLine(batch))
	}
}

// printGrouped writes diagnostics grouped by file with category hints.
func printGrouped(out io.Writer, styles *pretty.Styles, diags []diag.Diagnostic) {
	lastFile := ""
	for i := range diags {
		d := &diags[i]
		if d.File != lastFile {
			if lastFile != "" {
				fmt.Fprintln(out)
			}
			count := 0
			for j := range diags {
				if diags[j].File == d.File {
					count++
				}
			}
			fmt.Fprintln(out, styles.FormatFileHeader(d.File, count))
			lastFile = d.File
		}
		fmt.Fprint(out, styles.FormatDiagnostic(d, d.Snippet != "", d.Snippet))
		fmt.Fprint(out, styles.FormatSuggestions(diag.Suggest(d.Category)))
	}
	fmt.Fprintln(out)
}

// terminalWidth returns the writer's terminal width, or 0 when unknown.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 0
	}
	return width
}

// overlayFromFlags records only the flags the user actually set, so
// config files and environment variables keep their say otherwise.
func overlayFromFlags(cmd *cobra.Command, flags *fixFlags) *configloader.Overlay {
	ov := &configloader.Overlay{}
	set := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if set("no-fix") {
		v := !flags.noFix
		ov.Fix = &v
	}
	if set("no-duplicate-fix") {
		v := !flags.noDuplicateFix
		ov.DuplicateFix = &v
	}
	if set("no-unused-fix") {
		v := !flags.noUnusedFix
		ov.UnusedFix = &v
	}
	if set("heuristic-unused") {
		ov.HeuristicUnused = &flags.heuristicUnused
	}
	if set("dry-run") {
		ov.DryRun = &flags.dryRun
	}
	if set("report") {
		ov.Report = &flags.writeReport
	}
	if set("report-path") {
		ov.ReportPath = &flags.reportPath
	}
	if set("verbose") {
		ov.Verbose = &flags.verbose
	}
	if set("dir") {
		ov.Dir = &flags.dir
	}
	if set("jobs") {
		ov.Jobs = &flags.jobs
	}
	if set("ignore") {
		ov.Ignore = flags.ignore
	}
	if set("compiler") {
		ov.Compiler.Command = &flags.compiler
	}
	if set("project") {
		ov.Compiler.Project = &flags.project
	}
	if set("linter") {
		ov.Linter.Command = &flags.linter
	}
	if set("no-linter") {
		ov.Linter.Disabled = &flags.noLinter
	}
	if set("backups") {
		ov.Backups.Enabled = &flags.backups
	}

	return ov
}

func addFixFlags(cmd *cobra.Command, flags *fixFlags) {
	cmd.Flags().BoolVar(&flags.noFix, "no-fix", false, "analyze only, do not write fixes")
	cmd.Flags().BoolVar(&flags.noDuplicateFix, "no-duplicate-fix", false, "disable duplicate-import merging")
	cmd.Flags().BoolVar(&flags.noUnusedFix, "no-unused-fix", false, "disable unused-import removal")
	cmd.Flags().BoolVar(&flags.heuristicUnused, "heuristic-unused", false,
		"remove imports whose name occurs nowhere else in the file (no linter needed)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show fixes as diffs without applying them")
	addOutputFlags(cmd, flags)
	cmd.Flags().StringVar(&flags.compiler, "compiler", "", "type-checker executable (default tsc)")
	cmd.Flags().StringVar(&flags.project, "project", "", "tsconfig path passed to the compiler")
	cmd.Flags().StringVar(&flags.linter, "linter", "", "linter executable (default eslint)")
	cmd.Flags().BoolVar(&flags.noLinter, "no-linter", false, "skip the linter entirely")
	cmd.Flags().BoolVar(&flags.backups, "backups", false, "create sidecar backups before rewriting files")
}

// addOutputFlags registers the flags shared by fix and check.
func addOutputFlags(cmd *cobra.Command, flags *fixFlags) {
	cmd.Flags().BoolVar(&flags.writeReport, "report", false, "write a plain-text report")
	cmd.Flags().StringVar(&flags.reportPath, "report-path", "", "report destination (default tsfix-report.txt)")
	cmd.Flags().BoolVar(&flags.verbose, "verbose", false, "per-diagnostic detail and category suggestions")
	cmd.Flags().StringVar(&flags.dir, "dir", "", "project directory the compiler runs in")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns for files never to touch")
}
