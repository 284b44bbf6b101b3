// Package cli provides the Cobra command structure for tsfix.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tsfix/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root tsfix command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "tsfix",
		Short: "A diagnostic-driven TypeScript import fixer",
		Long: `tsfix runs the TypeScript compiler over a project, structures the
diagnostics it emits, and automatically repairs the import problems it
can fix safely: duplicate import statements are merged and unused
imports are removed, with a single reverification pass measuring the
result.

Fixes are conservative. Files are rewritten atomically, modified files
are detected and skipped, and dry-run mode shows the would-be changes
as unified diffs without touching anything.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Flag parse failures select the usage exit code.
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Join(ErrUsage, err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newFixCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
