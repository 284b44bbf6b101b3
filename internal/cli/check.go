package cli

import (
	"github.com/spf13/cobra"
)

func newCheckCommand() *cobra.Command {
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check the project without fixing anything",
		Long: `Run the TypeScript compiler and report its diagnostics, structured
and categorized, without writing any fixes. Equivalent to fix --no-fix.

Examples:
  tsfix check                    # Check the current directory
  tsfix check --verbose          # Include category suggestions
  tsfix check --report           # Also write a plain-text report`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, flags, true)
		},
	}

	addOutputFlags(cmd, flags)
	cmd.Flags().StringVar(&flags.compiler, "compiler", "", "type-checker executable (default tsc)")
	cmd.Flags().StringVar(&flags.project, "project", "", "tsconfig path passed to the compiler")

	return cmd
}
