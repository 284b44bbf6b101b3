// Package config defines core configuration types for tsfix.
// These are pure data structures with no dependency on config loaders.
package config

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// CompilerConfig describes how to invoke the external type checker.
type CompilerConfig struct {
	// Command is the executable name (default "tsc").
	Command string `yaml:"command"`

	// Project is an optional tsconfig path passed via --project.
	Project string `yaml:"project"`

	// Args are extra arguments appended to the invocation.
	Args []string `yaml:"args"`
}

// LinterConfig describes how to invoke the external unused-bindings
// linter.
type LinterConfig struct {
	// Command is the executable name (default "eslint").
	Command string `yaml:"command"`

	// Args are extra arguments appended to the invocation.
	Args []string `yaml:"args"`

	// Disabled skips the linter entirely.
	Disabled bool `yaml:"disabled"`
}

// Config is the root configuration structure for tsfix.
type Config struct {
	// Dir is the project working directory the compiler runs in.
	Dir string `yaml:"dir"`

	// Root is the path prefix stripped during diagnostic path
	// normalization. Defaults to empty (no stripping beyond drive
	// letters and leading slashes).
	Root string `yaml:"root"`

	// Fix enables writing fixes; when false only analysis runs.
	Fix bool `yaml:"fix"`

	// DuplicateFix enables the duplicate-import merger.
	DuplicateFix bool `yaml:"duplicate_fix"`

	// UnusedFix enables the unused-import remover.
	UnusedFix bool `yaml:"unused_fix"`

	// HeuristicUnused opts in to the occurrence-count unused fallback
	// for projects without a linter. Off by default: counting name
	// occurrences cannot see shadowing or dynamic uses.
	HeuristicUnused bool `yaml:"heuristic_unused"`

	// DryRun analyzes and shows diffs without writing files.
	DryRun bool `yaml:"dry_run"`

	// Report enables writing the plain-text report artifact.
	Report bool `yaml:"report"`

	// ReportPath is the report artifact destination.
	ReportPath string `yaml:"report_path"`

	// Verbose includes suggestions and per-diagnostic detail in output.
	Verbose bool `yaml:"verbose"`

	// Jobs bounds per-file fix parallelism (0 = NumCPU).
	Jobs int `yaml:"jobs"`

	// Ignore contains glob patterns for files never to touch.
	Ignore []string `yaml:"ignore"`

	// Paths restricts fixing to files under the given project-relative
	// paths. Empty means no restriction. CLI-only, never loaded from
	// config files.
	Paths []string `yaml:"-"`

	// Compiler configures the type-checker invocation.
	Compiler CompilerConfig `yaml:"compiler"`

	// Linter configures the unused-bindings linter invocation.
	Linter LinterConfig `yaml:"linter"`

	// Backups configures sidecar backups before destructive writes.
	Backups BackupsConfig `yaml:"backups"`
}

// NewConfig returns a Config with defaults applied.
func NewConfig() *Config {
	return &Config{
		Fix:          true,
		DuplicateFix: true,
		UnusedFix:    true,
		ReportPath:   "tsfix-report.txt",
		Compiler: CompilerConfig{
			Command: "tsc",
		},
		Linter: LinterConfig{
			Command: "eslint",
		},
	}
}
