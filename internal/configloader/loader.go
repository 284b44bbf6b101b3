// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical
// merging, environment variable support, and validation.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/tsfix/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIOverlay contains configuration from CLI flags. These take
	// highest precedence; the CLI records only flags actually set.
	CLIOverlay *Overlay
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIOverlay)
//  2. Environment variables (TSFIX_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.tsfix.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/tsfix/config.yaml)
//  6. System config (/etc/tsfix/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{
		Paths: &ConfigPaths{},
	}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	// Start with defaults
	cfg := config.NewConfig()

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	result.Paths = paths

	if opts.ExplicitPath != "" {
		result.Paths.Explicit = opts.ExplicitPath
	}

	// Load and merge in order (lowest to highest precedence)

	// 1. System config
	if !opts.IgnoreSystemConfig && paths.System != "" {
		if err := applyConfigFile(cfg, paths.System, result); err != nil {
			return nil, fmt.Errorf("load system config: %w", err)
		}
	}

	// 2. User config
	if !opts.IgnoreUserConfig && paths.User != "" {
		if err := applyConfigFile(cfg, paths.User, result); err != nil {
			return nil, fmt.Errorf("load user config: %w", err)
		}
	}

	// 3. Project config
	if !opts.IgnoreProjectConfig && paths.Project != "" {
		if err := applyConfigFile(cfg, paths.Project, result); err != nil {
			return nil, fmt.Errorf("load project config: %w", err)
		}
	}

	// 4. Explicit config (--config flag)
	if opts.ExplicitPath != "" {
		if err := applyConfigFile(cfg, opts.ExplicitPath, result); err != nil {
			return nil, fmt.Errorf("load explicit config: %w", err)
		}
	}

	// 5. Environment variables
	if !opts.IgnoreEnv {
		envOverlay, err := OverlayFromEnv()
		if err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
		Apply(cfg, envOverlay)
	}

	// 6. CLI flags (highest precedence)
	Apply(cfg, opts.CLIOverlay)

	// Validate final configuration
	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}

	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

// applyConfigFile reads a YAML file, parses it into an overlay, and
// folds it into cfg.
func applyConfigFile(cfg *config.Config, path string, result *LoadResult) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	ov, err := ParseOverlay(content)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	Apply(cfg, ov)
	result.LoadedFrom = append(result.LoadedFrom, path)
	return nil
}
