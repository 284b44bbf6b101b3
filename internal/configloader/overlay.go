package configloader

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/tsfix/pkg/config"
)

// Overlay mirrors config.Config with pointer fields so that an explicit
// "false" or empty value in a higher-precedence source can override a
// default of true. A nil field means "not set here".
type Overlay struct {
	Dir             *string  `yaml:"dir"`
	Root            *string  `yaml:"root"`
	Fix             *bool    `yaml:"fix"`
	DuplicateFix    *bool    `yaml:"duplicate_fix"`
	UnusedFix       *bool    `yaml:"unused_fix"`
	HeuristicUnused *bool    `yaml:"heuristic_unused"`
	DryRun          *bool    `yaml:"dry_run"`
	Report          *bool    `yaml:"report"`
	ReportPath      *string  `yaml:"report_path"`
	Verbose         *bool    `yaml:"verbose"`
	Jobs            *int     `yaml:"jobs"`
	Ignore          []string `yaml:"ignore"`

	Compiler struct {
		Command *string  `yaml:"command"`
		Project *string  `yaml:"project"`
		Args    []string `yaml:"args"`
	} `yaml:"compiler"`

	Linter struct {
		Command  *string  `yaml:"command"`
		Args     []string `yaml:"args"`
		Disabled *bool    `yaml:"disabled"`
	} `yaml:"linter"`

	Backups struct {
		Enabled *bool `yaml:"enabled"`
	} `yaml:"backups"`
}

// ParseOverlay parses YAML content into an Overlay, rejecting unknown keys.
func ParseOverlay(content []byte) (*Overlay, error) {
	var ov Overlay
	if err := yamlUnmarshalStrict(content, &ov); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	return &ov, nil
}

func yamlUnmarshalStrict(content []byte, out any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)

	err := decoder.Decode(out)
	if errors.Is(err, io.EOF) {
		// Empty document
		return nil
	}
	return err
}

// Apply folds an overlay into cfg. Set fields overwrite; nil fields
// leave cfg untouched. Slices replace entirely when non-nil.
func Apply(cfg *config.Config, ov *Overlay) {
	if cfg == nil || ov == nil {
		return
	}

	setString(&cfg.Dir, ov.Dir)
	setString(&cfg.Root, ov.Root)
	setBool(&cfg.Fix, ov.Fix)
	setBool(&cfg.DuplicateFix, ov.DuplicateFix)
	setBool(&cfg.UnusedFix, ov.UnusedFix)
	setBool(&cfg.HeuristicUnused, ov.HeuristicUnused)
	setBool(&cfg.DryRun, ov.DryRun)
	setBool(&cfg.Report, ov.Report)
	setString(&cfg.ReportPath, ov.ReportPath)
	setBool(&cfg.Verbose, ov.Verbose)
	setInt(&cfg.Jobs, ov.Jobs)
	if ov.Ignore != nil {
		cfg.Ignore = ov.Ignore
	}

	setString(&cfg.Compiler.Command, ov.Compiler.Command)
	setString(&cfg.Compiler.Project, ov.Compiler.Project)
	if ov.Compiler.Args != nil {
		cfg.Compiler.Args = ov.Compiler.Args
	}

	setString(&cfg.Linter.Command, ov.Linter.Command)
	if ov.Linter.Args != nil {
		cfg.Linter.Args = ov.Linter.Args
	}
	setBool(&cfg.Linter.Disabled, ov.Linter.Disabled)

	setBool(&cfg.Backups.Enabled, ov.Backups.Enabled)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
