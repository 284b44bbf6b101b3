package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsfix/pkg/config"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	assert.True(t, cfg.Fix)
	assert.True(t, cfg.DuplicateFix)
	assert.True(t, cfg.UnusedFix)
	assert.False(t, cfg.HeuristicUnused)
	assert.False(t, cfg.DryRun)
	assert.False(t, cfg.Report)
	assert.Equal(t, "tsfix-report.txt", cfg.ReportPath)
	assert.Equal(t, "tsc", cfg.Compiler.Command)
	assert.Equal(t, "eslint", cfg.Linter.Command)
	assert.False(t, cfg.Linter.Disabled)
	assert.False(t, cfg.Backups.Enabled)
	assert.Zero(t, cfg.Jobs)
	assert.Empty(t, cfg.Ignore)
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	data := []byte(`
dir: ./web
root: /builds/app
duplicate_fix: false
jobs: 4
ignore:
  - "*.gen.ts"
compiler:
  command: npx tsc
  project: tsconfig.build.json
linter:
  disabled: true
backups:
  enabled: true
`)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, "./web", cfg.Dir)
	assert.Equal(t, "/builds/app", cfg.Root)
	assert.False(t, cfg.DuplicateFix)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, []string{"*.gen.ts"}, cfg.Ignore)
	assert.Equal(t, "npx tsc", cfg.Compiler.Command)
	assert.Equal(t, "tsconfig.build.json", cfg.Compiler.Project)
	assert.True(t, cfg.Linter.Disabled)
	assert.True(t, cfg.Backups.Enabled)

	// Untouched keys keep their defaults.
	assert.True(t, cfg.Fix)
	assert.True(t, cfg.UnusedFix)
	assert.Equal(t, "tsfix-report.txt", cfg.ReportPath)
}

func TestFromYAMLRejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("duplicat_fix: false\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.Dir = "./web"
	original.Jobs = 8
	original.Ignore = []string{"vendor/**"}
	original.Compiler.Args = []string{"--incremental", "false"}

	data, err := original.ToYAML()
	require.NoError(t, err)

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}

func TestToYAMLNil(t *testing.T) {
	t.Parallel()

	var cfg *config.Config
	data, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.Nil(t, data)
}
