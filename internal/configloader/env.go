package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// envVarPrefix is the prefix for all tsfix environment variables.
const envVarPrefix = "TSFIX_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to overlay field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to overlay fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"DIR":              {field: "dir", typ: envTypeString},
	"ROOT":             {field: "root", typ: envTypeString},
	"FIX":              {field: "fix", typ: envTypeBool},
	"DUPLICATE_FIX":    {field: "duplicate_fix", typ: envTypeBool},
	"UNUSED_FIX":       {field: "unused_fix", typ: envTypeBool},
	"HEURISTIC_UNUSED": {field: "heuristic_unused", typ: envTypeBool},
	"DRY_RUN":          {field: "dry_run", typ: envTypeBool},
	"REPORT":           {field: "report", typ: envTypeBool},
	"REPORT_PATH":      {field: "report_path", typ: envTypeString},
	"VERBOSE":          {field: "verbose", typ: envTypeBool},
	"JOBS":             {field: "jobs", typ: envTypeInt},
	"IGNORE":           {field: "ignore", typ: envTypeSlice},
	"COMPILER":         {field: "compiler.command", typ: envTypeString},
	"PROJECT":          {field: "compiler.project", typ: envTypeString},
	"LINTER":           {field: "linter.command", typ: envTypeString},
	"NO_LINTER":        {field: "linter.disabled", typ: envTypeBool},
	"BACKUPS_ENABLED":  {field: "backups.enabled", typ: envTypeBool},
}

// OverlayFromEnv builds an overlay from TSFIX_* environment variables.
// Unset variables leave the corresponding field nil.
func OverlayFromEnv() (*Overlay, error) {
	ov := &Overlay{}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(ov, mapping, value, envVar); err != nil {
			return nil, err
		}
	}

	return ov, nil
}

// applyEnvValue applies a single environment variable value to the overlay.
func applyEnvValue(ov *Overlay, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(ov, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(ov, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(ov, mapping.field, i)
	case envTypeSlice:
		return setSliceField(ov, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the overlay by field path.
func setStringField(ov *Overlay, field, value string) error {
	switch field {
	case "dir":
		ov.Dir = &value
	case "root":
		ov.Root = &value
	case "report_path":
		ov.ReportPath = &value
	case "compiler.command":
		ov.Compiler.Command = &value
	case "compiler.project":
		ov.Compiler.Project = &value
	case "linter.command":
		ov.Linter.Command = &value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the overlay by field path.
func setBoolField(ov *Overlay, field string, value bool) error {
	switch field {
	case "fix":
		ov.Fix = &value
	case "duplicate_fix":
		ov.DuplicateFix = &value
	case "unused_fix":
		ov.UnusedFix = &value
	case "heuristic_unused":
		ov.HeuristicUnused = &value
	case "dry_run":
		ov.DryRun = &value
	case "report":
		ov.Report = &value
	case "verbose":
		ov.Verbose = &value
	case "linter.disabled":
		ov.Linter.Disabled = &value
	case "backups.enabled":
		ov.Backups.Enabled = &value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the overlay by field path.
func setIntField(ov *Overlay, field string, value int) error {
	switch field {
	case "jobs":
		ov.Jobs = &value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the overlay by field path.
func setSliceField(ov *Overlay, field string, value []string) error {
	switch field {
	case "ignore":
		ov.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"TSFIX_DIR":              "Project directory the compiler runs in",
		"TSFIX_ROOT":             "Path prefix stripped from diagnostic paths",
		"TSFIX_FIX":              "Enable auto-fix: true or false",
		"TSFIX_DUPLICATE_FIX":    "Enable duplicate-import merging: true or false",
		"TSFIX_UNUSED_FIX":       "Enable unused-import removal: true or false",
		"TSFIX_HEURISTIC_UNUSED": "Enable occurrence-count unused fallback: true or false",
		"TSFIX_DRY_RUN":          "Dry-run mode: true or false",
		"TSFIX_REPORT":           "Write the plain-text report: true or false",
		"TSFIX_REPORT_PATH":      "Report artifact destination path",
		"TSFIX_VERBOSE":          "Verbose output: true or false",
		"TSFIX_JOBS":             "Number of parallel workers (0 = auto)",
		"TSFIX_IGNORE":           "Comma-separated list of ignore patterns",
		"TSFIX_COMPILER":         "Type-checker executable (default tsc)",
		"TSFIX_PROJECT":          "tsconfig path passed to the compiler",
		"TSFIX_LINTER":           "Linter executable (default eslint)",
		"TSFIX_NO_LINTER":        "Disable the linter entirely: true or false",
		"TSFIX_BACKUPS_ENABLED":  "Create sidecar backups when fixing: true or false",
	}
}
