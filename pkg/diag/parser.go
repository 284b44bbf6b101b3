package diag

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
)

// summaryCode is the generic code attached to tier-3 and tier-4
// diagnostics, which carry no real compiler code.
const summaryCode = "TS0000"

// Tier patterns, tried in order of decreasing precision.
var (
	// src/foo.ts(10,5): error TS2307: Cannot find module 'x'.
	primaryRe = regexp.MustCompile(`^(.+?)\((\d+),(\d+)\):\s+(error|warning)\s+(TS\d+):\s*(.*)$`)

	// src/foo.ts:10:5 - error TS2307: Cannot find module 'x'.
	alternateRe = regexp.MustCompile(`^(.+?):(\d+):(\d+)\s+-\s+(error|warning)\s+(TS\d+):\s*(.*)$`)

	// "    12  src/foo.ts:10" rows from an aggregate error table.
	summaryRowRe = regexp.MustCompile(`^\s*(\d+)\s+(\S+?\.(?:ts|tsx)):(\d+)\s*$`)

	// Any project-relative TypeScript path anywhere in the text.
	pathScanRe = regexp.MustCompile(`[A-Za-z0-9_@][A-Za-z0-9_./@-]*\.(?:ts|tsx)\b`)
)

// ParseOptions controls parsing behavior.
type ParseOptions struct {
	// Root is the project root prefix stripped during path normalization.
	Root string
}

// Parse structures raw compiler output into diagnostics using the
// default options. It never fails: unparsable input yields an empty
// slice, and degraded input yields best-effort, lower-tier diagnostics.
func Parse(raw string) []Diagnostic {
	return ParseWithOptions(raw, ParseOptions{})
}

// ParseWithOptions structures raw compiler output into diagnostics.
//
// Four tiers are attempted, each only if the previous produced nothing:
// the primary paren format, the colon-separated alternate format, the
// aggregate summary table, and finally a raw scan for TypeScript paths.
// The compiler's output format is not stable across shells, operating
// systems, and versions, so recall is prioritized over precision in the
// lower tiers. Every diagnostic records its producing tier.
func ParseWithOptions(raw string, opts ParseOptions) []Diagnostic {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	if diags := parseStructured(raw, primaryRe, SourcePrimary, opts); len(diags) > 0 {
		Sort(diags)
		return diags
	}
	if diags := parseStructured(raw, alternateRe, SourceAlternate, opts); len(diags) > 0 {
		Sort(diags)
		return diags
	}
	if diags := parseSummaryTable(raw, opts); len(diags) > 0 {
		Sort(diags)
		return diags
	}
	diags := parsePathScan(raw, opts)
	Sort(diags)
	return diags
}

// parseStructured handles tiers 1 and 2, which share a capture layout:
// path, line, column, severity, code, message.
func parseStructured(raw string, re *regexp.Regexp, source Source, opts ParseOptions) []Diagnostic {
	var diags []Diagnostic

	scanner := bufio.NewScanner(strings.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		m := re.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		line, lineErr := strconv.Atoi(m[2])
		col, colErr := strconv.Atoi(m[3])
		if lineErr != nil || colErr != nil {
			continue
		}
		diags = append(diags, Diagnostic{
			File:     NormalizePath(m[1], opts.Root),
			Line:     line,
			Column:   col,
			Severity: Severity(m[4]),
			Code:     m[5],
			Message:  strings.TrimSpace(m[6]),
			Source:   source,
		})
	}

	return diags
}

// parseSummaryTable handles tier 3: some tool invocations emit only an
// aggregate table of "count  file:line" rows. These become low-confidence
// diagnostics with a generic code.
func parseSummaryTable(raw string, opts ParseOptions) []Diagnostic {
	var diags []Diagnostic

	scanner := bufio.NewScanner(strings.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		m := summaryRowRe.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		count, err := strconv.Atoi(m[1])
		if err != nil || count <= 0 {
			continue
		}
		line, err := strconv.Atoi(m[3])
		if err != nil {
			continue
		}
		diags = append(diags, Diagnostic{
			File:     NormalizePath(m[2], opts.Root),
			Line:     line,
			Severity: SeverityError,
			Code:     summaryCode,
			Message:  strconv.Itoa(count) + " errors reported in summary output",
			Source:   SourceSummary,
		})
	}

	return diags
}

// parsePathScan handles tier 4: scan the text for anything that looks
// like a project-relative TypeScript path and emit one placeholder
// diagnostic per distinct path.
func parsePathScan(raw string, opts ParseOptions) []Diagnostic {
	seen := make(map[string]struct{})
	var diags []Diagnostic

	for _, match := range pathScanRe.FindAllString(raw, -1) {
		path := NormalizePath(match, opts.Root)
		if path == "" || strings.Contains(path, "node_modules/") {
			continue
		}
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		diags = append(diags, Diagnostic{
			File:     path,
			Severity: SeverityError,
			Code:     summaryCode,
			Message:  "file referenced in unrecognized compiler output",
			Source:   SourceScan,
		})
	}

	return diags
}
