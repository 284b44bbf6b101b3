package toolchain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// ErrLinterUnavailable indicates the linter binary could not be started.
var ErrLinterUnavailable = errors.New("linter unavailable")

// UnusedBinding is one import binding the linter certified as unused.
type UnusedBinding struct {
	FilePath string
	Line     int
	Column   int
	Name     string
	Message  string
}

// Linter reports unused bindings for a set of files.
type Linter interface {
	// UnusedBindings lints the given files (paths relative to dir) and
	// returns the bindings flagged by an unused-variables rule.
	UnusedBindings(ctx context.Context, dir string, files []string) ([]UnusedBinding, error)
}

// ESLint invokes eslint with JSON output and an unused-vars rule.
type ESLint struct {
	// Command is the executable name, "eslint" by default.
	Command string

	// Args are extra arguments appended before the file list.
	Args []string
}

// Compile-time interface verification.
var _ Linter = (*ESLint)(nil)

// NewESLint creates an ESLint runner with the given command, defaulting
// to "eslint" when empty.
func NewESLint(command string, args []string) *ESLint {
	if command == "" {
		command = "eslint"
	}
	return &ESLint{Command: command, Args: args}
}

// eslintMessage mirrors one entry of eslint's JSON formatter output.
type eslintMessage struct {
	RuleID   string `json:"ruleId"`
	Severity int    `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// eslintResult mirrors one file's results in eslint's JSON output.
type eslintResult struct {
	FilePath string          `json:"filePath"`
	Messages []eslintMessage `json:"messages"`
}

// unusedRules are the rule IDs whose messages identify unused bindings.
//
//nolint:gochecknoglobals // Read-only lookup table.
var unusedRules = map[string]struct{}{
	"no-unused-vars":                    {},
	"@typescript-eslint/no-unused-vars": {},
	"unused-imports/no-unused-imports":  {},
}

// unusedNameRe extracts the binding name from messages like
// "'Foo' is defined but never used."
var unusedNameRe = regexp.MustCompile(`'([^']+)'`)

// UnusedBindings runs eslint over files and extracts unused-binding
// records. eslint exits 1 when it finds problems; that is a successful
// lint, not a failure.
func (e *ESLint) UnusedBindings(ctx context.Context, dir string, files []string) ([]UnusedBinding, error) {
	if len(files) == 0 {
		return nil, nil
	}

	args := []string{"--format", "json", "--no-inline-config"}
	args = append(args, e.Args...)
	args = append(args, files...)

	cmd := exec.CommandContext(ctx, e.Command, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || exitErr.ExitCode() > 1 {
			return nil, fmt.Errorf("%w: %s: %w: %s",
				ErrLinterUnavailable, e.Command, err, strings.TrimSpace(stderr.String()))
		}
	}

	return ParseESLintJSON(stdout.Bytes())
}

// ParseESLintJSON extracts unused-binding records from eslint's JSON
// formatter output. Messages from rules other than the unused-vars
// family are ignored.
func ParseESLintJSON(data []byte) ([]UnusedBinding, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var results []eslintResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("parse eslint output: %w", err)
	}

	var unused []UnusedBinding
	for _, res := range results {
		for _, msg := range res.Messages {
			if _, ok := unusedRules[msg.RuleID]; !ok {
				continue
			}
			m := unusedNameRe.FindStringSubmatch(msg.Message)
			if m == nil {
				continue
			}
			unused = append(unused, UnusedBinding{
				FilePath: res.FilePath,
				Line:     msg.Line,
				Column:   msg.Column,
				Name:     m[1],
				Message:  msg.Message,
			})
		}
	}

	return unused, nil
}
