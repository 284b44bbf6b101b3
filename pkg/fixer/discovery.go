package fixer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// skipDirs are directory names never descended into during discovery.
//
//nolint:gochecknoglobals // Read-only lookup table.
var skipDirs = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	"dist":         {},
	"build":        {},
	"coverage":     {},
}

// Discover walks dir and returns the project-relative, forward-slash
// paths of candidate TypeScript sources, deterministically sorted.
// Declaration files, vendored paths, and ignored globs are excluded.
func Discover(ctx context.Context, dir string, ignore []string) ([]string, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve directory: %w", err)
	}

	var files []string

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if _, skip := skipDirs[entry.Name()]; skip && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if !isCandidatePath(rel) || matchesAny(rel, ignore) {
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover sources: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

// isCandidatePath applies the extension and vendoring filters that need
// no file content.
func isCandidatePath(rel string) bool {
	if strings.HasSuffix(rel, ".d.ts") {
		return false
	}
	ext := filepath.Ext(rel)
	if ext != ".ts" && ext != ".tsx" {
		return false
	}
	return !enry.IsVendor(rel)
}

// matchesAny reports whether rel matches any of the ignore globs,
// against either the full relative path or the base name.
func matchesAny(rel string, globs []string) bool {
	base := filepath.Base(rel)
	for _, g := range globs {
		if ok, _ := filepath.Match(g, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(g, base); ok {
			return true
		}
	}
	return false
}
