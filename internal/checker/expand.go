package checker

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// ErrInvalidPattern wraps glob compilation failures.
var ErrInvalidPattern = errors.New("invalid glob pattern")

// skipDirs are never descended into while expanding globs.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
}

// IsGlob reports whether target contains glob syntax.
func IsGlob(target string) bool {
	return strings.ContainsAny(target, "*?[{")
}

// Expand replaces every glob rule with one rule per matching repo-relative
// path, in walk order. Plain targets pass through unchanged. A glob with no
// matches contributes nothing.
func Expand(repoRoot string, rules []Rule) ([]Rule, error) {
	var out []Rule
	var paths []string
	walked := false

	for _, r := range rules {
		if !IsGlob(r.Target) {
			out = append(out, r)
			continue
		}

		g, err := glob.Compile(r.Target, '/')
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.ID, errors.Join(ErrInvalidPattern, err))
		}
		if !walked {
			paths = walkRepo(repoRoot)
			walked = true
		}
		for _, p := range paths {
			if g.Match(p) {
				expanded := r
				expanded.Target = p
				out = append(out, expanded)
			}
		}
	}
	return out, nil
}

// walkRepo lists every file and directory below root as slash paths.
func walkRepo(root string) []string {
	var paths []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == root {
			return nil
		}
		if d.IsDir() && skipDirs[d.Name()] {
			return filepath.SkipDir
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	return paths
}
