package checker

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// schemeRE matches targets that carry a URL scheme (http:, mailto:, ...).
var schemeRE = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*:`)

var markdown = goldmark.New()

// LinkTargets returns the destinations of every link and image in a
// Markdown document, in document order. Code spans and fenced blocks are
// not links, so samples inside them are ignored.
func LinkTargets(src []byte) []string {
	doc := markdown.Parser().Parse(text.NewReader(src))

	var targets []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			targets = append(targets, string(node.Destination))
		case *ast.Image:
			targets = append(targets, string(node.Destination))
		}
		return ast.WalkContinue, nil
	})
	return targets
}

// IsInternalLink reports whether target points into the repository: not
// empty, not an in-page anchor, and without a URL scheme.
func IsInternalLink(target string) bool {
	return target != "" && !strings.HasPrefix(target, "#") && !schemeRE.MatchString(target)
}

// CheckInternalLinks collects every internal link in path whose target does
// not exist, either relative to repoRoot or to the file's own directory.
// Broken targets are reported exactly as written.
func CheckInternalLinks(repoRoot, path string) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return fail(err.Error())
	}

	var broken []string
	seen := make(map[string]bool)
	for _, target := range LinkTargets(data) {
		if !IsInternalLink(target) || seen[target] {
			continue
		}
		seen[target] = true
		if !linkResolves(repoRoot, filepath.Dir(path), target) {
			broken = append(broken, target)
		}
	}

	if len(broken) > 0 {
		return fail(fmt.Sprintf("%d broken link(s)", len(broken)), broken...)
	}
	return pass()
}

func linkResolves(repoRoot, fileDir, target string) bool {
	p := target
	if i := strings.IndexAny(p, "#?"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return true
	}
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}
	p = filepath.FromSlash(p)

	root, err := filepath.Abs(repoRoot)
	if err != nil {
		return false
	}
	resolves := func(base string) bool {
		full, err := filepath.Abs(filepath.Join(base, p))
		return err == nil && within(root, full) && exists(full)
	}

	if filepath.IsAbs(p) || strings.HasPrefix(p, string(filepath.Separator)) {
		return resolves(root)
	}
	return resolves(root) || resolves(fileDir)
}

// within reports whether path is root or below it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
