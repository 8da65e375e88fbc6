package checker

import (
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/grok-skills/grokkit/internal/catalog"
	"github.com/grok-skills/grokkit/internal/config"
	"github.com/grok-skills/grokkit/internal/grokhome"
)

// MarkdownGlob matches every Markdown file in the repository.
const MarkdownGlob = "{*.md,**/*.md}"

// Section keywords a skill or agent doc should mention at least one of.
var docKeywords = []string{"overview", "usage", "when to use"}

// DefaultRules builds the built-in rule set for repoRoot from the catalog.
// An empty filter selects every category. Zero size bounds fall back to
// the config defaults.
func DefaultRules(repoRoot string, filter []Category, minBytes, maxBytes int64) ([]Rule, error) {
	if minBytes <= 0 {
		minBytes = config.DefaultMinBytes
	}
	if maxBytes <= 0 {
		maxBytes = config.DefaultMaxBytes
	}

	entries, err := catalog.Discover(repoRoot)
	if err != nil {
		return nil, err
	}

	want := func(c Category) bool { return len(filter) == 0 || slices.Contains(filter, c) }
	var rules []Rule

	if want(CategoryStructure) {
		rules = append(rules,
			Rule{ID: "structure.readme", Kind: KindFileExists, Category: CategoryStructure, Target: "README.md"},
			Rule{ID: "structure.namespace", Kind: KindDirExists, Category: CategoryStructure, Target: grokhome.SkillsDir},
			Rule{ID: "structure.namespace", Kind: KindDirExists, Category: CategoryStructure, Target: grokhome.AgentsDir},
		)
		seen := make(map[string]bool)
		for _, e := range entries {
			cat := path.Join(e.Namespace, e.Category)
			if !seen[cat] {
				seen[cat] = true
				rules = append(rules, Rule{ID: "structure.category-declared", Kind: KindCategoryDeclared, Category: CategoryStructure, Target: cat})
			}
			rules = append(rules,
				Rule{ID: "structure.entry-dir", Kind: KindDirExists, Category: CategoryStructure, Target: e.RelDir},
				Rule{ID: "structure.primary-doc", Kind: KindPrimaryDoc, Category: CategoryStructure, Target: e.RelDir},
			)
		}
	}

	if want(CategoryContent) {
		for _, e := range entries {
			if len(e.DocPaths) != 1 {
				continue // reported by structure.primary-doc
			}
			doc := docTarget(repoRoot, e)
			rules = append(rules,
				Rule{ID: "content.frontmatter", Kind: KindHasFrontmatter, Category: CategoryContent, Target: doc},
				Rule{ID: "content.frontmatter-schema", Kind: KindFrontmatterSchema, Category: CategoryContent, Target: doc},
				Rule{ID: "content.size", Kind: KindSizeRange, Category: CategoryContent, Target: doc,
					Params: Params{MinBytes: minBytes, MaxBytes: maxBytes}},
				Rule{ID: "content.sections", Kind: KindContainsKeyword, Category: CategoryContent, Target: doc,
					Params: Params{Keywords: docKeywords, MatchAny: true}},
			)
		}
	}

	if want(CategoryIntegration) {
		rules = append(rules, Rule{ID: "integration.links", Kind: KindInternalLinks, Category: CategoryIntegration, Target: MarkdownGlob})
		for _, e := range entries {
			if e.Workflow == "" {
				continue
			}
			rules = append(rules, Rule{ID: "integration.workflow-yaml", Kind: KindYAMLSyntax, Category: CategoryIntegration, Target: relSlash(repoRoot, e.Workflow)})
		}
	}

	if want(CategoryQuality) {
		rules = append(rules, Rule{ID: "quality.readme", Kind: KindContainsKeyword, Category: CategoryQuality, Target: "README.md",
			Params: Params{Keywords: []string{"install", "usage"}}})
		if _, err := os.Stat(filepath.Join(repoRoot, "CONTRIBUTING.md")); err == nil {
			rules = append(rules, Rule{ID: "quality.contributing", Kind: KindContainsKeyword, Category: CategoryQuality, Target: "CONTRIBUTING.md",
				Params: Params{Keywords: []string{"pull request", "frontmatter"}, MatchAny: true}})
		}
	}

	return rules, nil
}

// docTarget is the entry's single primary doc as a repo-relative path.
func docTarget(repoRoot string, e catalog.Entry) string {
	return relSlash(repoRoot, e.DocPath())
}

func relSlash(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}
