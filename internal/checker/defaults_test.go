package checker

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ruleIDs(rules []Rule) map[string]int {
	ids := make(map[string]int)
	for _, r := range rules {
		ids[r.ID]++
	}
	return ids
}

func TestDefaultRules(t *testing.T) {
	repo := setupRepo(t)

	rules, err := DefaultRules(repo, nil, 0, 0)
	require.NoError(t, err)
	ids := ruleIDs(rules)

	assert.Equal(t, 1, ids["structure.readme"])
	assert.Equal(t, 2, ids["structure.namespace"])
	assert.Equal(t, 2, ids["structure.category-declared"]) // skills/core, agents/review
	assert.Equal(t, 3, ids["structure.primary-doc"])
	assert.Equal(t, 3, ids["content.frontmatter"])
	assert.Equal(t, 1, ids["integration.links"])
	assert.Equal(t, 1, ids["integration.workflow-yaml"])
	assert.Equal(t, 1, ids["quality.contributing"])

	for _, r := range rules {
		if r.Kind == KindSizeRange {
			assert.Equal(t, int64(100), r.Params.MinBytes)
			assert.Equal(t, int64(100*1024), r.Params.MaxBytes)
		}
	}
}

func TestDefaultRulesFilter(t *testing.T) {
	repo := setupRepo(t)

	rules, err := DefaultRules(repo, []Category{CategoryIntegration}, 0, 0)
	require.NoError(t, err)
	for _, r := range rules {
		assert.Equal(t, CategoryIntegration, r.Category, r.ID)
	}
	assert.NotEmpty(t, rules)
}

func TestDefaultRulesFindBrokenSkill(t *testing.T) {
	repo := setupRepo(t)

	rules, err := DefaultRules(repo, nil, 10, 0)
	require.NoError(t, err)
	s, err := New(Options{RepoRoot: repo}).RunAll(context.Background(), rules)
	require.NoError(t, err)

	broken := filepath.ToSlash(filepath.Join("skills", "core", "broken", "GROK.md"))
	var reasons []string
	for _, o := range s.Failures() {
		assert.Equal(t, broken, o.Rule.Target, "unexpected failure %s: %s %v", o.Rule.ID, o.Reason, o.Details)
		reasons = append(reasons, o.Rule.ID)
	}
	assert.ElementsMatch(t, []string{
		"content.frontmatter",
		"content.frontmatter-schema",
		"content.sections",
		"integration.links",
	}, reasons)
}

func TestDefaultRulesFailEntryWithSeveralPrimaryDocs(t *testing.T) {
	repo := setupRepo(t)
	caseSensitiveFS(t, filepath.Join(repo, "skills", "core", "tdd"))

	rules, err := DefaultRules(repo, []Category{CategoryStructure, CategoryContent}, 0, 0)
	require.NoError(t, err)
	for _, r := range rules {
		assert.NotEqual(t, "skills/core/tdd/GROK.md", r.Target, "content rule %s still targets an ambiguous doc", r.ID)
	}

	s, err := New(Options{RepoRoot: repo}).RunAll(context.Background(), rules)
	require.NoError(t, err)

	var found bool
	for _, o := range s.Failures() {
		if o.Rule.ID == "structure.primary-doc" && o.Rule.Target == "skills/core/tdd" {
			found = true
			assert.Equal(t, "2 primary doc candidates: GROK.md, grok.md", o.Reason)
		}
	}
	assert.True(t, found, "ambiguous primary doc not reported")
	assert.Positive(t, s.ExitCode())
}
