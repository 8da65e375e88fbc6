package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func setupRepo(t *testing.T) string {
	t.Helper()
	repo := t.TempDir()
	writeFile(t, filepath.Join(repo, "skills/core/tdd/GROK.md"), "---\nname: tdd\n---\n")
	writeFile(t, filepath.Join(repo, "skills/core/tdd/resources/checklist.md"), "- [ ] red\n")
	writeFile(t, filepath.Join(repo, "skills/core/tdd/scripts/run.sh"), "#!/bin/sh\n")
	writeFile(t, filepath.Join(repo, "skills/web3/solidity-audit/GROK.md"), "---\n")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, "skills/core/empty"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(repo, "skills/.hidden/x"), 0755))
	writeFile(t, filepath.Join(repo, "agents/review/code-reviewer/GROK.md"), "---\n")
	writeFile(t, filepath.Join(repo, "agents/review/code-reviewer/workflow.yaml"), "steps: []\n")
	return repo
}

func TestDiscover(t *testing.T) {
	repo := setupRepo(t)

	entries, err := Discover(repo)
	require.NoError(t, err)

	var ids []string
	for _, e := range entries {
		ids = append(ids, e.Namespace+":"+e.ID())
	}
	assert.Equal(t, []string{
		"skills:core/empty",
		"skills:core/tdd",
		"skills:web3/solidity-audit",
		"agents:review/code-reviewer",
	}, ids)
}

func TestDiscover_EntryContents(t *testing.T) {
	repo := setupRepo(t)

	entries, err := DiscoverNamespace(repo, NamespaceSkills)
	require.NoError(t, err)

	var tdd Entry
	for _, e := range entries {
		if e.Name == "tdd" {
			tdd = e
		}
	}
	assert.Equal(t, "skills/core/tdd", tdd.RelDir)
	assert.Equal(t, filepath.Join(repo, "skills/core/tdd/GROK.md"), tdd.DocPath())
	assert.Equal(t, []string{"skills/core/tdd/resources/checklist.md"}, tdd.Resources)
	assert.Equal(t, []string{"skills/core/tdd/scripts/run.sh"}, tdd.Scripts)
	assert.Empty(t, tdd.Workflow)

	var empty Entry
	for _, e := range entries {
		if e.Name == "empty" {
			empty = e
		}
	}
	assert.Empty(t, empty.DocPath(), "entry without GROK.md has no primary doc")
}

func TestDiscover_AgentWorkflow(t *testing.T) {
	repo := setupRepo(t)

	entries, err := DiscoverNamespace(repo, NamespaceAgents)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Join(repo, "agents/review/code-reviewer/workflow.yaml"), entries[0].Workflow)
}

func TestDiscover_MissingNamespace(t *testing.T) {
	repo := t.TempDir()
	writeFile(t, filepath.Join(repo, "skills/core/tdd/GROK.md"), "---\n")

	entries, err := Discover(repo)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = DiscoverNamespace(repo, NamespaceAgents)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStructureIndex(t *testing.T) {
	repo := t.TempDir()

	idx, err := LoadStructureIndex(repo)
	require.NoError(t, err)
	assert.True(t, idx.Declared(NamespaceSkills, "core"))
	assert.False(t, idx.Declared(NamespaceSkills, "quantum"))

	writeFile(t, filepath.Join(repo, "structure.yaml"), "categories:\n  skills: [quantum]\n")
	idx, err = LoadStructureIndex(repo)
	require.NoError(t, err)
	assert.True(t, idx.Declared(NamespaceSkills, "quantum"))
	assert.False(t, idx.Declared(NamespaceAgents, "quantum"))
}

func TestStructureIndex_Invalid(t *testing.T) {
	repo := t.TempDir()
	writeFile(t, filepath.Join(repo, "structure.yaml"), "categories: [unterminated\n")

	_, err := LoadStructureIndex(repo)
	assert.Error(t, err)
}

func TestLabel(t *testing.T) {
	tests := []struct {
		namespace, category, want string
	}{
		{NamespaceSkills, "core", "Core Skills"},
		{NamespaceSkills, "web3", "Web3 Skills"},
		{NamespaceAgents, "ai", "AI Agents"},
		{NamespaceAgents, "devops", "DevOps Agents"},
		{NamespaceSkills, "code-quality", "Code Quality Skills"},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.want, Label(tt.namespace, tt.category))
		})
	}
}

func TestKnownCategoriesIsACopy(t *testing.T) {
	cats := KnownCategories(NamespaceSkills)
	cats[0] = "mutated"
	assert.NotEqual(t, "mutated", KnownCategories(NamespaceSkills)[0])
}
