package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.yaml.in/yaml/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/grok-skills/grokkit/internal/grokhome"
)

// knownCategories is the fixed category set per namespace.
var knownCategories = map[string][]string{
	NamespaceSkills: {
		"ai", "collaboration", "core", "data", "debugging", "design",
		"development", "devops", "documentation", "meta", "security",
		"testing", "web3",
	},
	NamespaceAgents: {
		"ai", "data", "development", "devops", "documentation",
		"orchestration", "research", "review", "security", "testing", "web3",
	},
}

// acronyms keep their casing in labels.
var acronyms = map[string]string{
	"ai":     "AI",
	"api":    "API",
	"devops": "DevOps",
	"ci":     "CI",
	"cd":     "CD",
	"ui":     "UI",
	"ux":     "UX",
}

// StructureIndex is the repository's structure.yaml, where new categories
// are declared before they are used.
type StructureIndex struct {
	Categories map[string][]string `yaml:"categories"`
}

// LoadStructureIndex reads structure.yaml from repoRoot. A missing file
// yields an empty index.
func LoadStructureIndex(repoRoot string) (*StructureIndex, error) {
	path := filepath.Join(repoRoot, grokhome.StructureIndex)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &StructureIndex{}, nil
		}
		return nil, fmt.Errorf("reading structure index: %w", err)
	}

	var idx StructureIndex
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parsing structure index %s: %w", path, err)
	}
	return &idx, nil
}

// Declared reports whether category is allowed in namespace.
func (idx *StructureIndex) Declared(namespace, category string) bool {
	if slices.Contains(knownCategories[namespace], category) {
		return true
	}
	if idx == nil {
		return false
	}
	return slices.Contains(idx.Categories[namespace], category)
}

// KnownCategories returns the fixed category set for namespace.
func KnownCategories(namespace string) []string {
	return slices.Clone(knownCategories[namespace])
}

// Categories lists the category directories present under
// <repoRoot>/<namespace>, sorted. A missing namespace yields fs.ErrNotExist.
func Categories(repoRoot, namespace string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(repoRoot, namespace))
	if err != nil {
		return nil, err
	}
	var cats []string
	for _, e := range entries {
		if e.IsDir() && !hidden(e.Name()) {
			cats = append(cats, e.Name())
		}
	}
	return cats, nil
}

// Label returns the display label for a namespace category, e.g.
// ("skills", "core") → "Core Skills".
func Label(namespace, category string) string {
	caser := cases.Title(language.English)
	words := strings.FieldsFunc(category, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		if a, ok := acronyms[strings.ToLower(w)]; ok {
			words[i] = a
			continue
		}
		words[i] = caser.String(w)
	}
	return strings.Join(append(words, caser.String(namespace)), " ")
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
