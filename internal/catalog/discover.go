package catalog

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/grok-skills/grokkit/internal/grokhome"
)

// Discover walks every namespace under repoRoot and returns its entries in
// namespace, category, name order. Missing namespaces are skipped; callers
// that require them check separately.
func Discover(repoRoot string) ([]Entry, error) {
	var result []Entry
	for _, ns := range Namespaces {
		entries, err := DiscoverNamespace(repoRoot, ns)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		result = append(result, entries...)
	}
	return result, nil
}

// DiscoverNamespace returns the entries of one namespace.
func DiscoverNamespace(repoRoot, namespace string) ([]Entry, error) {
	cats, err := Categories(repoRoot, namespace)
	if err != nil {
		return nil, err
	}

	var result []Entry
	for _, cat := range cats {
		catDir := filepath.Join(repoRoot, namespace, cat)
		items, err := os.ReadDir(catDir)
		if err != nil {
			continue // unreadable category, reported by the checker's dir rules
		}
		for _, item := range items {
			if !item.IsDir() || hidden(item.Name()) {
				continue
			}
			result = append(result, loadEntry(repoRoot, namespace, cat, item.Name()))
		}
	}
	return result, nil
}

func loadEntry(repoRoot, namespace, category, name string) Entry {
	dir := filepath.Join(repoRoot, namespace, category, name)
	e := Entry{
		Namespace: namespace,
		Category:  category,
		Name:      name,
		Dir:       dir,
		RelDir:    filepath.ToSlash(filepath.Join(namespace, category, name)),
	}

	if files, err := os.ReadDir(dir); err == nil {
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			if strings.EqualFold(f.Name(), grokhome.PrimaryDoc) {
				e.DocPaths = append(e.DocPaths, filepath.Join(dir, f.Name()))
			}
			if namespace == NamespaceAgents && e.Workflow == "" && isWorkflowFile(f.Name()) {
				e.Workflow = filepath.Join(dir, f.Name())
			}
		}
	}

	e.Resources = listFiles(repoRoot, filepath.Join(dir, ResourcesDir))
	e.Scripts = listFiles(repoRoot, filepath.Join(dir, ScriptsDir))
	return e
}

func isWorkflowFile(name string) bool {
	for _, w := range WorkflowFiles {
		if name == w {
			return true
		}
	}
	return false
}

// listFiles returns every regular file below dir as repo-relative slash paths.
func listFiles(repoRoot, dir string) []string {
	var files []string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() {
			if rel, relErr := filepath.Rel(repoRoot, path); relErr == nil {
				files = append(files, filepath.ToSlash(rel))
			}
		}
		return nil
	})
	return files
}
