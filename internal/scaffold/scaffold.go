package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/grok-skills/grokkit/internal/catalog"
	"github.com/grok-skills/grokkit/internal/frontmatter"
	"github.com/grok-skills/grokkit/internal/grokhome"
)

//go:embed templates
var templateFS embed.FS

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Data holds the variables available to entry templates.
type Data struct {
	Namespace   string // "skills" or "agents"
	Category    string // e.g. "core"
	Name        string // e.g. "tdd"
	Title       string // derived: "Tdd", "Code Reviewer"
	Description string
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// NewData validates the identifiers and fills in derived fields. An empty
// description gets a placeholder long enough to pass schema validation.
func NewData(namespace, category, name, description string) (*Data, error) {
	if !slices.Contains(catalog.Namespaces, namespace) {
		return nil, fmt.Errorf("unknown namespace %q (want %s)", namespace, strings.Join(catalog.Namespaces, " or "))
	}
	if err := ValidateName(category); err != nil {
		return nil, fmt.Errorf("invalid category: %w", err)
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	title := cases.Title(language.English).String(strings.ReplaceAll(name, "-", " "))
	if description == "" {
		description = fmt.Sprintf("%s %s for %s work", title, singular(namespace), category)
	}
	return &Data{
		Namespace:   namespace,
		Category:    category,
		Name:        name,
		Title:       title,
		Description: strings.TrimSuffix(strings.TrimSpace(description), "."),
	}, nil
}

// ValidateName checks that s is a lowercase slug.
func ValidateName(s string) error {
	if !namePattern.MatchString(s) {
		return fmt.Errorf("invalid name %q: must be lowercase alphanumeric with hyphens, starting with a letter or digit", s)
	}
	return nil
}

// ParseID splits a "<category>/<name>" identifier.
func ParseID(id string) (category, name string, err error) {
	category, name, ok := strings.Cut(id, "/")
	if !ok || category == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid identifier %q: want <category>/<name>", id)
	}
	return category, name, nil
}

// Generate writes a new entry under repoRoot/<namespace>/<category>/<name>.
// A repository template at templates/<skill|agent>-template.md replaces the
// built-in GROK.md template. The target directory must not exist or be empty.
func Generate(repoRoot string, data *Data) (*Result, error) {
	outDir := filepath.Join(repoRoot, data.Namespace, data.Category, data.Name)
	if entries, err := os.ReadDir(outDir); err == nil && len(entries) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty; remove existing files first", outDir)
	}

	sources, err := templateSources(repoRoot, data.Namespace)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outDir, grokhome.DirPermNormal); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	result := &Result{OutputDir: outDir}
	for _, src := range sources {
		var buf bytes.Buffer
		if err := src.tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("executing template %s: %w", src.tmpl.Name(), err)
		}
		outPath := filepath.Join(outDir, src.out)
		if err := os.WriteFile(outPath, buf.Bytes(), grokhome.FilePermNormal); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}
		result.Files = append(result.Files, src.out)
	}

	result.Warnings = append(result.Warnings, validateDoc(filepath.Join(outDir, grokhome.PrimaryDoc))...)

	idx, err := catalog.LoadStructureIndex(repoRoot)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not read structure index: %v", err))
	} else if !idx.Declared(data.Namespace, data.Category) {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"category %q is not declared for %s; add it to %s under categories.%s",
			data.Category, data.Namespace, grokhome.StructureIndex, data.Namespace))
	}

	return result, nil
}

type templateSource struct {
	tmpl *template.Template
	out  string
}

// templateSources returns the parsed templates for namespace, with the
// repository's own doc template taking precedence.
func templateSources(repoRoot, namespace string) ([]templateSource, error) {
	dir := path.Join("templates", namespace)
	entries, err := fs.ReadDir(templateFS, dir)
	if err != nil {
		return nil, fmt.Errorf("template set %q not found: %w", namespace, err)
	}

	override := filepath.Join(repoRoot, grokhome.TemplatesDir, singular(namespace)+"-template.md")
	custom, err := os.ReadFile(override)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", override, err)
	}

	var sources []templateSource
	for _, entry := range entries {
		out := strings.TrimSuffix(entry.Name(), ".tmpl")
		text, err := fs.ReadFile(templateFS, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", entry.Name(), err)
		}
		name := entry.Name()
		if out == grokhome.PrimaryDoc && custom != nil {
			text, name = custom, override
		}

		tmpl, err := template.New(name).Funcs(funcs).Parse(string(text))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		sources = append(sources, templateSource{tmpl: tmpl, out: out})
	}
	return sources, nil
}

var funcs = template.FuncMap{
	"quote": strconv.Quote,
}

// validateDoc runs the generated doc through the frontmatter schema.
func validateDoc(docPath string) []string {
	data, err := os.ReadFile(docPath)
	if err != nil {
		return []string{fmt.Sprintf("Could not read %s: %v", docPath, err)}
	}
	res, err := frontmatter.ValidateDocument(data)
	if err != nil {
		return []string{fmt.Sprintf("Could not validate frontmatter: %v", err)}
	}
	var warnings []string
	for _, issue := range res.Issues {
		warnings = append(warnings, issue.String())
	}
	return warnings
}

func singular(namespace string) string {
	return strings.TrimSuffix(namespace, "s")
}
