package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grok-skills/grokkit/internal/frontmatter"
)

func TestNewData(t *testing.T) {
	t.Run("derived fields", func(t *testing.T) {
		d, err := NewData("agents", "review", "code-reviewer", "")
		if err != nil {
			t.Fatalf("NewData() error: %v", err)
		}
		if d.Title != "Code Reviewer" {
			t.Errorf("Title = %q, want %q", d.Title, "Code Reviewer")
		}
		if d.Description != "Code Reviewer agent for review work" {
			t.Errorf("Description = %q", d.Description)
		}
	})

	t.Run("trailing period trimmed", func(t *testing.T) {
		d, err := NewData("skills", "core", "tdd", "Red, green, refactor.")
		if err != nil {
			t.Fatalf("NewData() error: %v", err)
		}
		if d.Description != "Red, green, refactor" {
			t.Errorf("Description = %q", d.Description)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		for _, tc := range [][3]string{
			{"prompts", "core", "tdd"},
			{"skills", "Core", "tdd"},
			{"skills", "core", "-tdd"},
			{"skills", "core", "my skill"},
		} {
			if _, err := NewData(tc[0], tc[1], tc[2], ""); err == nil {
				t.Errorf("NewData(%q, %q, %q) expected error", tc[0], tc[1], tc[2])
			}
		}
	})
}

func TestParseID(t *testing.T) {
	cat, name, err := ParseID("core/tdd")
	if err != nil || cat != "core" || name != "tdd" {
		t.Errorf("ParseID(core/tdd) = %q, %q, %v", cat, name, err)
	}
	for _, bad := range []string{"tdd", "core/", "/tdd", "core/tdd/extra"} {
		if _, _, err := ParseID(bad); err == nil {
			t.Errorf("ParseID(%q) expected error", bad)
		}
	}
}

func TestGenerateSkill(t *testing.T) {
	repo := t.TempDir()
	data, err := NewData("skills", "core", "tdd", "Red, green, refactor in small steps")
	if err != nil {
		t.Fatal(err)
	}

	result, err := Generate(repo, data)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	assertFiles(t, result, []string{"GROK.md"})
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}

	doc := readGenerated(t, result.OutputDir, "GROK.md")
	assertContains(t, doc, "name: tdd")
	assertContains(t, doc, `description: "Red, green, refactor in small steps"`)
	assertContains(t, doc, "# Tdd")
	assertContains(t, doc, "## Overview")

	res, err := frontmatter.ValidateDocument([]byte(doc))
	if err != nil {
		t.Fatalf("ValidateDocument() error: %v", err)
	}
	if !res.Valid {
		t.Errorf("generated frontmatter invalid: %v", res.Issues)
	}
	if len(doc) < 100 {
		t.Errorf("generated doc is only %d bytes", len(doc))
	}
}

func TestGenerateAgentIncludesWorkflow(t *testing.T) {
	repo := t.TempDir()
	data, _ := NewData("agents", "review", "code-reviewer", "")

	result, err := Generate(repo, data)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	assertFiles(t, result, []string{"GROK.md", "workflow.yaml"})
	assertContains(t, readGenerated(t, result.OutputDir, "workflow.yaml"), "name: code-reviewer")

	want := filepath.Join(repo, "agents", "review", "code-reviewer")
	if result.OutputDir != want {
		t.Errorf("OutputDir = %q, want %q", result.OutputDir, want)
	}
}

func TestGenerateUsesRepositoryTemplate(t *testing.T) {
	repo := t.TempDir()
	tmpl := "---\nname: {{ .Name }}\ndescription: {{ quote .Description }}\n---\n# {{ .Title }} (house style)\n"
	writeFile(t, filepath.Join(repo, "templates", "skill-template.md"), tmpl)

	data, _ := NewData("skills", "core", "tdd", "")
	result, err := Generate(repo, data)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	assertContains(t, readGenerated(t, result.OutputDir, "GROK.md"), "# Tdd (house style)")
}

func TestGenerateWarnsOnUndeclaredCategory(t *testing.T) {
	repo := t.TempDir()
	data, _ := NewData("skills", "quantum", "qubit-sim", "")

	result, err := Generate(repo, data)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], `category "quantum" is not declared`) {
		t.Errorf("Warnings = %v", result.Warnings)
	}
}

func TestGenerateRefusesNonEmptyDir(t *testing.T) {
	repo := t.TempDir()
	writeFile(t, filepath.Join(repo, "skills", "core", "tdd", "GROK.md"), "existing\n")

	data, _ := NewData("skills", "core", "tdd", "")
	if _, err := Generate(repo, data); err == nil {
		t.Fatal("expected error for non-empty output directory")
	}
	if got := readGenerated(t, filepath.Join(repo, "skills", "core", "tdd"), "GROK.md"); got != "existing\n" {
		t.Errorf("existing file was modified: %q", got)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func assertFiles(t *testing.T, result *Result, expected []string) {
	t.Helper()
	if len(result.Files) != len(expected) {
		t.Fatalf("got %d files %v, want %d %v", len(result.Files), result.Files, len(expected), expected)
	}
	for i, f := range expected {
		if result.Files[i] != f {
			t.Errorf("Files[%d] = %q, want %q", i, result.Files[i], f)
		}
	}
}

func readGenerated(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("expected content to contain %q", substr)
	}
}
