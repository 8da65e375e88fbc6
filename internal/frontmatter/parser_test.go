package frontmatter

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

func testPath(name string) string {
	return filepath.Join("testdata", name)
}

func TestHasDelimiter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"first line", "---\nname: x\n---\n", true},
		{"crlf", "---\r\nname: x\r\n---\r\n", true},
		{"after heading", "# Title\n\n---\n", true},
		{"none", "# Title\nbody\n", false},
		{"indented is not a delimiter", "  ---\n", false},
		{"longer rule is not a delimiter", "----\n", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HasDelimiter(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("HasDelimiter error: %v", err)
			}
			if got != tt.want {
				t.Errorf("HasDelimiter = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasDelimiter_OnlyFirstTwentyLines(t *testing.T) {
	for _, at := range []int{19, 20, 21} {
		t.Run(fmt.Sprintf("line %d", at+1), func(t *testing.T) {
			var b strings.Builder
			for i := 0; i < at; i++ {
				b.WriteString("text\n")
			}
			b.WriteString("---\n")

			got, err := HasDelimiter(strings.NewReader(b.String()))
			if err != nil {
				t.Fatal(err)
			}
			want := at < ScanLines
			if got != want {
				t.Errorf("delimiter on line %d: got %v, want %v", at+1, got, want)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	block, body, err := Extract([]byte("---\nname: x\n---\n# Body\n"))
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if string(block) != "name: x\n" {
		t.Errorf("block = %q", block)
	}
	if string(body) != "# Body\n" {
		t.Errorf("body = %q", body)
	}
}

func TestExtract_DotsTerminator(t *testing.T) {
	block, _, err := Extract([]byte("---\nname: x\n...\nbody\n"))
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if string(block) != "name: x\n" {
		t.Errorf("block = %q", block)
	}
}

func TestExtract_Missing(t *testing.T) {
	_, _, err := Extract([]byte("# no block\n"))
	if !errors.Is(err, ErrNoFrontmatter) {
		t.Errorf("expected ErrNoFrontmatter, got %v", err)
	}
}

func TestParseFile(t *testing.T) {
	fm, err := ParseFile(testPath("valid.md"))
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	if fm.Name != "test-driven-development" {
		t.Errorf("Name = %q", fm.Name)
	}
	if fm.Category != "core" {
		t.Errorf("Category = %q", fm.Category)
	}
	if len(fm.Tags) != 2 {
		t.Errorf("Tags len = %d, want 2", len(fm.Tags))
	}
	if fm.Version != "1.2.0" {
		t.Errorf("Version = %q", fm.Version)
	}
	if fm.Extras["model"] != "grok-4" {
		t.Errorf("Extras[model] = %v", fm.Extras["model"])
	}
}

func TestParseFile_Errors(t *testing.T) {
	tests := []struct {
		file      string
		isMissing bool
	}{
		{"no-frontmatter.md", true},
		{"unclosed.md", true},
		{"broken-yaml.md", false},
		{"nonexistent.md", false},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := ParseFile(testPath(tt.file))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if got := errors.Is(err, ErrNoFrontmatter); got != tt.isMissing {
				t.Errorf("errors.Is(ErrNoFrontmatter) = %v, want %v (%v)", got, tt.isMissing, err)
			}
		})
	}
}
