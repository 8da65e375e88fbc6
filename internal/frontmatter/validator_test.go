package frontmatter

import (
	"os"
	"testing"
)

func validateFile(t *testing.T, name string) (*ValidationResult, error) {
	t.Helper()
	data, err := os.ReadFile(testPath(name))
	if err != nil {
		t.Fatal(err)
	}
	return ValidateDocument(data)
}

func TestValidate_Valid(t *testing.T) {
	result, err := validateFile(t, "valid.md")
	if err != nil {
		t.Fatalf("ValidateDocument error: %v", err)
	}
	if !result.Valid {
		for _, issue := range result.Issues {
			t.Errorf("unexpected issue: %s", issue)
		}
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		file     string
		keywords []string
	}{
		{"missing-description.md", []string{"required"}},
		{"bad-name.md", []string{"pattern", "uniqueItems"}},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			result, err := validateFile(t, tt.file)
			if err != nil {
				t.Fatalf("ValidateDocument error: %v", err)
			}
			if result.Valid {
				t.Fatal("expected invalid result")
			}
			for _, kw := range tt.keywords {
				found := false
				for _, issue := range result.Issues {
					if issue.Keyword == kw {
						found = true
						if issue.Message == "" {
							t.Errorf("issue for %s has empty message", kw)
						}
					}
				}
				if !found {
					t.Errorf("expected an issue with keyword %q, got %+v", kw, result.Issues)
				}
			}
		})
	}
}

func TestValidate_IssuePaths(t *testing.T) {
	result, err := validateFile(t, "bad-name.md")
	if err != nil {
		t.Fatal(err)
	}
	paths := map[string]bool{}
	for _, issue := range result.Issues {
		paths[issue.Path] = true
	}
	if !paths["/name"] {
		t.Errorf("expected issue at /name, got %+v", result.Issues)
	}
}

func TestValidate_BrokenYAML(t *testing.T) {
	if _, err := validateFile(t, "broken-yaml.md"); err == nil {
		t.Fatal("expected error for broken YAML")
	}
}

func TestValidate_EmptyBlock(t *testing.T) {
	result, err := Validate([]byte(""))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if result.Valid {
		t.Error("empty frontmatter should fail the required fields")
	}
}

func TestSchemaCompiles(t *testing.T) {
	schema, err := getSchema()
	if err != nil {
		t.Fatalf("getSchema() error: %v", err)
	}
	if schema == nil {
		t.Fatal("getSchema() returned nil schema")
	}
}
