package checker

import (
	"fmt"
	"time"
)

// RuleKind selects the check a Rule runs.
type RuleKind string

const (
	KindFileExists        RuleKind = "file-exists"
	KindDirExists         RuleKind = "dir-exists"
	KindHasFrontmatter    RuleKind = "has-frontmatter"
	KindSizeRange         RuleKind = "size-range"
	KindInternalLinks     RuleKind = "internal-links-valid"
	KindContainsKeyword   RuleKind = "contains-keyword"
	KindFrontmatterSchema RuleKind = "frontmatter-schema"
	KindYAMLSyntax        RuleKind = "yaml-syntax"
	KindCategoryDeclared  RuleKind = "category-declared"
	KindPrimaryDoc        RuleKind = "primary-doc"
)

// Kinds lists every RuleKind.
var Kinds = []RuleKind{
	KindFileExists, KindDirExists, KindHasFrontmatter, KindSizeRange,
	KindInternalLinks, KindContainsKeyword, KindFrontmatterSchema,
	KindYAMLSyntax, KindCategoryDeclared, KindPrimaryDoc,
}

// Valid reports whether k is a known kind.
func (k RuleKind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Category groups rules the way the checker's filter flag selects them.
type Category string

const (
	CategoryStructure   Category = "structure"
	CategoryContent     Category = "content"
	CategoryIntegration Category = "integration"
	CategoryQuality     Category = "quality"
)

// Categories lists every Category in report order.
var Categories = []Category{CategoryStructure, CategoryContent, CategoryIntegration, CategoryQuality}

// ParseCategory maps a flag value to a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown rule category %q (want one of %v)", s, Categories)
}

// Params carries the kind-specific arguments of a Rule.
type Params struct {
	MinBytes int64    `yaml:"min_bytes,omitempty" json:"min_bytes,omitempty"`
	MaxBytes int64    `yaml:"max_bytes,omitempty" json:"max_bytes,omitempty"`
	Keywords []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	MatchAny bool     `yaml:"match_any,omitempty" json:"match_any,omitempty"`
}

// Rule is one check descriptor. Target is a repo-relative slash path or a
// glob over such paths.
type Rule struct {
	ID       string   `yaml:"id" json:"id"`
	Kind     RuleKind `yaml:"kind" json:"kind"`
	Category Category `yaml:"category" json:"category"`
	Target   string   `yaml:"target" json:"target"`
	Params   Params   `yaml:"params,omitempty" json:"params,omitempty"`
}

// Result is what a single check produces.
type Result struct {
	Passed  bool     `json:"passed"`
	Reason  string   `json:"reason,omitempty"`
	Details []string `json:"details,omitempty"`
}

func pass() Result { return Result{Passed: true} }

func fail(reason string, details ...string) Result {
	return Result{Reason: reason, Details: details}
}

// Outcome is a Result bound to the Rule that produced it.
type Outcome struct {
	Rule Rule `json:"rule"`
	Result
	Duration time.Duration `json:"duration_ns"`
}

// Summary aggregates one RunAll.
type Summary struct {
	RunID       string        `json:"run_id"`
	Started     time.Time     `json:"started"`
	Duration    time.Duration `json:"duration_ns"`
	Total       int           `json:"total"`
	Passed      int           `json:"passed"`
	Failed      int           `json:"failed"`
	SuccessRate float64       `json:"success_rate"`
	Outcomes    []Outcome     `json:"outcomes"`
}

// Failures returns the failed outcomes in report order.
func (s *Summary) Failures() []Outcome {
	var out []Outcome
	for _, o := range s.Outcomes {
		if !o.Passed {
			out = append(out, o)
		}
	}
	return out
}

// maxExitCode keeps the failure count clear of 126+ which shells reserve.
const maxExitCode = 125

// ExitCode is the failed-rule count, capped at 125.
func (s *Summary) ExitCode() int {
	if s.Failed > maxExitCode {
		return maxExitCode
	}
	return s.Failed
}
