package checker

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"
)

// RuleFile is the layout of a user rules file.
type RuleFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRules reads extra rules from a YAML file. Unknown fields, kinds, and
// categories are errors so typos do not silently disable a rule.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}

	var rf RuleFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}

	for i, r := range rf.Rules {
		if err := validateRule(r); err != nil {
			return nil, fmt.Errorf("%s: rule %d: %w", path, i+1, err)
		}
	}
	return rf.Rules, nil
}

// FilterRules keeps the rules whose category is in filter. An empty filter
// keeps everything.
func FilterRules(rules []Rule, filter []Category) []Rule {
	if len(filter) == 0 {
		return rules
	}
	var out []Rule
	for _, r := range rules {
		for _, c := range filter {
			if r.Category == c {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func validateRule(r Rule) error {
	if r.ID == "" {
		return errors.New("missing id")
	}
	if r.Target == "" {
		return fmt.Errorf("%s: missing target", r.ID)
	}
	if !r.Kind.Valid() {
		return fmt.Errorf("%s: unknown kind %q", r.ID, r.Kind)
	}
	if _, err := ParseCategory(string(r.Category)); err != nil {
		return fmt.Errorf("%s: %w", r.ID, err)
	}
	if r.Kind == KindSizeRange && r.Params.MaxBytes > 0 && r.Params.MinBytes > r.Params.MaxBytes {
		return fmt.Errorf("%s: min_bytes %d exceeds max_bytes %d", r.ID, r.Params.MinBytes, r.Params.MaxBytes)
	}
	if r.Kind == KindContainsKeyword && len(r.Params.Keywords) == 0 {
		return fmt.Errorf("%s: contains-keyword needs at least one keyword", r.ID)
	}
	return nil
}
