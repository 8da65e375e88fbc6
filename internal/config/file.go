package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/grok-skills/grokkit/internal/grokhome"
)

// CurrentVersion is the schema version stamped into newly written files.
const CurrentVersion = "1.0.0"

// File is the on-disk layout of config.yaml.
type File struct {
	Version     string              `yaml:"version"`
	Paths       Paths               `yaml:"paths"`
	SkillChains map[string][]string `yaml:"skill_chains"`
	Settings    *Settings           `yaml:"settings,omitempty"`
}

// Paths records where the repository and the installed namespaces live.
type Paths struct {
	Repository string `yaml:"repository"`
	Skills     string `yaml:"skills"`
	Agents     string `yaml:"agents"`
	Templates  string `yaml:"templates"`
}

// Settings are optional runtime knobs. Zero values mean "use the default".
type Settings struct {
	Concurrency int    `yaml:"concurrency,omitempty" mapstructure:"concurrency"`
	MinBytes    int64  `yaml:"min_bytes,omitempty" mapstructure:"min_bytes"`
	MaxBytes    int64  `yaml:"max_bytes,omitempty" mapstructure:"max_bytes"`
	LinkMode    string `yaml:"link_mode,omitempty" mapstructure:"link_mode"`
}

// DefaultSkillChains are the common workflows shipped in a fresh config.
// Each chain is an ordered list of <category>/<skill> identifiers.
func DefaultSkillChains() map[string][]string {
	return map[string][]string{
		"feature-development": {"core/brainstorming", "core/writing-plans", "core/test-driven-development", "core/code-review"},
		"bug-fix":             {"core/systematic-debugging", "core/test-driven-development", "core/verification"},
		"security-review":     {"security/threat-modeling", "security/code-audit", "core/code-review"},
		"release":             {"devops/ci-cd", "documentation/changelog", "core/verification"},
	}
}

// Default builds the config written on first install.
func Default(repoRoot, destRoot string) *File {
	return &File{
		Version: CurrentVersion,
		Paths: Paths{
			Repository: repoRoot,
			Skills:     filepath.Join(destRoot, grokhome.SkillsDir),
			Agents:     filepath.Join(destRoot, grokhome.AgentsDir),
			Templates:  filepath.Join(destRoot, grokhome.TemplatesDir),
		},
		SkillChains: DefaultSkillChains(),
	}
}

// Marshal renders f with a short header comment.
func Marshal(f *File) ([]byte, error) {
	body, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	header := "# grokkit configuration. Written once by `grokkit install`; edits are preserved.\n"
	return append([]byte(header), body...), nil
}

// Load reads and parses a config file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &f, nil
}

// WriteIfAbsent writes f to path unless a file already exists there.
// It reports whether it wrote. The create is exclusive, so a file that
// appears concurrently is never clobbered either.
func WriteIfAbsent(path string, f *File) (bool, error) {
	data, err := Marshal(f)
	if err != nil {
		return false, err
	}

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, grokhome.FilePermNormal)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("creating config %s: %w", path, err)
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return false, fmt.Errorf("writing config %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return false, fmt.Errorf("closing config %s: %w", path, err)
	}
	return true, nil
}
