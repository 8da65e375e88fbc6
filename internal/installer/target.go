package installer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/grok-skills/grokkit/internal/catalog"
	"github.com/grok-skills/grokkit/internal/config"
	"github.com/grok-skills/grokkit/internal/grokhome"
)

// Kind selects how a target is materialized.
type Kind string

const (
	KindSymlink Kind = config.LinkModeSymlink
	KindCopy    Kind = config.LinkModeCopy
)

// ParseKind maps a setting or flag value to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case "", KindSymlink:
		return KindSymlink, nil
	case KindCopy:
		return KindCopy, nil
	default:
		return "", fmt.Errorf("unknown link mode %q (want %s or %s)", s, KindSymlink, KindCopy)
	}
}

// SharedTemplatesDir is where the repository's templates/ tree lands under
// <dest>/templates.
const SharedTemplatesDir = "shared"

// Target maps one source subtree to its destination.
type Target struct {
	Source string // absolute source directory
	Dest   string // absolute destination path
	Label  string // e.g. "Core Skills"
	Kind   Kind
}

// Manifest builds the install targets for repoRoot: one per category under
// skills/ and agents/, plus templates/ when present. A missing skills/ or
// agents/ tree is a ConfigurationError; a missing templates/ is returned as
// a warning.
func Manifest(repoRoot, destRoot string, kind Kind) ([]Target, []string, error) {
	var targets []Target
	var warnings []string

	for _, ns := range catalog.Namespaces {
		cats, err := catalog.Categories(repoRoot, ns)
		if err != nil {
			return nil, nil, &ConfigurationError{Path: filepath.Join(repoRoot, ns), Err: err}
		}
		for _, cat := range cats {
			targets = append(targets, Target{
				Source: filepath.Join(repoRoot, ns, cat),
				Dest:   filepath.Join(destRoot, ns, cat),
				Label:  catalog.Label(ns, cat),
				Kind:   kind,
			})
		}
	}

	templates := filepath.Join(repoRoot, grokhome.TemplatesDir)
	info, err := os.Stat(templates)
	switch {
	case err == nil && info.IsDir():
		targets = append(targets, Target{
			Source: templates,
			Dest:   filepath.Join(destRoot, grokhome.TemplatesDir, SharedTemplatesDir),
			Label:  "Templates",
			Kind:   kind,
		})
	case err == nil || errors.Is(err, fs.ErrNotExist):
		warnings = append(warnings, fmt.Sprintf("%s not found; no templates installed", templates))
	default:
		return nil, nil, &ConfigurationError{Path: templates, Err: err}
	}

	return targets, warnings, nil
}
