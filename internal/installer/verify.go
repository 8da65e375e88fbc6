package installer

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/grok-skills/grokkit/internal/grokhome"
	"github.com/grok-skills/grokkit/internal/platform"
)

// errSampleFound stops the sample walk at the first match.
var errSampleFound = errors.New("sample found")

// Verify spot-checks an install under destRoot through the links it
// created: every manifest target present at its destination must resolve,
// and one sample file per target must be readable through it. Targets not yet
// installed are skipped, but at least one must be. It returns the paths that
// could not be reached.
func (i *Installer) Verify(destRoot string) (bool, []string) {
	var missing []string

	targets, _, err := Manifest(i.repoRoot, destRoot, i.kind)
	if err != nil {
		var cfgErr *ConfigurationError
		if errors.As(err, &cfgErr) {
			return false, []string{cfgErr.Path}
		}
		return false, []string{i.repoRoot}
	}

	installed := 0
	var absent []string
	for _, t := range targets {
		kind, err := platform.Inspect(t.Dest)
		if err != nil {
			missing = append(missing, t.Dest)
			continue
		}
		if kind == platform.KindMissing {
			absent = append(absent, t.Dest)
			continue
		}
		installed++
		if _, err := os.Stat(t.Dest); err != nil {
			missing = append(missing, t.Dest)
			continue
		}
		rel, ok := sampleFile(t.Source)
		if !ok {
			continue
		}
		through := filepath.Join(t.Dest, rel)
		if _, err := os.Stat(through); err != nil {
			missing = append(missing, through)
		}
	}
	if installed == 0 {
		missing = append(missing, absent...)
	}

	for _, m := range missing {
		i.log.Debug("verify: unreachable", zap.String("path", m))
	}
	return len(missing) == 0, missing
}

// sampleFile returns a file under dir, relative to dir: the first GROK.md in
// walk order, otherwise the first regular file.
func sampleFile(dir string) (string, bool) {
	var fallback, found string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if strings.EqualFold(d.Name(), grokhome.PrimaryDoc) {
			found = path
			return errSampleFound
		}
		if fallback == "" && !strings.HasPrefix(d.Name(), ".") {
			fallback = path
		}
		return nil
	})
	if err != nil && !errors.Is(err, errSampleFound) {
		return "", false
	}
	if found == "" {
		found = fallback
	}
	if found == "" {
		return "", false
	}
	rel, err := filepath.Rel(dir, found)
	if err != nil {
		return "", false
	}
	return rel, true
}
