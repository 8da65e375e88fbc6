package installer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/grok-skills/grokkit/internal/branding"
	"github.com/grok-skills/grokkit/internal/config"
	"github.com/grok-skills/grokkit/internal/grokhome"
	"github.com/grok-skills/grokkit/internal/platform"
)

// Doctor inspects the install under destRoot and prints one line per check.
// When fix is true it recreates missing directories and repairs directory
// permissions. It returns the number of problems left unfixed.
func (i *Installer) Doctor(w io.Writer, destRoot string, fix bool) int {
	problems := 0

	fmt.Fprintln(w, "Install check:")
	if _, err := os.Stat(destRoot); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", destRoot)
		fmt.Fprintf(w, "         Run '%s install' to create\n", branding.CLIName())
		return 1
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", destRoot)

	for _, sub := range grokhome.Subdirs {
		if !checkDir(w, filepath.Join(destRoot, sub), fix) {
			problems++
		}
	}

	fmt.Fprintln(w, "Targets:")
	targets, _, err := Manifest(i.repoRoot, destRoot, i.kind)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		problems++
	}
	for _, t := range targets {
		if !checkTarget(w, t) {
			problems++
		}
	}

	fmt.Fprintln(w, "Config:")
	if !checkConfig(w, grokhome.ConfigPath(destRoot)) {
		problems++
	}

	return problems
}

// chmod is swapped in tests to simulate a permission repair failing.
var chmod = platform.Chmod

func checkDir(w io.Writer, path string, fix bool) bool {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
		if !fix {
			return false
		}
		if mkErr := os.MkdirAll(path, grokhome.DirPermNormal); mkErr != nil {
			fmt.Fprintf(w, "  [FAIL] Could not create %s: %v\n", path, mkErr)
			return false
		}
		if chErr := chmod(path, grokhome.DirPermNormal); chErr != nil {
			fmt.Fprintf(w, "  [FAIL] Created %s but could not set permissions: %v\n", path, chErr)
			return false
		}
		fmt.Fprintf(w, "  [FIX ] Created %s with %o\n", path, grokhome.DirPermNormal)
		return true
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return false
	}
	if !info.IsDir() {
		fmt.Fprintf(w, "  [WARN] %s exists but is not a directory\n", path)
		return false
	}

	perm := info.Mode().Perm()
	if perm&0o700 != 0o700 {
		fmt.Fprintf(w, "  [WARN] %s has permissions %o (expected %o)\n", path, perm, grokhome.DirPermNormal)
		if !fix {
			return false
		}
		if chErr := chmod(path, grokhome.DirPermNormal); chErr != nil {
			fmt.Fprintf(w, "  [FAIL] Could not fix permissions on %s: %v\n", path, chErr)
			return false
		}
		fmt.Fprintf(w, "  [FIX ] Fixed permissions on %s to %o\n", path, grokhome.DirPermNormal)
		return true
	}
	fmt.Fprintf(w, "  [ OK ] %s (permissions %o)\n", path, perm)
	return true
}

func checkTarget(w io.Writer, t Target) bool {
	kind, err := platform.Inspect(t.Dest)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", t.Dest, err)
		return false
	}

	switch kind {
	case platform.KindMissing:
		fmt.Fprintf(w, "  [MISS] %s (%s) not installed\n", t.Dest, t.Label)
		return false
	case platform.KindSymlink:
		target, err := platform.ResolveSymlinkTarget(t.Dest)
		if err != nil {
			fmt.Fprintf(w, "  [FAIL] %s: %v\n", t.Dest, err)
			return false
		}
		if _, err := os.Stat(target); err != nil {
			fmt.Fprintf(w, "  [WARN] %s -> %s (target does not exist)\n", t.Dest, target)
			return false
		}
		if filepath.Clean(target) != filepath.Clean(t.Source) {
			fmt.Fprintf(w, "  [WARN] %s -> %s (expected %s)\n", t.Dest, target, t.Source)
			return false
		}
		fmt.Fprintf(w, "  [ OK ] %s -> %s\n", t.Dest, target)
		return true
	case platform.KindDir:
		if platform.IsManagedCopy(t.Dest) {
			fmt.Fprintf(w, "  [ OK ] %s (managed copy)\n", t.Dest)
			return true
		}
	}
	fmt.Fprintf(w, "  [WARN] %s is a %s not managed by %s\n", t.Dest, kind, branding.CLIName())
	return false
}

func checkConfig(w io.Writer, path string) bool {
	f, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
		return false
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return false
	}
	if err := config.CheckVersion(f.Version); err != nil {
		fmt.Fprintf(w, "  [WARN] %s: %v\n", path, err)
		return false
	}
	fmt.Fprintf(w, "  [ OK ] %s (version %s)\n", path, f.Version)
	return true
}
