package installer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/grok-skills/grokkit/internal/branding"
	"github.com/grok-skills/grokkit/internal/grokhome"
	"github.com/grok-skills/grokkit/internal/platform"
)

// Uninstall removes what an install put at each target's destination:
// symlinks and managed copies only. Real user content is reported as a
// conflict and left in place. The config file under destRoot is kept. When
// the Installer has a home directory the shell block is stripped too.
func (i *Installer) Uninstall(destRoot string, targets []Target) *Report {
	report := &Report{}

	for _, t := range targets {
		status, err := i.remove(t)
		report.Statuses = append(report.Statuses, status)
		if err == nil {
			continue
		}
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			report.Conflicts = append(report.Conflicts, conflict.Path)
		} else {
			report.Failures = append(report.Failures, err.Error())
		}
	}

	if i.home != "" {
		begin, end := branding.BlockMarkers()
		report.Warnings = append(report.Warnings, i.RemoveShellExports(grokhome.ShellRCFiles(i.home), begin, end)...)
	}

	i.log.Debug("uninstall finished", zap.String("dest", destRoot), zap.Int("targets", len(targets)))
	report.Verified = len(report.Conflicts) == 0 && len(report.Failures) == 0
	return report
}

func (i *Installer) remove(t Target) (Status, error) {
	kind, err := platform.Inspect(t.Dest)
	if err != nil {
		return i.report(t.Label, &FilesystemError{Op: "inspect", Path: t.Dest, Err: err})
	}

	switch {
	case kind == platform.KindMissing:
		fmt.Fprintf(i.out, "  [SKIP] %s not installed\n", t.Dest)
		return Status{Label: t.Label, Success: true, Detail: "not installed"}, nil
	case kind == platform.KindSymlink:
		if err := platform.RemoveSymlink(t.Dest); err != nil {
			return i.report(t.Label, &FilesystemError{Op: "remove symlink", Path: t.Dest, Err: err})
		}
	case kind == platform.KindDir && platform.IsManagedCopy(t.Dest):
		if err := platform.RemoveManagedCopy(t.Dest); err != nil {
			return i.report(t.Label, &FilesystemError{Op: "remove copy", Path: t.Dest, Err: err})
		}
	default:
		return i.report(t.Label, &ConflictError{Path: t.Dest, Kind: kind})
	}

	return i.ok(t.Label, "removed "+t.Dest)
}
