package installer

import (
	"context"
	"errors"
	"os"

	"github.com/grok-skills/grokkit/internal/branding"
	"github.com/grok-skills/grokkit/internal/grokhome"
)

// Report summarizes one Run.
type Report struct {
	Statuses      []Status
	Conflicts     []string
	Failures      []string
	Warnings      []string
	ConfigWritten bool
	Verified      bool
	Missing       []string
}

// OK reports whether the install fully succeeded.
func (r *Report) OK() bool {
	return len(r.Conflicts) == 0 && len(r.Failures) == 0 && r.Verified
}

// Run performs the full install. Only a missing source tree or an unusable
// destination root returns an error; per-target problems are recorded in the
// Report and the remaining targets still run.
func (i *Installer) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	targets, warnings, err := Manifest(i.repoRoot, i.destRoot, i.kind)
	if err != nil {
		return report, err
	}
	report.Warnings = append(report.Warnings, warnings...)
	for _, w := range warnings {
		i.log.Warn(w)
	}

	if err := i.Initialize(i.destRoot); err != nil {
		return report, err
	}

	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		status, err := i.Install(t)
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

	wrote, err := i.WriteDefaultConfig(i.destRoot, "")
	if err != nil {
		report.Failures = append(report.Failures, err.Error())
	}
	report.ConfigWritten = wrote

	if i.home != "" {
		begin, end := branding.BlockMarkers()
		report.Warnings = append(report.Warnings, i.AppendShellExports(grokhome.ShellRCFiles(i.home), begin, end)...)
	}

	report.Verified, report.Missing = i.Verify(i.destRoot)
	if cfg := grokhome.ConfigPath(i.destRoot); !isRegularFile(cfg) {
		report.Verified = false
		report.Missing = append(report.Missing, cfg)
	}
	return report, nil
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
