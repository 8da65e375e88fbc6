//go:build integration

package integration_test

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/grok-skills/grokkit/internal/installer"
)

// TestInstallThenCheck installs the repository, edits a skill through the
// installed link, and expects the checker to see the change in the source.
func TestInstallThenCheck(t *testing.T) {
	env := setupTestEnv(t)
	setupRepo(t, env.RepoDir)

	inst := installer.New(installer.Options{
		RepoRoot: env.RepoDir,
		DestRoot: env.DestDir,
		Kind:     installer.KindSymlink,
		Out:      io.Discard,
	})
	report, err := inst.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !report.OK() {
		t.Fatalf("install not OK: %+v", report)
	}
	if ok, missing := inst.Verify(env.DestDir); !ok {
		t.Fatalf("Verify: missing %v", missing)
	}

	if s := runDefaults(t, env.RepoDir); s.Failed != 0 {
		t.Fatalf("expected a clean repository, got %d failures", s.Failed)
	}

	// Edit through the link; the write lands in the repository.
	writeFile(t, filepath.Join(env.DestDir, "skills/core/tdd/GROK.md"), `---
name: tdd
description: Red, green, refactor in small steps
---
# TDD

Write a failing test first and then make it pass with the smallest change.
`)

	s := runDefaults(t, env.RepoDir)
	if s.Failed != 1 || s.ExitCode() != 1 {
		for _, o := range s.Failures() {
			t.Logf("%s %s: %s", o.Rule.ID, o.Rule.Target, o.Reason)
		}
		t.Fatalf("failed = %d, want 1", s.Failed)
	}
	got := s.Failures()[0]
	if got.Rule.ID != "content.sections" {
		t.Errorf("failing rule = %s, want content.sections", got.Rule.ID)
	}
	if got.Rule.Target != filepath.ToSlash(filepath.Join("skills", "core", "tdd", "GROK.md")) {
		t.Errorf("failing target = %s", got.Rule.Target)
	}
}
