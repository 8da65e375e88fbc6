//go:build integration

package integration_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/grok-skills/grokkit/internal/checker"
	"github.com/grok-skills/grokkit/internal/report"
)

func runDefaults(t *testing.T, repo string) *checker.Summary {
	t.Helper()
	rules, err := checker.DefaultRules(repo, nil, 0, 0)
	if err != nil {
		t.Fatalf("DefaultRules: %v", err)
	}
	s, err := checker.New(checker.Options{RepoRoot: repo, Concurrency: 4}).RunAll(context.Background(), rules)
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	return s
}

// TestCheckCleanRepository expects every built-in rule to pass.
func TestCheckCleanRepository(t *testing.T) {
	env := setupTestEnv(t)
	setupRepo(t, env.RepoDir)

	s := runDefaults(t, env.RepoDir)
	for _, o := range s.Failures() {
		t.Errorf("unexpected failure %s on %s: %s %v", o.Rule.ID, o.Rule.Target, o.Reason, o.Details)
	}
	if s.ExitCode() != 0 {
		t.Errorf("exit code = %d, want 0", s.ExitCode())
	}
	if s.Total == 0 || s.SuccessRate != 100 {
		t.Errorf("total=%d rate=%.1f", s.Total, s.SuccessRate)
	}
}

// TestCheckReportsEachProblem breaks one agent doc and the README and
// expects exactly three failures.
func TestCheckReportsEachProblem(t *testing.T) {
	env := setupTestEnv(t)
	setupRepo(t, env.RepoDir)

	// Frontmatter removed: both the delimiter and schema rules fail.
	writeFile(t, filepath.Join(env.RepoDir, "agents/review/code-reviewer/GROK.md"),
		"# Code reviewer\n\n## When to use\n\nBefore merging any change that touches shared packages, public APIs, or the release pipeline.\n")
	// Broken link in the README.
	writeFile(t, filepath.Join(env.RepoDir, "README.md"),
		"# Grok skills\n\n## Install\n\n## Usage\n\nSee [missing](docs/missing.md).\n")

	s := runDefaults(t, env.RepoDir)

	failed := map[string]bool{}
	for _, o := range s.Failures() {
		failed[o.Rule.ID] = true
	}
	for _, id := range []string{"content.frontmatter", "content.frontmatter-schema", "integration.links"} {
		if !failed[id] {
			t.Errorf("expected %s to fail", id)
		}
	}
	if s.Failed != 3 {
		t.Errorf("failed = %d, want 3 (%v)", s.Failed, failed)
	}
	if s.ExitCode() != s.Failed {
		t.Errorf("exit code %d != failed count %d", s.ExitCode(), s.Failed)
	}
}

// TestCheckWritesReports round-trips a summary through the JSON and JUnit
// writers.
func TestCheckWritesReports(t *testing.T) {
	env := setupTestEnv(t)
	setupRepo(t, env.RepoDir)
	s := runDefaults(t, env.RepoDir)

	out := t.TempDir()
	jsonPath := filepath.Join(out, "report.json")
	junitPath := filepath.Join(out, "report.xml")
	if err := report.WriteJSONFile(jsonPath, s); err != nil {
		t.Fatalf("WriteJSONFile: %v", err)
	}
	if err := report.WriteJUnitFile(junitPath, s); err != nil {
		t.Fatalf("WriteJUnitFile: %v", err)
	}

	assertFileContains(t, jsonPath, s.RunID)
	assertFileContains(t, junitPath, "<testsuites")
	assertFileContains(t, junitPath, `name="structure"`)
}

// TestCheckTimeoutCancelsRemaining runs with an already expired deadline.
func TestCheckTimeoutCancelsRemaining(t *testing.T) {
	env := setupTestEnv(t)
	setupRepo(t, env.RepoDir)

	rules, err := checker.DefaultRules(env.RepoDir, nil, 0, 0)
	if err != nil {
		t.Fatalf("DefaultRules: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), -time.Second)
	defer cancel()

	s, err := checker.New(checker.Options{RepoRoot: env.RepoDir}).RunAll(ctx, rules)
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if s.Failed != s.Total {
		t.Errorf("expected every rule cancelled, got %d of %d failed", s.Failed, s.Total)
	}
	for _, o := range s.Failures() {
		if o.Reason != checker.ReasonCancelled {
			t.Errorf("%s: reason %q, want %q", o.Rule.ID, o.Reason, checker.ReasonCancelled)
			break
		}
	}
}
