//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	RepoDir string // content repository with skills/, agents/, templates/
	DestDir string // destination root, the stand-in for ~/.grok
	HomeDir string // fake $HOME holding shell rc files
}

// setupTestEnv creates isolated temp directories and points GROK_HOME and
// HOME at them so nothing touches the real user environment.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		RepoDir: t.TempDir(),
		HomeDir: t.TempDir(),
	}
	env.DestDir = filepath.Join(env.HomeDir, ".grok")

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("GROK_HOME", env.DestDir)
	t.Setenv("GROK_REPO", env.RepoDir)

	return env
}

// setupRepo writes a content repository that passes every built-in rule.
func setupRepo(t *testing.T, repoDir string) {
	t.Helper()

	writeFile(t, filepath.Join(repoDir, "README.md"), `# Grok skills

## Install

Run the installer, then open a new shell.

## Usage

Browse [the TDD skill](skills/core/tdd/GROK.md) or the
[code reviewer](agents/review/code-reviewer/GROK.md).
`)

	writeFile(t, filepath.Join(repoDir, "skills/core/tdd/GROK.md"), `---
name: tdd
description: Red, green, refactor in small steps
tags: [testing, workflow]
---
# TDD

## Overview

Write a failing test first, make it pass, then clean up. See the
[reviewer](../../../agents/review/code-reviewer/GROK.md) for the follow-up.
`)

	writeFile(t, filepath.Join(repoDir, "agents/review/code-reviewer/GROK.md"), `---
name: code-reviewer
description: Reviews a diff for correctness and style
---
# Code reviewer

## When to use

Before merging any change that touches shared packages or public APIs.
`)

	writeFile(t, filepath.Join(repoDir, "templates/skill-template.md"), "# {{name}}\n\n## Overview\n")
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertNotExists fails the test if anything exists at path.
func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected %s NOT to exist", path)
	}
}

// assertSymlinkTo fails unless path is a symlink pointing at want.
func assertSymlinkTo(t *testing.T, path, want string) {
	t.Helper()
	got, err := os.Readlink(path)
	if err != nil {
		t.Errorf("expected %s to be a symlink: %v", path, err)
		return
	}
	if got != want {
		t.Errorf("%s -> %s, want %s", path, got, want)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// countOccurrences returns how often substr appears in the file at path.
func countOccurrences(t *testing.T, path, substr string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return strings.Count(string(data), substr)
}
