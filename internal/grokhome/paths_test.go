package grokhome

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDestinationRoot_EnvOverride(t *testing.T) {
	t.Setenv("GROK_HOME", "/tmp/test-grok")
	root, err := DestinationRoot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != "/tmp/test-grok" {
		t.Errorf("expected /tmp/test-grok, got %s", root)
	}
}

func TestDestinationRoot_Default(t *testing.T) {
	t.Setenv("GROK_HOME", "")
	root, err := DestinationRoot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".grok"); root != want {
		t.Errorf("expected %s, got %s", want, root)
	}
}

func TestConfigPath(t *testing.T) {
	if got := ConfigPath("/tmp/g"); got != "/tmp/g/config.yaml" {
		t.Errorf("ConfigPath = %s", got)
	}
}

func TestRepoRoot_WalksUp(t *testing.T) {
	t.Setenv("GROK_REPO", "")
	repo := t.TempDir()
	for _, d := range []string{"skills/core/tdd", "agents/dev"} {
		if err := os.MkdirAll(filepath.Join(repo, d), 0755); err != nil {
			t.Fatal(err)
		}
	}

	got, err := RepoRoot(filepath.Join(repo, "skills", "core", "tdd"))
	if err != nil {
		t.Fatalf("RepoRoot: %v", err)
	}
	want, _ := filepath.Abs(repo)
	if got != want {
		t.Errorf("RepoRoot = %s, want %s", got, want)
	}
}

func TestRepoRoot_EnvOverride(t *testing.T) {
	t.Setenv("GROK_REPO", "/srv/grok-skills")
	got, err := RepoRoot(t.TempDir())
	if err != nil {
		t.Fatalf("RepoRoot: %v", err)
	}
	if got != "/srv/grok-skills" {
		t.Errorf("RepoRoot = %s", got)
	}
}

func TestRepoRoot_NotFound(t *testing.T) {
	t.Setenv("GROK_REPO", "")
	_, err := RepoRoot(t.TempDir())
	if !errors.Is(err, ErrRepoNotFound) {
		t.Errorf("expected ErrRepoNotFound, got %v", err)
	}
}

func TestShellRCFiles(t *testing.T) {
	files := ShellRCFiles("/home/u")
	if len(files) != 3 {
		t.Fatalf("expected 3 rc files, got %d", len(files))
	}
	if files[0] != "/home/u/.bashrc" || files[1] != "/home/u/.zshrc" || files[2] != "/home/u/.profile" {
		t.Errorf("unexpected rc files: %v", files)
	}
}

func TestPermissionConstants(t *testing.T) {
	if DirPermNormal != 0755 {
		t.Errorf("DirPermNormal = %o", DirPermNormal)
	}
	if FilePermNormal != 0644 {
		t.Errorf("FilePermNormal = %o", FilePermNormal)
	}
}
