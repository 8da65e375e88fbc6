package grokhome

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/grok-skills/grokkit/internal/branding"
)

// Directory and file name constants for the repository and destination layout.
const (
	SkillsDir      = "skills"
	AgentsDir      = "agents"
	TemplatesDir   = "templates"
	ConfigFile     = "config.yaml"
	StructureIndex = "structure.yaml"
	PrimaryDoc     = "GROK.md"
)

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
)

// ErrRepoNotFound is returned when no content repository can be located.
var ErrRepoNotFound = errors.New("content repository not found")

// Subdirs lists the directories created under the destination root.
var Subdirs = []string{SkillsDir, AgentsDir, TemplatesDir}

// DestinationRoot returns the directory the installer populates.
// It checks GROK_HOME first, then falls back to ~/.grok.
func DestinationRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return filepath.Abs(v)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// ConfigPath returns the canonical config file location under destRoot.
func ConfigPath(destRoot string) string {
	return filepath.Join(destRoot, ConfigFile)
}

// RepoRoot locates the content repository. GROK_REPO wins when set;
// otherwise it walks up from start to the first directory that holds both
// skills/ and agents/.
func RepoRoot(start string) (string, error) {
	if v := os.Getenv(branding.EnvVar("REPO")); v != "" {
		return filepath.Abs(v)
	}

	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}
	for {
		if isDir(filepath.Join(dir, SkillsDir)) && isDir(filepath.Join(dir, AgentsDir)) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no parent of %s contains %s/ and %s/ (set %s)",
				ErrRepoNotFound, start, SkillsDir, AgentsDir, branding.EnvVar("REPO"))
		}
		dir = parent
	}
}

// ShellRCFiles returns the candidate shell startup files under home.
// Callers only touch the ones that exist.
func ShellRCFiles(home string) []string {
	return []string{
		filepath.Join(home, ".bashrc"),
		filepath.Join(home, ".zshrc"),
		filepath.Join(home, ".profile"),
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
