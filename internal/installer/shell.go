package installer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/grok-skills/grokkit/internal/branding"
	"github.com/grok-skills/grokkit/internal/grokhome"
)

// Export is one environment variable written into the shell block.
type Export struct {
	Name  string
	Value string
}

// Exports returns the variables that point a shell at the install.
func Exports(repoRoot, destRoot string) []Export {
	return []Export{
		{Name: branding.EnvVar("HOME"), Value: destRoot},
		{Name: branding.EnvVar("REPO"), Value: repoRoot},
		{Name: branding.EnvVar("SKILLS_PATH"), Value: filepath.Join(destRoot, grokhome.SkillsDir)},
		{Name: branding.EnvVar("AGENTS_PATH"), Value: filepath.Join(destRoot, grokhome.AgentsDir)},
		{Name: branding.EnvVar("TEMPLATES_PATH"), Value: filepath.Join(destRoot, grokhome.TemplatesDir)},
	}
}

// ExportBlock renders exports as POSIX shell lines, one per variable.
func ExportBlock(exports []Export) string {
	var b strings.Builder
	for _, e := range exports {
		fmt.Fprintf(&b, "export %s=%s\n", e.Name, shellQuote(e.Value))
	}
	return b.String()
}

// shellQuote wraps s in single quotes so no expansion happens.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// ReplaceBlock drops every begin..end block from content and appends a fresh
// one holding block. Applying it twice with the same inputs yields the same
// result.
func ReplaceBlock(content, begin, end, block string) string {
	rest := strings.TrimRight(stripBlocks(content, begin, end), "\n")
	if block != "" && !strings.HasSuffix(block, "\n") {
		block += "\n"
	}
	fresh := begin + "\n" + block + end + "\n"
	if rest == "" {
		return fresh
	}
	return rest + "\n\n" + fresh
}

// RemoveBlock drops every begin..end block from content.
func RemoveBlock(content, begin, end string) string {
	rest := strings.TrimRight(stripBlocks(content, begin, end), "\n")
	if rest == "" {
		return ""
	}
	return rest + "\n"
}

// stripBlocks removes complete begin..end regions line by line. A begin
// marker without a matching end is kept along with everything after it.
func stripBlocks(content, begin, end string) string {
	var out strings.Builder
	var pending []string
	inBlock := false

	for _, line := range strings.SplitAfter(content, "\n") {
		trimmed := strings.TrimRight(line, "\r\n")
		switch {
		case trimmed == begin:
			// A second begin means the earlier one was never closed.
			for _, p := range pending {
				out.WriteString(p)
			}
			inBlock = true
			pending = append(pending[:0], line)
		case inBlock:
			pending = append(pending, line)
			if trimmed == end {
				inBlock = false
				pending = pending[:0]
			}
		default:
			out.WriteString(line)
		}
	}
	for _, line := range pending {
		out.WriteString(line)
	}
	return out.String()
}

// AppendShellExports rewrites the marked block in every rc file that exists.
// Missing files are skipped. Failures come back as warnings and never stop
// the install.
func (i *Installer) AppendShellExports(rcPaths []string, begin, end string) []string {
	block := ExportBlock(Exports(i.repoRoot, i.destRoot))
	return i.editRCFiles(rcPaths, func(content string) string {
		return ReplaceBlock(content, begin, end, block)
	})
}

// RemoveShellExports strips the marked block from every rc file that exists.
func (i *Installer) RemoveShellExports(rcPaths []string, begin, end string) []string {
	return i.editRCFiles(rcPaths, func(content string) string {
		return RemoveBlock(content, begin, end)
	})
}

func (i *Installer) editRCFiles(rcPaths []string, edit func(string) string) []string {
	var warnings []string
	for _, path := range rcPaths {
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			i.log.Debug("rc file absent", zap.String("path", path))
			continue
		}
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", path, err))
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("reading %s: %v", path, err))
			continue
		}

		updated := edit(string(content))
		if updated == string(content) {
			fmt.Fprintf(i.out, "  [SKIP] %s already up to date\n", path)
			continue
		}
		if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
			warnings = append(warnings, fmt.Sprintf("writing %s: %v", path, err))
			continue
		}
		fmt.Fprintf(i.out, "  [ OK ] Updated %s\n", path)
	}
	return warnings
}
