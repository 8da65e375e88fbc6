package frontmatter

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Delimiter is the line that opens and closes a frontmatter block.
const Delimiter = "---"

// ScanLines is how far into a file the opening delimiter may appear.
const ScanLines = 20

// ErrNoFrontmatter is returned when no complete block is found.
var ErrNoFrontmatter = errors.New("missing YAML frontmatter")

// Frontmatter holds the metadata fields grokkit understands. Extras keeps
// everything else so nothing the external assistant reads is lost.
type Frontmatter struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Category    string   `yaml:"category,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
	Version     string   `yaml:"version,omitempty"`

	Extras map[string]interface{} `yaml:",inline"`
}

// HasDelimiter reports whether one of the first ScanLines lines of r is
// exactly "---". A trailing carriage return is ignored.
func HasDelimiter(r io.Reader) (bool, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for i := 0; i < ScanLines && scanner.Scan(); i++ {
		if strings.TrimSuffix(scanner.Text(), "\r") == Delimiter {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, err
	}
	return false, nil
}

// Extract splits data into the raw YAML block and the remaining body. The
// opening delimiter must sit within the first ScanLines lines; the block
// ends at the next "---" or "..." line.
func Extract(data []byte) (block, body []byte, err error) {
	lines := bytes.SplitAfter(data, []byte("\n"))

	open := -1
	for i := 0; i < len(lines) && i < ScanLines; i++ {
		if trimEOL(lines[i]) == Delimiter {
			open = i
			break
		}
	}
	if open < 0 {
		return nil, data, ErrNoFrontmatter
	}

	for i := open + 1; i < len(lines); i++ {
		switch trimEOL(lines[i]) {
		case Delimiter, "...":
			return bytes.Join(lines[open+1:i], nil), bytes.Join(lines[i+1:], nil), nil
		}
	}
	return nil, data, fmt.Errorf("%w: block opened on line %d is never closed", ErrNoFrontmatter, open+1)
}

// Parse extracts and decodes the frontmatter of a Markdown document.
func Parse(data []byte) (*Frontmatter, error) {
	block, _, err := Extract(data)
	if err != nil {
		return nil, err
	}
	var fm Frontmatter
	if err := yaml.Unmarshal(block, &fm); err != nil {
		return nil, fmt.Errorf("parsing frontmatter: %w", err)
	}
	return &fm, nil
}

// ParseFile reads a Markdown file and parses its frontmatter.
func ParseFile(path string) (*Frontmatter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	fm, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fm, nil
}

func trimEOL(line []byte) string {
	return strings.TrimRight(string(line), "\r\n")
}
