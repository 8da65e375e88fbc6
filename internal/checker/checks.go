package checker

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/grok-skills/grokkit/internal/catalog"
	"github.com/grok-skills/grokkit/internal/frontmatter"
	"github.com/grok-skills/grokkit/internal/grokhome"
)

// PathKind is what CheckPathExists expects to find.
type PathKind string

const (
	PathFile PathKind = "file"
	PathDir  PathKind = "dir"
)

// CheckPathExists passes iff a file or directory, per kind, exists at path.
func CheckPathExists(path string, kind PathKind) Result {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fail(fmt.Sprintf("%s does not exist", kind))
	}
	if err != nil {
		return fail(err.Error())
	}

	switch {
	case kind == PathDir && !info.IsDir():
		return fail("not a directory")
	case kind == PathFile && info.IsDir():
		return fail("is a directory, not a file")
	}
	return pass()
}

// CheckPrimaryDoc passes iff entryDir holds exactly one primary doc. Names
// are matched case-insensitively, so GROK.md and grok.md are two candidates.
func CheckPrimaryDoc(entryDir string) Result {
	files, err := os.ReadDir(entryDir)
	if err != nil {
		return fail(err.Error())
	}
	var found []string
	for _, f := range files {
		if !f.IsDir() && strings.EqualFold(f.Name(), grokhome.PrimaryDoc) {
			found = append(found, f.Name())
		}
	}
	switch len(found) {
	case 0:
		return fail(fmt.Sprintf("no %s", grokhome.PrimaryDoc))
	case 1:
		return pass()
	default:
		return fail(fmt.Sprintf("%d primary doc candidates: %s", len(found), strings.Join(found, ", ")), found...)
	}
}

// CheckFrontmatter passes iff one of the first 20 lines is exactly "---".
func CheckFrontmatter(path string) Result {
	f, err := os.Open(path)
	if err != nil {
		return fail(err.Error())
	}
	defer f.Close()

	ok, err := frontmatter.HasDelimiter(f)
	if err != nil {
		return fail(err.Error())
	}
	if !ok {
		return fail(frontmatter.ErrNoFrontmatter.Error())
	}
	return pass()
}

// CheckSizeBounds passes iff min <= size <= max. A max of 0 means no upper
// bound.
func CheckSizeBounds(path string, min, max int64) Result {
	info, err := os.Stat(path)
	if err != nil {
		return fail(err.Error())
	}
	size := info.Size()
	switch {
	case size < min:
		return fail(fmt.Sprintf("%d bytes is below the minimum of %d", size, min))
	case max > 0 && size > max:
		return fail(fmt.Sprintf("%d bytes exceeds the maximum of %d", size, max))
	}
	return pass()
}

// CheckKeywordPresence searches path case-insensitively for keywords. With
// matchAny one hit passes; otherwise every keyword must appear.
func CheckKeywordPresence(path string, keywords []string, matchAny bool) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return fail(err.Error())
	}
	if len(keywords) == 0 {
		return pass()
	}

	text := bytes.ToLower(data)
	var missing []string
	for _, kw := range keywords {
		if bytes.Contains(text, []byte(strings.ToLower(kw))) {
			if matchAny {
				return pass()
			}
			continue
		}
		missing = append(missing, kw)
	}

	if len(missing) == 0 {
		return pass()
	}
	if matchAny {
		return fail("none of the keywords found", missing...)
	}
	return fail(fmt.Sprintf("%d of %d keywords missing", len(missing), len(keywords)), missing...)
}

// CheckFrontmatterSchema validates the frontmatter block of path against
// the embedded schema. Each violation becomes a detail line.
func CheckFrontmatterSchema(path string) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return fail(err.Error())
	}
	res, err := frontmatter.ValidateDocument(data)
	if err != nil {
		return fail(err.Error())
	}
	if res.Valid {
		return pass()
	}

	details := make([]string, len(res.Issues))
	for i, issue := range res.Issues {
		details[i] = issue.String()
	}
	return fail(fmt.Sprintf("frontmatter has %d schema violation(s)", len(details)), details...)
}

// CheckYAMLSyntax passes iff every document in path parses as YAML.
func CheckYAMLSyntax(path string) Result {
	f, err := os.Open(path)
	if err != nil {
		return fail(err.Error())
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			return pass()
		}
		if err != nil {
			return fail("invalid YAML", err.Error())
		}
	}
}

// CheckCategoryDeclared passes iff category is in the fixed set for
// namespace or declared in the structure index.
func CheckCategoryDeclared(idx *catalog.StructureIndex, namespace, category string) Result {
	if idx.Declared(namespace, category) {
		return pass()
	}
	return fail(fmt.Sprintf("category %q is not declared for %s", category, namespace),
		fmt.Sprintf("add it under categories.%s in structure.yaml", namespace))
}
