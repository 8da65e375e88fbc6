// Package checker evaluates conformance rules against a content repository.
//
// A Rule names one expectation about one path (or a glob of paths): that it
// exists, carries YAML frontmatter, stays within size bounds, links only to
// files that exist, or mentions certain keywords. RunAll expands globs,
// evaluates every rule through a bounded worker pool without stopping at the
// first failure, and returns a Summary whose order does not depend on
// scheduling.
package checker
