// Package frontmatter finds and parses the YAML block delimited by `---`
// lines at the top of a skill or agent GROK.md, and validates it against the
// embedded JSON Schema in schema/frontmatter.schema.json.
package frontmatter
