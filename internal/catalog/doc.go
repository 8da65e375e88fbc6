// Package catalog discovers the skill and agent entries of a content
// repository. Entries live at <namespace>/<category>/<name>/ and own exactly
// one GROK.md, optional resources/ and scripts/ directories, and, for
// agents, an optional workflow descriptor. Categories come from a fixed set
// per namespace, extended by the repository's structure.yaml index.
package catalog
