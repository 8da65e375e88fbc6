// Package scaffold generates new skill and agent entries from embedded
// templates. It powers the "grokkit create" command and produces a GROK.md
// that already satisfies the built-in conformance rules.
package scaffold
