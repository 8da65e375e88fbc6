// Package grokhome resolves the two roots every grokkit command works with:
// the destination root under the user's home directory (~/.grok by default)
// and the content repository root holding skills/, agents/, and templates/.
// Both can be overridden through environment variables.
package grokhome
