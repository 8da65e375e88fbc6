// Package installer makes a content repository's skills, agents, and
// templates visible under the destination root (~/.grok by default). It
// creates the directory skeleton, links or copies one target per category,
// writes a default config.yaml once, maintains a marked block of exports in
// shell startup files, and spot-checks the result.
//
// Targets are processed independently: a conflict on one target is reported
// and the run moves on. Only a missing source tree aborts the run.
package installer
