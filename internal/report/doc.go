// Package report renders a checker Summary: a colourised text summary for
// terminals, plus JSON and JUnit XML files for CI.
package report
