package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/grok-skills/grokkit/internal/checker"
)

// Semantic colours.
var (
	colorPass = lipgloss.Color("#8BC34A")
	colorFail = lipgloss.Color("#E53935")
	colorWarn = lipgloss.Color("#FFC107")
	colorDim  = lipgloss.Color("#7A869A")
)

// Styles holds the label styles for one output stream.
type Styles struct {
	Pass  lipgloss.Style
	Fail  lipgloss.Style
	Warn  lipgloss.Style
	Dim   lipgloss.Style
	Title lipgloss.Style
}

// ColorEnabled reports whether colour should be used: not disabled by flag
// and NO_COLOR unset.
func ColorEnabled(noColorFlag bool) bool {
	if noColorFlag {
		return false
	}
	_, set := os.LookupEnv("NO_COLOR")
	return !set
}

// NewStyles returns styles bound to w. With color false every style renders
// plain text; otherwise the renderer still drops colour on non-terminals.
func NewStyles(w io.Writer, color bool) Styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		plain := r.NewStyle()
		return Styles{Pass: plain, Fail: plain, Warn: plain, Dim: plain, Title: plain}
	}
	return Styles{
		Pass:  r.NewStyle().Foreground(colorPass).Bold(true),
		Fail:  r.NewStyle().Foreground(colorFail).Bold(true),
		Warn:  r.NewStyle().Foreground(colorWarn),
		Dim:   r.NewStyle().Foreground(colorDim),
		Title: r.NewStyle().Bold(true).Underline(true),
	}
}

// Text writes the human-readable summary.
type Text struct {
	w       io.Writer
	styles  Styles
	Verbose bool // also list passing rules
}

// NewText returns a Text printer for w.
func NewText(w io.Writer, color bool) *Text {
	return &Text{w: w, styles: NewStyles(w, color)}
}

// Print writes one line per failing rule (every rule when Verbose), a
// per-category tally, and the totals.
func (t *Text) Print(s *checker.Summary) {
	st := t.styles

	fmt.Fprintln(t.w, st.Title.Render("Conformance check"))
	for _, o := range s.Outcomes {
		if o.Passed {
			if t.Verbose {
				fmt.Fprintf(t.w, "  %s %s %s\n", st.Pass.Render("[ OK ]"), o.Rule.Target, st.Dim.Render("("+o.Rule.ID+")"))
			}
			continue
		}
		fmt.Fprintf(t.w, "  %s %s %s: %s\n", st.Fail.Render("[FAIL]"), o.Rule.Target, st.Dim.Render("("+o.Rule.ID+")"), o.Reason)
		for _, d := range o.Details {
			fmt.Fprintf(t.w, "         - %s\n", d)
		}
	}

	fmt.Fprintln(t.w)
	for _, c := range checker.Categories {
		total, failed := tally(s, c)
		if total == 0 {
			continue
		}
		label := st.Pass.Render("[ OK ]")
		if failed > 0 {
			label = st.Fail.Render("[FAIL]")
		}
		fmt.Fprintf(t.w, "  %s %-12s %d/%d passed\n", label, c, total-failed, total)
	}

	fmt.Fprintln(t.w)
	rate := fmt.Sprintf("%.1f%%", s.SuccessRate)
	switch {
	case s.Failed == 0:
		rate = st.Pass.Render(rate)
	case s.SuccessRate >= 80:
		rate = st.Warn.Render(rate)
	default:
		rate = st.Fail.Render(rate)
	}
	fmt.Fprintf(t.w, "Total: %d  Passed: %d  Failed: %d  Success rate: %s\n", s.Total, s.Passed, s.Failed, rate)
	fmt.Fprintln(t.w, st.Dim.Render(fmt.Sprintf("run %s in %s", s.RunID, s.Duration.Round(time.Millisecond))))
}

func tally(s *checker.Summary, c checker.Category) (total, failed int) {
	for _, o := range s.Outcomes {
		if o.Rule.Category != c {
			continue
		}
		total++
		if !o.Passed {
			failed++
		}
	}
	return total, failed
}

// Line prints a single indented "[LABEL] msg" line in the matching label style.
func (t *Text) Line(label, msg string) {
	var styled string
	switch strings.TrimSpace(strings.Trim(label, "[]")) {
	case "OK":
		styled = t.styles.Pass.Render(label)
	case "FAIL", "MISS":
		styled = t.styles.Fail.Render(label)
	default:
		styled = t.styles.Warn.Render(label)
	}
	fmt.Fprintf(t.w, "  %s %s\n", styled, msg)
}
