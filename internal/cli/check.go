package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/grok-skills/grokkit/internal/checker"
	"github.com/grok-skills/grokkit/internal/config"
	"github.com/grok-skills/grokkit/internal/report"
)

var (
	checkCategories  []string
	checkJSON        string
	checkJUnit       string
	checkWatch       bool
	checkTimeout     time.Duration
	checkConcurrency int
	checkRulesFile   string
	checkNoDefaults  bool
	checkShowPassed  bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the repository against its structural and content conventions",
	Long: `Evaluate every conformance rule against the content repository and print a
summary. Rules are grouped into structure, content, integration, and quality
categories; --category limits the run to some of them.

The exit code is the number of failed rules (capped at 125), so 0 means the
repository is clean.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.StringSliceVarP(&checkCategories, "category", "c", nil, "Only run these categories (structure, content, integration, quality)")
	f.StringVar(&checkJSON, "json", "", "Also write a JSON report to this file")
	f.StringVar(&checkJUnit, "junit", "", "Also write a JUnit XML report to this file")
	f.BoolVarP(&checkWatch, "watch", "w", false, "Re-run when Markdown or YAML files change")
	f.DurationVar(&checkTimeout, "timeout", 0, "Abort remaining rules after this long (0 = no limit)")
	f.IntVar(&checkConcurrency, "concurrency", 0, "Parallel rule evaluations (default settings.concurrency or CPU count)")
	f.StringVar(&checkRulesFile, "rules", "", "YAML file with additional rules")
	f.BoolVar(&checkNoDefaults, "no-defaults", false, "Skip the built-in rules (use with --rules)")
	f.BoolVar(&checkShowPassed, "show-passed", false, "List passing rules too")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	repo, err := resolveRepo()
	if err != nil {
		return err
	}

	filter, err := parseCategories(checkCategories)
	if err != nil {
		return err
	}

	settings := config.RuntimeSettings()
	concurrency := settings.Concurrency
	if checkConcurrency > 0 {
		concurrency = checkConcurrency
	}

	c := checker.New(checker.Options{RepoRoot: repo, Concurrency: concurrency, Log: logger})
	printer := report.NewText(cmd.OutOrStdout(), report.ColorEnabled(flagNoColor))
	printer.Verbose = checkShowPassed

	runOnce := func(ctx context.Context) (*checker.Summary, error) {
		rules, err := buildRules(repo, filter, settings)
		if err != nil {
			return nil, err
		}
		if checkTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, checkTimeout)
			defer cancel()
		}

		summary, err := c.RunAll(ctx, rules)
		if err != nil {
			return nil, err
		}
		printer.Print(summary)
		if err := writeReports(summary); err != nil {
			return nil, err
		}
		return summary, nil
	}

	ctx := cmd.Context()
	summary, err := runOnce(ctx)
	if err != nil {
		return err
	}

	if checkWatch {
		fmt.Fprintf(cmd.OutOrStdout(), "\nWatching %s for changes (Ctrl-C to stop)...\n", repo)
		return checker.Watch(ctx, repo, checker.DefaultDebounce, logger, func() {
			fmt.Fprintln(cmd.OutOrStdout())
			if _, err := runOnce(ctx); err != nil {
				logger.Warn("check run failed", zap.Error(err))
			}
		})
	}

	if code := summary.ExitCode(); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

func buildRules(repo string, filter []checker.Category, settings config.Settings) ([]checker.Rule, error) {
	var rules []checker.Rule
	if !checkNoDefaults {
		defaults, err := checker.DefaultRules(repo, filter, settings.MinBytes, settings.MaxBytes)
		if err != nil {
			return nil, fmt.Errorf("building default rules: %w", err)
		}
		rules = append(rules, defaults...)
	}
	if checkRulesFile != "" {
		extra, err := checker.LoadRules(checkRulesFile)
		if err != nil {
			return nil, err
		}
		rules = append(rules, checker.FilterRules(extra, filter)...)
	}
	return rules, nil
}

func writeReports(s *checker.Summary) error {
	if checkJSON != "" {
		if err := report.WriteJSONFile(checkJSON, s); err != nil {
			return err
		}
		logger.Debug("wrote JSON report", zap.String("path", checkJSON))
	}
	if checkJUnit != "" {
		if err := report.WriteJUnitFile(checkJUnit, s); err != nil {
			return err
		}
		logger.Debug("wrote JUnit report", zap.String("path", checkJUnit))
	}
	return nil
}

// parseCategories validates the --category values.
func parseCategories(values []string) ([]checker.Category, error) {
	var out []checker.Category
	for _, v := range values {
		c, err := checker.ParseCategory(v)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
