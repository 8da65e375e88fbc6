package checker

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/grok-skills/grokkit/internal/catalog"
)

// ReasonCancelled is recorded for rules that never ran because the run's
// context ended first.
const ReasonCancelled = "cancelled"

// Options configures a Checker.
type Options struct {
	RepoRoot    string
	Concurrency int // <= 0 means runtime.NumCPU(); 1 runs rules in order
	Log         *zap.Logger
}

// Checker evaluates rules against one repository.
type Checker struct {
	repoRoot    string
	concurrency int
	log         *zap.Logger

	indexOnce sync.Once
	index     *catalog.StructureIndex
	indexErr  error
}

// New returns a Checker for opts.RepoRoot.
func New(opts Options) *Checker {
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.NumCPU()
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &Checker{
		repoRoot:    opts.RepoRoot,
		concurrency: opts.Concurrency,
		log:         opts.Log,
	}
}

// Evaluate runs one rule. Rule targets are relative to the repository root.
func (c *Checker) Evaluate(r Rule) Result {
	target := c.resolve(r.Target)

	switch r.Kind {
	case KindFileExists:
		return CheckPathExists(target, PathFile)
	case KindDirExists:
		return CheckPathExists(target, PathDir)
	case KindHasFrontmatter:
		return CheckFrontmatter(target)
	case KindSizeRange:
		return CheckSizeBounds(target, r.Params.MinBytes, r.Params.MaxBytes)
	case KindInternalLinks:
		return CheckInternalLinks(c.repoRoot, target)
	case KindContainsKeyword:
		return CheckKeywordPresence(target, r.Params.Keywords, r.Params.MatchAny)
	case KindFrontmatterSchema:
		return CheckFrontmatterSchema(target)
	case KindYAMLSyntax:
		return CheckYAMLSyntax(target)
	case KindCategoryDeclared:
		return c.checkCategory(r.Target)
	case KindPrimaryDoc:
		return CheckPrimaryDoc(target)
	default:
		return fail(fmt.Sprintf("unknown rule kind %q", r.Kind))
	}
}

// checkCategory expects a "<namespace>/<category>" target.
func (c *Checker) checkCategory(target string) Result {
	parts := strings.Split(path.Clean(target), "/")
	if len(parts) < 2 {
		return fail(fmt.Sprintf("target %q is not <namespace>/<category>", target))
	}
	c.indexOnce.Do(func() {
		c.index, c.indexErr = catalog.LoadStructureIndex(c.repoRoot)
	})
	if c.indexErr != nil {
		return fail(c.indexErr.Error())
	}
	return CheckCategoryDeclared(c.index, parts[0], parts[1])
}

func (c *Checker) resolve(target string) string {
	p := filepath.FromSlash(target)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.repoRoot, p)
}

// RunAll expands glob targets and evaluates every rule. It never stops at
// the first failure. If ctx ends mid-run the remaining rules are recorded as
// failed with ReasonCancelled. The only error is an invalid glob.
func (c *Checker) RunAll(ctx context.Context, rules []Rule) (*Summary, error) {
	expanded, err := Expand(c.repoRoot, rules)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	outcomes := make([]Outcome, len(expanded))
	var passed, failed atomic.Int64

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, r := range expanded {
		i, r := i, r
		g.Go(func() error {
			o := Outcome{Rule: r}
			if ctx.Err() != nil {
				o.Result = fail(ReasonCancelled)
			} else {
				t0 := time.Now()
				o.Result = c.Evaluate(r)
				o.Duration = time.Since(t0)
			}

			if o.Passed {
				passed.Add(1)
			} else {
				failed.Add(1)
				c.log.Debug("rule failed",
					zap.String("rule", r.ID),
					zap.String("target", r.Target),
					zap.String("reason", o.Reason))
			}
			outcomes[i] = o
			return nil
		})
	}
	_ = g.Wait()

	sortOutcomes(outcomes)

	s := &Summary{
		RunID:    uuid.NewString(),
		Started:  started,
		Duration: time.Since(started),
		Total:    len(outcomes),
		Passed:   int(passed.Load()),
		Failed:   int(failed.Load()),
		Outcomes: outcomes,
	}
	s.SuccessRate = 100
	if s.Total > 0 {
		s.SuccessRate = float64(s.Passed) * 100 / float64(s.Total)
	}
	return s, nil
}

// sortOutcomes orders by rule ID, then target.
func sortOutcomes(outcomes []Outcome) {
	sort.SliceStable(outcomes, func(i, j int) bool {
		a, b := outcomes[i].Rule, outcomes[j].Rule
		if a.ID != b.ID {
			return a.ID < b.ID
		}
		return a.Target < b.Target
	})
}
