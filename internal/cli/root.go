package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/grok-skills/grokkit/internal/branding"
	"github.com/grok-skills/grokkit/internal/config"
	"github.com/grok-skills/grokkit/internal/grokhome"
	"github.com/grok-skills/grokkit/internal/logging"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagVerbose bool
	flagNoColor bool
	flagDest    string
	flagRepo    string

	logger = logging.Nop()
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` installs a Markdown skill and agent repository under ~/` + branding.HomeDir() + `
and checks that the repository follows its own structural and content conventions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.New(flagVerbose)

		dest, err := resolveDest()
		if err != nil {
			return err
		}
		config.Init(grokhome.ConfigPath(dest))
		logger.Debug("resolved destination", zap.String("dest", dest))
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging on stderr")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable coloured output (also honours NO_COLOR)")
	pf.StringVar(&flagDest, "dest", "", "Destination root (default $"+branding.EnvVar("HOME")+" or ~/"+branding.HomeDir()+")")
	pf.StringVar(&flagRepo, "repo", "", "Content repository root (default $"+branding.EnvVar("REPO")+" or the nearest parent with skills/ and agents/)")
}

// Execute runs the root command with build info injected via ldflags and
// returns the process exit code.
func Execute(version, commit, date string) int {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	_ = logger.Sync()
	return exitCode(err)
}

// exitError carries a specific exit code out of a command. An empty msg
// means the command already reported the problem.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	if e.msg == "" {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.msg
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.msg != "" {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
		}
		return ee.code
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	return 1
}

func resolveDest() (string, error) {
	if flagDest != "" {
		return filepath.Abs(flagDest)
	}
	dest, err := grokhome.DestinationRoot()
	if err != nil {
		return "", fmt.Errorf("resolving destination root: %w", err)
	}
	return dest, nil
}

func resolveRepo() (string, error) {
	if flagRepo != "" {
		return filepath.Abs(flagRepo)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return grokhome.RepoRoot(wd)
}
