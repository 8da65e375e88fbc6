package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grok-skills/grokkit/internal/config"
	"github.com/grok-skills/grokkit/internal/installer"
	"github.com/grok-skills/grokkit/internal/platform"
	"github.com/grok-skills/grokkit/internal/report"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the installation",
	Long: `Inspect the destination root: directory layout and permissions, one link or
managed copy per repository category, and config.yaml version compatibility.
Exits 1 when any problem remains.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Recreate missing directories and repair permissions")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	repo, err := resolveRepo()
	if err != nil {
		return err
	}
	dest, err := resolveDest()
	if err != nil {
		return err
	}

	txt := report.NewText(out, report.ColorEnabled(flagNoColor))
	fmt.Fprintln(out, "Platform:")
	if platform.IsSymlinkSupported() {
		txt.Line("[ OK ]", "symlinks supported")
	} else {
		txt.Line("[WARN]", "symlinks unavailable; use 'install --copy'")
	}

	kind, err := installer.ParseKind(config.RuntimeSettings().LinkMode)
	if err != nil {
		return err
	}
	inst := installer.New(installer.Options{RepoRoot: repo, DestRoot: dest, Kind: kind, Log: logger})
	problems := inst.Doctor(out, dest, doctorFix)

	fmt.Fprintln(out)
	if problems > 0 {
		fmt.Fprintf(out, "%d problem(s) found.\n", problems)
		return &exitError{code: 1}
	}
	fmt.Fprintln(out, "All checks passed.")
	return nil
}
