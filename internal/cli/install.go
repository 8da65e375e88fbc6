package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grok-skills/grokkit/internal/branding"
	"github.com/grok-skills/grokkit/internal/config"
	"github.com/grok-skills/grokkit/internal/installer"
	"github.com/grok-skills/grokkit/internal/report"
)

var (
	installMode    string
	installCopy    bool
	installNoShell bool
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Link the repository's skills, agents, and templates into the destination root",
	Long: `Create ~/` + branding.HomeDir() + ` with skills/, agents/, and templates/, link one target per
category from the repository, write a default config.yaml if none exists, and
refresh the ` + branding.CLIName() + ` export block in ~/.bashrc, ~/.zshrc, and ~/.profile.

Existing symlinks are replaced. Real files or directories at a target path are
reported as conflicts and never modified. Re-running is safe.`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVar(&installMode, "mode", "", "Link mode: symlink or copy (default from settings.link_mode)")
	installCmd.Flags().BoolVar(&installCopy, "copy", false, "Shorthand for --mode copy")
	installCmd.Flags().BoolVar(&installNoShell, "no-shell", false, "Do not touch shell startup files")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	mode := config.RuntimeSettings().LinkMode
	if installMode != "" {
		mode = installMode
	}
	if installCopy {
		mode = config.LinkModeCopy
	}
	kind, err := installer.ParseKind(mode)
	if err != nil {
		return err
	}

	repo, err := resolveRepo()
	if err != nil {
		return err
	}
	dest, err := resolveDest()
	if err != nil {
		return err
	}

	var home string
	if !installNoShell {
		if home, err = os.UserHomeDir(); err != nil {
			return fmt.Errorf("resolving home directory: %w", err)
		}
	}

	fmt.Fprintf(out, "Installing %s into %s (%s)\n", repo, dest, kind)
	inst := installer.New(installer.Options{
		RepoRoot: repo,
		DestRoot: dest,
		Home:     home,
		Kind:     kind,
		Out:      out,
		Log:      logger,
	})

	res, err := inst.Run(cmd.Context())
	if err != nil {
		return err
	}
	printInstallReport(cmd, res)

	if !res.OK() {
		return &exitError{code: 1}
	}
	if home != "" {
		fmt.Fprintln(out, "Open a new shell (or source your rc file) to pick up the "+branding.EnvPrefix()+"_* variables.")
	}
	return nil
}

func printInstallReport(cmd *cobra.Command, res *installer.Report) {
	out := cmd.OutOrStdout()
	txt := report.NewText(out, report.ColorEnabled(flagNoColor))
	linked := 0
	for _, s := range res.Statuses {
		if s.Success {
			linked++
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Installed %d of %d targets.\n", linked, len(res.Statuses))
	for _, w := range res.Warnings {
		txt.Line("[WARN]", w)
	}
	if len(res.Conflicts) > 0 {
		fmt.Fprintf(out, "%d conflict(s); move these aside and re-run:\n", len(res.Conflicts))
		for _, c := range res.Conflicts {
			fmt.Fprintf(out, "  %s\n", c)
		}
	}
	for _, f := range res.Failures {
		txt.Line("[FAIL]", f)
	}
	if res.Verified {
		txt.Line("[ OK ]", "Verification passed")
		return
	}
	for _, m := range res.Missing {
		txt.Line("[MISS]", m)
	}
}
