package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grok-skills/grokkit/internal/installer"
)

var uninstallKeepShell bool

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the links and managed copies created by install",
	Long: `Remove every symlink or managed copy that install created under the
destination root and strip the export block from shell startup files.
Real user content and config.yaml are left in place.`,
	Args: cobra.NoArgs,
	RunE: runUninstall,
}

func init() {
	uninstallCmd.Flags().BoolVar(&uninstallKeepShell, "keep-shell", false, "Leave the shell export block in place")
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, args []string) error {
	repo, err := resolveRepo()
	if err != nil {
		return err
	}
	dest, err := resolveDest()
	if err != nil {
		return err
	}

	var home string
	if !uninstallKeepShell {
		if home, err = os.UserHomeDir(); err != nil {
			return fmt.Errorf("resolving home directory: %w", err)
		}
	}

	targets, _, err := installer.Manifest(repo, dest, installer.KindSymlink)
	if err != nil {
		return err
	}

	inst := installer.New(installer.Options{
		RepoRoot: repo,
		DestRoot: dest,
		Home:     home,
		Out:      cmd.OutOrStdout(),
		Log:      logger,
	})
	report := inst.Uninstall(dest, targets)

	if len(report.Conflicts) > 0 || len(report.Failures) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d path(s) left in place.\n", len(report.Conflicts)+len(report.Failures))
		return &exitError{code: 1}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nRemoved %d target(s) from %s\n", len(targets), dest)
	return nil
}
