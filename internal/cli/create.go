package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/grok-skills/grokkit/internal/branding"
	"github.com/grok-skills/grokkit/internal/catalog"
	"github.com/grok-skills/grokkit/internal/scaffold"
)

// Shared flag for all create subcommands.
var createDescription string

func init() {
	createCmd.PersistentFlags().StringVar(&createDescription, "description", "", "One-line description for the frontmatter")
	rootCmd.AddCommand(createCmd)

	createCmd.AddCommand(newCreateSubcommand(catalog.NamespaceSkills, "skill"))
	createCmd.AddCommand(newCreateSubcommand(catalog.NamespaceAgents, "agent"))
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Scaffold a new skill or agent in the repository",
	Long: `Create a new skill or agent directory with a GROK.md that already passes
the built-in conformance rules. A templates/skill-template.md or
templates/agent-template.md in the repository replaces the built-in template.`,
}

func newCreateSubcommand(namespace, noun string) *cobra.Command {
	return &cobra.Command{
		Use:   noun + " <category>/<name>",
		Short: "Scaffold a new " + noun,
		Example: fmt.Sprintf("  %s create %s core/tdd --description \"Red, green, refactor in small steps\"",
			branding.CLIName(), noun),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, name, err := scaffold.ParseID(args[0])
			if err != nil {
				return err
			}
			data, err := scaffold.NewData(namespace, category, name, createDescription)
			if err != nil {
				return err
			}

			repo, err := resolveRepo()
			if err != nil {
				return err
			}
			result, err := scaffold.Generate(repo, data)
			if err != nil {
				return err
			}

			printResult(cmd.OutOrStdout(), repo, noun, result)
			return nil
		},
	}
}

func printResult(w io.Writer, repo, noun string, result *scaffold.Result) {
	rel, err := filepath.Rel(repo, result.OutputDir)
	if err != nil {
		rel = result.OutputDir
	}
	fmt.Fprintf(w, "Created %s in %s\n", noun, rel)
	for _, f := range result.Files {
		fmt.Fprintf(w, "  [ OK ] %s\n", f)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "  [WARN] %s\n", warning)
	}
	fmt.Fprintf(w, "\nNext: fill in %s, then run '%s check'.\n", filepath.Join(rel, "GROK.md"), branding.CLIName())
}
