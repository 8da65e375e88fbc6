package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/grok-skills/grokkit/internal/catalog"
	"github.com/grok-skills/grokkit/internal/frontmatter"
)

var (
	listNamespace string
	listJSON      bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the skills and agents in the repository",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listNamespace, "namespace", "", "Filter by namespace (skills, agents)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry is one catalog entry for display.
type listEntry struct {
	Namespace   string `json:"namespace"`
	ID          string `json:"id"`
	Description string `json:"description"`
	Path        string `json:"path"`
}

func runList(cmd *cobra.Command, args []string) error {
	repo, err := resolveRepo()
	if err != nil {
		return err
	}

	var entries []catalog.Entry
	if listNamespace != "" {
		entries, err = catalog.DiscoverNamespace(repo, listNamespace)
	} else {
		entries, err = catalog.Discover(repo)
	}
	if err != nil {
		return fmt.Errorf("discovering entries: %w", err)
	}

	items := make([]listEntry, 0, len(entries))
	for _, e := range entries {
		item := listEntry{Namespace: e.Namespace, ID: e.ID(), Path: e.RelDir}
		if doc := e.DocPath(); doc != "" {
			if fm, err := frontmatter.ParseFile(doc); err == nil {
				item.Description = fm.Description
			}
		}
		items = append(items, item)
	}

	if listJSON {
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if len(items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No skills or agents found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAMESPACE\tID\tDESCRIPTION")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\n", item.Namespace, item.ID, truncate(item.Description, 60))
	}
	return w.Flush()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
