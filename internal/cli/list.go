package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stubkit-labs/stubkit/internal/layouts"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in layouts",
	Long:  `List the layouts embedded in the binary that can be applied by name.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents a built-in layout for display.
type listEntry struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Base        string `json:"base,omitempty"`
	Description string `json:"description,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	var entries []listEntry
	for _, name := range layouts.Names() {
		l, err := layouts.Load(name)
		if err != nil {
			return fmt.Errorf("loading built-in layout %s: %w", name, err)
		}
		entries = append(entries, listEntry{
			Name:        l.Name,
			Version:     l.Version,
			Base:        l.Base,
			Description: l.Description,
		})
	}

	if listJSON {
		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling layout list: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tBASE\tDESCRIPTION")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, e.Version, e.Base, e.Description)
	}
	return w.Flush()
}
