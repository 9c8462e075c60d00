package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stubkit-labs/stubkit/internal/layouts"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print the YAML of a built-in layout",
	Long: `Dump a built-in layout to stdout, typically as a starting point for a
custom layout file:

  stubkit show analytics-plugin > my-layout.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := layouts.Raw(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
