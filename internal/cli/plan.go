package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stubkit-labs/stubkit/internal/layout"
	"github.com/stubkit-labs/stubkit/internal/scaffold"
)

var planBase string

var planCmd = &cobra.Command{
	Use:   "plan <layout>",
	Short: "Show what apply would create, without touching the filesystem",
	Long: `Resolve a layout and print every mkdir and file creation apply would
perform under the base path.

Example:
  stubkit plan oauth-module --base /srv/app`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planBase, "base", "", "Base path to plan against (default: config defaults.base, else '.')")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	data, err := readLayoutSource(args[0])
	if err != nil {
		return err
	}

	l, err := layout.Load(data)
	if err != nil {
		return err
	}

	if err := checkRequires(l); err != nil {
		return err
	}

	s := scaffold.New(scaffold.Options{
		DryRun: true,
		Out:    cmd.OutOrStdout(),
	})

	res, err := s.Materialize(l, resolveBase(planBase))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nPlan: %d directories, %d files under %s\n",
		len(res.Dirs), len(res.Files), res.Base)
	return nil
}
