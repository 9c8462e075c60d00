package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stubkit-labs/stubkit/internal/layout"
)

var validateCmd = &cobra.Command{
	Use:   "validate <layout>",
	Short: "Validate a layout against the schema and semantic rules",
	Long: `Check a layout file (or built-in, or '-' for stdin) against the layout
JSON Schema, then against semantic rules the schema cannot express, such as
sibling name uniqueness and path confinement.

Example:
  stubkit validate ./layout.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	data, err := readLayoutSource(args[0])
	if err != nil {
		return err
	}

	result, err := layout.ValidateBytes(data)
	if err != nil {
		return err
	}
	if !result.Valid {
		fmt.Fprintln(cmd.ErrOrStderr(), "Schema validation failed:")
		for _, issue := range result.Issues {
			msg := issue.Message
			if issue.Path != "" {
				msg = issue.Path + ": " + msg
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", msg)
		}
		return fmt.Errorf("layout %s is invalid", args[0])
	}

	l, err := layout.Parse(data)
	if err != nil {
		return err
	}
	if err := l.Validate(); err != nil {
		return fmt.Errorf("semantic validation failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Layout %s is valid\n", l.Name)
	return nil
}
