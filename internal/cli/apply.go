package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stubkit-labs/stubkit/internal/config"
	"github.com/stubkit-labs/stubkit/internal/globs"
	"github.com/stubkit-labs/stubkit/internal/layout"
	"github.com/stubkit-labs/stubkit/internal/scaffold"
)

var (
	applyBase     string
	applyDryRun   bool
	applySkip     string
	applyOnly     string
	applyExec     string
	applyDirPerm  string
	applyFilePerm string
	applyQuiet    bool
	applyVerbose  bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <layout>",
	Short: "Materialize a layout onto the filesystem",
	Long: `Create every directory and file a layout declares under the base path.

The layout argument is a built-in name, a path to a layout file, or '-' to
read the layout from stdin. Applying is idempotent: existing directories are
left alone and existing files are truncated back to their declared content.
A failing entry is reported and skipped; the rest of the tree is still created.

Examples:
  stubkit apply analytics-plugin
  stubkit apply ./layout.yaml --base /srv/app
  cat layout.yaml | stubkit apply - --dry-run
  stubkit apply storage-module --skip 'admin/**' --exec '**/*.sh'`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVar(&applyBase, "base", "", "Base path to materialize under (default: config defaults.base, else '.')")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Print operations without touching the filesystem")
	applyCmd.Flags().StringVar(&applySkip, "skip", "", "Comma-separated glob patterns to skip ('!' negates)")
	applyCmd.Flags().StringVar(&applyOnly, "only", "", "Comma-separated glob patterns; only matching files are created")
	applyCmd.Flags().StringVar(&applyExec, "exec", "", "Comma-separated glob patterns for files created with mode 0755")
	applyCmd.Flags().StringVar(&applyDirPerm, "dir-perm", "", "Octal permissions for created directories (default 0755)")
	applyCmd.Flags().StringVar(&applyFilePerm, "file-perm", "", "Octal permissions for created files (default 0644)")
	applyCmd.Flags().BoolVarP(&applyQuiet, "quiet", "q", false, "Suppress progress output")
	applyCmd.Flags().BoolVarP(&applyVerbose, "verbose", "v", false, "Print a line for every created entry")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
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

	opts, err := applyOptions(cmd)
	if err != nil {
		return err
	}

	res, err := scaffold.New(opts).Materialize(l, resolveBase(applyBase))
	if err != nil {
		return err
	}

	return reportResult(cmd, res)
}

// applyOptions assembles scaffolder options from flags with config fallbacks.
func applyOptions(cmd *cobra.Command) (scaffold.Options, error) {
	dirPerm, err := parsePerm(firstNonEmpty(applyDirPerm, config.Get(config.KeyDefaultDirPerm)), 0755)
	if err != nil {
		return scaffold.Options{}, fmt.Errorf("--dir-perm: %w", err)
	}
	filePerm, err := parsePerm(firstNonEmpty(applyFilePerm, config.Get(config.KeyDefaultFilePerm)), 0644)
	if err != nil {
		return scaffold.Options{}, fmt.Errorf("--file-perm: %w", err)
	}

	var out io.Writer = cmd.OutOrStdout()
	if applyQuiet {
		out = io.Discard
	}

	return scaffold.Options{
		DirPerm:  dirPerm,
		FilePerm: filePerm,
		DryRun:   applyDryRun,
		Verbose:  applyVerbose,
		Out:      out,
		Skip:     globs.Parse(applySkip),
		Only:     globs.Parse(applyOnly),
		Exec:     globs.Parse(applyExec),
	}, nil
}

// resolveBase picks the base path: flag, then config, then the working directory.
func resolveBase(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if base := config.Get(config.KeyDefaultBase); base != "" {
		return base
	}
	return "."
}

// reportResult prints the final summary and turns failures into a non-zero exit.
func reportResult(cmd *cobra.Command, res *scaffold.Result) error {
	if res.OK() {
		if !applyQuiet {
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ %s\n", res.Summary())
		}
		return nil
	}

	// Progress output was discarded under --quiet, so the failures have not
	// been shown yet; list them before the summary.
	if applyQuiet {
		for _, f := range res.Failures {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s %s: %v\n", f.Op, f.Path, f.Err)
		}
	}
	color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(), "✗ %s\n", res.Summary())
	return fmt.Errorf("%d entries could not be created", len(res.Failures))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
