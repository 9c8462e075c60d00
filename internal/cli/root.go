package cli

import (
	"github.com/spf13/cobra"

	"github.com/stubkit-labs/stubkit/internal/branding"
	"github.com/stubkit-labs/stubkit/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` turns declarative layout manifests into real directory trees:
every declared directory is created with mkdir -p semantics and every declared
file is written as an empty (or fixed-content) placeholder. Runs are idempotent
and individual failures never abort the rest of the tree.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
