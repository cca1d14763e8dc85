package cli

import (
	"github.com/agent-rules/rules/internal/branding"
	"github.com/agent-rules/rules/internal/config"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Shared persistent flag: overrides store resolution for one invocation.
var storeFlag string

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` keeps agent rule files (AGENTS.md, coding conventions, prompts)
in one personal store and mirrors them into projects as symlinks, so a rule
edited once is current in every project that links it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "",
		"Store root (overrides "+branding.EnvVar("STORE")+" and the config file)")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
