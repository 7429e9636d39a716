package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bnema/helm-threads-cli/internal/logging"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "hm",
		Short:         "HELM threads CLI (hm): track thread momentum and session continuity",
		Long:          "hm (HELM threads CLI) tracks threads of ongoing human-agent work: it records touches, blockers, and completed tasks, classifies thread health, scores momentum, and composes continuity prompts for returning to a session.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.Configure(logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newThreadCmd(app),
		newSessionCmd(app),
		newStatusCmd(app),
	)

	return rootCmd
}
