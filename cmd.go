package main

import (
	"os"

	"github.com/spf13/cobra"
)

func SetupCommands() *cobra.Command {
	// root command
	rootCmd := &cobra.Command{
		Use:           "nsprofile",
		Short:         "Fetch profile switches from Nightscout and print their contents",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := NewConfig(cmd.Flags())
			if err != nil {
				return err
			}

			log, err := NewLogger(conf.LogLevel, os.Stderr)
			if err != nil {
				return err
			}

			a := NewApp(conf, cmd.OutOrStdout(), log)
			return a.ShowProfiles(cmd.Context(), conf.From, conf.Count)
		},
	}

	RegisterFlags(rootCmd.Flags())

	return rootCmd
}
