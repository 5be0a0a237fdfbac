package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var (
		apiFlag   string
		tokenFlag string
	)

	rootCmd := &cobra.Command{
		Use:           "clipforge",
		Short:         "Control the clipforged video generation daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&apiFlag, "api", "http://127.0.0.1:7319", "Base URL of the clipforged API")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "API bearer token")

	client := newClient(&apiFlag, &tokenFlag)

	rootCmd.AddCommand(newCreateCommand(client))
	rootCmd.AddCommand(newStatusCommand(client))
	rootCmd.AddCommand(newListCommand(client))
	rootCmd.AddCommand(newCancelCommand(client))
	rootCmd.AddCommand(newRetryCommand(client))
	rootCmd.AddCommand(newDeleteCommand(client))
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newTestNotifyCommand())

	return rootCmd
}
