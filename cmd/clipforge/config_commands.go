package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"clipforge/internal/config"
	"clipforge/internal/notifications"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the daemon configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigPathCommand())
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented sample configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := path
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				target = defaultPath
			}
			if err := config.WriteSample(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Destination path (defaults to the standard location)")

	return cmd
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the default configuration file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newTestNotifyCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification using the configured ntfy topic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := config.Load(configPath)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if err := notifications.NewService(cfg).TestNotification(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "test notification sent")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file path")

	return cmd
}
