package cmd

import (
	"fmt"

	"github.com/connorhough/timerctl/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage timerctl configuration",
		Long:  `Get and set timerctl configuration values.`,
	}

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "get <key>",
			Short: "Get a configuration value",
			Long:  `Get a configuration value by key.`,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				value, err := config.GetValue(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Set a configuration value",
			Long:  `Set a configuration value by key.`,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return config.SetValue(args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Write a config file template",
			Long:  `Write a commented config template to --config or the default location, unless a file already exists.`,
			Args:  cobra.NoArgs,
			// The target file may not exist yet, so skip reading it.
			PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
				return initLogging(cmd)
			},
			RunE: func(cmd *cobra.Command, args []string) error {
				path := cfgFile
				if path == "" {
					var err error
					if path, err = config.DefaultPath(); err != nil {
						return err
					}
				}
				created, err := config.EnsureConfigExists(path)
				if err != nil {
					return err
				}
				if created {
					fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", path)
				}
				return nil
			},
		},
	)

	return configCmd
}
