// Package cmd provides the command-line interface for the timerctl application.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/connorhough/timerctl/internal/config"
	"github.com/connorhough/timerctl/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	logLevel string
	rootCmd  *cobra.Command
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.go. It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) error {
	if rootCmd == nil {
		rootCmd = NewRootCmd()
	}
	return rootCmd.ExecuteContext(ctx)
}

// NewRootCmd creates and returns the root command for timerctl
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "timerctl",
		Short: "Countdown and interval timer",
		Long: `timerctl runs a countdown (or an open-ended count up) that reports
elapsed and remaining time on a fixed interval, with pause, resume and stop.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.String(),
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default locations: $XDG_CONFIG_HOME/timerctl/config.yaml, ~/.config/timerctl/config.yaml, or ~/.timerctl.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides log_level in config)")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newFormatCmd())
	rootCmd.AddCommand(newConfigCmd())

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		return initLogging(cmd)
	}

	return rootCmd
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			viper.AddConfigPath(filepath.Join(xdgConfigHome, "timerctl"))
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get user home directory: %w", err)
			}
			viper.AddConfigPath(filepath.Join(home, ".config", "timerctl"))
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("TIMERCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found; ignore error if desired
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	return nil
}

// initLogging installs the default slog handler on stderr. The --log-level
// flag wins over the config file.
func initLogging(cmd *cobra.Command) error {
	raw := logLevel
	if raw == "" {
		raw = viper.GetString(config.KeyLogLevel)
	}

	level := slog.LevelInfo
	if raw != "" {
		var err error
		if level, err = config.ParseLevel(raw); err != nil {
			return err
		}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	return nil
}
