package cmd

import (
	"fmt"
	"time"

	"github.com/connorhough/timerctl/internal/config"
	"github.com/connorhough/timerctl/internal/countdown"
	"github.com/connorhough/timerctl/internal/iostreams"
	"github.com/spf13/cobra"
)

// newStreams is replaced in tests.
var newStreams = iostreams.System

func newRunCmd() *cobra.Command {
	var (
		duration time.Duration
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run [duration]",
		Short: "Run a countdown",
		Long: `Run a countdown for the given duration, reporting elapsed and remaining
time every interval. Without a duration the timer counts up until interrupted.

When stdin is a terminal, type p, r, s or q followed by Enter to pause,
resume, stop or quit.`,
		Example: `  timerctl run 25m
  timerctl run --duration 90s --interval 1s`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if cmd.Flags().Changed("duration") {
					return fmt.Errorf("duration given both as argument and --duration flag")
				}
				d, err := time.ParseDuration(args[0])
				if err != nil {
					return fmt.Errorf("could not parse duration '%s': %w", args[0], err)
				}
				duration = d
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			cfg.ApplyFlags(duration, interval)
			if err := cfg.Validate(); err != nil {
				return err
			}

			return countdown.Run(cmd.Context(), newStreams(), cfg)
		},
	}

	cmd.Flags().DurationVarP(&duration, "duration", "d", 0, "Total run length (e.g. 25m); overrides config")
	cmd.Flags().DurationVarP(&interval, "interval", "i", 0, "Refresh interval (default from config, 100ms)")

	return cmd
}
