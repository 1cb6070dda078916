package cmd

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/connorhough/timerctl/internal/timer"
	"github.com/spf13/cobra"
)

func newFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format <milliseconds|duration>...",
		Short: "Print durations as H:MM:SS",
		Long: `Print each argument as H:MM:SS. Arguments are millisecond counts or Go
durations such as 90s. Hours wrap at 24.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				d, err := parseMillis(arg)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), timer.ToReadable(d))
			}
			return nil
		},
	}
}

// maxMillis is the largest millisecond count a time.Duration can hold.
const maxMillis = math.MaxInt64 / int64(time.Millisecond)

func parseMillis(s string) (time.Duration, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		if ms > maxMillis || ms < -maxMillis {
			return 0, fmt.Errorf("milliseconds '%s' out of range: limit is %d", s, maxMillis)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration '%s': expected milliseconds or a duration like 90s", s)
	}
	return d, nil
}
