// Package version reports build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
)

// These variables are set at build time using ldflags, e.g.
// -X github.com/connorhough/timerctl/internal/version.Version=v1.0.0
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// String returns the version with commit, build date and Go toolchain
func String() string {
	return fmt.Sprintf("%s (commit: %s, date: %s, %s)", Version, GitCommit, BuildDate, runtime.Version())
}
