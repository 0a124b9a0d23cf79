// Package version holds the build information printed by blv --version.
package version

import (
	"fmt"
	"runtime"
)

// Overridden at build time with -ldflags "-X".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func Short() string {
	return Version
}

// Info is the --version line: version, short commit, build date and Go
// toolchain.
func Info() string {
	commit := Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("blv %s (commit: %s, built: %s, go: %s)",
		Version, commit, BuildDate, runtime.Version())
}
