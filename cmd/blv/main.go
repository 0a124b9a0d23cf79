// Command blv browses Backlog issues in the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/kraitsura/backlog_viewer/pkg/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if hint := errorHint(err); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		os.Exit(1)
	}
}

// errorHint returns a follow-up line for errors the user can fix locally.
func errorHint(err error) string {
	if config.IsConfigError(err) {
		return "Set BACKLOG_SPACE_ID, BACKLOG_API_KEY, BACKLOG_PROJECT_ID and BACKLOG_STATUS_ID_LIST in the environment or in a .env file (see blv --help)."
	}
	return ""
}
