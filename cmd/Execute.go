package cmd

import (
	"fmt"
	"os"
)

// Execute runs the root command. A normal completion exits 0 even when some
// hosts failed (per-host failures are recorded, not fatal); configuration
// errors and interrupts exit 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		exitFunc(1)
		return
	}
}
