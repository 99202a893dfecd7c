package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "loomtap",
		Short: "Inspect a live Loom hook tree",
		Long: `loomtap connects to a running application's Loom introspection
server and prints its hook tree: every mounted owner and the ordered
hook slots behind it.

  loomtap snapshot --addr localhost:6061
  loomtap follow   --addr localhost:6061`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		snapshotCmd(),
		followCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
