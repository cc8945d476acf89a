package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hrdirectory",
		Short: "HR directory of employees, departments and availability",
		Long: `hrdirectory keeps employees, departments and day availability in memory
and serves them over HTTP as JSON. Records are seeded at startup from the
built-in sample or from the YAML file named by HR_SEED_FILE.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newSeedCmd())

	return rootCmd
}
