package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "circuitwiz",
	Short: "CircuitWiz - grid circuit simulation and validation",
	Long: `CircuitWiz simulates the electrical behavior of components placed on a
grid and wired together, and validates the result against a rule set.

Examples:
  circuitwiz simulate board.cwz          # Full propagation + validation
  circuitwiz simulate --json board.cwz   # Machine-readable result
  circuitwiz validate board.cwz          # Diagnostics only, exit 1 on errors
  circuitwiz nets board.cwz              # Show wire network partitioning
  circuitwiz modules                     # List the component palette`,
	Version: "0.3.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// anomalyLogger returns the logger fed to the builder and engine. Anomaly
// logs are debug output; they stay quiet unless --verbose is set.
func anomalyLogger() *log.Logger {
	if verbose {
		return log.New(os.Stderr, "", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}
