package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hsupple6/CircuitWiz-sub002/pkg/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate <board file>",
	Short: "Validate a board file and report diagnostics",
	Long:  "Runs one simulation pass and prints only the diagnostics.\nExits with status 1 when any error-severity diagnostic is present.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, diags, err := runPass(args[0])
		if err != nil {
			return err
		}
		printDiagnostics(diags)
		for _, d := range diags {
			if d.Severity == validate.SeverityError {
				fmt.Fprintln(os.Stderr, "validation failed")
				os.Exit(1)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
