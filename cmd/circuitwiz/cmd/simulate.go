package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/hsupple6/CircuitWiz-sub002/pkg/board"
	"github.com/hsupple6/CircuitWiz-sub002/pkg/engine"
	"github.com/hsupple6/CircuitWiz-sub002/pkg/modules"
	"github.com/hsupple6/CircuitWiz-sub002/pkg/validate"
	"github.com/hsupple6/CircuitWiz-sub002/pkg/wire"
)

var simulateJSON bool

var simulateCmd = &cobra.Command{
	Use:   "simulate <board file>",
	Short: "Run one propagation and validation pass over a board file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, res, diags, err := runPass(args[0])
		if err != nil {
			return err
		}

		if simulateJSON {
			data, err := board.ExportJSON(res, diags)
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("Board %dx%d, %d components, %d wire networks\n",
			b.Grid.Width(), b.Grid.Height(), len(b.Grid.Components()), len(res.Networks))
		fmt.Println("\nCell states:")
		keys := make([]string, 0, len(res.States))
		for k := range res.States {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			st := res.States[k]
			fmt.Printf("  %-16s %6.2fV %8.4fA %8.4fW  %s\n",
				k, st.OutputVoltage, st.OutputCurrent, st.Power, st.Status)
		}

		printDiagnostics(diags)
		return nil
	},
}

func init() {
	simulateCmd.Flags().BoolVar(&simulateJSON, "json", false, "emit result as JSON")
	rootCmd.AddCommand(simulateCmd)
}

// runPass loads a board file and performs one full propagation plus
// validation pass over it.
func runPass(path string) (*board.Board, *engine.Result, []validate.Diagnostic, error) {
	logger := anomalyLogger()
	b, err := board.LoadFile(path, modules.Builtin(), logger)
	if err != nil {
		return nil, nil, nil, err
	}
	networks := wire.NewBuilder(nil, logger).Build(b.Grid, b.Segments)
	res := engine.New(logger).Run(b.Grid, networks, b.GPIO)
	diags := validate.New().Check(b.Grid, res)
	return b, res, diags, nil
}

func printDiagnostics(diags []validate.Diagnostic) {
	if len(diags) == 0 {
		fmt.Println("\nNo diagnostics.")
		return
	}
	fmt.Println("\nDiagnostics:")
	for _, d := range diags {
		fmt.Printf("  [%-7s] %s: %s\n", d.Severity, d.ID, d.Message)
	}
}
