package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hsupple6/CircuitWiz-sub002/pkg/modules"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List the built-in component palette",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := modules.Builtin()
		for _, name := range reg.TypeNames() {
			def, err := reg.Lookup(name)
			if err != nil {
				return err
			}
			fmt.Printf("%-16s %-16s %d cells", def.TypeName, def.Kind, def.CellCount())
			if def.Voltage > 0 {
				fmt.Printf(", %.1fV", def.Voltage)
			}
			if def.ForwardVoltage > 0 {
				fmt.Printf(", Vf %.1fV", def.ForwardVoltage)
			}
			if def.Resistance > 0 {
				fmt.Printf(", %.0f ohm", def.Resistance)
			}
			if def.MaxCurrent > 0 {
				fmt.Printf(", max %.2fA", def.MaxCurrent)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modulesCmd)
}
