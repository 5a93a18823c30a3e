package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hsupple6/CircuitWiz-sub002/pkg/board"
	"github.com/hsupple6/CircuitWiz-sub002/pkg/modules"
	"github.com/hsupple6/CircuitWiz-sub002/pkg/wire"
)

var netsCmd = &cobra.Command{
	Use:   "nets <board file>",
	Short: "Show the wire network partitioning of a board file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := anomalyLogger()
		b, err := board.LoadFile(args[0], modules.Builtin(), logger)
		if err != nil {
			return err
		}
		networks := wire.NewBuilder(nil, logger).Build(b.Grid, b.Segments)
		fmt.Printf("%d wire networks from %d segments\n", len(networks), len(b.Segments))
		for _, n := range networks {
			fmt.Printf("  net %d: %d segments, %d endpoints, ceiling %.1fA / %.1fW\n",
				n.ID, len(n.Segments), len(n.Endpoints()), n.MaxCurrent, n.MaxPower)
			for _, seg := range n.Segments {
				fmt.Printf("    %s\n", seg)
			}
			fmt.Printf("    touches:")
			for _, p := range n.Endpoints() {
				fmt.Printf(" %s", p)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(netsCmd)
}
