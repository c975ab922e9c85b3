package cmd

import (
	"fmt"

	"github.com/OpenTraceLab/xc2netlist/pkg/xc2"
	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List the supported CoolRunner-II devices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-8s %10s %4s %8s  %s\n", "DEVICE", "MACROCELLS", "FBS", "FUSES", "INPUT PIN")
		for _, d := range xc2.Devices() {
			input := "no"
			if d.HasInputPin {
				input = "yes"
			}
			fmt.Fprintf(out, "%-8s %10d %4d %8d  %s\n",
				d.Device, d.Macrocells, d.FBCount(), d.FuseCount, input)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}
