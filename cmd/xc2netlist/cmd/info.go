package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/OpenTraceLab/xc2netlist/internal/ctxlog"
	"github.com/OpenTraceLab/xc2netlist/pkg/builder"
	"github.com/OpenTraceLab/xc2netlist/pkg/xc2"
	"github.com/spf13/cobra"
)

var (
	outputJSON bool
)

// BitstreamInfo is the structured summary printed by "info --json"
type BitstreamInfo struct {
	Part            string         `json:"part"`
	Device          string         `json:"device"`
	Speed           string         `json:"speed"`
	Package         string         `json:"package"`
	Description     string         `json:"description"`
	Macrocells      int            `json:"macrocells"`
	FunctionBlocks  int            `json:"function_blocks"`
	Fuses           int            `json:"fuses"`
	ProgrammedFuses int            `json:"programmed_fuses"`
	Cells           int            `json:"cells"`
	CellsByType     map[string]int `json:"cells_by_type"`
	Nets            int            `json:"nets"`
	Ports           int            `json:"ports"`
	Placeholders    int            `json:"placeholders"`
}

var infoCmd = &cobra.Command{
	Use:   "info <file.jed>",
	Short: "Show the part and netlist summary of a JED bitstream",
	Long: `Decode a JED bitstream and print its part designation, fuse summary
and the size of the netlist it produces.

Examples:
  xc2netlist info design.jed
  xc2netlist info --json design.jed`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
}

func collectInfo(bs *xc2.Bitstream, opts ...builder.Option) BitstreamInfo {
	part := bs.Part()
	dev := bs.Info()
	st := builder.Assemble(bs, opts...).Modules[builder.TopModule].Stats()

	return BitstreamInfo{
		Part:            part.String(),
		Device:          string(part.Device),
		Speed:           part.Speed.String(),
		Package:         string(part.Package),
		Description:     dev.Description,
		Macrocells:      dev.Macrocells,
		FunctionBlocks:  dev.FBCount(),
		Fuses:           bs.FuseCount(),
		ProgrammedFuses: bs.ProgrammedFuses(),
		Cells:           st.Cells,
		CellsByType:     st.CellsByType,
		Nets:            st.Nets,
		Ports:           st.Ports,
		Placeholders:    st.Placeholders,
	}
}

func runInfo(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	logger := ctxlog.FromContext(cmd.Context())

	bs, err := loadBitstream(args[0])
	if err != nil {
		return err
	}

	info := collectInfo(bs, builder.WithLogger(logger))
	out := cmd.OutOrStdout()

	if outputJSON {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal info: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintf(out, "Part:            %s\n", info.Part)
	fmt.Fprintf(out, "Description:     %s\n", info.Description)
	fmt.Fprintf(out, "Macrocells:      %d (%d function blocks)\n", info.Macrocells, info.FunctionBlocks)
	fmt.Fprintf(out, "Fuses:           %d (%d programmed)\n", info.Fuses, info.ProgrammedFuses)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Netlist:\n")
	fmt.Fprintf(out, "  Cells:         %d\n", info.Cells)

	types := make([]string, 0, len(info.CellsByType))
	for t := range info.CellsByType {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(out, "    %-13s %d\n", t, info.CellsByType[t])
	}

	fmt.Fprintf(out, "  Nets:          %d\n", info.Nets)
	fmt.Fprintf(out, "  Ports:         %d\n", info.Ports)
	if info.Placeholders > 0 {
		fmt.Fprintf(out, "  Unimplemented: %d\n", info.Placeholders)
	}
	return nil
}
