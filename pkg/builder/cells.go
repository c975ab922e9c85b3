package builder

import (
	"fmt"

	"github.com/OpenTraceLab/xc2netlist/pkg/netlist"
	"github.com/OpenTraceLab/xc2netlist/pkg/xc2"
)

type portDef struct {
	name string
	dir  netlist.PortDirection
}

// padDef describes the toplevel port created for a pad-bearing primitive
type padDef struct {
	name func(idx uint32) string
	dir  netlist.PortDirection
	port string // cell port bound to the pad net
}

type cellLayout struct {
	ports []portDef
	pad   *padDef
}

var globalBufLayout = cellLayout{
	ports: []portDef{{"I", netlist.Input}, {"O", netlist.Output}},
}

// cellLayouts maps every primitive type the builder can translate to its
// port set. Anything else becomes a placeholder cell.
var cellLayouts = map[string]cellLayout{
	xc2.TypeBUFG:   globalBufLayout,
	xc2.TypeBUFGSR: globalBufLayout,
	xc2.TypeBUFGTS: globalBufLayout,

	xc2.TypeIOBUFE: {
		ports: []portDef{
			{"I", netlist.Input},
			{"E", netlist.Input},
			{"O", netlist.Output},
			{"IO", netlist.InOut},
		},
		pad: &padDef{
			name: func(idx uint32) string { return fmt.Sprintf("PAD_%d", idx) },
			dir:  netlist.InOut,
			port: "IO",
		},
	},

	// The pad name is fixed: these devices have a single input-only pin.
	// A second IBUF replaces the first INPAD port and net.
	xc2.TypeIBUF: {
		ports: []portDef{
			{"I", netlist.Input},
			{"O", netlist.Output},
		},
		pad: &padDef{
			name: func(uint32) string { return "INPAD" },
			dir:  netlist.Input,
			port: "I",
		},
	},
}

// Supported reports whether typ is translated to a real cell
func Supported(typ string) bool {
	_, ok := cellLayouts[typ]
	return ok
}
