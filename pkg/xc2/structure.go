package xc2

import "fmt"

// Primitive type tags reported through NodeVisitor.OnNode
const (
	TypeBUFG   = "BUFG"
	TypeBUFGSR = "BUFGSR"
	TypeBUFGTS = "BUFGTS"
	TypeIOBUFE = "IOBUFE"
	TypeIBUF   = "IBUF"
)

// Global buffer counts, identical on every CoolRunner-II die
const (
	NumGCK = 3
	NumGTS = 4
)

type globalBuf struct {
	name string
	typ  string
	idx  uint32
}

func globalBuffers() []globalBuf {
	bufs := make([]globalBuf, 0, NumGCK+1+NumGTS)
	for i := 0; i < NumGCK; i++ {
		bufs = append(bufs, globalBuf{fmt.Sprintf("GCK%d", i), TypeBUFG, uint32(i)})
	}
	bufs = append(bufs, globalBuf{"GSR", TypeBUFGSR, 0})
	for i := 0; i < NumGTS; i++ {
		bufs = append(bufs, globalBuf{fmt.Sprintf("GTS%d", i), TypeBUFGTS, uint32(i)})
	}
	return bufs
}

// Traverse reports the structure of the device described by info to v.
//
// Order: global buffers, then one IOBUFE per macrocell (FB-major), then the
// dedicated input pad if the device has one. Every node is followed by the
// wires attached to it and their connections.
//
// IOBUFE nodes are reported with the device-wide macrocell number as their
// sub-index so that pad names stay unique across function blocks.
func Traverse(info DeviceInfo, v NodeVisitor) {
	for _, g := range globalBuffers() {
		n := v.OnNode(g.name, g.typ, 0, g.idx)
		in := v.OnWire(g.name + "_I")
		out := v.OnWire(g.name + "_O")
		v.OnConnection(n, in, "I", 0)
		v.OnConnection(n, out, "O", 0)
	}

	for fb := 0; fb < info.FBCount(); fb++ {
		for mc := 0; mc < MacrocellsPerFB; mc++ {
			prefix := fmt.Sprintf("FB%d_%d", fb+1, mc+1)
			global := uint32(fb*MacrocellsPerFB + mc)

			n := v.OnNode(prefix+"_IOB", TypeIOBUFE, uint32(fb), global)
			pad := v.OnWire(prefix + "_PAD_O")
			mcOut := v.OnWire(prefix + "_MC_O")
			oe := v.OnWire(prefix + "_MC_OE")
			v.OnConnection(n, pad, "O", 0)
			v.OnConnection(n, mcOut, "I", 0)
			v.OnConnection(n, oe, "E", 0)
		}
	}

	if info.HasInputPin {
		n := v.OnNode("INPAD_IBUF", TypeIBUF, 0, 0)
		out := v.OnWire("INPAD_O")
		v.OnConnection(n, out, "O", 0)
	}
}
