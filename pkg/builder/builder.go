package builder

import (
	"fmt"
	"log/slog"

	"github.com/OpenTraceLab/xc2netlist/pkg/netlist"
	"github.com/OpenTraceLab/xc2netlist/pkg/xc2"
)

// AttrNodeType is set on placeholder cells to the type tag that could not be
// translated.
const AttrNodeType = "XC2_NODE_TYPE"

// Builder turns the device structure walk into netlist cells, nets and ports.
// It implements xc2.NodeVisitor and owns the module it fills in; it is not
// safe for concurrent use.
type Builder struct {
	module *netlist.Module
	alloc  WireAllocator
	nodes  []*netlist.Cell
	logger *slog.Logger
}

var _ xc2.NodeVisitor = (*Builder)(nil)

// New creates a builder that adds everything it is told about to m
func New(m *netlist.Module, opts ...Option) *Builder {
	s := newSettings(opts)
	return &Builder{
		module: m,
		logger: s.logger,
	}
}

// Module returns the module being built
func (b *Builder) Module() *netlist.Module {
	return b.module
}

// NodeCount returns the number of nodes declared so far
func (b *Builder) NodeCount() int {
	return len(b.nodes)
}

// WireCount returns the number of net indices allocated so far, pads included
func (b *Builder) WireCount() int {
	return b.alloc.Count()
}

// OnNode creates the cell for a primitive. Pad-bearing primitives also get
// a net and a toplevel port. Unknown types become placeholder cells with no
// ports so that the rest of the walk still completes.
func (b *Builder) OnNode(name, typ string, fb, idx uint32) xc2.NodeHandle {
	var cell *netlist.Cell

	layout, ok := cellLayouts[typ]
	if ok {
		cell = netlist.NewCell(typ)
		for _, p := range layout.ports {
			cell.Connections[p.name] = []netlist.BitVal{}
			cell.PortDirections[p.name] = p.dir
		}
		if layout.pad != nil {
			w := b.addPad(layout.pad.name(idx), layout.pad.dir)
			cell.Connections[layout.pad.port] = []netlist.BitVal{netlist.N(uint32(w))}
		}
	} else {
		b.logger.Warn("primitive type not implemented",
			"type", typ, "node", name, "fb", fb, "idx", idx)
		cell = netlist.NewCell(netlist.PlaceholderType)
		cell.Attributes[AttrNodeType] = netlist.S(typ)
	}
	cell.Origin = netlist.Origin{Type: typ, FB: fb, Index: idx}

	b.module.Cells[name] = cell
	b.nodes = append(b.nodes, cell)
	return xc2.NodeHandle(len(b.nodes) - 1)
}

// addPad allocates the net for a physical pad and exposes it as a toplevel port
func (b *Builder) addPad(name string, dir netlist.PortDirection) xc2.WireIndex {
	w := b.alloc.Next()
	bit := netlist.N(uint32(w))
	b.module.Netnames[name] = netlist.NewNetname(bit)
	b.module.Ports[name] = &netlist.Port{
		Direction: dir,
		Bits:      []netlist.BitVal{bit},
	}
	return w
}

// OnWire allocates a net index and names it. Names are not deduplicated.
func (b *Builder) OnWire(name string) xc2.WireIndex {
	w := b.alloc.Next()
	b.module.Netnames[name] = netlist.NewNetname(netlist.N(uint32(w)))
	return w
}

// OnConnection binds one bit of a cell port to a wire. The constant indices
// xc2.WireZero and xc2.WireOne bind the bit to a logic constant. Gaps left
// below bit are filled with undefined bits.
//
// A handle or wire that was never declared panics with a *ContractError.
func (b *Builder) OnConnection(node xc2.NodeHandle, wire xc2.WireIndex, port string, bit uint32) {
	if node < 0 || int(node) >= len(b.nodes) {
		panic(&ContractError{
			Op:     "connection",
			Detail: fmt.Sprintf("node %d, %d declared", node, len(b.nodes)),
			Err:    ErrUnknownNode,
		})
	}

	var v netlist.BitVal
	switch {
	case wire == xc2.WireZero:
		v = netlist.Zero
	case wire == xc2.WireOne:
		v = netlist.One
	case b.alloc.Allocated(wire):
		v = netlist.N(uint32(wire))
	default:
		panic(&ContractError{
			Op:     "connection",
			Detail: fmt.Sprintf("wire %d on port %s", wire, port),
			Err:    ErrUnknownWire,
		})
	}

	b.nodes[node].SetBit(port, int(bit), v)
}
