package netlist

import (
	"fmt"
	"io"
)

// WriteDOT writes a graphviz digraph of the module. Cells are boxes, nets
// are plain labels; edges follow the cell port directions where known.
func (m *Module) WriteDOT(out io.Writer, name string) error {
	ew := &errWriter{w: out}

	ew.printf("digraph %q\n{\n", name)
	ew.printf("  overlap=scale;\n")
	ew.printf("  node\t[fontname=\"Helvetica\"];\n")

	nets := sortedKeys(m.Netnames)
	ew.printf("  {\n    node [shape=plaintext];\n")
	for _, n := range nets {
		for _, b := range m.Netnames[n].Bits {
			if idx, ok := b.Net(); ok {
				ew.printf("    n%d\t[label=%q];\n", idx, n)
			}
		}
	}
	ew.printf("  }\n")

	cells := sortedKeys(m.Cells)
	ew.printf("  {\n    node [shape=box];\n")
	for i, c := range cells {
		ew.printf("    c%d\t[label=\"%s\\n%s\"];\n", i, c, m.Cells[c].Type)
	}
	ew.printf("  }\n")

	ports := sortedKeys(m.Ports)
	ew.printf("  {\n    node [shape=diamond];\n")
	for i, p := range ports {
		ew.printf("    p%d\t[label=%q];\n", i, p)
	}
	ew.printf("  }\n")

	for i, p := range ports {
		port := m.Ports[p]
		for _, b := range port.Bits {
			idx, ok := b.Net()
			if !ok {
				continue
			}
			switch port.Direction {
			case Input:
				ew.printf("  p%d -> n%d;\n", i, idx)
			case Output:
				ew.printf("  n%d -> p%d;\n", idx, i)
			default:
				ew.printf("  p%d -> n%d\t[dir=both];\n", i, idx)
			}
		}
	}

	for i, c := range cells {
		cell := m.Cells[c]
		for _, port := range sortedKeys(cell.Connections) {
			for _, b := range cell.Connections[port] {
				idx, ok := b.Net()
				if !ok {
					continue
				}
				switch cell.PortDirections[port] {
				case Output:
					ew.printf("  c%d -> n%d\t[label=%q];\n", i, idx, port)
				case InOut:
					ew.printf("  c%d -> n%d\t[label=%q,dir=both];\n", i, idx, port)
				default:
					ew.printf("  n%d -> c%d\t[label=%q];\n", idx, i, port)
				}
			}
		}
	}

	ew.printf("}\n")
	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
