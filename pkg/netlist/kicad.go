package netlist

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// PinRef names one bit of one cell port
type PinRef struct {
	Cell string
	Port string
	Bit  int
	Wide bool // port has more than one bit
}

// Name returns "PORT" for single-bit ports and "PORT[bit]" otherwise
func (p PinRef) Name() string {
	if p.Wide {
		return fmt.Sprintf("%s[%d]", p.Port, p.Bit)
	}
	return p.Port
}

// NetPins returns, for every net number, the cell pins bound to it. Pins are
// sorted by cell, port and bit.
func (m *Module) NetPins() map[uint32][]PinRef {
	refs := make(map[uint32][]PinRef)
	for cellName, cell := range m.Cells {
		for port, bits := range cell.Connections {
			for i, b := range bits {
				n, ok := b.Net()
				if !ok {
					continue
				}
				refs[n] = append(refs[n], PinRef{
					Cell: cellName,
					Port: port,
					Bit:  i,
					Wide: len(bits) > 1,
				})
			}
		}
	}

	for _, pins := range refs {
		sort.Slice(pins, func(i, j int) bool {
			if pins[i].Cell != pins[j].Cell {
				return pins[i].Cell < pins[j].Cell
			}
			if pins[i].Port != pins[j].Port {
				return pins[i].Port < pins[j].Port
			}
			return pins[i].Bit < pins[j].Bit
		})
	}
	return refs
}

// ExportKiCad exports the module to KiCad netlist format.
// Every cell becomes a component and every named net bit becomes a net
// listing the cell pins attached to it.
func (m *Module) ExportKiCad(source string) (string, error) {
	if m == nil {
		return "", fmt.Errorf("netlist: nil module")
	}

	var sb strings.Builder
	sb.WriteString("(export (version D)\n")
	sb.WriteString("  (design\n")
	fmt.Fprintf(&sb, "    (source %s)\n", atom(source))
	sb.WriteString("    (tool xc2netlist)\n")
	sb.WriteString("  )\n")

	sb.WriteString("  (components\n")
	for _, name := range sortedKeys(m.Cells) {
		cell := m.Cells[name]
		fmt.Fprintf(&sb, "    (comp (ref %s) (value %s))\n",
			atom(name), atom(cell.Type))
	}
	sb.WriteString("  )\n")

	pins := m.NetPins()
	sb.WriteString("  (nets\n")
	code := 1
	for _, name := range sortedKeys(m.Netnames) {
		nn := m.Netnames[name]
		for i, b := range nn.Bits {
			n, ok := b.Net()
			if !ok {
				continue
			}
			netName := name
			if len(nn.Bits) > 1 {
				netName = fmt.Sprintf("%s[%d]", name, i)
			}
			fmt.Fprintf(&sb, "    (net (code %d) (name %s)", code, atom(netName))
			for _, p := range pins[n] {
				fmt.Fprintf(&sb, "\n      (node (ref %s) (pin %s))",
					atom(p.Cell), atom(p.Name()))
			}
			sb.WriteString(")\n")
			code++
		}
	}
	sb.WriteString("  )\n")
	sb.WriteString(")\n")

	return sb.String(), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// atom renders s as a bare s-expression atom, quoting only when s contains
// characters that would otherwise split or terminate it.
func atom(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\r\n()\"\\;") {
		return strconv.Quote(s)
	}
	return s
}
