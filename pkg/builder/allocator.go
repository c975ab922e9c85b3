package builder

import "github.com/OpenTraceLab/xc2netlist/pkg/xc2"

// WireAllocator hands out net indices. Indices 0 and 1 are the constants and
// are skipped, just like yosys does; the zero value is ready to use.
type WireAllocator struct {
	next xc2.WireIndex
}

// Next returns a fresh index. Successive calls return consecutive values
// starting at xc2.FirstWire.
func (a *WireAllocator) Next() xc2.WireIndex {
	if a.next < xc2.FirstWire {
		a.next = xc2.FirstWire
	}
	w := a.next
	a.next++
	return w
}

// Allocated reports whether w has been returned by Next
func (a *WireAllocator) Allocated(w xc2.WireIndex) bool {
	return w >= xc2.FirstWire && w < a.next
}

// Count returns the number of indices handed out so far
func (a *WireAllocator) Count() int {
	if a.next < xc2.FirstWire {
		return 0
	}
	return int(a.next - xc2.FirstWire)
}
