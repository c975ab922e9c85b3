package netlist

// Stats summarises the contents of a module
type Stats struct {
	Cells        int
	CellsByType  map[string]int
	Nets         int
	Ports        int
	Placeholders int // cells whose type is PlaceholderType
}

// PlaceholderType is the cell type used for primitives that could not be
// translated. Such cells carry no connections.
const PlaceholderType = "$unimplemented"

// Stats counts the cells, nets and ports of the module
func (m *Module) Stats() Stats {
	s := Stats{
		Cells:       len(m.Cells),
		CellsByType: make(map[string]int),
		Nets:        len(m.Netnames),
		Ports:       len(m.Ports),
	}
	for _, c := range m.Cells {
		s.CellsByType[c.Type]++
		if c.Type == PlaceholderType {
			s.Placeholders++
		}
	}
	return s
}
