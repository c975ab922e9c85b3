package netlist

// Netlist is the root of a yosys-style JSON netlist
type Netlist struct {
	Creator string             `json:"creator"`
	Modules map[string]*Module `json:"modules"`
}

// New creates an empty netlist with the given creator label
func New(creator string) *Netlist {
	return &Netlist{
		Creator: creator,
		Modules: make(map[string]*Module),
	}
}

// Module is one netlist module: its toplevel ports, cells and named nets
type Module struct {
	Attributes map[string]AttributeVal `json:"attributes"`
	Ports      map[string]*Port        `json:"ports"`
	Cells      map[string]*Cell        `json:"cells"`
	Netnames   map[string]*Netname     `json:"netnames"`
}

// NewModule creates an empty module
func NewModule() *Module {
	return &Module{
		Attributes: make(map[string]AttributeVal),
		Ports:      make(map[string]*Port),
		Cells:      make(map[string]*Cell),
		Netnames:   make(map[string]*Netname),
	}
}

// PortDirection is the direction of a module or cell port
type PortDirection string

const (
	Input  PortDirection = "input"
	Output PortDirection = "output"
	InOut  PortDirection = "inout"
)

// Port is a toplevel module port
type Port struct {
	Direction PortDirection `json:"direction"`
	Bits      []BitVal      `json:"bits"`
}

// Netname binds a name to one or more net bits
type Netname struct {
	HideName   int                     `json:"hide_name"`
	Bits       []BitVal                `json:"bits"`
	Attributes map[string]AttributeVal `json:"attributes"`
}

// NewNetname creates a visible net name for the given bits
func NewNetname(bits ...BitVal) *Netname {
	if bits == nil {
		bits = []BitVal{}
	}
	return &Netname{
		Bits:       bits,
		Attributes: make(map[string]AttributeVal),
	}
}

// Origin records where in the device a cell came from. It is not serialized.
type Origin struct {
	Type  string // type tag as reported by the structure walk
	FB    uint32
	Index uint32
}

// Cell is one instantiated primitive
type Cell struct {
	HideName       int                      `json:"hide_name"`
	Type           string                   `json:"type"`
	Parameters     map[string]AttributeVal  `json:"parameters"`
	Attributes     map[string]AttributeVal  `json:"attributes"`
	PortDirections map[string]PortDirection `json:"port_directions"`
	Connections    map[string][]BitVal      `json:"connections"`

	Origin Origin `json:"-"`
}

// NewCell creates a cell of the given type with no ports
func NewCell(typ string) *Cell {
	return &Cell{
		Type:           typ,
		Parameters:     make(map[string]AttributeVal),
		Attributes:     make(map[string]AttributeVal),
		PortDirections: make(map[string]PortDirection),
		Connections:    make(map[string][]BitVal),
	}
}

// SetBit assigns b to position bit of port, growing the port with undefined
// bits when needed. Other ports are left untouched.
func (c *Cell) SetBit(port string, bit int, b BitVal) {
	bits := c.Connections[port]
	if bits == nil {
		bits = []BitVal{}
	}
	for len(bits) <= bit {
		bits = append(bits, Undef)
	}
	bits[bit] = b
	c.Connections[port] = bits
}
