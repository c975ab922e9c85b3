package builder

import (
	"log/slog"

	"github.com/OpenTraceLab/xc2netlist/pkg/netlist"
	"github.com/OpenTraceLab/xc2netlist/pkg/xc2"
)

// TopModule is the name of the single module in every netlist
const TopModule = "top"

// DefaultCreator is the creator label written when none is configured
const DefaultCreator = "xc2netlist - DEVELOPMENT VERSION"

// Module attributes carrying the part designation
const (
	AttrPartName  = "PART_NAME"
	AttrPartSpeed = "PART_SPEED"
	AttrPartPkg   = "PART_PKG"
)

// Structure is a decoded device that can describe itself to a visitor
type Structure interface {
	Part() xc2.PartInfo
	Traverse(v xc2.NodeVisitor)
}

// Option configures a Builder or Assemble
type Option func(*settings)

type settings struct {
	logger  *slog.Logger
	creator string
}

func newSettings(opts []Option) *settings {
	s := &settings{
		logger:  slog.Default(),
		creator: DefaultCreator,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// WithLogger sets the logger used for diagnostics
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCreator sets the netlist creator label
func WithCreator(creator string) Option {
	return func(s *settings) {
		if creator != "" {
			s.creator = creator
		}
	}
}

// NewNetlist creates a netlist holding an empty "top" module tagged with the
// part designation.
func NewNetlist(part xc2.PartInfo, creator string) *netlist.Netlist {
	n := netlist.New(creator)
	m := netlist.NewModule()
	m.Attributes[AttrPartName] = netlist.S(string(part.Device))
	m.Attributes[AttrPartSpeed] = netlist.S(part.Speed.String())
	m.Attributes[AttrPartPkg] = netlist.S(string(part.Package))
	n.Modules[TopModule] = m
	return n
}

// Assemble walks src once and returns the complete netlist. The result is
// not touched again after Assemble returns.
func Assemble(src Structure, opts ...Option) *netlist.Netlist {
	s := newSettings(opts)

	n := NewNetlist(src.Part(), s.creator)
	b := New(n.Modules[TopModule], opts...)
	src.Traverse(b)

	st := b.module.Stats()
	s.logger.Debug("netlist assembled",
		"part", src.Part().String(),
		"cells", st.Cells,
		"nets", st.Nets,
		"ports", st.Ports,
		"placeholders", st.Placeholders)
	return n
}
