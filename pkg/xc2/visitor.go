package xc2

// WireIndex identifies a net. WireZero and WireOne are the logical constants
// and are never handed out for a real net.
type WireIndex uint32

const (
	WireZero WireIndex = 0
	WireOne  WireIndex = 1

	// FirstWire is the first index available to real nets
	FirstWire WireIndex = 2
)

// NodeHandle refers back to a node declared through NodeVisitor.OnNode
type NodeHandle int

// NodeVisitor receives the device structure as a single-pass sequence of
// events. Handles returned by OnNode and OnWire are presented back in later
// OnConnection calls.
type NodeVisitor interface {
	// OnNode declares a primitive. fb and idx are the function block and the
	// sub-index of the node within the device.
	OnNode(name, typ string, fb, idx uint32) NodeHandle

	// OnWire declares a named net
	OnWire(name string) WireIndex

	// OnConnection binds bit of port on node to wire
	OnConnection(node NodeHandle, wire WireIndex, port string, bit uint32)
}
