package netlist

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

type bitKind uint8

const (
	bitNet bitKind = iota
	bitZero
	bitOne
	bitUndef
	bitHighZ
)

// BitVal is a single bit of a port or net: either a net number or a constant
type BitVal struct {
	kind bitKind
	n    uint32
}

// Constant bit values
var (
	Zero  = BitVal{kind: bitZero}
	One   = BitVal{kind: bitOne}
	Undef = BitVal{kind: bitUndef}
	HighZ = BitVal{kind: bitHighZ}
)

// N returns a bit bound to net n
func N(n uint32) BitVal {
	return BitVal{kind: bitNet, n: n}
}

// Net returns the net number and true if b is bound to a net
func (b BitVal) Net() (uint32, bool) {
	return b.n, b.kind == bitNet
}

func (b BitVal) String() string {
	switch b.kind {
	case bitZero:
		return "0"
	case bitOne:
		return "1"
	case bitUndef:
		return "x"
	case bitHighZ:
		return "z"
	}
	return strconv.FormatUint(uint64(b.n), 10)
}

// MarshalJSON writes nets as numbers and constants as strings
func (b BitVal) MarshalJSON() ([]byte, error) {
	if b.kind == bitNet {
		return []byte(strconv.FormatUint(uint64(b.n), 10)), nil
	}
	return json.Marshal(b.String())
}

// UnmarshalJSON accepts the forms produced by MarshalJSON
func (b *BitVal) UnmarshalJSON(data []byte) error {
	var n uint32
	if err := json.Unmarshal(data, &n); err == nil {
		*b = N(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("netlist: invalid bit %s", data)
	}
	switch s {
	case "0":
		*b = Zero
	case "1":
		*b = One
	case "x":
		*b = Undef
	case "z":
		*b = HighZ
	default:
		return fmt.Errorf("netlist: invalid bit constant %q", s)
	}
	return nil
}

// AttributeVal is an attribute or parameter value. Numbers are written the
// way yosys writes them: as 32-character binary strings.
type AttributeVal struct {
	s     string
	n     int64
	isNum bool
}

// S returns a string attribute value
func S(s string) AttributeVal {
	return AttributeVal{s: s}
}

// Num returns a numeric attribute value
func Num(n int64) AttributeVal {
	return AttributeVal{n: n, isNum: true}
}

func (a AttributeVal) String() string {
	if a.isNum {
		return fmt.Sprintf("%032b", uint32(a.n))
	}
	return a.s
}

// MarshalJSON writes the value as a JSON string
func (a AttributeVal) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON reads a string value; binary numbers are kept as strings
func (a *AttributeVal) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("netlist: invalid attribute value %s", data)
	}
	*a = S(s)
	return nil
}

// MarshalIndent renders the netlist as indented JSON
func (n *Netlist) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(n, "", "  ")
}

// WriteJSON writes the netlist to w as indented JSON followed by a newline
func WriteJSON(w io.Writer, n *Netlist) error {
	data, err := n.MarshalIndent()
	if err != nil {
		return fmt.Errorf("netlist: marshal: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("netlist: write: %w", err)
	}
	return nil
}
