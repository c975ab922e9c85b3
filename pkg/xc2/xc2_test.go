package xc2

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/xc2netlist/pkg/jed"
)

func TestParsePartName(t *testing.T) {
	tests := []struct {
		name    string
		want    PartInfo
		wantErr bool
	}{
		{name: "XC2C32A-6-VQ44", want: PartInfo{XC2C32A, 6, "VQ44"}},
		{name: "xc2c64a-vq44-5", want: PartInfo{XC2C64A, 5, "VQ44"}},
		{name: " XC2C256-7-TQ144 ", want: PartInfo{XC2C256, 7, "TQ144"}},
		{name: "XC2C512-10-FG324", want: PartInfo{XC2C512, 10, "FG324"}},
		{name: "XC2C32A-VQ44", wantErr: true},
		{name: "XC9572-6-VQ44", wantErr: true},
		{name: "XC2C32A-3-VQ44", wantErr: true},
		{name: "XC2C32A-6-DIP8", wantErr: true},
		{name: "XC2C32A-6-VQ44-X", wantErr: true},
		{name: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePartName(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPartInfoString(t *testing.T) {
	p := PartInfo{Device: XC2C32A, Speed: 6, Package: "VQ44"}
	assert.Equal(t, "XC2C32A-6-VQ44", p.String())
	assert.Equal(t, "-10", SpeedGrade(10).String())
}

func TestDevices(t *testing.T) {
	devs := Devices()
	require.Len(t, devs, 8)

	assert.Equal(t, XC2C32, devs[0].Device)
	assert.Equal(t, XC2C32A, devs[1].Device)
	assert.Equal(t, XC2C512, devs[7].Device)

	for i := 1; i < len(devs); i++ {
		assert.LessOrEqual(t, devs[i-1].Macrocells, devs[i].Macrocells)
	}

	for _, d := range devs {
		assert.Zero(t, d.Macrocells%MacrocellsPerFB, d.Device)
		assert.Equal(t, d.Macrocells == 32, d.HasInputPin, d.Device)
		assert.NotEmpty(t, d.Description)
	}

	info, ok := LookupDevice(XC2C128)
	require.True(t, ok)
	assert.Equal(t, 8, info.FBCount())

	_, ok = LookupDevice("XC2C1")
	assert.False(t, ok)
}

type event struct {
	kind string // node, wire, conn
	name string
	typ  string
	fb   uint32
	idx  uint32
	node NodeHandle
	wire WireIndex
	port string
}

// recorder is a NodeVisitor that logs every call and hands out handles the
// same way a netlist builder would.
type recorder struct {
	events []event
	nodes  int
	wires  WireIndex
}

func (r *recorder) OnNode(name, typ string, fb, idx uint32) NodeHandle {
	r.events = append(r.events, event{kind: "node", name: name, typ: typ, fb: fb, idx: idx})
	r.nodes++
	return NodeHandle(r.nodes - 1)
}

func (r *recorder) OnWire(name string) WireIndex {
	if r.wires < FirstWire {
		r.wires = FirstWire
	}
	w := r.wires
	r.wires++
	r.events = append(r.events, event{kind: "wire", name: name, wire: w})
	return w
}

func (r *recorder) OnConnection(node NodeHandle, wire WireIndex, port string, bit uint32) {
	r.events = append(r.events, event{kind: "conn", node: node, wire: wire, port: port, idx: bit})
}

func (r *recorder) byKind(kind string) []event {
	var out []event
	for _, e := range r.events {
		if e.kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func TestTraverseCounts(t *testing.T) {
	for _, d := range Devices() {
		t.Run(string(d.Device), func(t *testing.T) {
			r := &recorder{}
			Traverse(d, r)

			globals := NumGCK + 1 + NumGTS
			nodes := globals + d.Macrocells
			wires := 2*globals + 3*d.Macrocells
			conns := 2*globals + 3*d.Macrocells
			if d.HasInputPin {
				nodes++
				wires++
				conns++
			}

			assert.Len(t, r.byKind("node"), nodes)
			assert.Len(t, r.byKind("wire"), wires)
			assert.Len(t, r.byKind("conn"), conns)
		})
	}
}

func TestTraverseOrder(t *testing.T) {
	info, _ := LookupDevice(XC2C32A)
	r := &recorder{}
	Traverse(info, r)

	nodes := r.byKind("node")
	assert.Equal(t, event{kind: "node", name: "GCK0", typ: TypeBUFG}, nodes[0])
	assert.Equal(t, event{kind: "node", name: "GCK2", typ: TypeBUFG, idx: 2}, nodes[2])
	assert.Equal(t, event{kind: "node", name: "GSR", typ: TypeBUFGSR}, nodes[3])
	assert.Equal(t, event{kind: "node", name: "GTS3", typ: TypeBUFGTS, idx: 3}, nodes[7])
	assert.Equal(t, event{kind: "node", name: "FB1_1_IOB", typ: TypeIOBUFE}, nodes[8])
	assert.Equal(t, event{kind: "node", name: "FB2_1_IOB", typ: TypeIOBUFE, fb: 1, idx: 16}, nodes[8+16])
	assert.Equal(t, event{kind: "node", name: "INPAD_IBUF", typ: TypeIBUF}, nodes[len(nodes)-1])

	// First global buffer: node, two wires, two connections
	assert.Equal(t, []event{
		{kind: "node", name: "GCK0", typ: TypeBUFG},
		{kind: "wire", name: "GCK0_I", wire: 2},
		{kind: "wire", name: "GCK0_O", wire: 3},
		{kind: "conn", node: 0, wire: 2, port: "I"},
		{kind: "conn", node: 0, wire: 3, port: "O"},
	}, r.events[:5])
}

func TestTraverseUniqueNames(t *testing.T) {
	info, _ := LookupDevice(XC2C512)
	r := &recorder{}
	Traverse(info, r)

	seen := make(map[string]bool)
	pads := make(map[uint32]bool)
	for _, e := range r.events {
		if e.kind == "conn" {
			continue
		}
		assert.False(t, seen[e.name], "duplicate name %s", e.name)
		seen[e.name] = true

		if e.typ == TypeIOBUFE {
			assert.False(t, pads[e.idx], "duplicate pad index %d", e.idx)
			pads[e.idx] = true
		}
	}
	assert.Len(t, pads, 512)
}

func TestTraverseConnectionsReferToDeclaredItems(t *testing.T) {
	info, _ := LookupDevice(XC2C64A)
	r := &recorder{}
	Traverse(info, r)

	nodes, wires := 0, map[WireIndex]bool{}
	for _, e := range r.events {
		switch e.kind {
		case "node":
			nodes++
		case "wire":
			wires[e.wire] = true
		case "conn":
			assert.Less(t, int(e.node), nodes, "connection to undeclared node")
			assert.True(t, wires[e.wire], "connection to undeclared wire %d", e.wire)
		}
	}
}

func fuses(n int) []bool {
	f := make([]bool, n)
	for i := range f {
		f[i] = true
	}
	return f
}

func TestFromJED(t *testing.T) {
	f := &jed.File{DeviceName: "XC2C32A-6-VQ44", Fuses: fuses(12278)}
	f.Fuses[0] = false
	f.Fuses[100] = false

	bs, err := FromJED(f)
	require.NoError(t, err)
	assert.Equal(t, PartInfo{XC2C32A, 6, "VQ44"}, bs.Part())
	assert.Equal(t, 32, bs.Info().Macrocells)
	assert.Equal(t, 12278, bs.FuseCount())
	assert.Equal(t, 2, bs.ProgrammedFuses())

	r := &recorder{}
	bs.Traverse(r)
	assert.Len(t, r.byKind("node"), 41)
}

func TestFromJEDErrors(t *testing.T) {
	tests := []struct {
		file    *jed.File
		wantErr string
	}{
		{&jed.File{Fuses: fuses(12278)}, "missing device name"},
		{&jed.File{DeviceName: "XC2C99-6-VQ44", Fuses: fuses(12278)}, "unknown device"},
		{&jed.File{DeviceName: "XC2C32A-6-VQ44", Fuses: fuses(12000)}, "expects 12278 fuses, jed has 12000"},
	}

	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			_, err := FromJED(tt.file)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
