package jed

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wrap adds the STX/ETX framing around a field list
func wrap(fields string) []byte {
	return []byte("header text\n\x02" + fields + "\x030000\n")
}

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewParser()
	require.NoError(t, err)
	return p
}

func TestParseFixtures(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		file       string
		device     string
		fuses      int
		programmed int
	}{
		{"xc2c32a_vq44.jed", "XC2C32A-6-VQ44", 12278, 62},
		{"xc2c64a_vq44.jed", "XC2C64A-VQ44-5", 25812, 4},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			f, err := p.ParseFile(filepath.Join("..", "..", "testdata", tt.file))
			require.NoError(t, err)

			assert.Equal(t, tt.device, f.DeviceName)
			assert.Equal(t, 44, f.PinCount)
			assert.Len(t, f.Fuses, tt.fuses)
			assert.True(t, f.HasChecksum)
			assert.Equal(t, f.Checksum, FuseChecksum(f.Fuses))
			assert.Contains(t, f.Notes, "generated for xc2netlist tests")

			zeros := 0
			for _, v := range f.Fuses {
				if !v {
					zeros++
				}
			}
			assert.Equal(t, tt.programmed, zeros)
		})
	}
}

func TestParseFuseList(t *testing.T) {
	p := newTestParser(t)

	f, err := p.Parse(wrap("QF16*\nF0*\nL0 10\n10*\nL12 1111*\nC00F5*\n"))
	require.NoError(t, err)

	want := []bool{
		true, false, true, false, false, false, false, false,
		false, false, false, false, true, true, true, true,
	}
	assert.Equal(t, want, f.Fuses)
	assert.Equal(t, uint16(0xF5), f.Checksum)
	assert.Empty(t, f.DeviceName)
	assert.Zero(t, f.PinCount)
}

func TestParseWithoutDefault(t *testing.T) {
	p := newTestParser(t)

	f, err := p.Parse(wrap("QF4*L0 0110*"))
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, true, false}, f.Fuses)
	assert.False(t, f.HasChecksum)
}

func TestParseIgnoresUnknownFields(t *testing.T) {
	p := newTestParser(t)

	f, err := p.Parse(wrap("QF2*\nJ0 0*\nG0*\nN DEVICE xc2c32a-4-qf32*\nF1*"))
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true}, f.Fuses)
	assert.Equal(t, "xc2c32a-4-qf32", f.DeviceName)
}

func TestParseErrors(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		name    string
		data    []byte
		wantErr string
	}{
		{"no STX", []byte("QF2*F0*\x03"), "missing STX"},
		{"no ETX", []byte("\x02QF2*F0*"), "missing ETX"},
		{"no QF", wrap("F0*"), "F field before QF"},
		{"list before QF", wrap("L0 1*QF2*"), "L field before QF"},
		{"empty body", wrap(""), "missing QF field"},
		{"duplicate QF", wrap("QF2*QF2*F0*"), "duplicate QF field"},
		{"bad fuse count", wrap("QFabc*"), "invalid fuse count"},
		{"bad default", wrap("QF2*F2*"), "invalid default fuse state"},
		{"unset fuse", wrap("QF3*L0 10*"), "fuse 2 not set"},
		{"list overflow", wrap("QF2*L1 11*"), "runs past fuse count"},
		{"bad list char", wrap("QF2*L0 1x*"), "invalid character"},
		{"bad checksum value", wrap("QF2*F0*CXYZ*"), "invalid checksum"},
		{"checksum mismatch", wrap("QF2*F0*C0001*"), "checksum mismatch"},
		{"unterminated field", wrap("QF2*F0"), "parse error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(tt.data)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, strings.HasPrefix(err.Error(), "jed: "), err.Error())
		})
	}
}

func TestParseFileMissing(t *testing.T) {
	p := newTestParser(t)

	_, err := p.ParseFile(filepath.Join(t.TempDir(), "nope.jed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestFuseChecksum(t *testing.T) {
	fill := func(n int, v bool) []bool {
		f := make([]bool, n)
		for i := range f {
			f[i] = v
		}
		return f
	}

	assert.Equal(t, uint16(0), FuseChecksum(nil))
	assert.Equal(t, uint16(1), FuseChecksum([]bool{true}))
	assert.Equal(t, uint16(0x80), FuseChecksum([]bool{false, false, false, false, false, false, false, true}))
	assert.Equal(t, uint16(0xFF), FuseChecksum(fill(8, true)))
	assert.Equal(t, uint16(0x100), FuseChecksum(fill(9, true)))

	// 16-bit wraparound: 300 bytes of 0xFF
	assert.Equal(t, uint16((300*0xFF)%0x10000), FuseChecksum(fill(300*8, true)))
}
