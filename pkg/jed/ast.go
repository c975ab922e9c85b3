package jed

// body is the grammar root: a sequence of '*'-terminated fields
type body struct {
	Fields []*field `parser:"( @@ Star )*"`
}

// field is one JEDEC field. Exactly one member is set.
type field struct {
	Note      *string `parser:"  @Note"`
	FuseCount *string `parser:"| @FuseCount"`
	PinCount  *string `parser:"| @PinCount"`
	Default   *string `parser:"| @Default"`
	List      *string `parser:"| @List"`
	Checksum  *string `parser:"| @Checksum"`
	Other     *string `parser:"| @Other"`
}

// File is a decoded JEDEC fuse map.
type File struct {
	// Fuses holds one entry per fuse, in fuse-address order
	Fuses []bool

	// DeviceName comes from an "N DEVICE <name>" note; empty if absent
	DeviceName string

	// Notes keeps every N field verbatim (without the leading N)
	Notes []string

	// PinCount is the QP value, 0 when the field is missing
	PinCount int

	// Checksum is the declared C value, if any
	Checksum    uint16
	HasChecksum bool
}

// FuseChecksum computes the JEDEC fuse checksum: the 16-bit sum of the fuse
// array packed into bytes, least significant bit first.
func FuseChecksum(fuses []bool) uint16 {
	var sum uint16
	var b byte
	for i, f := range fuses {
		if f {
			b |= 1 << uint(i%8)
		}
		if i%8 == 7 {
			sum += uint16(b)
			b = 0
		}
	}
	if len(fuses)%8 != 0 {
		sum += uint16(b)
	}
	return sum
}
