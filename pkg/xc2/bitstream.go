package xc2

import (
	"github.com/OpenTraceLab/xc2netlist/pkg/jed"
	"github.com/pkg/errors"
)

// Bitstream is a decoded CoolRunner-II configuration
type Bitstream struct {
	part  PartInfo
	info  DeviceInfo
	fuses []bool
}

// FromJED builds a Bitstream from a parsed JEDEC file. The file must carry a
// device name and exactly the fuse count of that device.
func FromJED(f *jed.File) (*Bitstream, error) {
	if f.DeviceName == "" {
		return nil, errors.New("xc2: missing device name in jed")
	}

	part, err := ParsePartName(f.DeviceName)
	if err != nil {
		return nil, err
	}

	info, _ := LookupDevice(part.Device)
	if len(f.Fuses) != info.FuseCount {
		return nil, errors.Errorf("xc2: %s expects %d fuses, jed has %d",
			part.Device, info.FuseCount, len(f.Fuses))
	}

	return &Bitstream{part: part, info: info, fuses: f.Fuses}, nil
}

// Part returns the device, speed grade and package of the bitstream
func (b *Bitstream) Part() PartInfo {
	return b.part
}

// Info returns the die-level description of the bitstream's device
func (b *Bitstream) Info() DeviceInfo {
	return b.info
}

// FuseCount returns the number of fuses in the bitstream
func (b *Bitstream) FuseCount() int {
	return len(b.fuses)
}

// ProgrammedFuses returns the number of fuses set to 0. CoolRunner-II fuses
// are active low, so an erased device reads all ones.
func (b *Bitstream) ProgrammedFuses() int {
	n := 0
	for _, f := range b.fuses {
		if !f {
			n++
		}
	}
	return n
}

// Traverse walks the device structure, reporting it to v
func (b *Bitstream) Traverse(v NodeVisitor) {
	Traverse(b.info, v)
}
