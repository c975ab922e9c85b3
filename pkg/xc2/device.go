package xc2

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Device identifies a CoolRunner-II part (without speed grade or package)
type Device string

const (
	XC2C32  Device = "XC2C32"
	XC2C32A Device = "XC2C32A"
	XC2C64  Device = "XC2C64"
	XC2C64A Device = "XC2C64A"
	XC2C128 Device = "XC2C128"
	XC2C256 Device = "XC2C256"
	XC2C384 Device = "XC2C384"
	XC2C512 Device = "XC2C512"
)

// MacrocellsPerFB is the number of macrocells in one function block
const MacrocellsPerFB = 16

// DeviceInfo describes the die-level resources of a device
type DeviceInfo struct {
	Device      Device
	Macrocells  int
	FuseCount   int  // fuses in a JED file for this device
	HasInputPin bool // dedicated input-only pad (32-macrocell parts)
	Description string
}

// FBCount returns the number of function blocks on the device
func (d DeviceInfo) FBCount() int {
	return d.Macrocells / MacrocellsPerFB
}

// db is the in-memory device database
var db = make(map[Device]DeviceInfo)

// register adds a device entry to the database
func register(info DeviceInfo) {
	db[info.Device] = info
}

func init() {
	register(DeviceInfo{Device: XC2C32, Macrocells: 32, FuseCount: 12274, HasInputPin: true,
		Description: "CoolRunner-II 32 macrocell CPLD"})
	register(DeviceInfo{Device: XC2C32A, Macrocells: 32, FuseCount: 12278, HasInputPin: true,
		Description: "CoolRunner-II 32 macrocell CPLD (A revision)"})
	register(DeviceInfo{Device: XC2C64, Macrocells: 64, FuseCount: 25808,
		Description: "CoolRunner-II 64 macrocell CPLD"})
	register(DeviceInfo{Device: XC2C64A, Macrocells: 64, FuseCount: 25812,
		Description: "CoolRunner-II 64 macrocell CPLD (A revision)"})
	register(DeviceInfo{Device: XC2C128, Macrocells: 128, FuseCount: 55341,
		Description: "CoolRunner-II 128 macrocell CPLD"})
	register(DeviceInfo{Device: XC2C256, Macrocells: 256, FuseCount: 123249,
		Description: "CoolRunner-II 256 macrocell CPLD"})
	register(DeviceInfo{Device: XC2C384, Macrocells: 384, FuseCount: 209357,
		Description: "CoolRunner-II 384 macrocell CPLD"})
	register(DeviceInfo{Device: XC2C512, Macrocells: 512, FuseCount: 296403,
		Description: "CoolRunner-II 512 macrocell CPLD"})
}

// LookupDevice returns the database entry for d
func LookupDevice(d Device) (DeviceInfo, bool) {
	info, ok := db[d]
	return info, ok
}

// Devices returns all known devices sorted by macrocell count, then name
func Devices() []DeviceInfo {
	out := make([]DeviceInfo, 0, len(db))
	for _, info := range db {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Macrocells != out[j].Macrocells {
			return out[i].Macrocells < out[j].Macrocells
		}
		return out[i].Device < out[j].Device
	})
	return out
}

// SpeedGrade is the numeric speed suffix of a part (e.g. 6 for "-6")
type SpeedGrade int

var speedGrades = map[SpeedGrade]bool{4: true, 5: true, 6: true, 7: true, 10: true}

func (s SpeedGrade) String() string {
	return fmt.Sprintf("-%d", int(s))
}

// Package is the physical package code (e.g. "VQ44")
type Package string

var packages = map[Package]bool{
	"QF32": true, "VQ44": true, "PC44": true, "QF48": true, "CP56": true,
	"VQ100": true, "CP132": true, "TQ144": true, "PQ208": true, "FT256": true,
	"FG324": true,
}

// PartInfo is the complete part designation carried by a bitstream
type PartInfo struct {
	Device  Device
	Speed   SpeedGrade
	Package Package
}

func (p PartInfo) String() string {
	return fmt.Sprintf("%s%s-%s", p.Device, p.Speed, p.Package)
}

// ParsePartName parses names such as "XC2C32A-6-VQ44" or "xc2c64a-vq44-5".
// Both device-speed-package and device-package-speed orders are accepted.
func ParsePartName(name string) (PartInfo, error) {
	parts := strings.Split(strings.ToUpper(strings.TrimSpace(name)), "-")
	if len(parts) != 3 {
		return PartInfo{}, errors.Errorf("xc2: malformed part name %q", name)
	}

	dev := Device(parts[0])
	if _, ok := db[dev]; !ok {
		return PartInfo{}, errors.Errorf("xc2: unknown device %q", parts[0])
	}

	speed, pkg, ok := speedAndPackage(parts[1], parts[2])
	if !ok {
		speed, pkg, ok = speedAndPackage(parts[2], parts[1])
	}
	if !ok {
		return PartInfo{}, errors.Errorf("xc2: invalid speed grade or package in %q", name)
	}

	return PartInfo{Device: dev, Speed: speed, Package: pkg}, nil
}

func speedAndPackage(s, p string) (SpeedGrade, Package, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, "", false
	}
	if !speedGrades[SpeedGrade(n)] || !packages[Package(p)] {
		return 0, "", false
	}
	return SpeedGrade(n), Package(p), true
}
