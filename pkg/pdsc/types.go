// Package pdsc resolves the <devices> section of a CMSIS-Pack description
// (PDSC) file into a flat catalog of device records. PDSC descriptions are
// hierarchical (family > subFamily > device > variant) and may declare
// memories, flash algorithms, processors, and debug descriptors at any
// level; the parser walks the hierarchy, merges attributes with child
// precedence, and emits one Device per leaf.
package pdsc

import (
	"fmt"
	"sort"
)

// Core identifies an ARM processor core as named by the PDSC Dcore
// attribute. CoreAny is the wildcard spelled "*" in pack files.
type Core uint8

const (
	CoreAny Core = iota
	CoreCortexM0
	CoreCortexM0Plus
	CoreCortexM1
	CoreCortexM3
	CoreCortexM4
	CoreCortexM7
	CoreCortexM23
	CoreCortexM33
	CoreCortexM35P
	CoreCortexM55
	CoreCortexM85
	CoreStarMC1
	CoreSC000
	CoreSC300
	CoreARMV8MBL
	CoreARMV8MML
	CoreARMV81MML
	CoreCortexR4
	CoreCortexR5
	CoreCortexR7
	CoreCortexR8
	CoreCortexA5
	CoreCortexA7
	CoreCortexA8
	CoreCortexA9
	CoreCortexA15
	CoreCortexA17
	CoreCortexA32
	CoreCortexA35
	CoreCortexA53
	CoreCortexA57
	CoreCortexA72
	CoreCortexA73
)

var coreNames = map[Core]string{
	CoreAny:          "*",
	CoreCortexM0:     "Cortex-M0",
	CoreCortexM0Plus: "Cortex-M0+",
	CoreCortexM1:     "Cortex-M1",
	CoreCortexM3:     "Cortex-M3",
	CoreCortexM4:     "Cortex-M4",
	CoreCortexM7:     "Cortex-M7",
	CoreCortexM23:    "Cortex-M23",
	CoreCortexM33:    "Cortex-M33",
	CoreCortexM35P:   "Cortex-M35P",
	CoreCortexM55:    "Cortex-M55",
	CoreCortexM85:    "Cortex-M85",
	CoreStarMC1:      "Star-MC1",
	CoreSC000:        "SC000",
	CoreSC300:        "SC300",
	CoreARMV8MBL:     "ARMV8MBL",
	CoreARMV8MML:     "ARMV8MML",
	CoreARMV81MML:    "ARMV81MML",
	CoreCortexR4:     "Cortex-R4",
	CoreCortexR5:     "Cortex-R5",
	CoreCortexR7:     "Cortex-R7",
	CoreCortexR8:     "Cortex-R8",
	CoreCortexA5:     "Cortex-A5",
	CoreCortexA7:     "Cortex-A7",
	CoreCortexA8:     "Cortex-A8",
	CoreCortexA9:     "Cortex-A9",
	CoreCortexA15:    "Cortex-A15",
	CoreCortexA17:    "Cortex-A17",
	CoreCortexA32:    "Cortex-A32",
	CoreCortexA35:    "Cortex-A35",
	CoreCortexA53:    "Cortex-A53",
	CoreCortexA57:    "Cortex-A57",
	CoreCortexA72:    "Cortex-A72",
	CoreCortexA73:    "Cortex-A73",
}

var coresByName = make(map[string]Core, len(coreNames))

func init() {
	for core, name := range coreNames {
		coresByName[name] = core
	}
}

func (c Core) String() string {
	if name, ok := coreNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Core(%d)", uint8(c))
}

// MarshalText emits the canonical ARM core name, so serialized catalogs use
// the same spellings as the pack files themselves.
func (c Core) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// FPU describes the floating point hardware of a processor (Dfpu).
type FPU uint8

const (
	FPUNone FPU = iota
	FPUSinglePrecision
	FPUDoublePrecision
)

var fpuNames = map[FPU]string{
	FPUNone:            "None",
	FPUSinglePrecision: "SinglePrecision",
	FPUDoublePrecision: "DoublePrecision",
}

func (f FPU) String() string {
	if name, ok := fpuNames[f]; ok {
		return name
	}
	return fmt.Sprintf("FPU(%d)", uint8(f))
}

func (f FPU) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// MPU describes whether a processor has a memory protection unit (Dmpu).
type MPU uint8

const (
	MPUNotPresent MPU = iota
	MPUPresent
)

var mpuNames = map[MPU]string{
	MPUNotPresent: "NotPresent",
	MPUPresent:    "Present",
}

func (m MPU) String() string {
	if name, ok := mpuNames[m]; ok {
		return name
	}
	return fmt.Sprintf("MPU(%d)", uint8(m))
}

func (m MPU) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// AlgorithmStyle is the flash algorithm container format.
type AlgorithmStyle uint8

const (
	StyleKeil AlgorithmStyle = iota
	StyleIAR
	StyleCMSIS
)

var styleNames = map[AlgorithmStyle]string{
	StyleKeil:  "Keil",
	StyleIAR:   "IAR",
	StyleCMSIS: "CMSIS",
}

func (s AlgorithmStyle) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("AlgorithmStyle(%d)", uint8(s))
}

func (s AlgorithmStyle) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// AccessPortKind selects how a debug access port is addressed.
type AccessPortKind uint8

const (
	// APIndex addresses the port by its ADIv5 AP index.
	APIndex AccessPortKind = iota
	// APAddress addresses the port by its ADIv6 base address.
	APAddress
)

func (k AccessPortKind) String() string {
	if k == APAddress {
		return "address"
	}
	return "index"
}

func (k AccessPortKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// AccessPort identifies the debug access port of a processor, either by
// ADIv5 index or by ADIv6 base address. The zero value is index 0.
type AccessPort struct {
	Kind    AccessPortKind
	Index   uint8  // valid when Kind == APIndex
	Address uint64 // valid when Kind == APAddress
}

// APIndexOf returns an access port addressed by ADIv5 index.
func APIndexOf(index uint8) AccessPort {
	return AccessPort{Kind: APIndex, Index: index}
}

// APAddressOf returns an access port addressed by ADIv6 base address.
func APAddressOf(address uint64) AccessPort {
	return AccessPort{Kind: APAddress, Address: address}
}

func (ap AccessPort) String() string {
	if ap.Kind == APAddress {
		return fmt.Sprintf("AP@0x%X", ap.Address)
	}
	return fmt.Sprintf("AP%d", ap.Index)
}

// MemoryPermissions is the decoded form of the PDSC memory access string
// (the characters r, w, x, p, s, n, c).
type MemoryPermissions struct {
	Read              bool
	Write             bool
	Execute           bool
	Peripheral        bool
	Secure            bool
	NonSecure         bool
	NonSecureCallable bool
}

// Memory is one region of the device memory map.
type Memory struct {
	PName   string // owning processor, "" when shared
	Access  MemoryPermissions
	Start   uint64
	Size    uint64
	Startup bool
	Default bool
}

// Memories maps region name (the PDSC id or name attribute) to its region.
type Memories map[string]Memory

// Algorithm describes a flash programming algorithm blob shipped in a pack.
type Algorithm struct {
	FileName string // pack-relative path, forward slashes
	Start    uint64
	Size     uint64
	RAMStart *uint64
	RAMSize  *uint64
	Default  bool
	Style    AlgorithmStyle
}

// Processor is one concrete core unit of a device, with its debug access
// fully resolved. Multi-core declarations (Punits > 1) expand into one
// Processor per unit.
type Processor struct {
	Core                 Core
	FPU                  FPU
	MPU                  MPU
	AP                   AccessPort
	DP                   uint8
	Address              *uint32
	SVD                  string
	Name                 string // Pname, "" on single-core parts
	Unit                 int
	DefaultResetSequence string
}

// Debug is one resolved <debug> descriptor. Pointer fields distinguish an
// absent attribute from a zero value; an empty Name or nil Unit means the
// descriptor applies to any processor or unit.
type Debug struct {
	DP                   *uint8
	AP                   *AccessPort
	Address              *uint32
	SVD                  string
	Name                 string
	Unit                 *int
	DefaultResetSequence string
}

// Device is one fully resolved catalog entry, emitted per <device> without
// variants or per <variant> otherwise.
type Device struct {
	Name       string
	Vendor     string
	Family     string
	SubFamily  string
	Memories   Memories
	Algorithms []Algorithm
	Processors []Processor
}

// Devices maps device name to its resolved record.
type Devices map[string]Device

// Names returns all device names in sorted order.
func (d Devices) Names() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
