package pdsc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTracePack/pkg/xmltree"
)

// memoryEntry is one parsed <memory> element: the region name it will be
// keyed under plus the region itself.
type memoryEntry struct {
	name string
	mem  Memory
}

// parseMemory parses a <memory> element. The region name comes from the id
// attribute, falling back to name. When no access string is given, region
// ids containing ROM default to rx and ids containing RAM default to rw.
func (p *Parser) parseMemory(e *xmltree.Element) (memoryEntry, error) {
	name, ok := e.Attr("id")
	if !ok {
		name, ok = e.Attr("name")
	}
	if !ok {
		return memoryEntry{}, fmt.Errorf("pdsc: <memory> without id or name")
	}

	access, ok := e.Attr("access")
	if !ok {
		id, _ := e.Attr("id")
		switch {
		case strings.Contains(id, "ROM"):
			access = "rx"
		case strings.Contains(id, "RAM"):
			access = "rw"
		}
	}

	start, err := attrHex(e, "start")
	if err != nil {
		return memoryEntry{}, err
	}
	size, err := attrHex(e, "size")
	if err != nil {
		return memoryEntry{}, err
	}

	pname, _ := e.Attr("Pname")
	return memoryEntry{
		name: name,
		mem: Memory{
			PName:   pname,
			Access:  ParseMemoryPermissions(access),
			Start:   start,
			Size:    size,
			Startup: attrBool(e, "startup"),
			Default: attrBool(e, "default"),
		},
	}, nil
}

// parseAlgorithm parses an <algorithm> element. Backslashes in the file
// path are normalized to forward slashes.
func (p *Parser) parseAlgorithm(e *xmltree.Element) (Algorithm, error) {
	name, ok := e.Attr("name")
	if !ok {
		return Algorithm{}, fmt.Errorf("pdsc: <algorithm> without name")
	}
	start, err := attrHex(e, "start")
	if err != nil {
		return Algorithm{}, err
	}
	size, err := attrHex(e, "size")
	if err != nil {
		return Algorithm{}, err
	}

	alg := Algorithm{
		FileName: strings.ReplaceAll(name, `\`, "/"),
		Start:    start,
		Size:     size,
		RAMStart: attrHexOpt(e, "RAMstart"),
		RAMSize:  attrHexOpt(e, "RAMsize"),
		Default:  attrBool(e, "default"),
		Style:    StyleKeil,
	}
	if s, ok := e.Attr("style"); ok {
		style, err := ParseAlgorithmStyle(s)
		if err != nil {
			p.warnf("<algorithm> %s: %v", alg.FileName, err)
		} else {
			alg.Style = style
		}
	}
	return alg, nil
}

// processorBuilder accumulates <processor> attributes across hierarchy
// levels. All fields are optional until build time; nil means the level
// did not declare the attribute.
type processorBuilder struct {
	core  *Core
	units *int
	name  string
	fpu   *FPU
	mpu   *MPU
}

// parseProcessor parses a <processor> element. Attribute failures are
// per-attribute: an unknown enum value is warned about and left unset so a
// parent level can still supply it.
func (p *Parser) parseProcessor(e *xmltree.Element) processorBuilder {
	var b processorBuilder
	b.name, _ = e.Attr("Pname")
	if s, ok := e.Attr("Dcore"); ok {
		if core, err := ParseCore(s); err != nil {
			p.warnf("<processor> %s: %v", b.name, err)
		} else {
			b.core = &core
		}
	}
	if s, ok := e.Attr("Dfpu"); ok {
		if fpu, err := ParseFPU(s); err != nil {
			p.warnf("<processor> %s: %v", b.name, err)
		} else {
			b.fpu = &fpu
		}
	}
	if s, ok := e.Attr("Dmpu"); ok {
		if mpu, err := ParseMPU(s); err != nil {
			p.warnf("<processor> %s: %v", b.name, err)
		} else {
			b.mpu = &mpu
		}
	}
	b.units = attrIntOpt(e, "Punits")
	return b
}

// fill copies attributes the parent level declared and this level did not.
func (b *processorBuilder) fill(parent *processorBuilder) {
	if b.core == nil {
		b.core = parent.core
	}
	if b.units == nil {
		b.units = parent.units
	}
	if b.name == "" {
		b.name = parent.name
	}
	if b.fpu == nil {
		b.fpu = parent.fpu
	}
	if b.mpu == nil {
		b.mpu = parent.mpu
	}
}

// build expands the builder into one Processor per unit. Debug descriptors
// are scanned in insertion order and the first one carrying an attribute
// wins; child levels push their descriptors before parent levels, so child
// values take precedence.
func (b *processorBuilder) build(debugs []Debug) ([]Processor, error) {
	if b.core == nil {
		return nil, fmt.Errorf("no core for processor %q", b.name)
	}
	units := 1
	if b.units != nil {
		units = *b.units
	}

	procs := make([]Processor, 0, units)
	for unit := 0; unit < units; unit++ {
		proc := Processor{
			Core: *b.core,
			FPU:  FPUNone,
			MPU:  MPUNotPresent,
			Name: b.name,
			Unit: unit,
		}
		if b.fpu != nil {
			proc.FPU = *b.fpu
		}
		if b.mpu != nil {
			proc.MPU = *b.mpu
		}

		var dp *uint8
		var ap *AccessPort
		for _, d := range debugs {
			// A named or unit-qualified descriptor must match exactly;
			// absent qualifiers match everything.
			if d.Name != "" && d.Name != b.name {
				continue
			}
			if d.Unit != nil && *d.Unit != unit {
				continue
			}
			if dp == nil {
				dp = d.DP
			}
			if ap == nil {
				ap = d.AP
			}
			if proc.Address == nil {
				proc.Address = d.Address
			}
			if proc.SVD == "" {
				proc.SVD = d.SVD
			}
			if proc.DefaultResetSequence == "" {
				proc.DefaultResetSequence = d.DefaultResetSequence
			}
		}
		if dp != nil {
			proc.DP = *dp
		}
		if ap != nil {
			proc.AP = *ap
		}
		procs = append(procs, proc)
	}
	return procs, nil
}

// processorsBuilder collects the sibling <processor> declarations of one
// hierarchy level.
type processorsBuilder []processorBuilder

// mergeParent merges this level's processors with the parent's, keyed by
// Pname. Child entries keep their declaration order and win attribute-wise;
// parent-only names are appended after. Duplicate names on the child side
// are preserved as independent entries, each filled from the parent.
func (pb processorsBuilder) mergeParent(parent processorsBuilder) processorsBuilder {
	if len(parent) == 0 {
		return pb
	}
	merged := make(processorsBuilder, len(pb))
	copy(merged, pb)

	childNames := make(map[string]bool, len(merged))
	for i := range merged {
		childNames[merged[i].name] = true
		for j := range parent {
			if parent[j].name == merged[i].name {
				merged[i].fill(&parent[j])
				break
			}
		}
	}
	for j := range parent {
		if !childNames[parent[j].name] {
			merged = append(merged, parent[j])
		}
	}
	return merged
}

// build expands every processor builder against the device's debug list.
func (pb processorsBuilder) build(debugs []Debug) ([]Processor, error) {
	var procs []Processor
	for i := range pb {
		expanded, err := pb[i].build(debugs)
		if err != nil {
			return nil, err
		}
		procs = append(procs, expanded...)
	}
	return procs, nil
}

// debugsBuilder collects resolved <debug> descriptors in insertion order.
// Child levels append before parent levels so the expansion's first-wins
// scan prefers child attributes.
type debugsBuilder []Debug

// parseDebug parses a <debug> element. When the enclosing element carries
// accessportV1/accessportV2 descriptors, the element's __apid is resolved
// against them; otherwise __dp and __ap are read directly off the element
// (the __ap index is base-10 by design).
func (p *Parser) parseDebug(e, parent *xmltree.Element) (Debug, error) {
	var d Debug

	hasAccessPorts := false
	for _, c := range parent.Children {
		if c.Tag == "accessportV1" || c.Tag == "accessportV2" {
			hasAccessPorts = true
			break
		}
	}

	if hasAccessPorts {
		s, ok := e.Attr("__apid")
		if !ok {
			return Debug{}, fmt.Errorf("pdsc: <debug> missing __apid")
		}
		apid, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return Debug{}, fmt.Errorf("pdsc: <debug> __apid: %w", err)
		}

		var port *xmltree.Element
		for _, c := range parent.Children {
			if !strings.HasPrefix(c.Tag, "accessportV") {
				continue
			}
			if v, ok := c.Attr("__apid"); ok {
				if id, err := strconv.ParseUint(v, 10, 32); err == nil && id == apid {
					port = c
					break
				}
			}
		}
		if port == nil {
			return Debug{}, fmt.Errorf("pdsc: unable to find access port with id %d", apid)
		}

		d.DP = attrUint8Opt(port, "__dp")
		switch port.Tag {
		case "accessportV1":
			if index := attrUint8Opt(port, "index"); index != nil {
				ap := APIndexOf(*index)
				d.AP = &ap
			}
		case "accessportV2":
			if address := attrHexOpt(port, "address"); address != nil {
				ap := APAddressOf(*address)
				d.AP = &ap
			}
		}
	} else {
		d.DP = attrUint8Opt(e, "__dp")
		if index := attrUint8Opt(e, "__ap"); index != nil {
			ap := APIndexOf(*index)
			d.AP = &ap
		}
	}

	d.Address = attrUint32Opt(e, "address")
	d.SVD, _ = e.Attr("svd")
	d.Name, _ = e.Attr("Pname")
	d.Unit = attrIntOpt(e, "Punit")
	d.DefaultResetSequence, _ = e.Attr("defaultResetSequence")
	return d, nil
}

// deviceBuilder accumulates one hierarchy level of device attributes. The
// walker creates one per family/subFamily/device/variant element and folds
// parents into descendants with addParent.
type deviceBuilder struct {
	name       string
	vendor     string
	family     string
	subFamily  string
	memories   Memories
	algorithms []Algorithm
	processors processorsBuilder
	debugs     debugsBuilder
}

// newDeviceBuilder seeds a builder from a hierarchy element's own
// attributes. The device name comes from Dname, falling back to Dvariant.
func newDeviceBuilder(e *xmltree.Element) *deviceBuilder {
	b := &deviceBuilder{memories: Memories{}}
	switch e.Tag {
	case "family":
		b.family, _ = e.Attr("Dfamily")
	case "subFamily":
		b.subFamily, _ = e.Attr("DsubFamily")
	}
	if name, ok := e.Attr("Dname"); ok {
		b.name = name
	} else {
		b.name, _ = e.Attr("Dvariant")
	}
	b.vendor, _ = e.Attr("Dvendor")
	return b
}

// addParent merges the enclosing level into b. Scalars keep the child value
// when present; memories union with child keys winning; algorithm and debug
// lists keep child entries first so consumers that scan in order see child
// declarations before inherited ones.
func (b *deviceBuilder) addParent(parent *deviceBuilder) {
	if b.name == "" {
		b.name = parent.name
	}
	if b.vendor == "" {
		b.vendor = parent.vendor
	}
	if b.family == "" {
		b.family = parent.family
	}
	if b.subFamily == "" {
		b.subFamily = parent.subFamily
	}
	b.algorithms = append(b.algorithms, parent.algorithms...)
	for name, mem := range parent.memories {
		if _, ok := b.memories[name]; !ok {
			b.memories[name] = mem
		}
	}
	if len(b.processors) == 0 {
		b.processors = append(processorsBuilder(nil), parent.processors...)
	} else {
		b.processors = b.processors.mergeParent(parent.processors)
	}
	b.debugs = append(b.debugs, parent.debugs...)
}

// build converts the fully merged builder into an immutable Device. This is
// the only place required-field failures surface.
func (b *deviceBuilder) build() (Device, error) {
	if b.name == "" {
		return Device{}, fmt.Errorf("pdsc: device without a name")
	}
	if b.family == "" {
		return Device{}, fmt.Errorf("pdsc: device %s without a family", b.name)
	}
	if len(b.processors) == 0 {
		return Device{}, fmt.Errorf("pdsc: device %s without a processor", b.name)
	}
	procs, err := b.processors.build(b.debugs)
	if err != nil {
		return Device{}, fmt.Errorf("pdsc: device %s: %w", b.name, err)
	}
	return Device{
		Name:       b.name,
		Vendor:     b.vendor,
		Family:     b.family,
		SubFamily:  b.subFamily,
		Memories:   b.memories,
		Algorithms: b.algorithms,
		Processors: procs,
	}, nil
}
