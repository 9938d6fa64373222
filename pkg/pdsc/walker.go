package pdsc

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/OpenTraceLab/OpenTracePack/pkg/xmltree"
)

// Logger receives recoverable parse warnings: skipped elements and dropped
// devices. The walker is single-threaded, so implementations need not be
// safe for concurrent use.
type Logger interface {
	Warnf(format string, args ...any)
}

type stdLogger struct{}

func (stdLogger) Warnf(format string, args ...any) {
	log.Printf("pdsc: "+format, args...)
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger redirects recoverable parse warnings to l.
func WithLogger(l Logger) Option {
	return func(p *Parser) { p.log = l }
}

// Parser resolves the <devices> section of a PDSC document into a flat
// device catalog.
type Parser struct {
	log Logger
}

// NewParser creates a parser with the default stderr warning sink.
func NewParser(opts ...Option) *Parser {
	p := &Parser{log: stdLogger{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) warnf(format string, args ...any) {
	p.log.Warnf(format, args...)
}

// ParseDevices walks a <devices> element and returns one record per leaf
// device or variant. Devices sharing a name across families resolve
// last-write-wins.
func (p *Parser) ParseDevices(root *xmltree.Element) (Devices, error) {
	if root == nil || root.Tag != "devices" {
		return nil, fmt.Errorf("pdsc: expected a <devices> element")
	}
	devices := Devices{}
	for _, child := range root.Children {
		if child.Tag != "family" {
			continue
		}
		for _, dev := range p.parseFamily(child) {
			devices[dev.Name] = dev
		}
	}
	return devices, nil
}

// ParseReader parses a complete PDSC document from r and resolves its
// <devices> section.
func (p *Parser) ParseReader(r io.Reader) (Devices, error) {
	root, err := xmltree.Parse(r)
	if err != nil {
		return nil, err
	}
	devices := root.Find("devices")
	if devices == nil {
		return nil, fmt.Errorf("pdsc: document has no <devices> section")
	}
	return p.ParseDevices(devices)
}

// ParseFile parses the PDSC file at path.
func (p *Parser) ParseFile(path string) (Devices, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pdsc: %w", err)
	}
	defer f.Close()
	return p.ParseReader(f)
}

// attachLeaf parses one memory/algorithm/processor/debug child into b,
// warning and dropping the element on failure. It reports whether the tag
// was one of the four leaf kinds.
func (p *Parser) attachLeaf(b *deviceBuilder, child, parent *xmltree.Element) bool {
	switch child.Tag {
	case "memory":
		entry, err := p.parseMemory(child)
		if err != nil {
			p.warnf("skipping <memory>: %v", err)
			return true
		}
		b.memories[entry.name] = entry.mem
	case "algorithm":
		alg, err := p.parseAlgorithm(child)
		if err != nil {
			p.warnf("skipping <algorithm>: %v", err)
			return true
		}
		b.algorithms = append(b.algorithms, alg)
	case "processor":
		proc := p.parseProcessor(child)
		for i := range b.processors {
			if b.processors[i].name == proc.name {
				p.warnf("duplicate <processor> Pname %q at one level; keeping both", proc.name)
				break
			}
		}
		b.processors = append(b.processors, proc)
	case "debug":
		d, err := p.parseDebug(child, parent)
		if err != nil {
			p.warnf("skipping <debug>: %v", err)
			return true
		}
		b.debugs = append(b.debugs, d)
	default:
		return false
	}
	return true
}

// parseDevice walks a <device> element. Without variants it yields the
// device's own builder; with variants it yields one builder per variant,
// each inheriting from the device.
func (p *Parser) parseDevice(e *xmltree.Element) []*deviceBuilder {
	local := newDeviceBuilder(e)
	var variants []*deviceBuilder
	for _, child := range e.Children {
		if child.Tag == "variant" {
			variants = append(variants, newDeviceBuilder(child))
			continue
		}
		p.attachLeaf(local, child, e)
	}
	if len(variants) == 0 {
		return []*deviceBuilder{local}
	}
	for _, v := range variants {
		v.addParent(local)
	}
	return variants
}

// parseSubFamily walks a <subFamily> element, folding its own leaves into
// every descendant device builder.
func (p *Parser) parseSubFamily(e *xmltree.Element) []*deviceBuilder {
	local := newDeviceBuilder(e)
	var devices []*deviceBuilder
	for _, child := range e.Children {
		if child.Tag == "device" {
			devices = append(devices, p.parseDevice(child)...)
			continue
		}
		p.attachLeaf(local, child, e)
	}
	for _, d := range devices {
		d.addParent(local)
	}
	return devices
}

// parseFamily walks a <family> element and builds the final records. A
// device that fails to build is dropped with a warning; its siblings
// survive.
func (p *Parser) parseFamily(e *xmltree.Element) []Device {
	local := newDeviceBuilder(e)
	var builders []*deviceBuilder
	for _, child := range e.Children {
		switch child.Tag {
		case "subFamily":
			builders = append(builders, p.parseSubFamily(child)...)
		case "device":
			builders = append(builders, p.parseDevice(child)...)
		default:
			p.attachLeaf(local, child, e)
		}
	}

	var devices []Device
	for _, b := range builders {
		b.addParent(local)
		dev, err := b.build()
		if err != nil {
			p.warnf("dropping device: %v", err)
			continue
		}
		devices = append(devices, dev)
	}
	return devices
}
