package pdsc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTracePack/pkg/xmltree"
)

// ParseCore maps a Dcore attribute value to its Core.
func ParseCore(s string) (Core, error) {
	if core, ok := coresByName[s]; ok {
		return core, nil
	}
	return 0, fmt.Errorf("pdsc: unknown core %q", s)
}

// ParseFPU maps a Dfpu attribute value to its FPU. Both the symbolic forms
// (FPU, SP_FPU, DP_FPU, None) and the numeric forms (0, 1, 2) are accepted;
// a bare "FPU" means single precision.
func ParseFPU(s string) (FPU, error) {
	switch s {
	case "FPU", "SP_FPU", "1":
		return FPUSinglePrecision, nil
	case "DP_FPU", "2":
		return FPUDoublePrecision, nil
	case "None", "0":
		return FPUNone, nil
	}
	return 0, fmt.Errorf("pdsc: unknown fpu %q", s)
}

// ParseMPU maps a Dmpu attribute value to its MPU.
func ParseMPU(s string) (MPU, error) {
	switch s {
	case "MPU", "1":
		return MPUPresent, nil
	case "None", "0":
		return MPUNotPresent, nil
	}
	return 0, fmt.Errorf("pdsc: unknown mpu %q", s)
}

// ParseAlgorithmStyle maps a style attribute value to its AlgorithmStyle.
func ParseAlgorithmStyle(s string) (AlgorithmStyle, error) {
	switch s {
	case "Keil":
		return StyleKeil, nil
	case "IAR":
		return StyleIAR, nil
	case "CMSIS":
		return StyleCMSIS, nil
	}
	return 0, fmt.Errorf("pdsc: unknown algorithm style %q", s)
}

// ParseMemoryPermissions decodes a PDSC access string. Unknown characters
// are ignored.
func ParseMemoryPermissions(s string) MemoryPermissions {
	var perms MemoryPermissions
	for _, c := range s {
		switch c {
		case 'r':
			perms.Read = true
		case 'w':
			perms.Write = true
		case 'x':
			perms.Execute = true
		case 'p':
			perms.Peripheral = true
		case 's':
			perms.Secure = true
		case 'n':
			perms.NonSecure = true
		case 'c':
			perms.NonSecureCallable = true
		}
	}
	return perms
}

// parseNumberBool accepts the PDSC boolean forms true/false/1/0.
func parseNumberBool(s string) (bool, error) {
	switch s {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("pdsc: unknown boolean %q", s)
}

// parseHex parses an unsigned integer attribute value: base 16 with an
// optional 0x/0X prefix, base 10 otherwise.
func parseHex(s string) (uint64, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return strconv.ParseUint(s[2:], 16, 64)
	}
	return strconv.ParseUint(s, 10, 64)
}

// attrHex reads a required integer attribute in hex-or-decimal form.
func attrHex(e *xmltree.Element, name string) (uint64, error) {
	s, ok := e.Attr(name)
	if !ok {
		return 0, fmt.Errorf("pdsc: <%s> missing %s attribute", e.Tag, name)
	}
	v, err := parseHex(s)
	if err != nil {
		return 0, fmt.Errorf("pdsc: <%s> %s: %w", e.Tag, name, err)
	}
	return v, nil
}

// attrHexOpt reads an optional integer attribute in hex-or-decimal form.
// Absent or malformed values yield nil.
func attrHexOpt(e *xmltree.Element, name string) *uint64 {
	s, ok := e.Attr(name)
	if !ok {
		return nil
	}
	v, err := parseHex(s)
	if err != nil {
		return nil
	}
	return &v
}

// attrUint8Opt reads an optional base-10 uint8 attribute.
func attrUint8Opt(e *xmltree.Element, name string) *uint8 {
	s, ok := e.Attr(name)
	if !ok {
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return nil
	}
	u := uint8(v)
	return &u
}

// attrUint32Opt reads an optional base-10 uint32 attribute.
func attrUint32Opt(e *xmltree.Element, name string) *uint32 {
	s, ok := e.Attr(name)
	if !ok {
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil
	}
	u := uint32(v)
	return &u
}

// attrIntOpt reads an optional non-negative base-10 int attribute.
func attrIntOpt(e *xmltree.Element, name string) *int {
	s, ok := e.Attr(name)
	if !ok {
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return nil
	}
	i := int(v)
	return &i
}

// attrBool reads an optional boolean attribute, defaulting to false when
// the attribute is absent or malformed.
func attrBool(e *xmltree.Element, name string) bool {
	s, ok := e.Attr(name)
	if !ok {
		return false
	}
	v, err := parseNumberBool(s)
	if err != nil {
		return false
	}
	return v
}
