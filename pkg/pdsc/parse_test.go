package pdsc

import (
	"testing"
)

func TestParseCore(t *testing.T) {
	cases := []struct {
		input string
		want  Core
	}{
		{"Cortex-M0", CoreCortexM0},
		{"Cortex-M0+", CoreCortexM0Plus},
		{"Cortex-M4", CoreCortexM4},
		{"Cortex-M33", CoreCortexM33},
		{"Cortex-M85", CoreCortexM85},
		{"Star-MC1", CoreStarMC1},
		{"SC300", CoreSC300},
		{"ARMV8MML", CoreARMV8MML},
		{"ARMV81MML", CoreARMV81MML},
		{"Cortex-R5", CoreCortexR5},
		{"Cortex-A72", CoreCortexA72},
		{"*", CoreAny},
	}

	for _, tc := range cases {
		got, err := ParseCore(tc.input)
		if err != nil {
			t.Errorf("ParseCore(%q) failed: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseCore(%q) = %v, want %v", tc.input, got, tc.want)
		}
		if got.String() != tc.input {
			t.Errorf("Core %v String() = %q, want %q", got, got.String(), tc.input)
		}
	}

	if _, err := ParseCore("Cortex-Z80"); err == nil {
		t.Error("ParseCore should reject unknown cores")
	}
}

func TestParseFPU(t *testing.T) {
	cases := []struct {
		input string
		want  FPU
	}{
		{"FPU", FPUSinglePrecision},
		{"SP_FPU", FPUSinglePrecision},
		{"1", FPUSinglePrecision},
		{"DP_FPU", FPUDoublePrecision},
		{"2", FPUDoublePrecision},
		{"None", FPUNone},
		{"0", FPUNone},
	}

	for _, tc := range cases {
		got, err := ParseFPU(tc.input)
		if err != nil {
			t.Errorf("ParseFPU(%q) failed: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseFPU(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}

	if _, err := ParseFPU("QUAD"); err == nil {
		t.Error("ParseFPU should reject unknown values")
	}
}

func TestParseMPU(t *testing.T) {
	cases := []struct {
		input string
		want  MPU
	}{
		{"MPU", MPUPresent},
		{"1", MPUPresent},
		{"None", MPUNotPresent},
		{"0", MPUNotPresent},
	}

	for _, tc := range cases {
		got, err := ParseMPU(tc.input)
		if err != nil {
			t.Errorf("ParseMPU(%q) failed: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMPU(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}

	if _, err := ParseMPU("maybe"); err == nil {
		t.Error("ParseMPU should reject unknown values")
	}
}

func TestParseAlgorithmStyle(t *testing.T) {
	for input, want := range map[string]AlgorithmStyle{
		"Keil":  StyleKeil,
		"IAR":   StyleIAR,
		"CMSIS": StyleCMSIS,
	} {
		got, err := ParseAlgorithmStyle(input)
		if err != nil {
			t.Errorf("ParseAlgorithmStyle(%q) failed: %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ParseAlgorithmStyle(%q) = %v, want %v", input, got, want)
		}
	}

	if _, err := ParseAlgorithmStyle("GHS"); err == nil {
		t.Error("ParseAlgorithmStyle should reject unknown values")
	}
}

func TestParseMemoryPermissions(t *testing.T) {
	all := ParseMemoryPermissions("rwxpsnc")
	want := MemoryPermissions{
		Read: true, Write: true, Execute: true, Peripheral: true,
		Secure: true, NonSecure: true, NonSecureCallable: true,
	}
	if all != want {
		t.Errorf("ParseMemoryPermissions(rwxpsnc) = %+v", all)
	}

	if none := ParseMemoryPermissions(""); none != (MemoryPermissions{}) {
		t.Errorf("ParseMemoryPermissions(\"\") = %+v, want all false", none)
	}

	// Unknown characters are ignored.
	got := ParseMemoryPermissions("r?z9x")
	if !got.Read || !got.Execute || got.Write || got.Secure {
		t.Errorf("ParseMemoryPermissions(r?z9x) = %+v, want only read+execute", got)
	}
}

func TestParseHex(t *testing.T) {
	cases := []struct {
		input string
		want  uint64
	}{
		{"0x20000000", 0x20000000},
		{"0X20000000", 0x20000000},
		{"536870912", 0x20000000},
		{"0", 0},
		{"0x0", 0},
		{"0xFFFFFFFF", 0xFFFFFFFF},
	}

	for _, tc := range cases {
		got, err := parseHex(tc.input)
		if err != nil {
			t.Errorf("parseHex(%q) failed: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseHex(%q) = 0x%X, want 0x%X", tc.input, got, tc.want)
		}
	}

	for _, bad := range []string{"", "0x", "0xZZ", "twelve", "-1"} {
		if _, err := parseHex(bad); err == nil {
			t.Errorf("parseHex(%q) should fail", bad)
		}
	}
}

func TestParseNumberBool(t *testing.T) {
	for input, want := range map[string]bool{
		"true": true, "1": true, "false": false, "0": false,
	} {
		got, err := parseNumberBool(input)
		if err != nil {
			t.Errorf("parseNumberBool(%q) failed: %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("parseNumberBool(%q) = %v, want %v", input, got, want)
		}
	}

	if _, err := parseNumberBool("yes"); err == nil {
		t.Error("parseNumberBool should reject unknown values")
	}
}
