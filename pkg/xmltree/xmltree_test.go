package xmltree

import (
	"testing"
)

func TestParseSimpleTree(t *testing.T) {
	input := `<package>
		<devices>
			<family Dfamily="STM32F4" Dvendor="STMicroelectronics:13">
				<device Dname="STM32F407"/>
			</family>
		</devices>
	</package>`

	root, err := ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	if root.Tag != "package" {
		t.Errorf("Expected root tag 'package', got '%s'", root.Tag)
	}
	if len(root.Children) != 1 {
		t.Fatalf("Expected 1 child, got %d", len(root.Children))
	}

	family := root.Children[0].Children[0]
	if family.Tag != "family" {
		t.Fatalf("Expected 'family', got '%s'", family.Tag)
	}

	if v, ok := family.Attr("Dfamily"); !ok || v != "STM32F4" {
		t.Errorf("Dfamily = %q, %v; want 'STM32F4', true", v, ok)
	}
	if v, ok := family.Attr("Dvendor"); !ok || v != "STMicroelectronics:13" {
		t.Errorf("Dvendor = %q, %v; want vendor string, true", v, ok)
	}
	if _, ok := family.Attr("missing"); ok {
		t.Error("Attr on a missing name should report false")
	}
}

func TestChildOrderPreserved(t *testing.T) {
	input := `<root><a/><b/><a/><c/></root>`

	root, err := ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	want := []string{"a", "b", "a", "c"}
	if len(root.Children) != len(want) {
		t.Fatalf("Expected %d children, got %d", len(want), len(root.Children))
	}
	for i, tag := range want {
		if root.Children[i].Tag != tag {
			t.Errorf("child %d: got '%s', want '%s'", i, root.Children[i].Tag, tag)
		}
	}
}

func TestFind(t *testing.T) {
	input := `<package><releases/><devices><family/></devices></package>`

	root, err := ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	devices := root.Find("devices")
	if devices == nil {
		t.Fatal("Find(devices) returned nil")
	}
	if devices.Find("family") == nil {
		t.Error("Find(family) under devices returned nil")
	}
	if root.Find("nonexistent") != nil {
		t.Error("Find on a missing tag should return nil")
	}
	if root.Find("package") != root {
		t.Error("Find should match the receiver itself")
	}
}

func TestTextContent(t *testing.T) {
	input := `<description>  STM32F4 Series device pack  </description>`

	root, err := ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if root.Text != "STM32F4 Series device pack" {
		t.Errorf("Text = %q", root.Text)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty document", ""},
		{"unbalanced", "<a><b></a>"},
		{"garbage", "not xml at all <"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseString(tc.input); err == nil {
				t.Errorf("expected an error for %q", tc.input)
			}
		})
	}
}
