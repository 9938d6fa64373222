// Package xmltree builds a minimal navigable element tree from an XML
// document. It keeps only what a description-file parser needs: tag names,
// attributes, and child elements in document order.
package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Attr is a single attribute, name and value as written in the source.
type Attr struct {
	Name  string
	Value string
}

// Element is one XML element. Children holds child elements in document
// order; character data is concatenated into Text with surrounding
// whitespace trimmed. Comments and processing instructions are dropped.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []*Element
	Text     string
}

// Attr returns the value of the named attribute, matching on local name.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Find returns the first element with the given tag in a depth-first walk
// starting at e (e itself included), or nil if none exists.
func (e *Element) Find(tag string) *Element {
	if e.Tag == tag {
		return e
	}
	for _, c := range e.Children {
		if found := c.Find(tag); found != nil {
			return found
		}
	}
	return nil
}

// Parse reads an XML document from r and returns its root element.
func Parse(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	var root *Element
	var stack []*Element

	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("xmltree: %w", err)
		}

		switch tok := tok.(type) {
		case xml.StartElement:
			el := &Element{Tag: tok.Name.Local}
			for _, a := range tok.Attr {
				el.Attrs = append(el.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("xmltree: multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)

		case xml.EndElement:
			// The decoder guarantees balanced tags in strict mode.
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 {
				if text := strings.TrimSpace(string(tok)); text != "" {
					stack[len(stack)-1].Text += text
				}
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("xmltree: no root element")
	}
	return root, nil
}

// ParseString parses XML source text.
func ParseString(src string) (*Element, error) {
	return Parse(strings.NewReader(src))
}

// ParseFile reads and parses the file at path.
func ParseFile(path string) (*Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("xmltree: %w", err)
	}
	defer f.Close()
	return Parse(f)
}
