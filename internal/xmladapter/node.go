// Package xmladapter provides lazy XML tree access for the schema parser:
// node/child iteration, attribute and child-text property lookup treating
// "attribute on element" and "<name value="…"/>" child element as
// equivalent property sources, and file+line structural error reporting.
//
// Built on encoding/xml rather than a third-party DOM library: the pack's
// only XML dependency (beevik/etree) appears solely as an indirect,
// transitively-pulled dependency with no concrete usage site to ground an
// adapter on, so the tree here is built directly over xml.Decoder, whose
// InputPos() gives the line numbers this component's error messages need.
package xmladapter

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/commschamp/dslgen/pkg/textpos"
)

// Attr is a raw, unrecognised XML attribute preserved verbatim for entities
// that carry "free-form extra attributes".
type Attr struct {
	Name  string
	Value string
}

// Node is one element of the lazily-walked XML tree. Attributes and
// same-named single-child "value" elements are both read through the
// property accessors below; Node itself keeps the raw distinction so
// BadXml ("both forms given") can be detected.
type Node struct {
	Name     string
	attrs    map[string]string
	attrPos  map[string]textpos.Pos
	children []*Node
	childIdx map[string][]*Node
	Text     string
	Pos      textpos.Pos

	consumedAttrs map[string]bool
	consumedKids  map[string]bool
}

// BadXMLError reports malformed or unusable XML structure, carrying the
// location at which the problem was detected.
type BadXMLError struct {
	Pos     textpos.Pos
	Message string
}

func (e *BadXMLError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

func newNode(name string, pos textpos.Pos) *Node {
	return &Node{
		Name:          name,
		attrs:         map[string]string{},
		attrPos:       map[string]textpos.Pos{},
		childIdx:      map[string][]*Node{},
		consumedAttrs: map[string]bool{},
		consumedKids:  map[string]bool{},
		Pos:           pos,
	}
}

// Parse reads a complete XML document from r and returns its root element as
// a Node tree. filename is used only for position reporting.
func Parse(filename string, r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)

	var (
		stack []*Node
		root  *Node
	)

	pos := func() textpos.Pos {
		line, col := dec.InputPos()
		return textpos.Pos{File: filename, Line: line, Column: col}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, &BadXMLError{Pos: pos(), Message: fmt.Sprintf("malformed xml: %v", err)}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := newNode(t.Name.Local, pos())

			for _, a := range t.Attr {
				if a.Name.Local == "" {
					continue
				}

				if _, dup := n.attrs[a.Name.Local]; dup {
					return nil, &BadXMLError{
						Pos:     n.Pos,
						Message: fmt.Sprintf("duplicate attribute %q on <%s>", a.Name.Local, n.Name),
					}
				}

				n.attrs[a.Name.Local] = a.Value
				n.attrPos[a.Name.Local] = n.Pos
			}

			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
				parent.childIdx[n.Name] = append(parent.childIdx[n.Name], n)
			} else if root == nil {
				root = n
			} else {
				return nil, &BadXMLError{Pos: n.Pos, Message: "multiple root elements"}
			}

			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, &BadXMLError{Pos: pos(), Message: "unbalanced closing tag"}
			}

			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, &BadXMLError{Pos: textpos.Pos{File: filename}, Message: "empty document"}
	}

	return root, nil
}

// Children returns every child element, in document order. When expected is
// non-empty, children whose name is not in expected (and does not start
// with one of the registered "expected extension" prefixes) are reported to
// report (if non-nil) as an unexpected-child warning, but are still
// returned: unknown children are preserved verbatim, not dropped.
func (n *Node) Children(expected []string, extensionPrefixes []string, report func(name string, pos textpos.Pos)) []*Node {
	if len(expected) == 0 {
		return n.children
	}

	allowed := make(map[string]bool, len(expected))
	for _, e := range expected {
		allowed[e] = true
	}

	for _, c := range n.children {
		if allowed[c.Name] {
			continue
		}

		if hasAnyPrefix(c.Name, extensionPrefixes) {
			continue
		}

		if report != nil {
			report(c.Name, c.Pos)
		}
	}

	return n.children
}

func hasAnyPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}

	return false
}

// ChildrenNamed returns the (possibly empty) list of children with the given
// name, marking them consumed so ExtraChildren can skip them later.
func (n *Node) ChildrenNamed(name string) []*Node {
	n.consumedKids[name] = true
	return n.childIdx[name]
}

// ChildNamed returns the single child with the given name, if any.
func (n *Node) ChildNamed(name string) (*Node, bool) {
	kids := n.ChildrenNamed(name)
	if len(kids) == 0 {
		return nil, false
	}

	return kids[0], true
}

// Property looks up a property which may be expressed either as an
// attribute on this element, or as a child element "<name value=.../>" (or
// "<name>value</name>"). Both forms present at once is a BadXml error.
// Consuming a property marks it so ExtraAttrs/ExtraChildren do not also
// report it as a free-form extra.
func (n *Node) Property(name string) (string, *BadXMLError) {
	attrVal, hasAttr := n.attrs[name]

	kids := n.childIdx[name]
	if len(kids) > 1 {
		return "", &BadXMLError{Pos: kids[1].Pos, Message: fmt.Sprintf("property %q given more than once", name)}
	}

	hasChild := len(kids) == 1

	if hasAttr && hasChild {
		return "", &BadXMLError{
			Pos:     kids[0].Pos,
			Message: fmt.Sprintf("property %q given both as attribute and child element", name),
		}
	}

	if hasAttr {
		n.consumedAttrs[name] = true
		return attrVal, nil
	}

	if hasChild {
		n.consumedKids[name] = true
		child := kids[0]

		if v, ok := child.attrs["value"]; ok {
			child.consumedAttrs["value"] = true
			return v, nil
		}

		return strings.TrimSpace(child.Text), nil
	}

	return "", nil
}

// HasProperty reports whether the named property is present in either form,
// without consuming it.
func (n *Node) HasProperty(name string) bool {
	if _, ok := n.attrs[name]; ok {
		return true
	}

	_, ok := n.childIdx[name]

	return ok
}

// RequireProperty is Property, but fails with BadXml when the property is
// absent.
func (n *Node) RequireProperty(name string) (string, *BadXMLError) {
	v, err := n.Property(name)
	if err != nil {
		return "", err
	}

	if !n.HasProperty(name) {
		return "", &BadXMLError{Pos: n.Pos, Message: fmt.Sprintf("missing mandatory property %q on <%s>", name, n.Name)}
	}

	return v, nil
}

// ExtraAttrs returns every attribute not yet consumed via Property, paired
// with its raw text, for entities which preserve "free-form extra
// attributes" verbatim.
func (n *Node) ExtraAttrs() []Attr {
	var out []Attr

	for k, v := range n.attrs {
		if n.consumedAttrs[k] {
			continue
		}

		out = append(out, Attr{Name: k, Value: v})
	}

	return out
}

// ExtraChildren returns the node of every child element not yet
// consumed via Property/ChildrenNamed/ChildNamed, for entities which
// preserve "free-form extra child elements" verbatim.
func (n *Node) ExtraChildren() []*Node {
	var out []*Node

	for _, c := range n.children {
		if n.consumedKids[c.Name] {
			continue
		}

		out = append(out, c)
	}

	return out
}
