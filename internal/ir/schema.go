package ir

import "github.com/commschamp/dslgen/pkg/textpos"

// Platform is a named deployment target messages may be restricted to.
type Platform struct {
	Name string
	Pos  textpos.Pos
}

// Schema is the root of the IR, built from one or more schema XML
// documents that share the same name/id/version triple (spec.md §3).
type Schema struct {
	Name                 string
	ID                   uint
	Version              uint
	DSLVersion           uint
	Endian               Endian
	NonUniqueMsgIDAllowed bool
	Platforms            []Platform
	Root                 *Namespace
	ExtraAttrs           []ExtraAttr
	ExtraChildren        []string
	Pos                  textpos.Pos

	// Files is every schema document merged into this Schema, in the
	// order the driver processed them (affects only diagnostic ordering,
	// per spec.md §5).
	Files []string
}

// NewSchema constructs an empty schema with an anonymous root namespace.
func NewSchema() *Schema {
	return &Schema{Root: NewNamespace("", nil)}
}

// HasPlatform reports whether name was declared under this schema's
// <platforms> element.
func (s *Schema) HasPlatform(name string) bool {
	for _, p := range s.Platforms {
		if p.Name == name {
			return true
		}
	}

	return false
}

// AllMessages returns every message in the schema, walking the whole
// namespace tree.
func (s *Schema) AllMessages() []*Message {
	var out []*Message

	s.Root.Walk(func(n *Namespace) {
		out = append(out, n.Messages()...)
	})

	return out
}

// AllNamespaces returns every namespace in the schema (including the
// root), depth-first pre-order.
func (s *Schema) AllNamespaces() []*Namespace {
	var out []*Namespace

	s.Root.Walk(func(n *Namespace) {
		out = append(out, n)
	})

	return out
}

// AllFrames returns every frame in the schema.
func (s *Schema) AllFrames() []*Frame {
	var out []*Frame

	s.Root.Walk(func(n *Namespace) {
		out = append(out, n.Frames()...)
	})

	return out
}

// AllInterfaces returns every interface in the schema.
func (s *Schema) AllInterfaces() []*Interface {
	var out []*Interface

	s.Root.Walk(func(n *Namespace) {
		out = append(out, n.Interfaces()...)
	})

	return out
}
