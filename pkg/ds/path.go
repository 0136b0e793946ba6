package ds

import "strings"

// Path describes a dotted reference through the namespace/field tree, e.g.
// "ns1.ns2.FieldName" or "Field.bitName". A Path is a thin wrapper over its
// segments; it carries no resolution state of its own.
type Path struct {
	segments []string
}

// NewPath splits a dotted reference string into its segments.
func NewPath(dotted string) Path {
	if dotted == "" {
		return Path{}
	}

	return Path{segments: strings.Split(dotted, ".")}
}

// NewPathFrom constructs a path directly from segments.
func NewPathFrom(segments ...string) Path {
	return Path{segments: segments}
}

// Empty returns true when the path has no segments.
func (p Path) Empty() bool {
	return len(p.segments) == 0
}

// Depth returns the number of segments in this path.
func (p Path) Depth() int {
	return len(p.segments)
}

// Head returns the first (outermost) segment.
func (p Path) Head() string {
	return p.segments[0]
}

// Tail returns the last (innermost) segment.
func (p Path) Tail() string {
	return p.segments[len(p.segments)-1]
}

// Dehead returns a path with the first segment removed.
func (p Path) Dehead() Path {
	if len(p.segments) == 0 {
		return p
	}

	return Path{segments: p.segments[1:]}
}

// Get returns the nth segment.
func (p Path) Get(n int) string {
	return p.segments[n]
}

// Segments returns a copy of the underlying segment slice.
func (p Path) Segments() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)

	return out
}

// String reassembles the dotted form of this path.
func (p Path) String() string {
	return strings.Join(p.segments, ".")
}
