// Package textpos tracks source positions within schema files, so that
// diagnostics can be reported as "file:line" rather than opaque byte offsets.
package textpos

import "fmt"

// Pos identifies a single line (and, where available, column) within a named
// source file. A Pos with Line==0 renders as just the filename; the zero
// value (no File either) means "unknown location" and renders as
// "<unknown>".
type Pos struct {
	File   string
	Line   int
	Column int
}

// String renders the position as "file:line" (or "file:line:col" when the
// column is known), matching the diagnostics format required by the spec.
func (p Pos) String() string {
	switch {
	case p.File == "":
		return "<unknown>"
	case p.Line == 0:
		return p.File
	case p.Column == 0:
		return fmt.Sprintf("%s:%d", p.File, p.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
}

// Unknown is the zero Pos, used where a location genuinely cannot be
// determined (e.g. a synthetic entity with no originating element).
var Unknown = Pos{}
