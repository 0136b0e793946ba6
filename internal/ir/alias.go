package ir

import "github.com/commschamp/dslgen/pkg/textpos"

// Alias is a named indirection inside a bundle or interface, pointing at a
// (possibly nested) member by dotted path, e.g. "header.flags.hasName".
type Alias struct {
	Name        string
	FieldPath   string
	Description string
	Target      Field // resolved in Phase B
	Pos         textpos.Pos
}
