package ir

import "github.com/commschamp/dslgen/pkg/textpos"

// Interface is the named polymorphic base every Message extends, carrying
// the transport fields that accompany every message.
type Interface struct {
	Name            string
	DisplayNameRaw  string
	Description     string
	Fields          []Field
	Aliases         []Alias
	CopyFieldsFrom  string // unresolved name of another interface, if any
	CopiedFrom      *Interface
	SinceVersion    uint
	DeprecatedSince uint
	ExtraAttrs      []ExtraAttr
	Pos             textpos.Pos
}

// DisplayName returns the explicit display name, falling back to Name.
func (i *Interface) DisplayName() string {
	if i.DisplayNameRaw != "" {
		return i.DisplayNameRaw
	}

	return i.Name
}

// FieldByName looks up one of this interface's own transport fields
// (not following CopiedFrom).
func (i *Interface) FieldByName(name string) (Field, bool) {
	for _, f := range i.Fields {
		if f.Common().Name == name {
			return f, true
		}
	}

	return nil, false
}
