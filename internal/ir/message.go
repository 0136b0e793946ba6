package ir

import "github.com/commschamp/dslgen/pkg/textpos"

// Message is a single protocol message: a numbered, versioned aggregate of
// fields identified by name within its namespace.
type Message struct {
	Name              string
	DisplayNameRaw    string
	Description       string
	ID                int64
	IDRef             string // unresolved "enum.Value" reference, if ID given that way
	Order             int
	Sender            Sender
	Platforms         []string
	Customizable      bool
	SinceVersion      uint
	DeprecatedSince   uint
	DeprecatedRemoved bool
	Fields            []Field
	Aliases           []Alias
	CopyFieldsFrom    string
	CopiedFrom        *Message
	Interface         string // owning interface name, if any
	ExtraAttrs        []ExtraAttr
	Pos               textpos.Pos
}

// DisplayName returns the explicit display name, falling back to Name.
func (m *Message) DisplayName() string {
	if m.DisplayNameRaw != "" {
		return m.DisplayNameRaw
	}

	return m.Name
}

// MinLength returns the minimum wire size of this message's fields.
func (m *Message) MinLength() uint64 {
	var total uint64
	for _, f := range m.Fields {
		total = saturatingAdd(total, f.MinLength())
	}

	return total
}

// MaxLength returns the maximum wire size of this message's fields,
// saturating rather than overflowing (spec.md §8).
func (m *Message) MaxLength() uint64 {
	var total uint64
	for _, f := range m.Fields {
		total = saturatingAdd(total, f.MaxLength())
	}

	return total
}

// FieldByName looks up one of this message's own fields.
func (m *Message) FieldByName(name string) (Field, bool) {
	for _, f := range m.Fields {
		if f.Common().Name == name {
			return f, true
		}
	}

	return nil, false
}

// HasPlatform reports whether this message is available on the given
// platform: true when name is listed in Platforms, or when Platforms is
// empty (no restriction).
func (m *Message) HasPlatform(name string) bool {
	for _, p := range m.Platforms {
		if p == name {
			return true
		}
	}

	return len(m.Platforms) == 0
}
