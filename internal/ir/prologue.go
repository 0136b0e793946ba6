package ir

import (
	"github.com/commschamp/dslgen/pkg/textpos"
)

// NoVersion marks a version bound that was never set (the entity was never
// deprecated / has no removal version).
const NoVersion = ^uint(0)

// Flags bundles the independent per-field customisation flags of spec.md §3.
type Flags struct {
	Pseudo          bool
	DisplayReadOnly bool
	DisplayHidden   bool
	Customizable    bool
	FailOnInvalid   bool
	ForceGen        bool
}

// ExtraAttr is a free-form attribute preserved verbatim on an entity whose
// schema language allows unrecognised attributes to pass through to
// emitters unchanged.
type ExtraAttr struct {
	Name  string
	Value string
}

// Prologue is the state common to every Field variant (Message, Interface,
// Frame and LayerCommon carry their own copies of the identity and version
// fields instead of embedding it): identity, documentation, version bounds,
// semantic tagging, and free-form passthrough state. It is the "flat
// struct" the design notes call for, shared by composition rather than
// inheritance.
type Prologue struct {
	Name              string
	DisplayNameRaw    string
	Description       string
	SinceVersion      uint
	DeprecatedSince   uint
	DeprecatedRemoved bool
	SemanticType      SemanticType
	Flags             Flags
	ExtraAttrs        []ExtraAttr
	ExtraChildren     []string
	Pos               textpos.Pos
}

// DisplayName returns the explicit display name, falling back to Name when
// none was given — the fallback the C++ origin's FieldImpl/MessageImpl
// compute once rather than re-deriving at every emission site.
func (p *Prologue) DisplayName() string {
	if p.DisplayNameRaw != "" {
		return p.DisplayNameRaw
	}

	return p.Name
}

// IsDeprecated reports whether the entity carries a real deprecation bound.
func (p *Prologue) IsDeprecated() bool {
	return p.DeprecatedSince != NoVersion
}

// DeprecatedBefore reports whether this entity is deprecated as of version
// v (i.e. v >= DeprecatedSince).
func (p *Prologue) DeprecatedBefore(v uint) bool {
	return p.IsDeprecated() && v >= p.DeprecatedSince
}

// Reuse produces a deep copy of this prologue suitable as the starting
// point for a `reuse=` field clone; callers then apply their own
// overrides on top.
func (p Prologue) Reuse() Prologue {
	out := p
	out.ExtraAttrs = append([]ExtraAttr(nil), p.ExtraAttrs...)
	out.ExtraChildren = append([]string(nil), p.ExtraChildren...)

	return out
}

// Range is a single valid range for a scalar field, with its own version
// bounds (spec.md: "list of valid ranges (each with independent version
// bounds)").
type Range[T any] struct {
	Min             T
	Max             T
	SinceVersion    uint
	DeprecatedSince uint
}

// Named is a (name, description) pair shared by several enumerated members
// (special values, bitfield/set/enum entries).
type Named struct {
	Name        string
	Description string
	DisplayName string
}

// VersionOption is a small helper used by version-bearing sub-entities
// (enum values, set bits) that otherwise do not warrant a full Prologue.
type VersionOption struct {
	SinceVersion    uint
	DeprecatedSince uint
}

// IsDeprecated reports whether v carries a real deprecation bound.
func (v VersionOption) IsDeprecated() bool {
	return v.DeprecatedSince != NoVersion
}
