// Package ir defines the fully-validated, read-only intermediate
// representation of a protocol: Schema, Namespace, the twelve Field
// variants, Alias, Interface, Message, Frame, the seven Layer variants, and
// the OptCond expression tree (spec.md §3).
//
// Field and Layer are modelled as tagged sum types: a Kind enum plus a
// common "Prologue" struct embedded in every variant, dispatched with a
// type switch rather than virtual dispatch, per the design notes. No
// pointer in this package ever goes back up the tree; traversal contexts
// are passed explicitly by callers (internal/parse, internal/resolve,
// internal/driver, internal/emit).
package ir

// FieldKind identifies which of the twelve field variants a Field value is.
type FieldKind int

// The twelve field variants.
const (
	KindInt FieldKind = iota
	KindFloat
	KindEnum
	KindSet
	KindBitfield
	KindBundle
	KindString
	KindData
	KindList
	KindRef
	KindOptional
	KindVariant
)

func (k FieldKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindEnum:
		return "enum"
	case KindSet:
		return "set"
	case KindBitfield:
		return "bitfield"
	case KindBundle:
		return "bundle"
	case KindString:
		return "string"
	case KindData:
		return "data"
	case KindList:
		return "list"
	case KindRef:
		return "ref"
	case KindOptional:
		return "optional"
	case KindVariant:
		return "variant"
	default:
		return "unknown"
	}
}

// LayerKind identifies which of the seven layer variants a Layer value is.
type LayerKind int

// The seven layer variants.
const (
	LayerPayload LayerKind = iota
	LayerID
	LayerSize
	LayerSync
	LayerChecksum
	LayerValue
	LayerCustom
)

func (k LayerKind) String() string {
	switch k {
	case LayerPayload:
		return "payload"
	case LayerID:
		return "id"
	case LayerSize:
		return "size"
	case LayerSync:
		return "sync"
	case LayerChecksum:
		return "checksum"
	case LayerValue:
		return "value"
	case LayerCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Endian is the byte order used to serialize a field or an entire schema.
type Endian int

// The two supported byte orders.
const (
	BigEndian Endian = iota
	LittleEndian
)

func (e Endian) String() string {
	if e == LittleEndian {
		return "little"
	}

	return "big"
}

// SemanticType attaches protocol-level meaning to a field, used by emitters
// to specialise output (spec.md glossary).
type SemanticType int

// The four semantic types.
const (
	SemanticNone SemanticType = iota
	SemanticVersion
	SemanticMessageID
	SemanticLength
)

// Sender restricts which side of a connection may originate a message.
type Sender int

// The three sender restrictions.
const (
	SenderBoth Sender = iota
	SenderClient
	SenderServer
)

// IntWidth selects an integer field's underlying storage width.
type IntWidth int

// The width selectors named in spec.md §3.
const (
	Int8 IntWidth = iota
	Int16
	Int32
	Int64
	Intvar
	Uintvar
)

// FloatWidth selects a float field's underlying storage width.
type FloatWidth int

// The two float widths.
const (
	F32 FloatWidth = iota
	F64
)
