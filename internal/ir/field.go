package ir

// Field is implemented by every one of the twelve field variants. Callers
// that need variant-specific state type-switch on Kind() and the concrete
// struct, following the sum-type pattern from the design notes.
type Field interface {
	Kind() FieldKind
	Common() *Prologue
	// MinLength returns the minimum number of bytes this field can occupy
	// on the wire.
	MinLength() uint64
	// MaxLength returns the maximum number of bytes this field can occupy
	// on the wire, saturating at MaxWireLength rather than overflowing.
	MaxLength() uint64
}

// MaxWireLength is the saturation ceiling for MaxLength computations,
// standing in for "unbounded" (e.g. a list with no fixed count or prefix
// is rejected by the validator, but during IR construction lengths are
// still summed before that rejection fires).
const MaxWireLength = ^uint64(0) >> 1

// saturatingAdd adds b to a, clamping at MaxWireLength instead of
// overflowing, per spec.md §8 ("maxLength() = Σ ... truncated to
// saturation").
func saturatingAdd(a, b uint64) uint64 {
	if a > MaxWireLength-b {
		return MaxWireLength
	}

	return a + b
}

// IntField is the Int field variant: a scaled, optionally-signed integer of
// selectable width.
type IntField struct {
	Prologue

	Width       IntWidth
	Signed      bool
	Endian      Endian
	SerLength   uint // serialized byte length
	BitLength   uint // non-zero only inside a Bitfield
	SerOffset   int64
	ScaleNum    int64
	ScaleDenom  int64
	Default     int64
	Units       string
	DisplayDecimals uint
	DisplayOffset   int64
	SignExt     bool
	Specials    []Named
	ValidRanges []Range[int64]
}

func (f *IntField) Kind() FieldKind   { return KindInt }
func (f *IntField) Common() *Prologue { return &f.Prologue }

func (f *IntField) MinLength() uint64 {
	if f.BitLength > 0 {
		return 0
	}

	return uint64(f.SerLength)
}

func (f *IntField) MaxLength() uint64 {
	return f.MinLength()
}

// TypeMaxBytes returns the maximum number of bytes the selected width can
// hold (varints are treated as unbounded by a fixed field width).
func (f *IntField) TypeMaxBytes() uint {
	switch f.Width {
	case Int8:
		return 1
	case Int16:
		return 2
	case Int32:
		return 4
	case Int64:
		return 8
	default: // Intvar, Uintvar
		return 0
	}
}

// FloatField is the Float field variant.
type FloatField struct {
	Prologue

	Width       FloatWidth
	Endian      Endian
	Default     float64
	ValidRanges []Range[float64]
	Specials    []Named
}

func (f *FloatField) Kind() FieldKind   { return KindFloat }
func (f *FloatField) Common() *Prologue { return &f.Prologue }

func (f *FloatField) MinLength() uint64 {
	if f.Width == F64 {
		return 8
	}

	return 4
}

func (f *FloatField) MaxLength() uint64 { return f.MinLength() }

// EnumValue is a single named value of an Enum field.
type EnumValue struct {
	Named
	Value           int64
	SinceVersion    uint
	DeprecatedSince uint
}

// EnumField is the Enum field variant.
type EnumField struct {
	Prologue

	Underlying       IntWidth
	Signed           bool
	Endian           Endian
	SerLength        uint
	BitLength        uint
	Values           []EnumValue
	ValueIndex       map[string]int   // name -> index into Values
	ReverseIndex     map[int64][]string
	NonUniqueAllowed bool
	ValidCheckVersion uint
	HexAssign        bool
	Default          int64
}

func (f *EnumField) Kind() FieldKind   { return KindEnum }
func (f *EnumField) Common() *Prologue { return &f.Prologue }

func (f *EnumField) MinLength() uint64 {
	if f.BitLength > 0 {
		return 0
	}

	return uint64(f.SerLength)
}

func (f *EnumField) MaxLength() uint64 { return f.MinLength() }

// ByName looks up an enum value by name.
func (f *EnumField) ByName(name string) (EnumValue, bool) {
	idx, ok := f.ValueIndex[name]
	if !ok {
		return EnumValue{}, false
	}

	return f.Values[idx], true
}

// SetBit is a single named bit of a Set field.
type SetBit struct {
	Named
	BitIndex        uint
	Reserved        bool
	ReservedValue   bool
	DefaultValue    bool
	SinceVersion    uint
	DeprecatedSince uint
}

// SetField is the Set field variant (a named bitmask).
type SetField struct {
	Prologue

	Underlying        IntWidth
	Endian            Endian
	SerLength         uint
	BitLength         uint
	Bits              []SetBit
	BitIndex          map[string]int
	DefaultBitValue   bool
	ReservedBitValue  bool
	NonUniqueAllowed  bool
	ValidCheckVersion uint
}

func (f *SetField) Kind() FieldKind   { return KindSet }
func (f *SetField) Common() *Prologue { return &f.Prologue }

func (f *SetField) MinLength() uint64 {
	if f.BitLength > 0 {
		return 0
	}

	return uint64(f.SerLength)
}

func (f *SetField) MaxLength() uint64 { return f.MinLength() }

// ByName looks up a set bit by name.
func (f *SetField) ByName(name string) (SetBit, bool) {
	idx, ok := f.BitIndex[name]
	if !ok {
		return SetBit{}, false
	}

	return f.Bits[idx], true
}

// BitfieldField is the Bitfield field variant: a sequence of member fields
// packed into whole bytes.
type BitfieldField struct {
	Prologue

	Endian  Endian
	Members []Field

	// MemberOffsets is each member's starting bit offset, in declaration
	// order, as computed by ComputeBitfieldLayout.
	MemberOffsets []uint
}

func (f *BitfieldField) Kind() FieldKind   { return KindBitfield }
func (f *BitfieldField) Common() *Prologue { return &f.Prologue }

// TotalBits returns the sum of every member's bit length.
func (f *BitfieldField) TotalBits() uint {
	var total uint

	for _, m := range f.Members {
		total += memberBitLength(m)
	}

	return total
}

func memberBitLength(f Field) uint {
	switch v := f.(type) {
	case *IntField:
		return v.BitLength
	case *EnumField:
		return v.BitLength
	case *SetField:
		return v.BitLength
	case *RefField:
		return v.BitLengthOverride
	default:
		return 0
	}
}

func (f *BitfieldField) MinLength() uint64 {
	return uint64(f.TotalBits() / 8)
}

func (f *BitfieldField) MaxLength() uint64 { return f.MinLength() }

// BundleMember is a named field inside a Bundle, keeping source order.
type BundleMember struct {
	Field Field
}

// BundleField is the Bundle field variant: an ordered aggregate of member
// fields, with at most one Length-semantic member. Aliases are bundle-level
// indirections onto a (possibly nested) member and carry no wire presence
// of their own.
type BundleField struct {
	Prologue

	Members []BundleMember
	Aliases []Alias
}

func (f *BundleField) Kind() FieldKind   { return KindBundle }
func (f *BundleField) Common() *Prologue { return &f.Prologue }

func (f *BundleField) MinLength() uint64 {
	var total uint64
	for _, m := range f.Members {
		total = saturatingAdd(total, m.Field.MinLength())
	}

	return total
}

func (f *BundleField) MaxLength() uint64 {
	var total uint64
	for _, m := range f.Members {
		total = saturatingAdd(total, m.Field.MaxLength())
	}

	return total
}

// LengthPrefixKind distinguishes how a variable-length field's size is
// carried on the wire.
type LengthPrefixKind int

// The five ways a variable-length field's size may be carried: none (the
// field consumes whatever remains), a fixed length, a zero terminator, an
// inline length-prefix field, or a detached length-prefix field referenced
// by name.
const (
	PrefixNone LengthPrefixKind = iota
	PrefixFixedLength
	PrefixZeroTerminated
	PrefixExternalLength
	PrefixDetachedLength
)

// StringField is the String field variant.
type StringField struct {
	Prologue

	Encoding       string
	FixedLength    uint64
	LengthPrefix   Field // external length-prefix field, inline
	DetachedPrefix string // name of a sibling serving as length prefix
	ZeroTerminated bool
	Default        string
	ValidValues    []string
}

func (f *StringField) Kind() FieldKind   { return KindString }
func (f *StringField) Common() *Prologue { return &f.Prologue }

// PrefixKind classifies how this string's length is determined.
func (f *StringField) PrefixKind() LengthPrefixKind {
	switch {
	case f.FixedLength > 0:
		return PrefixFixedLength
	case f.DetachedPrefix != "":
		return PrefixDetachedLength
	case f.LengthPrefix != nil:
		return PrefixExternalLength
	case f.ZeroTerminated:
		return PrefixZeroTerminated
	default:
		return PrefixNone
	}
}

func (f *StringField) MinLength() uint64 {
	switch f.PrefixKind() {
	case PrefixFixedLength:
		return f.FixedLength
	case PrefixZeroTerminated:
		return 1
	case PrefixExternalLength:
		return f.LengthPrefix.MinLength()
	default:
		return 0
	}
}

func (f *StringField) MaxLength() uint64 {
	switch f.PrefixKind() {
	case PrefixFixedLength:
		return f.FixedLength
	default:
		return MaxWireLength
	}
}

// DataField is the Data field variant: an opaque byte sequence.
type DataField struct {
	Prologue

	FixedLength    uint64
	LengthPrefix   Field
	DetachedPrefix string
	Default        []byte
}

func (f *DataField) Kind() FieldKind   { return KindData }
func (f *DataField) Common() *Prologue { return &f.Prologue }

// PrefixKind classifies how this data field's length is determined.
func (f *DataField) PrefixKind() LengthPrefixKind {
	switch {
	case f.FixedLength > 0:
		return PrefixFixedLength
	case f.DetachedPrefix != "":
		return PrefixDetachedLength
	case f.LengthPrefix != nil:
		return PrefixExternalLength
	default:
		return PrefixNone
	}
}

func (f *DataField) MinLength() uint64 {
	if f.PrefixKind() == PrefixFixedLength {
		return f.FixedLength
	}

	return 0
}

func (f *DataField) MaxLength() uint64 {
	if f.PrefixKind() == PrefixFixedLength {
		return f.FixedLength
	}

	return MaxWireLength
}

// ListField is the List field variant.
type ListField struct {
	Prologue

	Element            Field
	FixedCount         uint64
	CountPrefix        Field
	LengthPrefix       Field
	DetachedCountName  string
	DetachedLengthName string
	ElementFixedLength bool
	ElementLengthPrefix Field
	TerminationSuffix  []byte
}

func (f *ListField) Kind() FieldKind   { return KindList }
func (f *ListField) Common() *Prologue { return &f.Prologue }

// HasFixedShape reports whether both the element count and each element's
// length are statically known, making the whole list fixed-length.
func (f *ListField) HasFixedShape() bool {
	return f.FixedCount > 0 && f.ElementFixedLength
}

func (f *ListField) MinLength() uint64 {
	if f.FixedCount > 0 {
		return saturatingAdd(0, f.FixedCount*f.Element.MinLength())
	}

	return 0
}

func (f *ListField) MaxLength() uint64 {
	if f.HasFixedShape() {
		elem := f.Element.MaxLength()
		if elem != 0 && f.FixedCount > MaxWireLength/elem {
			return MaxWireLength
		}

		return f.FixedCount * elem
	}

	return MaxWireLength
}

// RefField is the Ref field variant: a reference to another named field,
// which may only override the bit length when used inside a Bitfield.
type RefField struct {
	Prologue

	Target            Field
	TargetName        string
	BitLengthOverride uint
}

func (f *RefField) Kind() FieldKind   { return KindRef }
func (f *RefField) Common() *Prologue { return &f.Prologue }

func (f *RefField) MinLength() uint64 {
	if f.BitLengthOverride > 0 {
		return 0
	}

	if f.Target != nil {
		return f.Target.MinLength()
	}

	return 0
}

func (f *RefField) MaxLength() uint64 {
	if f.BitLengthOverride > 0 {
		return 0
	}

	if f.Target != nil {
		return f.Target.MaxLength()
	}

	return 0
}

// OptionalMode selects the runtime presence semantics of an Optional field.
type OptionalMode int

// The three optional modes.
const (
	OptionalTentative OptionalMode = iota
	OptionalMissing
	OptionalExists
)

// OptionalField is the Optional field variant: an inner field present only
// when its condition holds.
type OptionalField struct {
	Prologue

	Inner Field
	Mode  OptionalMode
	Cond  *Cond
}

func (f *OptionalField) Kind() FieldKind   { return KindOptional }
func (f *OptionalField) Common() *Prologue { return &f.Prologue }

func (f *OptionalField) MinLength() uint64 {
	return 0
}

func (f *OptionalField) MaxLength() uint64 {
	if f.Inner != nil {
		return f.Inner.MaxLength()
	}

	return 0
}

// VariantMember is one alternative of a Variant field.
type VariantMember struct {
	Field Field
}

// VariantField is the Variant field variant: a tagged union of member
// alternatives.
type VariantField struct {
	Prologue

	Members      []VariantMember
	DefaultIndex int // -1 when unset
	IndexHidden  bool
}

func (f *VariantField) Kind() FieldKind   { return KindVariant }
func (f *VariantField) Common() *Prologue { return &f.Prologue }

func (f *VariantField) MinLength() uint64 {
	var min uint64 = MaxWireLength

	for _, m := range f.Members {
		if l := m.Field.MinLength(); l < min {
			min = l
		}
	}

	if len(f.Members) == 0 {
		return 0
	}

	return min
}

func (f *VariantField) MaxLength() uint64 {
	var max uint64

	for _, m := range f.Members {
		if l := m.Field.MaxLength(); l > max {
			max = l
		}
	}

	return max
}
