package ir

import "github.com/commschamp/dslgen/pkg/textpos"

// Layer is implemented by every one of the seven layer variants.
type Layer interface {
	Kind() LayerKind
	Common() *LayerCommon
}

// LayerCommon is the state shared by every layer variant: name,
// description, and either a referenced or inlined field (every variant
// except Payload must carry one).
type LayerCommon struct {
	Name           string
	DisplayNameRaw string
	Description    string
	FieldRef       string // unresolved "reuse"-style reference, if given by name
	Field          Field  // resolved (or inlined) field; nil for Payload
	Pos            textpos.Pos
}

// DisplayName returns the explicit display name, falling back to Name.
func (l *LayerCommon) DisplayName() string {
	if l.DisplayNameRaw != "" {
		return l.DisplayNameRaw
	}

	return l.Name
}

// PayloadLayer marks the message body's position within a frame.
type PayloadLayer struct{ LayerCommon }

func (l *PayloadLayer) Kind() LayerKind      { return LayerPayload }
func (l *PayloadLayer) Common() *LayerCommon { return &l.LayerCommon }

// IDLayer encodes the message discriminator.
type IDLayer struct{ LayerCommon }

func (l *IDLayer) Kind() LayerKind      { return LayerID }
func (l *IDLayer) Common() *LayerCommon { return &l.LayerCommon }

// SizeLayer encodes the length of the bytes that follow it.
type SizeLayer struct {
	LayerCommon
	// SerOffset adjusts the encoded size relative to the actual remaining
	// byte count (e.g. to exclude a trailing checksum).
	SerOffset int64
}

func (l *SizeLayer) Kind() LayerKind      { return LayerSize }
func (l *SizeLayer) Common() *LayerCommon { return &l.LayerCommon }

// SyncLayer is a fixed-value prefix with no runtime-visible field value.
type SyncLayer struct{ LayerCommon }

func (l *SyncLayer) Kind() LayerKind      { return LayerSync }
func (l *SyncLayer) Common() *LayerCommon { return &l.LayerCommon }

// ChecksumLayer validates a range of earlier layers.
type ChecksumLayer struct {
	LayerCommon
	Algorithm string
	From      string // layer name
	Until     string // layer name
	FromLayer Layer
	UntilLayer Layer
	VerifyBeforeRead bool
}

func (l *ChecksumLayer) Kind() LayerKind      { return LayerChecksum }
func (l *ChecksumLayer) Common() *LayerCommon { return &l.LayerCommon }

// ValueLayer exposes a field as accessible transport metadata on the
// interface, without contributing a length to the frame by itself.
type ValueLayer struct {
	LayerCommon
	Interfaces         []string
	InterfaceFieldName string
	PseudoField        bool
}

func (l *ValueLayer) Kind() LayerKind      { return LayerValue }
func (l *ValueLayer) Common() *LayerCommon { return &l.LayerCommon }

// CustomLayer is a user-supplied layer, optionally replacing the Id layer's
// role in dispatch.
type CustomLayer struct {
	LayerCommon
	Checkpoint   bool
	IDReplacement bool
	SemanticLayerType LayerKind
}

func (l *CustomLayer) Kind() LayerKind      { return LayerCustom }
func (l *CustomLayer) Common() *LayerCommon { return &l.LayerCommon }

// Frame is a named ordered sequence of layers wrapping a message on the
// wire.
type Frame struct {
	Name            string
	DisplayNameRaw  string
	Description     string
	Layers          []Layer
	SinceVersion    uint
	DeprecatedSince uint
	Pos             textpos.Pos
}

// DisplayName returns the explicit display name, falling back to Name.
func (f *Frame) DisplayName() string {
	if f.DisplayNameRaw != "" {
		return f.DisplayNameRaw
	}

	return f.Name
}

// PayloadIndex returns the index of this frame's Payload layer, or -1 if
// none is present (a validation error by itself, caught by the driver).
func (f *Frame) PayloadIndex() int {
	for i, l := range f.Layers {
		if l.Kind() == LayerPayload {
			return i
		}
	}

	return -1
}

// LayerByName looks up a layer of this frame by name.
func (f *Frame) LayerByName(name string) (Layer, bool) {
	for _, l := range f.Layers {
		if l.Common().Name == name {
			return l, true
		}
	}

	return nil, false
}
