// Package driver implements the protocol-wide cross-verification pass that
// runs once the IR is fully built and resolved (spec.md §4.6-§4.7): message
// id uniqueness among messages with the same sender and overlapping
// platforms (message order is not part of the key, and nothing is checked
// when the schema sets nonUniqueMsgIdAllowed), at most one MessageId
// semantic field per interface, and frame layer structure, none of which
// can be checked field-by-field during Phase B since they span sibling
// messages/frames. Platform names are checked against the schema's
// declared platforms when each message is parsed, not here.
package driver

import (
	"github.com/commschamp/dslgen/internal/diag"
	"github.com/commschamp/dslgen/internal/ir"
)

// Run performs every cross-entity check and binds the remaining
// same-frame-only references (ChecksumLayer.From/Until) that Phase B left
// unresolved because they name a sibling layer, not a namespace path.
func Run(sink *diag.Sink, schema *ir.Schema) {
	checkMessageIDs(sink, schema)
	checkInterfaceMessageIDField(sink, schema)

	for _, fr := range schema.AllFrames() {
		checkFrame(sink, fr)
	}
}

// checkMessageIDs enforces uniqueness of (id, sender, platform-overlap)
// tuples across the whole schema, unless the header opted into
// nonUniqueMsgIdAllowed.
func checkMessageIDs(sink *diag.Sink, schema *ir.Schema) {
	if schema.NonUniqueMsgIDAllowed {
		return
	}

	type key struct {
		id     int64
		sender ir.Sender
	}

	seen := map[key][]*ir.Message{}

	for _, m := range schema.AllMessages() {
		k := key{id: m.ID, sender: m.Sender}
		for _, other := range seen[k] {
			if platformsOverlap(m, other) {
				sink.Errorf(diag.KindSchemaRule, m.Pos,
					"message %q reuses id %d already used by message %q", m.Name, m.ID, other.Name)
			}
		}

		seen[k] = append(seen[k], m)
	}
}

func platformsOverlap(a, b *ir.Message) bool {
	if len(a.Platforms) == 0 || len(b.Platforms) == 0 {
		return true
	}

	for _, pa := range a.Platforms {
		for _, pb := range b.Platforms {
			if pa == pb {
				return true
			}
		}
	}

	return false
}

// checkInterfaceMessageIDField enforces that an interface carries at most
// one transport field semantically tagged MessageId, since that field is
// what the generated dispatch table keys on.
func checkInterfaceMessageIDField(sink *diag.Sink, schema *ir.Schema) {
	for _, iface := range schema.AllInterfaces() {
		var found *ir.Prologue

		for _, f := range iface.Fields {
			if f.Common().SemanticType != ir.SemanticMessageID {
				continue
			}

			if found != nil {
				sink.Errorf(diag.KindSchemaRule, f.Common().Pos,
					"interface %q: more than one field carries semanticType=MessageId (%q and %q)",
					iface.Name, found.Name, f.Common().Name)
				continue
			}

			found = f.Common()
		}
	}
}

// checkFrame binds ChecksumLayer.From/Until against the frame's own layer
// list and re-validates the Payload/Id/Size/Sync/Checksum/Value/Custom layer
// ordering conventions of spec.md §4.6-§4.7: the payload layer must be
// exactly one and must be the last layer in the frame, and a checksum's
// from= layer must precede it, which must precede its until= layer.
func checkFrame(sink *diag.Sink, fr *ir.Frame) {
	checkChecksumBindings(sink, fr)

	payloadCount := 0
	for _, l := range fr.Layers {
		if l.Kind() == ir.LayerPayload {
			payloadCount++
		}
	}

	if payloadCount != 1 {
		sink.Errorf(diag.KindSchemaRule, fr.Pos, "frame %q: exactly one payload layer is required, found %d", fr.Name, payloadCount)
	}

	payloadIdx := fr.PayloadIndex()
	if payloadIdx < 0 {
		return // already reported above
	}

	for i, l := range fr.Layers {
		if i > payloadIdx {
			sink.Errorf(diag.KindSchemaRule, l.Common().Pos,
				"frame %q: layer %q must precede the payload layer", fr.Name, l.Common().Name)
		}
	}
}

// checkChecksumBindings resolves every ChecksumLayer's from=/until= layer
// references within fr and verifies the from-precedes-checksum-precedes-
// until ordering of spec.md §4.6 step 3.
func checkChecksumBindings(sink *diag.Sink, fr *ir.Frame) {
	for i, l := range fr.Layers {
		cs, ok := l.(*ir.ChecksumLayer)
		if !ok {
			continue
		}

		fromIdx, fromOK := layerIndexByName(fr, cs.From)
		if !fromOK {
			sink.Errorf(diag.KindUnresolvedReference, cs.Pos, "frame %q: checksum %q: from=%q is not a layer of this frame", fr.Name, cs.Name, cs.From)
		} else {
			cs.FromLayer = fr.Layers[fromIdx]
		}

		untilIdx, untilOK := layerIndexByName(fr, cs.Until)
		if !untilOK {
			sink.Errorf(diag.KindUnresolvedReference, cs.Pos, "frame %q: checksum %q: until=%q is not a layer of this frame", fr.Name, cs.Name, cs.Until)
		} else {
			cs.UntilLayer = fr.Layers[untilIdx]
		}

		if fromOK && untilOK && !(fromIdx < i && i < untilIdx) {
			sink.Errorf(diag.KindSchemaRule, cs.Pos,
				"frame %q: checksum %q: from=%q must precede the checksum layer, which must precede until=%q",
				fr.Name, cs.Name, cs.From, cs.Until)
		}
	}
}

// layerIndexByName looks up a layer of fr by name, returning its position.
func layerIndexByName(fr *ir.Frame, name string) (int, bool) {
	for i, l := range fr.Layers {
		if l.Common().Name == name {
			return i, true
		}
	}

	return -1, false
}
