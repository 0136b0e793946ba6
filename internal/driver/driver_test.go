package driver

import (
	"testing"

	"github.com/commschamp/dslgen/internal/diag"
	"github.com/commschamp/dslgen/internal/ir"
	"github.com/commschamp/dslgen/pkg/testsupport"
)

func newSchema() *ir.Schema {
	return ir.NewSchema()
}

func addMessage(s *ir.Schema, name string, id int64, sender ir.Sender, platforms []string) *ir.Message {
	m := &ir.Message{Name: name, ID: id, Sender: sender, Platforms: platforms}
	s.Root.AddMessage(m)
	return m
}

func TestRunRejectsDuplicateMessageID(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	schema := newSchema()

	addMessage(schema, "Ping", 1, ir.SenderBoth, nil)
	addMessage(schema, "Pong", 1, ir.SenderBoth, nil)

	Run(sink, schema)

	testsupport.True(t, sink.HadError(), "expected a duplicate message id to be reported")
}

func TestRunAllowsDuplicateIDsAcrossDisjointPlatforms(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	schema := newSchema()

	addMessage(schema, "Ping", 1, ir.SenderBoth, []string{"linux"})
	addMessage(schema, "Pong", 1, ir.SenderBoth, []string{"windows"})

	Run(sink, schema)

	testsupport.True(t, !sink.HadError(), "expected platform-disjoint duplicate ids to be allowed")
}

func TestRunHonoursNonUniqueMsgIDAllowed(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	schema := newSchema()
	schema.NonUniqueMsgIDAllowed = true

	addMessage(schema, "Ping", 1, ir.SenderBoth, nil)
	addMessage(schema, "Pong", 1, ir.SenderBoth, nil)

	Run(sink, schema)

	testsupport.True(t, !sink.HadError(), "expected NonUniqueMsgIDAllowed to suppress the check")
}

func TestRunRejectsMultipleMessageIDFieldsOnInterface(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	schema := newSchema()

	iface := &ir.Interface{
		Name: "Transport",
		Fields: []ir.Field{
			&ir.IntField{Prologue: ir.Prologue{Name: "id1", SemanticType: ir.SemanticMessageID}},
			&ir.IntField{Prologue: ir.Prologue{Name: "id2", SemanticType: ir.SemanticMessageID}},
		},
	}
	schema.Root.AddInterface(iface)

	Run(sink, schema)

	testsupport.True(t, sink.HadError(), "expected more than one semanticType=MessageId field to be rejected")
}

func TestRunAllowsSingleMessageIDField(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	schema := newSchema()

	iface := &ir.Interface{
		Name: "Transport",
		Fields: []ir.Field{
			&ir.IntField{Prologue: ir.Prologue{Name: "id", SemanticType: ir.SemanticMessageID}},
		},
	}
	schema.Root.AddInterface(iface)

	Run(sink, schema)

	testsupport.True(t, !sink.HadError(), "expected a single semanticType=MessageId field to be accepted")
}

func TestRunBindsChecksumFromUntilLayers(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	schema := newSchema()

	sync := &ir.SyncLayer{LayerCommon: ir.LayerCommon{Name: "sync"}}
	checksum := &ir.ChecksumLayer{
		LayerCommon: ir.LayerCommon{Name: "crc"},
		From:        "sync",
		Until:       "payload",
	}
	payload := &ir.PayloadLayer{LayerCommon: ir.LayerCommon{Name: "payload"}}

	frame := &ir.Frame{Name: "Frame1", Layers: []ir.Layer{sync, checksum, payload}}
	schema.Root.AddFrame(frame)

	Run(sink, schema)

	testsupport.True(t, !sink.HadError(), "expected a well-formed frame to validate cleanly")
	testsupport.True(t, checksum.FromLayer == ir.Layer(sync), "expected From to bind to the sync layer")
	testsupport.True(t, checksum.UntilLayer == ir.Layer(payload), "expected Until to bind to the payload layer")
}

func TestRunRejectsChecksumReferencingUnknownLayer(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	schema := newSchema()

	checksum := &ir.ChecksumLayer{
		LayerCommon: ir.LayerCommon{Name: "crc"},
		From:        "nope",
		Until:       "payload",
	}
	payload := &ir.PayloadLayer{LayerCommon: ir.LayerCommon{Name: "payload"}}

	frame := &ir.Frame{Name: "Frame1", Layers: []ir.Layer{checksum, payload}}
	schema.Root.AddFrame(frame)

	Run(sink, schema)

	testsupport.True(t, sink.HadError(), "expected an unresolvable checksum from= reference to be reported")
}

func TestRunRejectsChecksumOutOfOrderWithItsBounds(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	schema := newSchema()

	checksum := &ir.ChecksumLayer{
		LayerCommon: ir.LayerCommon{Name: "crc"},
		From:        "sync",
		Until:       "payload",
	}
	sync := &ir.SyncLayer{LayerCommon: ir.LayerCommon{Name: "sync"}}
	payload := &ir.PayloadLayer{LayerCommon: ir.LayerCommon{Name: "payload"}}

	// checksum appears before its own from= layer: from-precedes-checksum
	// does not hold even though both names resolve.
	frame := &ir.Frame{Name: "Frame1", Layers: []ir.Layer{checksum, sync, payload}}
	schema.Root.AddFrame(frame)

	Run(sink, schema)

	testsupport.True(t, sink.HadError(), "expected a checksum preceding its own from= layer to be rejected")
}

func TestRunRejectsLayerAfterPayload(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	schema := newSchema()

	payload := &ir.PayloadLayer{LayerCommon: ir.LayerCommon{Name: "payload"}}
	sync := &ir.SyncLayer{LayerCommon: ir.LayerCommon{Name: "sync"}}

	frame := &ir.Frame{Name: "Frame1", Layers: []ir.Layer{payload, sync}}
	schema.Root.AddFrame(frame)

	Run(sink, schema)

	testsupport.True(t, sink.HadError(), "expected a layer following the payload layer to be rejected")
}

func TestRunRejectsChecksumAfterPayload(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	schema := newSchema()

	payload := &ir.PayloadLayer{LayerCommon: ir.LayerCommon{Name: "payload"}}
	sync := &ir.SyncLayer{LayerCommon: ir.LayerCommon{Name: "sync"}}
	checksum := &ir.ChecksumLayer{
		LayerCommon: ir.LayerCommon{Name: "crc"},
		From:        "sync",
		Until:       "payload",
	}

	// scenario 6: a checksum layer placed after the payload layer is an
	// error, even though its from=/until= references both resolve.
	frame := &ir.Frame{Name: "Frame1", Layers: []ir.Layer{sync, payload, checksum}}
	schema.Root.AddFrame(frame)

	Run(sink, schema)

	testsupport.True(t, sink.HadError(), "expected a checksum layer following the payload layer to be rejected")
}

func TestRunRejectsMoreThanOnePayloadLayer(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	schema := newSchema()

	frame := &ir.Frame{
		Name: "Frame1",
		Layers: []ir.Layer{
			&ir.PayloadLayer{LayerCommon: ir.LayerCommon{Name: "payload1"}},
			&ir.PayloadLayer{LayerCommon: ir.LayerCommon{Name: "payload2"}},
		},
	}
	schema.Root.AddFrame(frame)

	Run(sink, schema)

	testsupport.True(t, sink.HadError(), "expected more than one payload layer to be rejected")
}

func TestRunRejectsFrameWithNoPayloadLayer(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	schema := newSchema()

	sync := &ir.SyncLayer{LayerCommon: ir.LayerCommon{Name: "sync"}}
	frame := &ir.Frame{Name: "Frame1", Layers: []ir.Layer{sync}}
	schema.Root.AddFrame(frame)

	Run(sink, schema)

	testsupport.True(t, sink.HadError(), "expected a frame with no payload layer to be rejected")
}
