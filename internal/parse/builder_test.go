package parse

import (
	"strings"
	"testing"

	"github.com/commschamp/dslgen/internal/diag"
	"github.com/commschamp/dslgen/internal/ir"
	"github.com/commschamp/dslgen/pkg/testsupport"
)

const minimalSchema = `
<schema name="Proto" id="1" version="2" dslVersion="1">
  <fields>
    <int name="version" type="uint8"/>
  </fields>
  <interface name="Message">
    <int name="msgId" type="uint8" semanticType="messageId"/>
  </interface>
  <message name="Ping" id="1" interface="Message">
    <int name="seq" type="uint16"/>
  </message>
</schema>
`

func TestLoadFileAndFinalizeBuildsSchema(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	b := NewBuilder(sink)

	err := b.LoadFile("proto.xml", strings.NewReader(minimalSchema))
	testsupport.NoError(t, err)

	schema, ok := b.Finalize()
	testsupport.True(t, ok, "expected a minimal well-formed schema to finalize cleanly")

	testsupport.Equal(t, "Proto", schema.Name)
	testsupport.Equal(t, uint(1), schema.ID)
	testsupport.Equal(t, uint(2), schema.Version)

	_, hasField := schema.Root.Field("version")
	testsupport.True(t, hasField, "expected the root-level version field to be registered")

	messages := schema.AllMessages()
	testsupport.Equal(t, 1, len(messages))
	testsupport.Equal(t, "Ping", messages[0].Name)
}

func TestLoadFileRejectsNonSchemaRoot(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	b := NewBuilder(sink)

	err := b.LoadFile("bad.xml", strings.NewReader(`<notschema/>`))
	testsupport.Error(t, err)
}

func TestFinalizeFailsOnDuplicateFieldName(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	b := NewBuilder(sink)

	const dupSchema = `
<schema name="Proto" id="1" version="1" dslVersion="1">
  <fields>
    <int name="a" type="uint8"/>
    <int name="a" type="uint8"/>
  </fields>
</schema>
`

	err := b.LoadFile("proto.xml", strings.NewReader(dupSchema))
	testsupport.NoError(t, err)

	_, ok := b.Finalize()
	testsupport.True(t, !ok, "expected a duplicate top-level field name to fail finalization")
}

func TestFinalizeResolvesReuse(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	b := NewBuilder(sink)

	const reuseSchema = `
<schema name="Proto" id="1" version="1" dslVersion="1">
  <fields>
    <int name="base" type="uint32" defaultValue="7"/>
    <int name="derived" reuse="base"/>
  </fields>
</schema>
`

	err := b.LoadFile("proto.xml", strings.NewReader(reuseSchema))
	testsupport.NoError(t, err)

	schema, ok := b.Finalize()
	testsupport.True(t, ok, "expected reuse= of a matching field kind to resolve cleanly")

	derived, ok := schema.Root.Field("derived")
	testsupport.True(t, ok, "expected the derived field to be registered")

	di, ok := derived.(*ir.IntField)
	testsupport.True(t, ok, "expected derived to still be an IntField after reuse=")
	testsupport.Equal(t, int64(7), di.Default)
}

func TestFinalizeRejectsReuseAcrossFieldKinds(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	b := NewBuilder(sink)

	const mismatchedReuseSchema = `
<schema name="Proto" id="1" version="1" dslVersion="1">
  <fields>
    <int name="base" type="uint32"/>
    <string name="derived" reuse="base"/>
  </fields>
</schema>
`

	err := b.LoadFile("proto.xml", strings.NewReader(mismatchedReuseSchema))
	testsupport.NoError(t, err)

	_, ok := b.Finalize()
	testsupport.True(t, !ok, "expected reuse= across incompatible field kinds to fail")
}
