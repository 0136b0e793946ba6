package emit

import (
	"testing"

	"github.com/commschamp/dslgen/internal/ir"
	"github.com/commschamp/dslgen/pkg/testsupport"
)

func TestBuildFieldDataIntAccessor(t *testing.T) {
	f := &ir.IntField{Prologue: ir.Prologue{Name: "counter"}, Width: ir.Int32}

	d := BuildFieldData(f)

	testsupport.Equal(t, "counter", d.Name)
	testsupport.Equal(t, "int", d.Kind)
	testsupport.True(t, d.AccessorBody != "", "expected a non-empty accessor body for an int field")
	testsupport.Equal(t, "func (f *Counter) Value() int64 { return f.value }\n"+
		"func (f *Counter) SetValue(v int64) { f.value = v }\n", d.AccessorBody)
}

func TestBuildFieldDataEnumSubstitutesUnderlyingType(t *testing.T) {
	f := &ir.EnumField{
		Prologue:   ir.Prologue{Name: "status"},
		Underlying: ir.Int16,
		Signed:     false,
	}

	d := BuildFieldData(f)

	testsupport.Equal(t, "func (f *Status) Value() uint16 { return f.value }\n"+
		"func (f *Status) Valid() bool { return StatusValueValid(f.value) }\n", d.AccessorBody)
}

func TestBuildFieldDataDocFallsBackToEmptyWithoutDescription(t *testing.T) {
	f := &ir.IntField{Prologue: ir.Prologue{Name: "plain"}}

	d := BuildFieldData(f)

	testsupport.Equal(t, "", d.Doc)
}

func TestFieldDocFormatsMultilineDescription(t *testing.T) {
	d := FieldData{Description: "line one\nline two"}

	doc := FieldDoc(d)

	testsupport.Equal(t, "// line one\n// line two\n", doc)
}

func TestGoNameTitleCasesFirstRune(t *testing.T) {
	testsupport.Equal(t, "Counter", goName("counter"))
	testsupport.Equal(t, "", goName(""))
}
