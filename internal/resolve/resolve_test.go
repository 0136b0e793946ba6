package resolve

import (
	"testing"

	"github.com/commschamp/dslgen/internal/ir"
	"github.com/commschamp/dslgen/pkg/testsupport"
)

func buildTestNamespace() *ir.Namespace {
	root := ir.NewNamespace("", nil)
	child := root.EnsureChild("transport")

	status := &ir.EnumField{
		Prologue:   ir.Prologue{Name: "status"},
		ValueIndex: map[string]int{},
	}
	status.Values = append(status.Values, ir.EnumValue{Named: ir.Named{Name: "Ok"}, Value: 0})
	status.ValueIndex["Ok"] = 0

	child.AddField(status)

	return root
}

func TestFromNamespaceResolvesField(t *testing.T) {
	root := buildTestNamespace()

	res, err := FromNamespace(root, "transport.status")

	testsupport.NoError(t, err)
	testsupport.Equal(t, ClassField, res.Class)
}

func TestFromNamespaceResolvesEnumValue(t *testing.T) {
	root := buildTestNamespace()

	res, err := FromNamespace(root, "transport.status.Ok")

	testsupport.NoError(t, err)
	testsupport.Equal(t, ClassEnumValue, res.Class)
	testsupport.Equal(t, "Ok", res.Name)
}

func TestFromNamespaceUnresolvedPath(t *testing.T) {
	root := buildTestNamespace()

	_, err := FromNamespace(root, "transport.nope")

	testsupport.Error(t, err)
}

func TestFromSiblingsResolvesByName(t *testing.T) {
	siblings := []ir.Field{
		&ir.IntField{Prologue: ir.Prologue{Name: "length"}},
		&ir.StringField{Prologue: ir.Prologue{Name: "name"}},
	}

	res, err := FromSiblings(siblings, "length")

	testsupport.NoError(t, err)
	testsupport.Equal(t, ClassField, res.Class)
}

func TestFromSiblingsSizeSuffixRequiresSizableKind(t *testing.T) {
	siblings := []ir.Field{
		&ir.StringField{Prologue: ir.Prologue{Name: "name"}},
		&ir.IntField{Prologue: ir.Prologue{Name: "length"}},
	}

	res, err := FromSiblings(siblings, "name.size")
	testsupport.NoError(t, err)
	testsupport.Equal(t, ClassSize, res.Class)

	_, err = FromSiblings(siblings, "length.size")
	testsupport.Error(t, err)
}
