package condexpr

import (
	"testing"

	"github.com/commschamp/dslgen/internal/diag"
	"github.com/commschamp/dslgen/internal/ir"
	"github.com/commschamp/dslgen/pkg/testsupport"
	"github.com/commschamp/dslgen/pkg/textpos"
)

func TestParseExprPicksLongestOperatorFirst(t *testing.T) {
	sink := diag.New(diag.Warning, nil)

	cond := ParseExpr(sink, textpos.Pos{}, "$version>=5")

	testsupport.True(t, !sink.HadError(), "expected no diagnostic errors")
	testsupport.Equal(t, ir.CondGe, cond.Op)
	testsupport.Equal(t, "version", cond.LHS.Raw)
	testsupport.Equal(t, "5", cond.RHS.Raw)
}

func TestParseExprNegatedExistence(t *testing.T) {
	sink := diag.New(diag.Warning, nil)

	cond := ParseExpr(sink, textpos.Pos{}, "!$flags.exists")

	testsupport.Equal(t, ir.CondNot, cond.Op)
	testsupport.Equal(t, ir.OperandSiblingRef, cond.RHS.Kind)
	testsupport.Equal(t, "flags", cond.RHS.Raw)
	testsupport.Equal(t, ir.DerefExists, cond.RHS.Suffix)
}

func TestParseExprBarePositiveBitCheck(t *testing.T) {
	sink := diag.New(diag.Warning, nil)

	cond := ParseExpr(sink, textpos.Pos{}, "$Flags.HasName")

	testsupport.True(t, !sink.HadError(), "expected no diagnostic errors")
	testsupport.Equal(t, ir.CondTrue, cond.Op)
	testsupport.Equal(t, "", cond.LHS.Raw)
	testsupport.Equal(t, ir.OperandSiblingRef, cond.RHS.Kind)
	testsupport.Equal(t, "Flags.HasName", cond.RHS.Raw)
}

func TestParseExprUnrecognisedOperatorReportsError(t *testing.T) {
	sink := diag.New(diag.Warning, nil)

	ParseExpr(sink, textpos.Pos{}, "garbage")

	testsupport.True(t, sink.HadError(), "expected an error for an operator-less condition")
}

func TestClassifyOperandDistinguishesInterfaceAndSiblingRefs(t *testing.T) {
	iface := classifyOperand("$$msgId")
	testsupport.Equal(t, ir.OperandInterfaceField, iface.Kind)
	testsupport.Equal(t, "msgId", iface.Raw)

	sibling := classifyOperand("$length")
	testsupport.Equal(t, ir.OperandSiblingRef, sibling.Kind)
	testsupport.Equal(t, "length", sibling.Raw)

	literal := classifyOperand("42")
	testsupport.Equal(t, ir.OperandLiteral, literal.Kind)
	testsupport.Equal(t, "42", literal.Raw)
}

func TestSplitSuffixStripsSizeAndExists(t *testing.T) {
	raw, suffix := splitSuffix("payload.size")
	testsupport.Equal(t, "payload", raw)
	testsupport.Equal(t, ir.DerefSize, suffix)

	raw, suffix = splitSuffix("opt.exists")
	testsupport.Equal(t, "opt", raw)
	testsupport.Equal(t, ir.DerefExists, suffix)

	raw, suffix = splitSuffix("plain")
	testsupport.Equal(t, "plain", raw)
	testsupport.Equal(t, ir.DerefNone, suffix)
}

// fakeNode is a minimal TreeNode for exercising ParseTree without going
// through xmladapter.
type fakeNode struct {
	tag      string
	text     string
	children []TreeNode
}

func (f *fakeNode) TagName() string       { return f.tag }
func (f *fakeNode) DirectText() string     { return f.text }
func (f *fakeNode) ChildNodes() []TreeNode { return f.children }
func (f *fakeNode) SourcePos() textpos.Pos { return textpos.Pos{} }

func TestParseTreeBuildsAndNode(t *testing.T) {
	sink := diag.New(diag.Warning, nil)

	root := &fakeNode{
		tag: "and",
		children: []TreeNode{
			&fakeNode{tag: "cond", text: "$a=1"},
			&fakeNode{tag: "cond", text: "$b=2"},
		},
	}

	cond := ParseTree(sink, root)

	testsupport.True(t, !sink.HadError(), "expected no diagnostic errors")
	testsupport.Equal(t, ir.CondNodeAnd, cond.NodeKind)
	testsupport.Equal(t, 2, len(cond.Children))
}

func TestParseTreeRejectsSingleChildCompound(t *testing.T) {
	sink := diag.New(diag.Warning, nil)

	root := &fakeNode{
		tag:      "or",
		children: []TreeNode{&fakeNode{tag: "cond", text: "$a=1"}},
	}

	ParseTree(sink, root)

	testsupport.True(t, sink.HadError(), "expected an error for a single-child <or>")
}

func TestParseTreeRejectsUnknownElement(t *testing.T) {
	sink := diag.New(diag.Warning, nil)

	ParseTree(sink, &fakeNode{tag: "xor"})

	testsupport.True(t, sink.HadError(), "expected an error for an unrecognised condition element")
}

func TestVerifyBindsSiblingReference(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	siblings := []ir.Field{
		&ir.IntField{Prologue: ir.Prologue{Name: "length"}},
	}

	cond := ParseExpr(sink, textpos.Pos{}, "$length=4")
	Verify(sink, cond, siblings, nil)

	testsupport.True(t, !sink.HadError(), "expected no diagnostic errors")
	testsupport.True(t, cond.LHS.Resolved != nil, "expected the sibling reference to resolve")
}

func TestVerifyReportsUnknownSiblingReference(t *testing.T) {
	sink := diag.New(diag.Warning, nil)

	cond := ParseExpr(sink, textpos.Pos{}, "$missing=4")
	Verify(sink, cond, nil, nil)

	testsupport.True(t, sink.HadError(), "expected an error for an unresolved sibling reference")
}

func TestVerifySizeSuffixRequiresSizableKind(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	siblings := []ir.Field{
		&ir.IntField{Prologue: ir.Prologue{Name: "count"}},
	}

	cond := ParseExpr(sink, textpos.Pos{}, "$count.size=4")
	Verify(sink, cond, siblings, nil)

	testsupport.True(t, sink.HadError(), "expected .size on a non-list/string/data field to be rejected")
}

func TestVerifyNegatedConditionRequiresOptional(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	siblings := []ir.Field{
		&ir.IntField{Prologue: ir.Prologue{Name: "count"}},
	}

	cond := ParseExpr(sink, textpos.Pos{}, "!$count")
	Verify(sink, cond, siblings, nil)

	testsupport.True(t, sink.HadError(), "expected negated-existence on a non-optional field to be rejected")
}

func TestVerifyBarePositiveBitCheckBindsWithoutOptionalRestriction(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	siblings := []ir.Field{
		&ir.SetField{Prologue: ir.Prologue{Name: "Flags"}},
	}

	cond := ParseExpr(sink, textpos.Pos{}, "$Flags")
	Verify(sink, cond, siblings, nil)

	testsupport.True(t, !sink.HadError(), "expected a bare positive bit-check against a non-optional field to be accepted")
	testsupport.Equal(t, siblings[0], cond.RHS.Resolved)
}

func TestVerifyRejectsNonIntegerLiteralAgainstIntField(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	siblings := []ir.Field{
		&ir.IntField{Prologue: ir.Prologue{Name: "count"}},
	}

	cond := ParseExpr(sink, textpos.Pos{}, "$count=notanumber")
	Verify(sink, cond, siblings, nil)

	testsupport.True(t, sink.HadError(), "expected a non-numeric literal compared to an int field to be rejected")
}

func TestVerifyInterfaceFieldUsesInterfacePool(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	interfaceFields := []ir.Field{
		&ir.IntField{Prologue: ir.Prologue{Name: "msgId"}},
	}

	cond := ParseExpr(sink, textpos.Pos{}, "$$msgId=7")
	Verify(sink, cond, nil, interfaceFields)

	testsupport.True(t, !sink.HadError(), "expected no diagnostic errors")
	testsupport.True(t, cond.LHS.Resolved != nil, "expected the interface reference to resolve against interfaceFields")
}
