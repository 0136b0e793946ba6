// Package condexpr parses and verifies the <cond> expressions and
// <and>/<or> trees used by Optional fields (spec.md §4.5).
package condexpr

import (
	"strconv"
	"strings"

	"github.com/commschamp/dslgen/internal/diag"
	"github.com/commschamp/dslgen/internal/ir"
	"github.com/commschamp/dslgen/internal/resolve"
	"github.com/commschamp/dslgen/pkg/textpos"
)

// InterfaceRefPrefix marks an operand as a dereference into the enclosing
// interface's transport fields rather than a sibling of the current
// field's container. Plain sibling references use a single "$"; interface
// references use the doubled form to keep the grammar unambiguous without
// a separate token.
const InterfaceRefPrefix = "$$"

// operators, longest-match first, per spec.md §4.5.
var operators = []struct {
	text string
	op   ir.CondOp
}{
	{"!=", ir.CondNe},
	{">=", ir.CondGe},
	{"<=", ir.CondLe},
	{"=", ir.CondEq},
	{">", ir.CondGt},
	{"<", ir.CondLt},
}

// ParseExpr tokenises a single <cond> expression body into an Expr node.
// A leading "!" with a single operand yields a negated-existence check
// (Op==CondNot, RHS the dereference, LHS empty); a bare dereference operand
// with no operator at all (e.g. "$Flags.HasName") yields its positive
// counterpart (Op==CondTrue), mirroring original_source/lib/src/
// OptCondImpl.cpp's checkBool, which accepts a leading "$" on its own before
// falling back to requiring "!".
func ParseExpr(sink *diag.Sink, pos textpos.Pos, text string) *ir.Cond {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "!") {
		return &ir.Cond{
			NodeKind: ir.CondNodeExpr,
			Op:       ir.CondNot,
			RHS:      classifyOperand(strings.TrimSpace(text[1:])),
			Pos:      pos,
		}
	}

	for _, o := range operators {
		if idx := strings.Index(text, o.text); idx >= 0 {
			lhs := strings.TrimSpace(text[:idx])
			rhs := strings.TrimSpace(text[idx+len(o.text):])

			return &ir.Cond{
				NodeKind: ir.CondNodeExpr,
				Op:       o.op,
				LHS:      classifyOperand(lhs),
				RHS:      classifyOperand(rhs),
				Pos:      pos,
			}
		}
	}

	if strings.HasPrefix(text, "$") {
		return &ir.Cond{
			NodeKind: ir.CondNodeExpr,
			Op:       ir.CondTrue,
			RHS:      classifyOperand(text),
			Pos:      pos,
		}
	}

	sink.Errorf(diag.KindConditionError, pos, "condition expression %q has no recognised operator", text)

	return &ir.Cond{NodeKind: ir.CondNodeExpr, Op: ir.CondNot, RHS: classifyOperand(text), Pos: pos}
}

func classifyOperand(text string) ir.Operand {
	switch {
	case strings.HasPrefix(text, InterfaceRefPrefix):
		raw := strings.TrimPrefix(text, InterfaceRefPrefix)
		kind, suffix := splitSuffix(raw)

		return ir.Operand{Kind: ir.OperandInterfaceField, Raw: kind, Suffix: suffix}
	case strings.HasPrefix(text, "$"):
		raw := strings.TrimPrefix(text, "$")
		kind, suffix := splitSuffix(raw)

		return ir.Operand{Kind: ir.OperandSiblingRef, Raw: kind, Suffix: suffix}
	default:
		return ir.Operand{Kind: ir.OperandLiteral, Raw: text}
	}
}

func splitSuffix(raw string) (string, ir.DerefSuffix) {
	switch {
	case strings.HasSuffix(raw, ".size"):
		return strings.TrimSuffix(raw, ".size"), ir.DerefSize
	case strings.HasSuffix(raw, ".exists"):
		return strings.TrimSuffix(raw, ".exists"), ir.DerefExists
	default:
		return raw, ir.DerefNone
	}
}

// TreeNode is the minimal view of an XML node ParseTree needs: its tag
// name, its direct text (for a <cond> leaf), and its children (for
// <and>/<or> compounds). internal/parse adapts xmladapter.Node to this to
// avoid a dependency cycle.
type TreeNode interface {
	TagName() string
	DirectText() string
	ChildNodes() []TreeNode
	SourcePos() textpos.Pos
}

// ParseTree parses a <cond>/<and>/<or> node (and its children, recursively)
// into an OptCond tree. Each And/Or compound must have at least two
// children, per spec.md §4.5.
func ParseTree(sink *diag.Sink, n TreeNode) *ir.Cond {
	switch n.TagName() {
	case "cond":
		return ParseExpr(sink, n.SourcePos(), n.DirectText())
	case "and", "or":
		children := n.ChildNodes()
		if len(children) < 2 {
			sink.Errorf(diag.KindConditionError, n.SourcePos(), "<%s> requires at least two children", n.TagName())
		}

		kind := ir.CondNodeAnd
		if n.TagName() == "or" {
			kind = ir.CondNodeOr
		}

		node := &ir.Cond{NodeKind: kind, Pos: n.SourcePos()}
		for _, c := range children {
			node.Children = append(node.Children, ParseTree(sink, c))
		}

		return node
	default:
		sink.Errorf(diag.KindConditionError, n.SourcePos(), "unexpected condition element <%s>", n.TagName())
		return &ir.Cond{NodeKind: ir.CondNodeExpr, Pos: n.SourcePos()}
	}
}

// Verify binds every reference inside cond to a concrete field (via the
// reference resolver) and checks operand compatibility, per spec.md §4.5.
// siblings is the field's immediate container's member list (for sibling
// refs); interfaceFields is the owning interface's transport field list
// (for interface-field refs); both may be nil if not applicable in
// context.
func Verify(sink *diag.Sink, cond *ir.Cond, siblings, interfaceFields []ir.Field) {
	if cond == nil {
		return
	}

	if !cond.IsLeaf() {
		for _, c := range cond.Children {
			Verify(sink, c, siblings, interfaceFields)
		}

		return
	}

	if cond.Op == ir.CondNot {
		bindAndCheckExistence(sink, cond.Pos, &cond.RHS, siblings, interfaceFields)
		return
	}

	if cond.Op == ir.CondTrue {
		bindOperand(sink, cond.Pos, &cond.RHS, siblings, interfaceFields)
		return
	}

	bindOperand(sink, cond.Pos, &cond.LHS, siblings, interfaceFields)
	bindOperand(sink, cond.Pos, &cond.RHS, siblings, interfaceFields)

	checkComparable(sink, cond)
}

func bindOperand(sink *diag.Sink, pos textpos.Pos, op *ir.Operand, siblings, interfaceFields []ir.Field) {
	if op.Kind == ir.OperandLiteral {
		return
	}

	pool := siblings
	if op.Kind == ir.OperandInterfaceField {
		pool = interfaceFields
	}

	res, err := resolve.FromSiblings(pool, op.Raw)
	if err != nil {
		sink.Errorf(diag.KindConditionError, pos, "condition references unknown field %q", op.Raw)
		return
	}

	op.Resolved = res.Field

	if op.Suffix == ir.DerefSize {
		switch res.Field.Kind() {
		case ir.KindList, ir.KindString, ir.KindData:
		default:
			sink.Errorf(diag.KindConditionError, pos, "%q does not support .size (not a list/string/data field)", op.Raw)
		}
	}

	if op.Suffix == ir.DerefExists && res.Field.Kind() != ir.KindOptional {
		sink.Errorf(diag.KindConditionError, pos, "%q does not support .exists (not an optional field)", op.Raw)
	}
}

func bindAndCheckExistence(sink *diag.Sink, pos textpos.Pos, op *ir.Operand, siblings, interfaceFields []ir.Field) {
	bindOperand(sink, pos, op, siblings, interfaceFields)

	if op.Resolved != nil && op.Resolved.Kind() != ir.KindOptional {
		sink.Errorf(diag.KindConditionError, pos, "negated condition %q requires an optional field", op.Raw)
	}
}

// checkComparable enforces spec.md §4.5's comparability rule: both sides
// comparable-to-value when one is a literal, or matching classifications
// otherwise.
func checkComparable(sink *diag.Sink, cond *ir.Cond) {
	lhsLiteral := cond.LHS.Kind == ir.OperandLiteral
	rhsLiteral := cond.RHS.Kind == ir.OperandLiteral

	if lhsLiteral && rhsLiteral {
		return
	}

	if lhsLiteral {
		checkLiteralCompatible(sink, cond.Pos, cond.RHS, cond.LHS.Raw)
		return
	}

	if rhsLiteral {
		checkLiteralCompatible(sink, cond.Pos, cond.LHS, cond.RHS.Raw)
		return
	}

	if cond.LHS.Resolved != nil && cond.RHS.Resolved != nil && cond.LHS.Resolved.Kind() != cond.RHS.Resolved.Kind() {
		sink.Errorf(diag.KindConditionError, cond.Pos,
			"incompatible operand kinds: %s vs %s", cond.LHS.Resolved.Kind(), cond.RHS.Resolved.Kind())
	}
}

func checkLiteralCompatible(sink *diag.Sink, pos textpos.Pos, ref ir.Operand, literal string) {
	if ref.Resolved == nil {
		return
	}

	switch ref.Resolved.Kind() {
	case ir.KindInt, ir.KindEnum, ir.KindSet:
		if ref.Suffix == ir.DerefNone {
			if _, err := strconv.ParseInt(literal, 0, 64); err != nil {
				if _, ok := ref.Resolved.(*ir.EnumField); !ok {
					sink.Errorf(diag.KindConditionError, pos, "literal %q is not a valid integer for comparison", literal)
				}
			}

			return
		}
	case ir.KindFloat:
		if _, err := strconv.ParseFloat(literal, 64); err != nil {
			sink.Errorf(diag.KindConditionError, pos, "literal %q is not a valid float for comparison", literal)
		}

		return
	}

	if ref.Suffix == ir.DerefSize {
		if _, err := strconv.ParseUint(literal, 0, 64); err != nil {
			sink.Errorf(diag.KindConditionError, pos, "literal %q is not a valid size for comparison", literal)
		}
	}
}
