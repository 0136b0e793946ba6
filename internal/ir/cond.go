package ir

import "github.com/commschamp/dslgen/pkg/textpos"

// CondOp is a comparison operator usable inside a <cond> expression.
type CondOp int

// Operators, in the longest-match-first tokenisation order spec.md §4.5
// requires (!=, >=, <=, =, >, <). The order here is declaration order, not
// match order; the tokenizer in internal/condexpr owns match order.
const (
	CondEq CondOp = iota
	CondNe
	CondLt
	CondLe
	CondGt
	CondGe
	CondNot  // leading "!", single dereference operand, no rhs
	CondTrue // bare dereference operand, no operator and no negation, e.g. "$Flags.HasName"
)

// OperandKind classifies one side of a Cond expression.
type OperandKind int

// The three operand classifications from spec.md §4.5.
const (
	OperandLiteral OperandKind = iota
	OperandInterfaceField
	OperandSiblingRef
)

// DerefSuffix names the special ".size" / ".exists" suffix of a dereference
// operand, when present.
type DerefSuffix int

// Dereference suffixes.
const (
	DerefNone DerefSuffix = iota
	DerefSize
	DerefExists
)

// Operand is one side of a Cond expression: either a literal value or a
// reference (a dereference, possibly suffixed with .size/.exists).
type Operand struct {
	Kind   OperandKind
	Raw    string      // operand text without its "$"/"$$" prefix or .size/.exists suffix, e.g. "Flags.HasName" or "42"
	Suffix DerefSuffix
	// Resolved is filled in by internal/condexpr once binding succeeds.
	Resolved Field
}

// CondNodeKind distinguishes the two kinds of OptCond tree node.
type CondNodeKind int

// The two OptCond node kinds: a leaf expression, or an AND/OR compound.
const (
	CondNodeExpr CondNodeKind = iota
	CondNodeAnd
	CondNodeOr
)

// Cond is a node of the OptCond expression tree (spec.md §3). Expr nodes
// carry Op/LHS/RHS (LHS empty and Op==CondNot for a negated-existence leaf
// "!$Field.exists"; LHS empty and Op==CondTrue for its positive counterpart
// "$Field.HasName"); And/Or nodes carry >= 2 Children.
type Cond struct {
	NodeKind CondNodeKind
	Op       CondOp
	LHS      Operand
	RHS      Operand
	Children []*Cond
	Pos      textpos.Pos
}

// IsLeaf reports whether this node is an Expr leaf (as opposed to an
// And/Or compound).
func (c *Cond) IsLeaf() bool {
	return c.NodeKind == CondNodeExpr
}
