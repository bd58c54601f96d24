package ir

import (
	"dada/internal/ast"
	"dada/internal/diag"
	"dada/internal/source"
)

// CheckedPlaceKind classifies a resolved place-expression.
type CheckedPlaceKind uint8

const (
	CheckedPlaceInvalid CheckedPlaceKind = iota
	CheckedPlaceVariable
	CheckedPlaceField
	CheckedPlaceError
)

// CheckedPlace is a resolved lvalue: it carries both the structural Place
// (used by the permission machinery) and the type of the location.
type CheckedPlace struct {
	Kind  CheckedPlaceKind
	Base  *CheckedPlace   // CheckedPlaceField
	Field source.StringID // CheckedPlaceField
	Place Place
	Type  TypeID
	Span  source.Span
}

// CheckedExprKind classifies a node of the resolved expression tree, per
// §4.C's expression list.
type CheckedExprKind uint8

const (
	CheckedInvalid CheckedExprKind = iota
	CheckedLiteral
	CheckedPlaceExpr
	CheckedLet
	CheckedAssign
	CheckedSeq
	CheckedCall
	CheckedAggregate
	CheckedMatch
	CheckedTuple
	CheckedPermOp
	CheckedReturn
	CheckedAwait
	CheckedBinary
	CheckedUnary
	CheckedError
)

// CheckedAggregateField is one resolved `field: value` entry.
type CheckedAggregateField struct {
	Name  source.StringID
	Value *CheckedExpr
}

// CheckedMatchArm is one resolved match arm; pattern binding is applied by
// the checker and is not retained here since downstream consumers only need
// the per-arm body, already type-checked against the scrutinee.
type CheckedMatchArm struct {
	Pattern ast.Pattern
	Body    *CheckedExpr
}

// CheckedExpr is a node of the fully resolved expression tree produced by
// check_function_body. Every node carries a resolved Type (§4.C); a node
// whose subtree contains an error is typed as the error type and satisfies
// every predicate/subtype obligation vacuously (poisoning, §7).
type CheckedExpr struct {
	Kind CheckedExprKind
	Type TypeID
	Span source.Span

	LitKind ast.LiteralKind
	LitText string

	Mode  ast.PlaceMode
	Place *CheckedPlace

	LetLocal        LocalID
	LetDeclaredType TypeID
	LetInit         *CheckedExpr
	LetBody         *CheckedExpr

	AssignTarget *CheckedPlace
	AssignValue  *CheckedExpr

	SeqFirst  *CheckedExpr
	SeqSecond *CheckedExpr

	CallTarget       FunctionID
	CallSubstitution []GenericTerm
	CallArgs         []*CheckedExpr

	AggType   TypeID
	AggFields []CheckedAggregateField

	MatchScrutinee *CheckedExpr
	MatchArms      []CheckedMatchArm

	TupleElems []*CheckedExpr

	// CheckedPermOp: Operand re-typed under Perm, produced by give/lease/share
	// adjustment or an explicit permission-cast expression.
	PermOpPerm PermissionID

	// Operand is shared by CheckedPermOp, CheckedReturn, CheckedAwait, CheckedUnary.
	Operand *CheckedExpr

	BinOp ast.BinaryOp
	Left  *CheckedExpr
	Right *CheckedExpr

	UnOp ast.UnaryOp

	// CheckedError: the diagnostic whose emission poisoned this node.
	Reported *diag.Diagnostic
}

// IsErrorType reports whether t is the dedicated error type.
func (in *Interner) IsErrorType(t TypeID) bool {
	tt, ok := in.LookupType(t)
	return ok && tt.Kind == TypeError
}

// ErrorType returns (interning if needed) the error type.
func (in *Interner) ErrorType() TypeID {
	return in.InternType(Type{Kind: TypeError})
}

// ErrorPermission returns (interning if needed) the error permission.
func (in *Interner) ErrorPermission() PermissionID {
	return in.InternPermission(Permission{Kind: PermError})
}
