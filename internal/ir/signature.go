package ir

import "dada/internal/source"

// GenericParam is one declared generic parameter, in the flat declaration
// order a Signature's binder closes over (class generics first, then the
// function's own, per §4.B's SignatureSymbols).
type GenericParam struct {
	Kind GenericKind
	Name source.StringID
	Span source.Span
}

// WhereClause constrains a bound generic variable to a required permission
// shape, the minimal form of signature constraint this core enforces.
type WhereClause struct {
	Var          BoundVarIndex
	RequiredPerm PermissionID
}

// FunctionID names a checked function or method. It numerically corresponds
// to a symbols.SymbolID; kept as a distinct type in ir to avoid an import
// cycle between ir and symbols.
type FunctionID uint32

// NoFunctionID marks the absence of a resolved callee.
const NoFunctionID FunctionID = 0

// Signature is the binder over a function's generic parameters, yielding
// its input types (positional, matched against call-site labels), its
// output type, and any where-clauses on its generics.
type Signature struct {
	Generics     []GenericParam
	InputNames   []source.StringID
	Inputs       []TypeID
	Output       TypeID
	WhereClauses []WhereClause
}
