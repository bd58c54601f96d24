package ast

import "dada/internal/source"

// PlaceSyn is the syntactic form of a place: a base identifier followed by
// zero or more field accesses (`x`, `x.f`, `x.f.g`).
type PlaceSyn struct {
	Base   source.StringID
	Fields []source.StringID
	Span   source.Span
}

// PermExprKind classifies a syntactic permission reference.
type PermExprKind uint8

const (
	PermExprInvalid PermExprKind = iota
	PermExprMy
	PermExprOur
	PermExprMut
	PermExprRef
	PermExprVar
	PermExprError
)

// PermExpr is the syntactic form of a permission as written in source, e.g.
// `my`, `our`, `mut[p]`, `ref[p, q]`, or a bound generic permission name.
type PermExpr struct {
	Kind   PermExprKind
	Places []PlaceSyn      // populated for PermExprMut / PermExprRef
	Name   source.StringID // populated for PermExprVar
	Span   source.Span
}

// TypeExprKind classifies a syntactic type reference.
type TypeExprKind uint8

const (
	TypeExprInvalid TypeExprKind = iota
	TypeExprNamed
	TypeExprPerm
	TypeExprVar
	TypeExprError
)

// GenericArgKind classifies a generic argument's syntactic slot.
type GenericArgKind uint8

const (
	GenericArgInvalid GenericArgKind = iota
	GenericArgType
	GenericArgPerm
	GenericArgPlace
)

// GenericArgExpr is one generic argument supplied at a use site
// (`Vec[type T]`, `Cell[perm P]`, a bound place in an instantiation).
type GenericArgExpr struct {
	Kind  GenericArgKind
	Type  TypeExprID
	Perm  PermExprID
	Place PlaceSyn
	Span  source.Span
}

// TypeExpr is the syntactic form of a type as written in source: a bare name
// with generic arguments, a permission applied to an inner type
// (`mut[p] String`), a reference to a generic type parameter, or an error
// placeholder for recovery.
type TypeExpr struct {
	Kind        TypeExprKind
	Name        source.StringID // TypeExprNamed / TypeExprVar
	GenericArgs []GenericArgExpr
	Perm        PermExprID // TypeExprPerm
	Inner       TypeExprID // TypeExprPerm
	Span        source.Span
}
