package ast

import "dada/internal/source"

// ItemKind classifies a top-level item.
type ItemKind uint8

const (
	ItemInvalid ItemKind = iota
	ItemClass
	ItemFunction
	ItemUse
)

func (k ItemKind) String() string {
	switch k {
	case ItemClass:
		return "class"
	case ItemFunction:
		return "function"
	case ItemUse:
		return "use"
	default:
		return "invalid"
	}
}

// GenericParamKind distinguishes the kind of a declared generic parameter.
type GenericParamKind uint8

const (
	GenericKindInvalid GenericParamKind = iota
	GenericKindType
	GenericKindPerm
)

// GenericParamSyn is a syntactic `[type T, perm P]`-style declared parameter.
type GenericParamSyn struct {
	Kind GenericParamKind
	Name source.StringID
	Span source.Span
}

// FieldSyn is a syntactic class/struct field declaration.
type FieldSyn struct {
	Name source.StringID
	Type TypeExprID
	Span source.Span
}

// ClassDecl is a syntactic class/struct declaration (`class C[type T] { f: T }`).
type ClassDecl struct {
	Name     source.StringID
	Generics []GenericParamSyn
	Fields   []FieldSyn
	Span     source.Span
}

// FnParamSyn is a syntactic function parameter. Generic parameters declared
// inline in the parameter list (`fn foo(v: Vec[type T])`) are recorded on the
// owning FunctionDecl's Generics instead of here.
type FnParamSyn struct {
	Name source.StringID
	Type TypeExprID
	Span source.Span
}

// FunctionDecl is a syntactic function declaration.
type FunctionDecl struct {
	Name       source.StringID
	Generics   []GenericParamSyn
	Params     []FnParamSyn
	ReturnType TypeExprID // NoTypeExprID means an implicit unit return
	Body       ExprID     // NoExprID for bodiless (extern) declarations
	Span       source.Span
}

// UseDecl is a syntactic `use path [as name]` import.
type UseDecl struct {
	Path  []source.StringID
	Alias source.StringID // NoStringID when no `as` clause is present
	Span  source.Span
}

// Item is a tagged union over the three top-level item shapes.
type Item struct {
	Kind     ItemKind
	Span     source.Span
	Class    *ClassDecl
	Function *FunctionDecl
	Use      *UseDecl
}

// File is the parsed top-level unit for one source file: an ordered list of
// items, mirroring how the upstream parser groups a file's declarations.
type File struct {
	SourceFile source.FileID
	Items      []ItemID
	Span       source.Span
}
