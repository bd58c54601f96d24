package symbols

import (
	"dada/internal/ir"
	"dada/internal/source"
)

// SymbolKind classifies what a Symbol names.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolModule
	SymbolImport
	SymbolClass
	SymbolFunction
	SymbolField
	SymbolMethod
	SymbolGenericParam
	SymbolLocal
	SymbolPrimitive
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolModule:
		return "module"
	case SymbolImport:
		return "import"
	case SymbolClass:
		return "class"
	case SymbolFunction:
		return "function"
	case SymbolField:
		return "field"
	case SymbolMethod:
		return "method"
	case SymbolGenericParam:
		return "generic-param"
	case SymbolLocal:
		return "local"
	case SymbolPrimitive:
		return "primitive"
	default:
		return "invalid"
	}
}

// ClassField is one field declared on a class symbol.
type ClassField struct {
	Name source.StringID
	Type ir.TypeID
	Span source.Span
}

// Symbol describes one named entity reachable from a scope.
type Symbol struct {
	Name  source.StringID
	Kind  SymbolKind
	Scope ScopeID
	Span  source.Span

	// SymbolFunction / SymbolMethod
	Signature *ir.Signature

	// SymbolClass
	Fields   []ClassField
	Generics []ir.GenericParam

	// SymbolGenericParam
	GenericIndex ir.BoundVarIndex
	GenericKind  ir.GenericKind

	// SymbolLocal / SymbolField (resolved type once known; may be NoTypeID
	// until the expression checker assigns it, e.g. `let` with no annotation)
	Type ir.TypeID

	// SymbolImport
	ImportPath  []source.StringID
	ImportAlias source.StringID
}
