package symbols

import "dada/internal/source"

// ScopeKind classifies a lexical frame.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	ScopeFile              // artificial root per parsed file
	ScopeModule            // module-level (top-level declarations)
	ScopeClass             // a class body's generic-parameter scope
	ScopeFunction          // function body scope: params + own generics
	ScopeBlock             // a nested block scope
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeFile:
		return "file"
	case ScopeModule:
		return "module"
	case ScopeClass:
		return "class"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope is one lexical frame in the scope stack. Lookups walk from the
// innermost scope to the outermost (§4.B).
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Span      source.Span
	NameIndex map[source.StringID][]SymbolID
	Symbols   []SymbolID
	Children  []ScopeID
}
