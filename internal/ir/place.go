package ir

import (
	"strconv"

	"dada/internal/source"
)

// LocalID names the local variable or bound parameter a Place originates
// from. It numerically corresponds to a symbols.SymbolID; the two packages
// use independent ID types to avoid an import cycle between ir and symbols.
type LocalID uint32

// NoLocalID marks the absence of an originating local.
const NoLocalID LocalID = 0

// Place is a compile-time path denoting a memory location: a local variable
// or bound symbol, followed by zero or more field accesses. Semantic
// equality is structural, not interned — two Places with equal Base and
// Fields denote the same location regardless of identity.
type Place struct {
	Base   LocalID
	Fields []source.StringID
}

// Equal reports whether p and other denote the same place.
func (p Place) Equal(other Place) bool {
	if p.Base != other.Base || len(p.Fields) != len(other.Fields) {
		return false
	}
	for i := range p.Fields {
		if p.Fields[i] != other.Fields[i] {
			return false
		}
	}
	return true
}

// Extends reports whether p is other or a field projection reachable from
// other (i.e. other is a prefix of p's path). Used by the subtype/predicate
// machinery when checking whether a leased/ref'd place is "the same or a
// sub-place of" a bound's place.
func (p Place) Extends(other Place) bool {
	if p.Base != other.Base || len(p.Fields) < len(other.Fields) {
		return false
	}
	for i := range other.Fields {
		if p.Fields[i] != other.Fields[i] {
			return false
		}
	}
	return true
}

// String renders a Place for diagnostics/tracing, given an interner to
// resolve field identifiers; the base local is rendered numerically since
// resolving it to a source name requires the symbol table.
func (p Place) String(strings *source.Interner) string {
	s := localString(p.Base)
	for _, f := range p.Fields {
		name, ok := strings.Lookup(f)
		if !ok {
			name = "?"
		}
		s += "." + name
	}
	return s
}

func localString(id LocalID) string {
	if id == NoLocalID {
		return "<local>"
	}
	return "l" + strconv.FormatUint(uint64(id), 10)
}
