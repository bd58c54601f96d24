// Package ir defines the symbolic intermediate representation produced by
// the checking core: permissions, types, places, generic terms, and the
// resolved expression tree, plus the content-addressed interner that
// deduplicates types and permissions by structural identity.
package ir

// TypeID identifies an interned Type. Equal descriptors always produce
// equal IDs.
type TypeID uint32

// PermissionID identifies an interned Permission.
type PermissionID uint32

const (
	NoTypeID       TypeID       = 0
	NoPermissionID PermissionID = 0
)

func (id TypeID) IsValid() bool       { return id != NoTypeID }
func (id PermissionID) IsValid() bool { return id != NoPermissionID }

// Universe is an ordered level capturing which skolemized binder scopes a
// universal variable belongs to. An inference variable may only be assigned
// a value whose free universal variables live in its universe or an
// ancestor universe (lower-numbered).
type Universe int

// RootUniverse is the universe of top-level, unbound code.
const RootUniverse Universe = 0

// Nested returns the next universe inside u, used when entering a new
// binder scope (a class's generics, then a function's own generics).
func (u Universe) Nested() Universe { return u + 1 }

// Visible reports whether a variable living in u is nameable from a
// context whose own universe is from — i.e. u is from or an ancestor of it.
func (u Universe) Visible(from Universe) bool { return u <= from }

// BoundVarIndex indexes a generic parameter within the flat, declaration-order
// parameter list of a Signature binder (§4.B's SignatureSymbols).
type BoundVarIndex uint32

// InferVarID identifies an inference variable tracked by the inference
// engine's variable table (internal/infer). Defined here, rather than in
// that package, so ir.Type/ir.Permission can reference inference variables
// without importing the engine that owns their bookkeeping.
type InferVarID uint32

// GenericKind classifies what sort of term a generic parameter, argument, or
// inference variable stands for.
type GenericKind uint8

const (
	GenericKindInvalid GenericKind = iota
	GenericKindType
	GenericKindPermission
	GenericKindPlace
)

func (k GenericKind) String() string {
	switch k {
	case GenericKindType:
		return "type"
	case GenericKindPermission:
		return "perm"
	case GenericKindPlace:
		return "place"
	default:
		return "invalid"
	}
}
