package ir

// GenericTerm is the sum of Type, Permission, or Place that may be supplied
// as a generic argument. Its Kind must match the declared kind of the
// parameter it instantiates (checked during call/aggregate-construction
// checking; mismatches report KindMismatch).
type GenericTerm struct {
	Kind  GenericKind
	Type  TypeID
	Perm  PermissionID
	Place Place
}

// TypeTerm builds a GenericTerm wrapping a type.
func TypeTerm(t TypeID) GenericTerm { return GenericTerm{Kind: GenericKindType, Type: t} }

// PermTerm builds a GenericTerm wrapping a permission.
func PermTerm(p PermissionID) GenericTerm { return GenericTerm{Kind: GenericKindPermission, Perm: p} }

// PlaceTerm builds a GenericTerm wrapping a place.
func PlaceTerm(p Place) GenericTerm { return GenericTerm{Kind: GenericKindPlace, Place: p} }
