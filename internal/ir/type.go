package ir

import "dada/internal/source"

// TypeKind enumerates the type variant, per the data model: a named type
// (primitive, aggregate, tuple, or the future constructor), a permission
// applied to a type, a generic variable, an inference variable, the
// uninhabited type, or the error placeholder.
type TypeKind uint8

const (
	TypeInvalid TypeKind = iota
	TypeNamed
	TypePerm
	TypeVar
	TypeInfer
	TypeNever
	TypeError
)

func (k TypeKind) String() string {
	switch k {
	case TypeNamed:
		return "named"
	case TypePerm:
		return "perm"
	case TypeVar:
		return "var"
	case TypeInfer:
		return "infer"
	case TypeNever:
		return "never"
	case TypeError:
		return "error"
	default:
		return "invalid"
	}
}

// Type is the descriptor stored under a TypeID once interned.
type Type struct {
	Kind TypeKind

	Name source.StringID // TypeNamed: primitive/aggregate/tuple/"future" head
	Args []GenericTerm   // TypeNamed: generic arguments

	Perm  PermissionID // TypePerm
	Inner TypeID       // TypePerm

	Var BoundVarIndex // TypeVar

	// TypeInfer. Every type-kind inference variable is always paired with
	// an associated permission-kind inference variable (§4.6): the pair is
	// allocated together so a bare `infer(i)` type always has a companion
	// permission slot to resolve into `perm(infer(j), infer(i))`.
	Infer     InferVarID
	InferPerm InferVarID
}
