package ir

import (
	"fmt"
	"sync"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"dada/internal/source"
)

// Builtins caches the TypeIDs of primitive types, so callers do not need to
// re-intern them on every lookup.
type Builtins struct {
	Int    TypeID
	Bool   TypeID
	String TypeID
	Unit   TypeID
	Never  TypeID
}

// Interner provides structural deduplication for Type and Permission nodes:
// intern(value) -> id guarantees that equal descriptors produce equal ids
// (§4.A). It mirrors a classic content-addressed table, keyed here by the
// msgpack encoding of the descriptor rather than a hand-built struct key,
// since Type/Args and Permission/Places have variable arity; the recursive
// fields (Args, Inner, Perm, Left/Right) are already-interned IDs, so the
// encoding of a child never needs to walk back into this table.
type Interner struct {
	mu sync.RWMutex

	strings *source.Interner

	types     []Type
	typeIndex map[string]TypeID

	perms     []Permission
	permIndex map[string]PermissionID

	builtins Builtins
}

// NewInterner creates an Interner sharing the given string interner (so
// Type.Name values line up with identifiers interned elsewhere, e.g. by
// internal/symbols) and seeded with built-in primitive types.
func NewInterner(strings *source.Interner) *Interner {
	if strings == nil {
		strings = source.NewInterner()
	}
	in := &Interner{
		strings:   strings,
		types:     make([]Type, 1), // index 0 reserved for NoTypeID
		typeIndex: make(map[string]TypeID, 64),
		perms:     make([]Permission, 1), // index 0 reserved for NoPermissionID
		permIndex: make(map[string]PermissionID, 64),
	}
	in.builtins.Int = in.InternType(Type{Kind: TypeNamed, Name: strings.Intern("Int")})
	in.builtins.Bool = in.InternType(Type{Kind: TypeNamed, Name: strings.Intern("Bool")})
	in.builtins.String = in.InternType(Type{Kind: TypeNamed, Name: strings.Intern("String")})
	in.builtins.Unit = in.InternType(Type{Kind: TypeNamed, Name: strings.Intern("Unit")})
	in.builtins.Never = in.InternType(Type{Kind: TypeNever})
	return in
}

// Builtins returns the cached primitive TypeIDs.
func (in *Interner) Builtins() Builtins { return in.builtins }

// Strings returns the shared identifier interner.
func (in *Interner) Strings() *source.Interner { return in.strings }

// InternType interns a type descriptor, returning the same TypeID for
// structurally equal descriptors.
func (in *Interner) InternType(t Type) TypeID {
	key, err := msgpack.Marshal(t)
	if err != nil {
		panic(fmt.Errorf("ir: marshal type key: %w", err))
	}
	ks := string(key)

	in.mu.RLock()
	if id, ok := in.typeIndex[ks]; ok {
		in.mu.RUnlock()
		return id
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.typeIndex[ks]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("ir: type table overflow: %w", err))
	}
	id := TypeID(n)
	in.types = append(in.types, t)
	in.typeIndex[ks] = id
	return id
}

// LookupType returns the descriptor for id.
func (in *Interner) LookupType(id TypeID) (Type, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookupType panics when id is invalid.
func (in *Interner) MustLookupType(id TypeID) Type {
	t, ok := in.LookupType(id)
	if !ok {
		panic("ir: invalid TypeID")
	}
	return t
}

// InternPermission interns a permission descriptor, returning the same
// PermissionID for structurally equal descriptors.
func (in *Interner) InternPermission(p Permission) PermissionID {
	key, err := msgpack.Marshal(p)
	if err != nil {
		panic(fmt.Errorf("ir: marshal permission key: %w", err))
	}
	ks := string(key)

	in.mu.RLock()
	if id, ok := in.permIndex[ks]; ok {
		in.mu.RUnlock()
		return id
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.permIndex[ks]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(in.perms))
	if err != nil {
		panic(fmt.Errorf("ir: permission table overflow: %w", err))
	}
	id := PermissionID(n)
	in.perms = append(in.perms, p)
	in.permIndex[ks] = id
	return id
}

// LookupPermission returns the descriptor for id.
func (in *Interner) LookupPermission(id PermissionID) (Permission, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if id == NoPermissionID || int(id) >= len(in.perms) {
		return Permission{}, false
	}
	return in.perms[id], true
}

// MustLookupPermission panics when id is invalid.
func (in *Interner) MustLookupPermission(id PermissionID) Permission {
	p, ok := in.LookupPermission(id)
	if !ok {
		panic("ir: invalid PermissionID")
	}
	return p
}
