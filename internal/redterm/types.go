// Package redterm reduces interned types and permissions to a canonical
// RedTy + RedPerm pair (§4.D): a structural type shape plus a finite
// disjunction of flat permission chains. Two semantically equivalent
// permissions under the application/absorption laws reduce to the same
// representation, which is what lets the subtype checker and predicate
// checker compare permissions structurally instead of symbolically.
package redterm

import (
	"dada/internal/ir"
	"dada/internal/source"
)

// Liveness records whether the place a leased/ref link borrows from is
// still live after the point this link is observed.
type Liveness uint8

const (
	// LiveUnknown marks a link produced outside any liveness analysis
	// (e.g. a fresh reduction of a signature type, before the checker has
	// walked the body that would let a place die). Treated as live by
	// every consumer until narrowed.
	LiveUnknown Liveness = iota
	Live
	Dead
)

// LinkKind enumerates the atomic permission links a chain is built from.
type LinkKind uint8

const (
	LinkInvalid LinkKind = iota
	LinkOur
	LinkRef
	LinkMut
	LinkVar
	LinkError
)

// Link is one atomic step of a permission chain: `our`, `ref(places)`,
// `mut(places)`, or an opaque generic/inference variable occupying a
// single slot.
type Link struct {
	Kind     LinkKind
	Places   []ir.Place    // LinkRef, LinkMut
	Var      ir.BoundVarIndex
	IsInfer  bool
	Infer    ir.InferVarID // LinkVar, when IsInfer
	Liveness Liveness      // LinkRef, LinkMut
}

// Chain is a flat, ordered sequence of links, outermost first.
type Chain []Link

// RedPerm is a finite disjunction of chains — the canonical form of a
// Permission.
type RedPerm struct {
	Chains []Chain
}

// RedTyKind enumerates the structural shapes RedTy retains once every
// permission layer has been erased.
type RedTyKind uint8

const (
	RedTyInvalid RedTyKind = iota
	RedTyNamed
	RedTyVar
	RedTyInfer
	RedTyNever
	RedTyError
)

// ReducedArg is a generic argument with its own type or permission already
// reduced, so structural comparison never needs to re-walk the interner.
type ReducedArg struct {
	Kind  ir.GenericKind
	Ty    RedTy
	Perm  RedPerm
	Place ir.Place
}

// RedTy is a type with every permission layer erased from its outer
// positions, retaining only the structural shape named/var/infer/never
// (a tuple is a named type of fixed arity, per the data model, so it needs
// no separate kind here).
type RedTy struct {
	Kind RedTyKind

	Name source.StringID // RedTyNamed
	Args []ReducedArg     // RedTyNamed

	Var ir.BoundVarIndex // RedTyVar

	Infer ir.InferVarID // RedTyInfer
}
