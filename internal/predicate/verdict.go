// Package predicate implements the four copy/move/owned/lent predicates
// over reduced types and permissions (§4.E): for each, an is_provably_P
// query that only ever answers true when P can be shown outright, and a
// require_P assertion that reports a diagnostic when it cannot.
//
// Grounded on the teacher's types.Interner.IsCopy inductive style and
// sema/copy_query.go's "does this term satisfy X" shape, generalized from
// a single copy query to all four predicates over reduced permission
// chains instead of a raw type ID.
package predicate

// Verdict is the tri-state result of checking a predicate: definitely
// true, definitely false, or undetermined (typically because the term's
// shape isn't known yet — an unresolved type/permission variable).
type Verdict uint8

const (
	Unknown Verdict = iota
	Holds
	Fails
)

// Verdicts bundles the four predicate results computed together for one
// term, since they share the same reduction and aggregate-field walk.
type Verdicts struct {
	Copy  Verdict
	Move  Verdict
	Owned Verdict
	Lent  Verdict
}
