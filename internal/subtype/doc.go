// Package subtype implements the structural subtype relator over reduced
// types and permissions (§4.G): lower ≤ upper by recursion on RedTy shape,
// with inference variables deferred to spawned tasks on the inference
// engine rather than resolved inline.
//
// Grounded on the teacher's sema/type_checker_assignability.go — the same
// early-return structural-recursion shape (exact match, then shape-specific
// cases, tuples and functions handled the same way arrays are) — adapted
// from the teacher's alias/union/array/numeric-widening domain to this
// domain's named-type-head-equality plus permission-chain comparison.
package subtype
