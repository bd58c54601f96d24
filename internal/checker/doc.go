// Package checker implements check_function_body (§4.H): it walks a parsed
// function's ast.Expr tree and produces an ir.CheckedExpr tree, resolving
// every place, call, and aggregate constructor against the already-bound
// symbol table, spawning subtype and predicate obligations as it goes.
//
// Grounded on the teacher's sema/type_checker_core.go (the walkItem/walkStmt
// dispatch shape, generalized here to a single recursive checkExpr since
// this data model has no separate statement tree — a let's body *is* its
// continuation) and sema/type_checker_returns.go (return-context stack and
// tail-position tracking, adapted into the single checkTail pass run once
// per function body rather than a spec-mandated return-reachability
// analysis, since this checker has no unreachable-code Non-goal to serve).
package checker
