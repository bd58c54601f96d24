package checker

import (
	"dada/internal/diag"
	"dada/internal/infer"
	"dada/internal/ir"
	"dada/internal/predicate"
	"dada/internal/redterm"
	"dada/internal/source"
	"dada/internal/subtype"
	"dada/internal/symbols"
)

// FuncChecker carries the state check_function_body accumulates while
// walking one function's body: its own inference engine, subtype checker,
// and predicate checker (none shared with another function body, per §5),
// the generic name index its signature's binder closes over, and the
// flow-insensitive give-after-share tracker described in pkg doc.
type FuncChecker struct {
	svc *Service
	bag *diag.Bag

	engine *infer.Engine
	sub    *subtype.Checker
	pred   *predicate.Checker

	generics   map[source.StringID]ir.BoundVarIndex
	returnType ir.TypeID

	// shared records every place most recently share'd, keyed by its
	// structural Place, with the span of the share expression. A give of
	// the same place (or a place that extends it, or that it extends) is
	// rejected with PredicateFailure: once shared, a place is not known to
	// be uniquely owned again within this function body. This is
	// deliberately not real liveness analysis (no place is ever removed
	// from this set once the share is observed) — the same
	// always-live-until-narrowed stance redterm.LiveUnknown documents.
	shared []sharedMark
}

type sharedMark struct {
	place ir.Place
	span  source.Span
}

func newFuncChecker(svc *Service, sym *symbols.Symbol, bag *diag.Bag) *FuncChecker {
	engine := infer.NewEngine(nil)
	return &FuncChecker{
		svc:        svc,
		bag:        bag,
		engine:     engine,
		sub:        subtype.NewChecker(engine, bag),
		pred:       predicate.NewChecker(svc.Interner, svc.ClassNames, engine),
		generics:   genericIndexOf(sym.Generics),
		returnType: sym.Signature.Output,
	}
}

// checkTailAgainstReturn finds the implicit tail expression of a checked
// body (following CheckedSeq.Second and CheckedLet.Body to their end, the
// same continuation-following shape the teacher's returnStatus walk uses
// for StmtBlock) and, unless it is itself an explicit return (already
// validated against returnType with InvalidReturnValue) or already
// poisoned, checks it against the function's declared return type —
// reporting SubtypeFailure, since this is an implicit obligation rather
// than an explicit return statement.
func (fc *FuncChecker) checkTailAgainstReturn(body *ir.CheckedExpr) {
	if body == nil {
		return
	}
	tail := body
	for {
		switch tail.Kind {
		case ir.CheckedSeq:
			tail = tail.SeqSecond
		case ir.CheckedLet:
			tail = tail.LetBody
		default:
			goto settled
		}
		if tail == nil {
			return
		}
	}
settled:
	if tail.Kind == ir.CheckedReturn || tail.Kind == ir.CheckedError {
		return
	}
	if fc.svc.Interner.IsErrorType(tail.Type) {
		return
	}
	fc.requireSubtype(tail.Type, fc.returnType, tail.Span, diag.SubtypeFailure,
		"tail expression does not match the function's declared return type")
}

// requireSubtype reduces both types and relates them, reporting code at
// span with message when the relation fails synchronously. A deferred
// relation (an inference variable was involved) reports nothing here: its
// own spawned task in internal/subtype owns that diagnostic.
func (fc *FuncChecker) requireSubtype(lower, upper ir.TypeID, span source.Span, code diag.Code, message string) bool {
	lowerTy, lowerPerm := redterm.Reduce(fc.svc.Interner, lower)
	upperTy, upperPerm := redterm.Reduce(fc.svc.Interner, upper)
	ok, deferred := fc.sub.Check(lowerTy, lowerPerm, upperTy, upperPerm, span)
	if !ok && !deferred && fc.bag != nil {
		fc.bag.Add(diag.New(diag.SevError, code, span, message))
	}
	return ok || deferred
}
