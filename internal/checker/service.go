package checker

import (
	"dada/internal/ast"
	"dada/internal/diag"
	"dada/internal/ir"
	"dada/internal/predicate"
	"dada/internal/query"
	"dada/internal/source"
	"dada/internal/symbols"
)

// Service holds everything check_function_body needs that is shared across
// every function body in one compilation: the interner, the populated
// symbol table, and the class-name set predicate.Checker is built over. A
// fresh FuncChecker (and its own inference engine and predicate.Checker
// sharing that engine, see func.go) is built per function body, per §5's
// "separate inference tables per function" rule.
type Service struct {
	Interner   *ir.Interner
	Table      *symbols.Table
	Classes    map[source.StringID]symbols.SymbolID
	ClassNames map[source.StringID]bool
	FuncScopes map[symbols.SymbolID]symbols.ScopeID
	Builder    *ast.Builder

	// Store backs check_function_body's query.Query (§6). Left nil by
	// NewService; store() allocates a private one lazily.
	Store *query.Store

	NumericNames map[source.StringID]bool
	FutureName   source.StringID
}

// NewService builds a Service from one symbols.Resolver's Result, plus the
// caller-supplied numeric-type-name set and the well-known Future
// constructor name (both are conventions of the language being checked,
// not discoverable from the symbol table alone).
func NewService(interner *ir.Interner, result *symbols.Result, builder *ast.Builder, numericNames map[source.StringID]bool, futureName source.StringID) *Service {
	classNames := make(map[source.StringID]bool, len(result.Classes))
	for name := range result.Classes {
		classNames[name] = true
	}
	return &Service{
		Interner:     interner,
		Table:        result.Table,
		Classes:      result.Classes,
		ClassNames:   classNames,
		FuncScopes:   result.FuncScopes,
		Builder:      builder,
		NumericNames: numericNames,
		FutureName:   futureName,
	}
}

func (s *Service) store() *query.Store {
	if s.Store == nil {
		s.Store = query.NewStore(nil)
	}
	return s.Store
}

// bodyCheckInput keys check_function_body's query.Query: the function's own
// symbol plus its body expression (a compiler-assigned arena id, stable for
// as long as the AST itself is, and already unique per function).
type bodyCheckInput struct {
	Function symbols.SymbolID
	Body     ast.ExprID
}

// CheckFunctionBody checks one function's body expression, given its own
// symbol (already carrying a resolved Signature and Generics from
// symbols.Resolver) and syntactic declaration, through check_function_body
// (§6)'s query.Query. Returns nil for a bodiless (extern) declaration.
func (s *Service) CheckFunctionBody(symID symbols.SymbolID, decl *ast.FunctionDecl, bag *diag.Bag) *ir.CheckedExpr {
	sym := s.Table.Symbols.Get(symID)
	if sym == nil || sym.Signature == nil || !decl.Body.IsValid() {
		return nil
	}
	fnScope, ok := s.FuncScopes[symID]
	if !ok {
		fnScope = symbols.NoScopeID
	}

	q := query.Query[bodyCheckInput, *ir.CheckedExpr]{
		Name: "check_function_body",
		Compute: func(bodyCheckInput) (*ir.CheckedExpr, *diag.Bag, []source.FileID) {
			sub := diag.NewBag(capOr(bag, 256))
			fc := newFuncChecker(s, sym, sub)
			bodyScope := s.Table.PushScope(symbols.ScopeBlock, fnScope, decl.Span)
			checked := fc.checkExpr(decl.Body, bodyScope)
			fc.checkTailAgainstReturn(checked)
			fc.engine.Run()
			return checked, sub, []source.FileID{decl.Span.File}
		},
	}
	checked, sub := q.Run(s.store(), bodyCheckInput{Function: symID, Body: decl.Body})
	if bag != nil {
		bag.Merge(sub)
	}
	return checked
}

func capOr(bag *diag.Bag, fallback int) int {
	if bag == nil {
		return fallback
	}
	if c := int(bag.Cap()); c > 0 {
		return c
	}
	return fallback
}

func genericIndexOf(params []ir.GenericParam) map[source.StringID]ir.BoundVarIndex {
	m := make(map[source.StringID]ir.BoundVarIndex, len(params))
	for i, p := range params {
		m[p.Name] = ir.BoundVarIndex(i)
	}
	return m
}
