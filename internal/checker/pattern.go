package checker

import (
	"dada/internal/ast"
	"dada/internal/diag"
	"dada/internal/ir"
	"dada/internal/symbols"
)

// checkMatch checks the scrutinee once, then checks every arm against a
// child scope carrying that arm's pattern bindings. The match's own result
// type is the first arm's body type; every other arm's body is required to
// be a subtype of it (match arms are not required to agree exactly, only to
// each be usable where the first arm's result is expected).
func (fc *FuncChecker) checkMatch(e *ast.Expr, scope symbols.ScopeID) *ir.CheckedExpr {
	scrutinee := fc.checkExpr(e.MatchScrutinee, scope)

	arms := make([]ir.CheckedMatchArm, 0, len(e.MatchArms))
	var resultType ir.TypeID
	for i, arm := range e.MatchArms {
		armScope := fc.svc.Table.PushScope(symbols.ScopeBlock, scope, arm.Span)
		fc.bindPattern(arm.Pattern, scrutinee.Type, armScope)
		body := fc.checkExpr(arm.Body, armScope)
		if i == 0 {
			resultType = body.Type
		} else {
			fc.requireSubtype(body.Type, resultType, arm.Span, diag.SubtypeFailure,
				"match arm result does not match the first arm's result type")
		}
		arms = append(arms, ir.CheckedMatchArm{Pattern: arm.Pattern, Body: body})
	}
	if resultType == ir.NoTypeID {
		resultType = fc.svc.Interner.Builtins().Unit
	}

	return &ir.CheckedExpr{
		Kind:           ir.CheckedMatch,
		Type:           resultType,
		Span:           e.Span,
		MatchScrutinee: scrutinee,
		MatchArms:      arms,
	}
}

// bindPattern declares every name a pattern introduces against ty,
// descending into tuple and aggregate patterns by reading the scrutinee
// type's own generic arguments / class field declarations rather than
// re-deriving shape from the pattern alone.
func (fc *FuncChecker) bindPattern(pat ast.Pattern, ty ir.TypeID, scope symbols.ScopeID) {
	switch pat.Kind {
	case ast.PatternWildcard:
		return
	case ast.PatternBind:
		fc.svc.Table.DeclareShadowing(scope, pat.Name, symbols.Symbol{
			Kind: symbols.SymbolLocal, Span: pat.Span, Type: ty,
		})
	case ast.PatternTuple:
		_, args, ok := fc.unwrapNamed(ty)
		if !ok || len(args) != len(pat.Elems) {
			if !fc.svc.Interner.IsErrorType(ty) && fc.bag != nil {
				fc.bag.Add(diag.New(diag.SevError, diag.SubtypeFailure, pat.Span,
					"tuple pattern arity does not match the scrutinee's type"))
			}
			for _, elem := range pat.Elems {
				fc.bindPattern(elem, fc.svc.Interner.ErrorType(), scope)
			}
			return
		}
		for i, elem := range pat.Elems {
			elemType := fc.svc.Interner.ErrorType()
			if args[i].Kind == ir.GenericKindType {
				elemType = args[i].Type
			}
			fc.bindPattern(elem, elemType, scope)
		}
	case ast.PatternAggregate:
		name, args, ok := fc.unwrapNamed(ty)
		if !ok || name != pat.TypeName {
			if !fc.svc.Interner.IsErrorType(ty) && fc.bag != nil {
				fc.bag.Add(diag.New(diag.SevError, diag.SubtypeFailure, pat.Span,
					"aggregate pattern's type does not match the scrutinee's type"))
			}
			for _, fp := range pat.Fields {
				fc.bindPattern(fp.Pattern, fc.svc.Interner.ErrorType(), scope)
			}
			return
		}
		classSymID, ok := fc.svc.Classes[name]
		if !ok {
			return
		}
		classSym := fc.svc.Table.Symbols.Get(classSymID)
		for _, fp := range pat.Fields {
			fieldType := fc.svc.Interner.ErrorType()
			for _, decl := range classSym.Fields {
				if decl.Name == fp.Name {
					fieldType = ir.Substitute(fc.svc.Interner, decl.Type, args)
					break
				}
			}
			fc.bindPattern(fp.Pattern, fieldType, scope)
		}
	}
}
