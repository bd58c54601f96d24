package checker

import (
	"dada/internal/ast"
	"dada/internal/ir"
	"dada/internal/source"
	"dada/internal/symbols"
)

// liftTemps implements call-by-move temporary lifting (§4.H): a call or
// aggregate-constructor argument that is not already a bare place-read or
// literal is hoisted into a synthetic `let` binding at the call's own
// position, so the move happens out of a named temporary rather than out
// of an anonymous sub-expression. build receives one CheckedExpr per
// original item — either the item itself (already trivial) or a
// CheckedPlaceExpr reading the synthesized local under PlaceModeGive — in
// the same order, and returns the node the lifted lets should wrap.
func (fc *FuncChecker) liftTemps(scope symbols.ScopeID, items []*ir.CheckedExpr, build func([]*ir.CheckedExpr) *ir.CheckedExpr) *ir.CheckedExpr {
	type pending struct {
		local ir.LocalID
		init  *ir.CheckedExpr
		span  source.Span
	}
	var lifted []pending
	refs := make([]*ir.CheckedExpr, len(items))

	for i, item := range items {
		if item == nil || isTrivialMoveSource(item) {
			refs[i] = item
			continue
		}
		symID := fc.svc.Table.DeclareShadowing(scope, source.NoStringID, symbols.Symbol{
			Kind: symbols.SymbolLocal, Span: item.Span, Type: item.Type,
		})
		local := ir.LocalID(symID)
		lifted = append(lifted, pending{local: local, init: item, span: item.Span})
		refs[i] = &ir.CheckedExpr{
			Kind: ir.CheckedPlaceExpr,
			Type: item.Type,
			Span: item.Span,
			Mode: ast.PlaceModeGive,
			Place: &ir.CheckedPlace{
				Kind:  ir.CheckedPlaceVariable,
				Place: ir.Place{Base: local},
				Type:  item.Type,
				Span:  item.Span,
			},
		}
	}

	result := build(refs)
	for i := len(lifted) - 1; i >= 0; i-- {
		p := lifted[i]
		result = &ir.CheckedExpr{
			Kind:            ir.CheckedLet,
			Type:            result.Type,
			Span:            p.span,
			LetLocal:        p.local,
			LetDeclaredType: p.init.Type,
			LetInit:         p.init,
			LetBody:         result,
		}
	}
	return result
}

// isTrivialMoveSource reports whether expr is already a place read or a
// literal, i.e. cheap and side-effect-free enough that lifting it into a
// temporary would add nothing.
func isTrivialMoveSource(expr *ir.CheckedExpr) bool {
	switch expr.Kind {
	case ir.CheckedPlaceExpr, ir.CheckedLiteral:
		return true
	default:
		return false
	}
}
