package symbols

import (
	"dada/internal/ast"
	"dada/internal/diag"
	"dada/internal/ir"
	"dada/internal/source"
)

// typeResolver turns the syntactic type/permission/place trees produced by
// the parser into interned ir.TypeID / ir.PermissionID / ir.Place values.
type typeResolver struct {
	table    *Table
	interner *ir.Interner
	builder  *ast.Builder
	bag      *diag.Bag
	scope    ScopeID // for resolving place bases in mut[p]/ref[p]; may be NoScopeID
	generics map[source.StringID]ir.BoundVarIndex
}

func (tr *typeResolver) resolveType(id ast.TypeExprID) ir.TypeID {
	t := tr.builder.TypeExpr(id)
	if t == nil {
		return tr.interner.ErrorType()
	}
	switch t.Kind {
	case ast.TypeExprNamed:
		args := make([]ir.GenericTerm, 0, len(t.GenericArgs))
		for _, a := range t.GenericArgs {
			args = append(args, tr.resolveGenericArg(a))
		}
		return tr.interner.InternType(ir.Type{Kind: ir.TypeNamed, Name: t.Name, Args: args})
	case ast.TypeExprPerm:
		perm := tr.resolvePerm(t.Perm)
		inner := tr.resolveType(t.Inner)
		return tr.interner.InternType(ir.Type{Kind: ir.TypePerm, Perm: perm, Inner: inner})
	case ast.TypeExprVar:
		idx, ok := tr.generics[t.Name]
		if !ok {
			tr.reportUnresolved(t.Span)
			return tr.interner.ErrorType()
		}
		return tr.interner.InternType(ir.Type{Kind: ir.TypeVar, Var: idx})
	default:
		return tr.interner.ErrorType()
	}
}

func (tr *typeResolver) resolveGenericArg(a ast.GenericArgExpr) ir.GenericTerm {
	switch a.Kind {
	case ast.GenericArgType:
		return ir.TypeTerm(tr.resolveType(a.Type))
	case ast.GenericArgPerm:
		return ir.PermTerm(tr.resolvePerm(a.Perm))
	case ast.GenericArgPlace:
		return ir.PlaceTerm(tr.resolvePlace(a.Place))
	default:
		return ir.TypeTerm(tr.interner.ErrorType())
	}
}

func (tr *typeResolver) resolvePerm(id ast.PermExprID) ir.PermissionID {
	p := tr.builder.PermExpr(id)
	if p == nil {
		return tr.interner.ErrorPermission()
	}
	switch p.Kind {
	case ast.PermExprMy:
		return tr.interner.InternPermission(ir.Permission{Kind: ir.PermMy})
	case ast.PermExprOur:
		return tr.interner.InternPermission(ir.Permission{Kind: ir.PermOur})
	case ast.PermExprMut:
		return tr.interner.InternPermission(ir.Permission{Kind: ir.PermMut, Places: tr.resolvePlaces(p.Places)})
	case ast.PermExprRef:
		return tr.interner.InternPermission(ir.Permission{Kind: ir.PermRef, Places: tr.resolvePlaces(p.Places)})
	case ast.PermExprVar:
		idx, ok := tr.generics[p.Name]
		if !ok {
			tr.reportUnresolved(p.Span)
			return tr.interner.ErrorPermission()
		}
		return tr.interner.InternPermission(ir.Permission{Kind: ir.PermVar, Var: idx})
	default:
		return tr.interner.ErrorPermission()
	}
}

func (tr *typeResolver) resolvePlaces(places []ast.PlaceSyn) []ir.Place {
	out := make([]ir.Place, 0, len(places))
	for _, p := range places {
		out = append(out, tr.resolvePlace(p))
	}
	return out
}

func (tr *typeResolver) resolvePlace(p ast.PlaceSyn) ir.Place {
	symID, ok := tr.table.Lookup(tr.scope, p.Base)
	if !ok {
		tr.reportUnresolved(p.Span)
		return ir.Place{}
	}
	return ir.Place{Base: ir.LocalID(symID), Fields: p.Fields}
}

func (tr *typeResolver) reportUnresolved(span source.Span) {
	if tr.bag == nil {
		return
	}
	tr.bag.Add(diag.New(diag.SevError, diag.UnresolvedName, span, "unresolved name"))
}
