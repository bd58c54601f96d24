package symbols

import (
	"dada/internal/ast"
	"dada/internal/diag"
	"dada/internal/source"
)

// classEdge records that class `from` owns a field whose declared type
// embeds class `to` (directly, or through an `our`-permission wrapper,
// which is still owned storage rather than a lease).
type classEdge struct {
	to source.StringID
	at source.Span
}

// checkRecursiveTypes rejects classes whose field graph reaches back to
// themselves through owned (non-leased) edges — "a class field cannot have
// its own class as its (eventually) owned type" — before field types are
// resolved (supplemented from original_source/, since spec.md's
// distillation omits this check).
func (r *Resolver) checkRecursiveTypes(classItems []ast.ItemID, classSymbols map[source.StringID]SymbolID) {
	declared := make(map[source.StringID]bool, len(classSymbols))
	for name := range classSymbols {
		declared[name] = true
	}

	adjacency := make(map[source.StringID][]classEdge, len(classItems))
	for _, itemID := range classItems {
		decl := r.Builder.Item(itemID).Class
		for _, f := range decl.Fields {
			if to, ok := ownedClassRef(r.Builder, f.Type, declared); ok {
				adjacency[decl.Name] = append(adjacency[decl.Name], classEdge{to: to, at: f.Span})
			}
		}
	}

	const (
		white = iota
		gray
		black
	)
	color := make(map[source.StringID]int, len(classSymbols))
	reported := make(map[source.StringID]bool, len(classSymbols))

	var visit func(n source.StringID)
	visit = func(n source.StringID) {
		color[n] = gray
		for _, e := range adjacency[n] {
			switch color[e.to] {
			case gray:
				if !reported[n] {
					r.Bag.Add(diag.New(diag.SevError, diag.RecursiveType, e.at,
						"type recursively contains itself"))
					reported[n] = true
				}
			case white:
				visit(e.to)
			}
		}
		color[n] = black
	}

	for name := range classSymbols {
		if color[name] == white {
			visit(name)
		}
	}
}

// ownedClassRef reports the declared class a field's syntactic type embeds
// as owned storage, if any.
func ownedClassRef(builder *ast.Builder, id ast.TypeExprID, declared map[source.StringID]bool) (source.StringID, bool) {
	t := builder.TypeExpr(id)
	if t == nil {
		return source.NoStringID, false
	}
	switch t.Kind {
	case ast.TypeExprNamed:
		if declared[t.Name] {
			return t.Name, true
		}
		return source.NoStringID, false
	case ast.TypeExprPerm:
		p := builder.PermExpr(t.Perm)
		if p != nil && p.Kind == ast.PermExprOur {
			return ownedClassRef(builder, t.Inner, declared)
		}
		return source.NoStringID, false
	default:
		return source.NoStringID, false
	}
}
