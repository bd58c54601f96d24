package checker

import (
	"dada/internal/ast"
	"dada/internal/diag"
	"dada/internal/ir"
	"dada/internal/source"
	"dada/internal/symbols"
)

// resolvePlace resolves a syntactic place-expression into a CheckedPlace,
// computing its declared storage type by walking variable lookup then
// field projection, substituting each field's declared type against the
// generic arguments the base's own type carries.
func (fc *FuncChecker) resolvePlace(id ast.PlaceExprID, scope symbols.ScopeID) *ir.CheckedPlace {
	p := fc.svc.Builder.PlaceExpr(id)
	if p == nil {
		return fc.errorPlace()
	}
	switch p.Kind {
	case ast.PlaceExprVariable:
		symID, ok := fc.svc.Table.Lookup(scope, p.Name)
		if !ok {
			fc.reportUnresolved(p.Span)
			return fc.errorPlace()
		}
		sym := fc.svc.Table.Symbols.Get(symID)
		if sym == nil {
			return fc.errorPlace()
		}
		return &ir.CheckedPlace{
			Kind:  ir.CheckedPlaceVariable,
			Place: ir.Place{Base: ir.LocalID(symID)},
			Type:  sym.Type,
			Span:  p.Span,
		}
	case ast.PlaceExprField:
		base := fc.resolvePlace(p.Base, scope)
		if base.Kind == ir.CheckedPlaceError {
			return fc.errorPlace()
		}
		name, args, ok := fc.unwrapNamed(base.Type)
		if !ok {
			if fc.bag != nil {
				fc.bag.Add(diag.New(diag.SevError, diag.SubtypeFailure, p.Span, "base of field access is not an aggregate type"))
			}
			return fc.errorPlace()
		}
		classSymID, ok := fc.svc.Classes[name]
		if !ok {
			fc.reportUnresolved(p.Span)
			return fc.errorPlace()
		}
		classSym := fc.svc.Table.Symbols.Get(classSymID)
		fieldType := fc.svc.Interner.ErrorType()
		found := false
		for _, f := range classSym.Fields {
			if f.Name == p.Field {
				fieldType = ir.Substitute(fc.svc.Interner, f.Type, args)
				found = true
				break
			}
		}
		if !found {
			fc.reportUnresolved(p.Span)
			return fc.errorPlace()
		}
		fields := make([]source.StringID, len(base.Place.Fields)+1)
		copy(fields, base.Place.Fields)
		fields[len(base.Place.Fields)] = p.Field
		place := ir.Place{Base: base.Place.Base, Fields: fields}
		return &ir.CheckedPlace{
			Kind:  ir.CheckedPlaceField,
			Base:  base,
			Field: p.Field,
			Place: place,
			Type:  fieldType,
			Span:  p.Span,
		}
	default:
		return fc.errorPlace()
	}
}

func (fc *FuncChecker) errorPlace() *ir.CheckedPlace {
	return &ir.CheckedPlace{Kind: ir.CheckedPlaceError, Type: fc.svc.Interner.ErrorType()}
}

func (fc *FuncChecker) reportUnresolved(span source.Span) {
	if fc.bag != nil {
		fc.bag.Add(diag.New(diag.SevError, diag.UnresolvedName, span, "unresolved name"))
	}
}

// unwrapNamed strips any outer TypePerm layer and reports the underlying
// named type's constructor name and generic arguments, the shape field
// access, call-argument substitution, and aggregate-field substitution all
// need to locate a class's own fields.
func (fc *FuncChecker) unwrapNamed(ty ir.TypeID) (name source.StringID, args []ir.GenericTerm, ok bool) {
	t, lookupOk := fc.svc.Interner.LookupType(ty)
	if !lookupOk {
		return source.NoStringID, nil, false
	}
	if t.Kind == ir.TypePerm {
		t, lookupOk = fc.svc.Interner.LookupType(t.Inner)
		if !lookupOk {
			return source.NoStringID, nil, false
		}
	}
	if t.Kind != ir.TypeNamed {
		return source.NoStringID, nil, false
	}
	return t.Name, t.Args, true
}
