package checker

import (
	"dada/internal/ast"
	"dada/internal/diag"
	"dada/internal/ir"
)

// applyPlaceMode re-types a resolved place under the permission mode it was
// read with (§4.H): give passes the place's own declared storage type
// through unchanged (a move of the whole value), lease wraps it in
// mut[place] (dropping whatever outer permission the declaration carried,
// since the lease's permission is determined by the read, not the
// declaration), and share wraps it in ref[place] the same way.
func (fc *FuncChecker) applyPlaceMode(mode ast.PlaceMode, place *ir.CheckedPlace) ir.TypeID {
	if place.Kind == ir.CheckedPlaceError {
		return fc.svc.Interner.ErrorType()
	}
	switch mode {
	case ast.PlaceModeGive:
		return place.Type
	case ast.PlaceModeLease:
		return fc.wrapPermission(place.Type, ir.Permission{Kind: ir.PermMut, Places: []ir.Place{place.Place}})
	case ast.PlaceModeShare:
		return fc.wrapPermission(place.Type, ir.Permission{Kind: ir.PermRef, Places: []ir.Place{place.Place}})
	default:
		return fc.svc.Interner.ErrorType()
	}
}

func (fc *FuncChecker) wrapPermission(ty ir.TypeID, perm ir.Permission) ir.TypeID {
	inner := ty
	if t, ok := fc.svc.Interner.LookupType(ty); ok && t.Kind == ir.TypePerm {
		inner = t.Inner
	}
	permID := fc.svc.Interner.InternPermission(perm)
	return fc.svc.Interner.InternType(ir.Type{Kind: ir.TypePerm, Perm: permID, Inner: inner})
}

// checkPlaceModeConflict implements the flow-insensitive give-after-share
// rule (§4.H, the testable "share then give" scenario): a share records its
// place; a later give of the same place, or of a place one extends or is
// extended by, is rejected since the prior share means it is no longer
// known to be uniquely owned. A later share of an already-shared place is
// unremarkable (shares compose) and is not itself recorded twice.
//
// The place's own declared type alone cannot see this — a `my String`
// local is statically owned regardless of what happened to it earlier in
// the body — so the obligation issued is not against place.Type directly
// but against that same type as a share would have produced it (ref[mark],
// applyPlaceMode's own wrapping), run through require_owned
// (predicate.Checker.RequireOwned, §4.E) exactly as any other owned
// obligation in this checker is. This is what makes the prior share
// actually decisive rather than a label-only annotation on a hand-rolled
// diagnostic.
func (fc *FuncChecker) checkPlaceModeConflict(mode ast.PlaceMode, place *ir.CheckedPlace) {
	if place.Kind == ir.CheckedPlaceError {
		return
	}
	switch mode {
	case ast.PlaceModeGive:
		for _, mark := range fc.shared {
			if place.Place.Extends(mark.place) || mark.place.Extends(place.Place) {
				asShared := fc.wrapPermission(place.Type, ir.Permission{Kind: ir.PermRef, Places: []ir.Place{mark.place}})
				before := 0
				if fc.bag != nil {
					before = fc.bag.Len()
				}
				if !fc.pred.RequireOwned(asShared, fc.bag, place.Span) && fc.bag != nil && fc.bag.Len() > before {
					fc.bag.Items()[fc.bag.Len()-1].WithLabel(mark.span, diag.SevNote, "shared here")
				}
				return
			}
		}
	case ast.PlaceModeShare:
		fc.shared = append(fc.shared, sharedMark{place: place.Place, span: place.Span})
	}
}
