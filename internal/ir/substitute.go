package ir

// Substitute replaces every TypeVar/PermVar bound index appearing in ty
// with the corresponding entry of args (a binder's concrete
// instantiation), re-interning the result. Used by the expression checker
// to instantiate a function signature or a class field's declared type
// against a call site's or constructor's generic arguments (§4.C, §4.H).
func Substitute(interner *Interner, ty TypeID, args []GenericTerm) TypeID {
	t, ok := interner.LookupType(ty)
	if !ok {
		return ty
	}
	switch t.Kind {
	case TypeNamed:
		newArgs := make([]GenericTerm, len(t.Args))
		for i, a := range t.Args {
			newArgs[i] = substituteTerm(interner, a, args)
		}
		return interner.InternType(Type{Kind: TypeNamed, Name: t.Name, Args: newArgs})
	case TypePerm:
		newPerm := SubstitutePermission(interner, t.Perm, args)
		newInner := Substitute(interner, t.Inner, args)
		return interner.InternType(Type{Kind: TypePerm, Perm: newPerm, Inner: newInner})
	case TypeVar:
		if int(t.Var) < len(args) && args[t.Var].Kind == GenericKindType {
			return args[t.Var].Type
		}
		return ty
	default: // TypeInfer, TypeNever, TypeError: nothing to substitute
		return ty
	}
}

// SubstitutePermission is Substitute's permission-side counterpart.
func SubstitutePermission(interner *Interner, id PermissionID, args []GenericTerm) PermissionID {
	p, ok := interner.LookupPermission(id)
	if !ok {
		return id
	}
	switch p.Kind {
	case PermVar:
		if int(p.Var) < len(args) && args[p.Var].Kind == GenericKindPermission {
			return args[p.Var].Perm
		}
		return id
	case PermApply, PermOr:
		left := SubstitutePermission(interner, p.Left, args)
		right := SubstitutePermission(interner, p.Right, args)
		return interner.InternPermission(Permission{Kind: p.Kind, Left: left, Right: right})
	default: // My, Our, Mut, Ref, Infer, Error: places carry no bound vars
		return id
	}
}

func substituteTerm(interner *Interner, term GenericTerm, args []GenericTerm) GenericTerm {
	switch term.Kind {
	case GenericKindType:
		return TypeTerm(Substitute(interner, term.Type, args))
	case GenericKindPermission:
		return PermTerm(SubstitutePermission(interner, term.Perm, args))
	default: // GenericKindPlace: a Place carries no bound-var reference
		return term
	}
}
