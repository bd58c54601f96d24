package checker

import (
	"dada/internal/ast"
	"dada/internal/diag"
	"dada/internal/ir"
	"dada/internal/source"
	"dada/internal/symbols"
)

// resolveGenericTerms builds the full []ir.GenericTerm instantiation for a
// call or aggregate-constructor site: explicit arguments are resolved
// against scope, and every generic parameter left unsupplied gets a fresh
// inference variable of the matching kind (§4.C's implicit-argument
// defaulting, driven by internal/infer rather than hand-rolled placeholder
// types).
func (fc *FuncChecker) resolveGenericTerms(params []ir.GenericParam, explicit []ast.GenericArgExpr, scope symbols.ScopeID, span source.Span) []ir.GenericTerm {
	if len(explicit) > len(params) {
		if fc.bag != nil {
			fc.bag.Add(diag.New(diag.SevError, diag.ArityMismatch, span, "too many generic arguments supplied"))
		}
	}
	terms := make([]ir.GenericTerm, len(params))
	for i, param := range params {
		if i < len(explicit) {
			a := explicit[i]
			if genericArgKindOf(a.Kind) != param.Kind {
				if fc.bag != nil {
					fc.bag.Add(diag.New(diag.SevError, diag.KindMismatch, a.Span,
						"generic argument kind does not match the declared parameter kind"))
				}
				terms[i] = fc.freshGenericTerm(param.Kind, span)
				continue
			}
			terms[i] = symbols.ResolveGenericArg(fc.svc.Table, fc.svc.Interner, fc.svc.Builder, fc.bag, scope, fc.generics, a)
			continue
		}
		terms[i] = fc.freshGenericTerm(param.Kind, span)
	}
	return terms
}

func genericArgKindOf(k ast.GenericArgKind) ir.GenericKind {
	switch k {
	case ast.GenericArgType:
		return ir.GenericKindType
	case ast.GenericArgPerm:
		return ir.GenericKindPermission
	case ast.GenericArgPlace:
		return ir.GenericKindPlace
	default:
		return ir.GenericKindInvalid
	}
}

// freshGenericTerm allocates inference variables for one missing generic
// argument. A missing type argument allocates the paired type+permission
// inference variables §4.6 requires a bare infer(i) type to carry.
func (fc *FuncChecker) freshGenericTerm(kind ir.GenericKind, span source.Span) ir.GenericTerm {
	switch kind {
	case ir.GenericKindType:
		tv := fc.engine.FreshVar(ir.GenericKindType, ir.RootUniverse, span)
		pv := fc.engine.FreshVar(ir.GenericKindPermission, ir.RootUniverse, span)
		ty := fc.svc.Interner.InternType(ir.Type{Kind: ir.TypeInfer, Infer: tv, InferPerm: pv})
		return ir.TypeTerm(ty)
	case ir.GenericKindPermission:
		pv := fc.engine.FreshVar(ir.GenericKindPermission, ir.RootUniverse, span)
		perm := fc.svc.Interner.InternPermission(ir.Permission{Kind: ir.PermInfer, Infer: pv})
		return ir.PermTerm(perm)
	default:
		return ir.GenericTerm{}
	}
}

// checkCall checks a call expression: resolves the callee's signature,
// instantiates its generics (explicit args plus inference defaults for the
// rest), checks each positional argument's label and type, and lifts any
// non-trivial argument into a synthetic temporary before the call (§4.H
// call-by-move lifting).
func (fc *FuncChecker) checkCall(e *ast.Expr, scope symbols.ScopeID) *ir.CheckedExpr {
	symID, ok := fc.svc.Table.Lookup(scope, e.CallCallee)
	if !ok {
		fc.reportUnresolved(e.Span)
		return fc.errorExpr(e.Span)
	}
	sym := fc.svc.Table.Symbols.Get(symID)
	if sym == nil || sym.Kind != symbols.SymbolFunction || sym.Signature == nil {
		fc.reportUnresolved(e.Span)
		return fc.errorExpr(e.Span)
	}

	terms := fc.resolveGenericTerms(sym.Generics, e.CallGenericArgs, scope, e.Span)

	if len(e.CallArgs) != len(sym.Signature.Inputs) {
		if fc.bag != nil {
			fc.bag.Add(diag.New(diag.SevError, diag.ArityMismatch, e.Span, "call argument count disagrees with the function's signature"))
		}
	}

	n := len(e.CallArgs)
	if len(sym.Signature.Inputs) < n {
		n = len(sym.Signature.Inputs)
	}
	checkedArgs := make([]*ir.CheckedExpr, 0, n)
	for i := 0; i < n; i++ {
		arg := e.CallArgs[i]
		expectedName := sym.Signature.InputNames[i]
		if expectedName != source.NoStringID && arg.Label != expectedName {
			if fc.bag != nil {
				fc.bag.Add(diag.New(diag.SevError, diag.LabelMismatch, arg.Span, "call-site argument label disagrees with the parameter name"))
			}
		} else if expectedName == source.NoStringID && arg.Label != source.NoStringID {
			if fc.bag != nil {
				fc.bag.Add(diag.New(diag.SevError, diag.LabelMismatch, arg.Span, "call-site argument label disagrees with the parameter name"))
			}
		}
		checked := fc.checkExpr(arg.Value, scope)
		expectedType := ir.Substitute(fc.svc.Interner, sym.Signature.Inputs[i], terms)
		fc.requireSubtype(checked.Type, expectedType, arg.Span, diag.SubtypeFailure, "call argument does not match the expected parameter type")
		checkedArgs = append(checkedArgs, checked)
	}

	outputType := ir.Substitute(fc.svc.Interner, sym.Signature.Output, terms)
	target := ir.FunctionID(symID)
	span := e.Span

	return fc.liftTemps(scope, checkedArgs, func(refs []*ir.CheckedExpr) *ir.CheckedExpr {
		return &ir.CheckedExpr{
			Kind:             ir.CheckedCall,
			Type:             outputType,
			Span:             span,
			CallTarget:       target,
			CallSubstitution: terms,
			CallArgs:         refs,
		}
	})
}

// checkAggregate checks an aggregate-constructor expression: resolves the
// class, instantiates its generics, and for each field spawns a subtype
// obligation from the provided expression against the field's declared
// type, substituted through the instantiation (§4.H). Values are lifted
// into temporaries the same way call arguments are.
func (fc *FuncChecker) checkAggregate(e *ast.Expr, scope symbols.ScopeID) *ir.CheckedExpr {
	classSymID, ok := fc.svc.Classes[e.AggTypeName]
	if !ok {
		fc.reportUnresolved(e.Span)
		return fc.errorExpr(e.Span)
	}
	classSym := fc.svc.Table.Symbols.Get(classSymID)
	terms := fc.resolveGenericTerms(classSym.Generics, e.AggGenericArgs, scope, e.Span)

	provided := make(map[source.StringID]ast.AggregateField, len(e.AggFields))
	for _, f := range e.AggFields {
		provided[f.Name] = f
	}

	if len(e.AggFields) != len(classSym.Fields) {
		if fc.bag != nil {
			fc.bag.Add(diag.New(diag.SevError, diag.ArityMismatch, e.Span, "aggregate constructor field count disagrees with the class declaration"))
		}
	}
	for _, f := range e.AggFields {
		matched := false
		for _, decl := range classSym.Fields {
			if decl.Name == f.Name {
				matched = true
				break
			}
		}
		if !matched {
			fc.reportUnresolved(f.Span)
		}
	}

	names := make([]source.StringID, 0, len(classSym.Fields))
	checkedValues := make([]*ir.CheckedExpr, 0, len(classSym.Fields))
	for _, decl := range classSym.Fields {
		f, ok := provided[decl.Name]
		if !ok {
			continue
		}
		checked := fc.checkExpr(f.Value, scope)
		expectedType := ir.Substitute(fc.svc.Interner, decl.Type, terms)
		fc.requireSubtype(checked.Type, expectedType, f.Span, diag.SubtypeFailure, "aggregate field value does not match the field's declared type")
		names = append(names, decl.Name)
		checkedValues = append(checkedValues, checked)
	}

	aggType := fc.svc.Interner.InternType(ir.Type{Kind: ir.TypeNamed, Name: e.AggTypeName, Args: terms})
	span := e.Span

	return fc.liftTemps(scope, checkedValues, func(refs []*ir.CheckedExpr) *ir.CheckedExpr {
		fields := make([]ir.CheckedAggregateField, len(refs))
		for i, r := range refs {
			fields[i] = ir.CheckedAggregateField{Name: names[i], Value: r}
		}
		return &ir.CheckedExpr{
			Kind:      ir.CheckedAggregate,
			Type:      aggType,
			Span:      span,
			AggType:   aggType,
			AggFields: fields,
		}
	})
}
