package symbols

import (
	"dada/internal/ast"
	"dada/internal/ir"
	"dada/internal/source"
)

// bindSignature binds decl's generics (explicit, then any inline-declared
// type/permission variables discovered in its parameter and return types, in
// first-appearance order — §4.B), declares each parameter as a local symbol
// in fnScope, and resolves the parameter and return types into an
// ir.Signature. Each parameter/return type expression is resolved through
// check_function_signature (queries.go) rather than called on tr directly.
func (r *Resolver) bindSignature(file source.FileID, fnScope ScopeID, decl *ast.FunctionDecl) (*ir.Signature, []ir.GenericParam) {
	generics := bindGenerics(r.Table, fnScope, decl.Generics)
	explicit := genericIndex(generics)

	for _, p := range decl.Params {
		r.collectInlineGenerics(p.Type, explicit, &generics, fnScope)
	}
	r.collectInlineGenerics(decl.ReturnType, explicit, &generics, fnScope)

	tr := &typeResolver{
		table: r.Table, interner: r.Interner, builder: r.Builder, bag: r.Bag,
		scope: fnScope, generics: explicit,
	}

	names := make([]source.StringID, 0, len(decl.Params))
	inputs := make([]ir.TypeID, 0, len(decl.Params))
	for _, p := range decl.Params {
		ty := r.resolveSignatureType(file, tr, p.Type)
		names = append(names, p.Name)
		inputs = append(inputs, ty)
		r.declareOrDuplicate(fnScope, p.Name, Symbol{Kind: SymbolLocal, Span: p.Span, Type: ty}, p.Span)
	}

	var output ir.TypeID
	if decl.ReturnType.IsValid() {
		output = r.resolveSignatureType(file, tr, decl.ReturnType)
	} else {
		output = r.Interner.Builtins().Unit
	}

	return &ir.Signature{Generics: generics, InputNames: names, Inputs: inputs, Output: output}, generics
}

// collectInlineGenerics walks id's syntactic tree, auto-binding any
// TypeExprVar / PermExprVar name not already present in index as a fresh
// generic parameter appended (in encounter order) to *generics, and
// declaring it in fnScope so later lookups (including sibling parameters)
// resolve it.
func (r *Resolver) collectInlineGenerics(id ast.TypeExprID, index map[source.StringID]ir.BoundVarIndex, generics *[]ir.GenericParam, fnScope ScopeID) {
	if !id.IsValid() {
		return
	}
	t := r.Builder.TypeExpr(id)
	if t == nil {
		return
	}
	switch t.Kind {
	case ast.TypeExprVar:
		r.bindInlineVar(t.Name, ir.GenericKindType, t.Span, index, generics, fnScope)
	case ast.TypeExprNamed:
		for _, a := range t.GenericArgs {
			switch a.Kind {
			case ast.GenericArgType:
				r.collectInlineGenerics(a.Type, index, generics, fnScope)
			case ast.GenericArgPerm:
				r.collectInlinePermVar(a.Perm, index, generics, fnScope)
			}
		}
	case ast.TypeExprPerm:
		r.collectInlinePermVar(t.Perm, index, generics, fnScope)
		r.collectInlineGenerics(t.Inner, index, generics, fnScope)
	}
}

func (r *Resolver) collectInlinePermVar(id ast.PermExprID, index map[source.StringID]ir.BoundVarIndex, generics *[]ir.GenericParam, fnScope ScopeID) {
	p := r.Builder.PermExpr(id)
	if p == nil || p.Kind != ast.PermExprVar {
		return
	}
	r.bindInlineVar(p.Name, ir.GenericKindPermission, p.Span, index, generics, fnScope)
}

func (r *Resolver) bindInlineVar(name source.StringID, kind ir.GenericKind, span source.Span, index map[source.StringID]ir.BoundVarIndex, generics *[]ir.GenericParam, fnScope ScopeID) {
	if name == source.NoStringID {
		return
	}
	if _, ok := index[name]; ok {
		return
	}
	idx := ir.BoundVarIndex(len(*generics))
	index[name] = idx
	*generics = append(*generics, ir.GenericParam{Kind: kind, Name: name, Span: span})
	r.Table.Declare(fnScope, name, Symbol{
		Kind: SymbolGenericParam, Span: span, GenericIndex: idx, GenericKind: kind,
	})
}
