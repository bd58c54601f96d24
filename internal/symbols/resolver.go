package symbols

import (
	"dada/internal/ast"
	"dada/internal/diag"
	"dada/internal/ir"
	"dada/internal/query"
	"dada/internal/source"
)

// Result is the output of Resolve: the populated symbol table plus the
// module-level scope new lookups (function bodies, generic expressions)
// should be rooted at.
type Result struct {
	Table   *Table
	Module  ScopeID
	Classes map[source.StringID]SymbolID

	// FuncScopes maps a function's symbol back to the scope its parameters
	// and own generics are declared in, so a later pass (the expression
	// checker) can push a fresh block scope under it without having to
	// re-derive it from some other symbol's Scope field.
	FuncScopes map[SymbolID]ScopeID
}

// Resolver walks a parsed file's items, binding classes, functions, and use
// imports into a module scope, and resolving every declared type to an
// ir.TypeID (§4.B, §4.C).
type Resolver struct {
	Builder  *ast.Builder
	Interner *ir.Interner
	Table    *Table
	Bag      *diag.Bag

	// Store backs check_field and check_function_signature's query.Query
	// calls (§6). Left nil by NewResolver; store() allocates one lazily so
	// callers that don't care about cross-call memoization never have to
	// think about it, while Symbolize (queries.go) can supply a shared one
	// across files.
	Store *query.Store
}

func (r *Resolver) store() *query.Store {
	if r.Store == nil {
		r.Store = query.NewStore(nil)
	}
	return r.Store
}

// NewResolver builds a Resolver sharing builder's string interner.
func NewResolver(builder *ast.Builder, interner *ir.Interner, bag *diag.Bag) *Resolver {
	table := NewTable(NewIdentifiers(builder.Strings))
	return &Resolver{Builder: builder, Interner: interner, Table: table, Bag: bag}
}

// Resolve binds every item in file and resolves field and signature types.
func (r *Resolver) Resolve(file *ast.File) *Result {
	module := r.Table.FileRoot(file.SourceFile, file.Span)

	// Pass 1: declare every item, enforcing the class > function > use
	// duplicate-priority order (§4.B).
	classItems := make([]ast.ItemID, 0, len(file.Items))
	fnItems := make([]ast.ItemID, 0, len(file.Items))
	useItems := make([]ast.ItemID, 0, len(file.Items))
	for _, itemID := range file.Items {
		item := r.Builder.Item(itemID)
		if item == nil {
			continue
		}
		switch item.Kind {
		case ast.ItemClass:
			classItems = append(classItems, itemID)
		case ast.ItemFunction:
			fnItems = append(fnItems, itemID)
		case ast.ItemUse:
			useItems = append(useItems, itemID)
		}
	}

	classSymbols := make(map[source.StringID]SymbolID, len(classItems))
	for _, itemID := range classItems {
		decl := r.Builder.Item(itemID).Class
		r.declareOrDuplicate(module, decl.Name, Symbol{Kind: SymbolClass, Span: decl.Span}, decl.Span)
		id, _ := r.Table.Lookup(module, decl.Name)
		classSymbols[decl.Name] = id
	}
	for _, itemID := range fnItems {
		decl := r.Builder.Item(itemID).Function
		r.declareOrDuplicate(module, decl.Name, Symbol{Kind: SymbolFunction, Span: decl.Span}, decl.Span)
	}
	for _, itemID := range useItems {
		decl := r.Builder.Item(itemID).Use
		name := decl.Alias
		if name == source.NoStringID && len(decl.Path) > 0 {
			name = decl.Path[len(decl.Path)-1]
		}
		r.declareOrDuplicate(module, name, Symbol{
			Kind: SymbolImport, Span: decl.Span, ImportPath: decl.Path, ImportAlias: decl.Alias,
		}, decl.Span)
	}

	// Pass 2: bind each class's own generics, ahead of resolving any field
	// types (so forward references between classes see completed generics).
	for _, itemID := range classItems {
		decl := r.Builder.Item(itemID).Class
		sym := r.Table.Symbols.Get(classSymbols[decl.Name])
		classScope := r.Table.PushScope(ScopeClass, module, decl.Span)
		sym.Generics = bindGenerics(r.Table, classScope, decl.Generics)
	}

	// Pass 3 (supplemented feature): reject classes whose field graph
	// reaches back to themselves through owned (non-leased) edges, before
	// resolving field types.
	r.checkRecursiveTypes(classItems, classSymbols)

	// Pass 4: resolve field types now that every class's generics and the
	// recursion pre-pass are complete.
	for _, itemID := range classItems {
		decl := r.Builder.Item(itemID).Class
		symID := classSymbols[decl.Name]
		sym := r.Table.Symbols.Get(symID)
		tr := &typeResolver{table: r.Table, interner: r.Interner, builder: r.Builder, bag: r.Bag, generics: genericIndex(sym.Generics)}
		fields := make([]ClassField, 0, len(decl.Fields))
		for _, f := range decl.Fields {
			fields = append(fields, ClassField{Name: f.Name, Type: r.resolveFieldType(file.SourceFile, tr, f.Type), Span: f.Span})
		}
		sym.Fields = fields
	}

	// Pass 5: resolve function signatures.
	funcScopes := make(map[SymbolID]ScopeID, len(fnItems))
	for _, itemID := range fnItems {
		decl := r.Builder.Item(itemID).Function
		symID, _ := r.Table.Lookup(module, decl.Name)
		sym := r.Table.Symbols.Get(symID)
		fnScope := r.Table.PushScope(ScopeFunction, module, decl.Span)
		sym.Signature, sym.Generics = r.bindSignature(file.SourceFile, fnScope, decl)
		funcScopes[symID] = fnScope
	}

	return &Result{Table: r.Table, Module: module, Classes: classSymbols, FuncScopes: funcScopes}
}

func (r *Resolver) declareOrDuplicate(scope ScopeID, name source.StringID, sym Symbol, span source.Span) {
	if name == source.NoStringID {
		return
	}
	if _, ok := r.Table.Declare(scope, name, sym); !ok {
		if r.Bag != nil {
			r.Bag.Add(diag.New(diag.SevError, diag.DuplicateDefinition,
				source.Span{File: span.File, Start: span.Start, End: span.End},
				"duplicate definition in this scope"))
		}
	}
}

// bindGenerics declares each generic parameter into scope, in declaration
// order, and returns the ir.GenericParam list that order encodes.
func bindGenerics(table *Table, scope ScopeID, decls []ast.GenericParamSyn) []ir.GenericParam {
	out := make([]ir.GenericParam, 0, len(decls))
	for i, d := range decls {
		kind := ir.GenericKindType
		if d.Kind == ast.GenericKindPerm {
			kind = ir.GenericKindPermission
		}
		table.Declare(scope, d.Name, Symbol{
			Kind: SymbolGenericParam, Span: d.Span,
			GenericIndex: ir.BoundVarIndex(i), GenericKind: kind,
		})
		out = append(out, ir.GenericParam{Kind: kind, Name: d.Name, Span: d.Span})
	}
	return out
}

// genericIndex builds a lookup from generic name to its bound index.
func genericIndex(params []ir.GenericParam) map[source.StringID]ir.BoundVarIndex {
	m := make(map[source.StringID]ir.BoundVarIndex, len(params))
	for i, p := range params {
		m[p.Name] = ir.BoundVarIndex(i)
	}
	return m
}
