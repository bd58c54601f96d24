package symbols

import (
	"dada/internal/ast"
	"dada/internal/diag"
	"dada/internal/ir"
	"dada/internal/source"
)

// ResolveType resolves a syntactic type against scope, for use outside this
// package (the expression checker resolving a `let` annotation or an
// explicit call-site generic argument against locals already bound in the
// function's own scope). generics maps a function's or class's own
// generic-parameter names to their bound index, the same map bindSignature
// builds internally.
func ResolveType(table *Table, interner *ir.Interner, builder *ast.Builder, bag *diag.Bag, scope ScopeID, generics map[source.StringID]ir.BoundVarIndex, id ast.TypeExprID) ir.TypeID {
	tr := &typeResolver{table: table, interner: interner, builder: builder, bag: bag, scope: scope, generics: generics}
	return tr.resolveType(id)
}

// ResolvePermission is ResolveType's permission-syntax counterpart.
func ResolvePermission(table *Table, interner *ir.Interner, builder *ast.Builder, bag *diag.Bag, scope ScopeID, generics map[source.StringID]ir.BoundVarIndex, id ast.PermExprID) ir.PermissionID {
	tr := &typeResolver{table: table, interner: interner, builder: builder, bag: bag, scope: scope, generics: generics}
	return tr.resolvePerm(id)
}

// ResolveGenericArg resolves one call-site or constructor-site generic
// argument (a type, permission, or place) against scope.
func ResolveGenericArg(table *Table, interner *ir.Interner, builder *ast.Builder, bag *diag.Bag, scope ScopeID, generics map[source.StringID]ir.BoundVarIndex, a ast.GenericArgExpr) ir.GenericTerm {
	tr := &typeResolver{table: table, interner: interner, builder: builder, bag: bag, scope: scope, generics: generics}
	return tr.resolveGenericArg(a)
}
