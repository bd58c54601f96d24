package ast

import (
	"testing"

	"dada/internal/source"
)

func span() source.Span { return source.Span{} }

func TestBuilder_ZeroIndexReservedForSentinelIDs(t *testing.T) {
	b := NewBuilder(nil)
	if b.Item(NoItemID) == nil || b.Item(NoItemID).Kind != ItemInvalid {
		t.Fatalf("Item(NoItemID) should be the zero-value invalid item")
	}
	if b.Expr(NoExprID) == nil {
		t.Fatalf("Expr(NoExprID) should resolve to the reserved zero slot")
	}
	if b.TypeExpr(NoTypeExprID) == nil {
		t.Fatalf("TypeExpr(NoTypeExprID) should resolve to the reserved zero slot")
	}
}

func TestBuilder_NewFunctionRoundTrips(t *testing.T) {
	b := NewBuilder(nil)
	name := b.Intern("f")
	id := b.NewFunction(FunctionDecl{Name: name, Span: span()})

	item := b.Item(id)
	if item.Kind != ItemFunction {
		t.Fatalf("item.Kind = %v, want ItemFunction", item.Kind)
	}
	if item.Function == nil || item.Function.Name != name {
		t.Fatalf("item.Function.Name = %v, want %v", item.Function, name)
	}
}

func TestBuilder_NewClassRoundTrips(t *testing.T) {
	b := NewBuilder(nil)
	boxName := b.Intern("Box")
	vName := b.Intern("v")
	intType := b.NewNamedType(b.Intern("Int"), nil, span())

	id := b.NewClass(ClassDecl{
		Name:   boxName,
		Fields: []FieldSyn{{Name: vName, Type: intType, Span: span()}},
		Span:   span(),
	})

	item := b.Item(id)
	if item.Kind != ItemClass {
		t.Fatalf("item.Kind = %v, want ItemClass", item.Kind)
	}
	if item.Class == nil || len(item.Class.Fields) != 1 || item.Class.Fields[0].Type != intType {
		t.Fatalf("item.Class = %+v, want one field of type %v", item.Class, intType)
	}
}

func TestBuilder_PlaceExprChain(t *testing.T) {
	b := NewBuilder(nil)
	xName := b.Intern("x")
	fieldName := b.Intern("f")

	base := b.NewVariablePlace(xName, span())
	field := b.NewFieldPlace(base, fieldName, span())

	basePlace := b.PlaceExpr(base)
	if basePlace.Kind != PlaceExprVariable || basePlace.Name != xName {
		t.Fatalf("base place = %+v, want variable %v", basePlace, xName)
	}
	fieldPlace := b.PlaceExpr(field)
	if fieldPlace.Kind != PlaceExprField || fieldPlace.Base != base || fieldPlace.Field != fieldName {
		t.Fatalf("field place = %+v, want Base=%v Field=%v", fieldPlace, base, fieldName)
	}
}

func TestBuilder_PermTypeWrapsNamedType(t *testing.T) {
	b := NewBuilder(nil)
	intType := b.NewNamedType(b.Intern("Int"), nil, span())
	place := PlaceSyn{Base: b.Intern("p")}
	mutPerm := b.NewMutPerm([]PlaceSyn{place}, span())
	wrapped := b.NewPermType(mutPerm, intType, span())

	typeExpr := b.TypeExpr(wrapped)
	if typeExpr.Kind != TypeExprPerm || typeExpr.Inner != intType {
		t.Fatalf("typeExpr = %+v, want TypeExprPerm wrapping %v", typeExpr, intType)
	}

	permExpr := b.PermExpr(typeExpr.Perm)
	if permExpr.Kind != PermExprMut || len(permExpr.Places) != 1 || permExpr.Places[0].Base != place.Base {
		t.Fatalf("permExpr = %+v, want a single-place mut permission", permExpr)
	}
}

func TestBuilder_LetBindsDeclaredTypeAndBody(t *testing.T) {
	b := NewBuilder(nil)
	xName := b.Intern("x")
	intType := b.NewNamedType(b.Intern("Int"), nil, span())
	lit := b.NewIntLiteral("1", span())
	body := b.NewUnitLiteral(span())

	letID := b.NewLet(xName, intType, lit, body, span())
	letExpr := b.Expr(letID)
	if letExpr.Kind != ExprLet {
		t.Fatalf("letExpr.Kind = %v, want ExprLet", letExpr.Kind)
	}
	if letExpr.LetName != xName || letExpr.LetDeclaredType != intType {
		t.Fatalf("letExpr = %+v, want LetName=%v LetDeclaredType=%v", letExpr, xName, intType)
	}
	if letExpr.LetInit != lit || letExpr.LetBody != body {
		t.Fatalf("letExpr init/body = %v/%v, want %v/%v", letExpr.LetInit, letExpr.LetBody, lit, body)
	}
}

func TestBuilder_NilInternerAllocatesItsOwn(t *testing.T) {
	b := NewBuilder(nil)
	if b.Strings == nil {
		t.Fatalf("NewBuilder(nil) should allocate its own string interner")
	}
	name := b.Intern("same")
	again := b.Strings.Intern("same")
	if name != again {
		t.Fatalf("Intern(%q) produced different ids across calls: %v vs %v", "same", name, again)
	}
}
