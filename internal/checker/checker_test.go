package checker

import (
	"testing"

	"dada/internal/ast"
	"dada/internal/diag"
	"dada/internal/ir"
	"dada/internal/source"
	"dada/internal/symbols"
)

// newFixture builds an Interner sharing b's string table and returns it
// alongside the interned name of the "Int" primitive, for callers that need
// to build numeric-type-name sets.
func newFixture(b *ast.Builder) (*ir.Interner, source.StringID) {
	interner := ir.NewInterner(b.Strings)
	intName := b.Strings.Intern("Int")
	return interner, intName
}

func resolveAndCheck(t *testing.T, b *ast.Builder, interner *ir.Interner, file *ast.File, fnName source.StringID, numeric map[source.StringID]bool, futureName source.StringID) (*ir.CheckedExpr, *diag.Bag) {
	t.Helper()
	resolveBag := diag.NewBag(64)
	resolver := symbols.NewResolver(b, interner, resolveBag)
	result := resolver.Resolve(file)
	if resolveBag.HasErrors() {
		t.Fatalf("resolve produced errors: %+v", resolveBag.Items())
	}

	symID, ok := result.Table.Lookup(result.Module, fnName)
	if !ok {
		name, _ := b.Strings.Lookup(fnName)
		t.Fatalf("function %q not found after resolve", name)
	}
	decl := findFunctionDecl(b, file, fnName)
	if decl == nil {
		name, _ := b.Strings.Lookup(fnName)
		t.Fatalf("function decl %q not found in file", name)
	}

	svc := NewService(interner, result, b, numeric, futureName)
	bag := diag.NewBag(64)
	checked := svc.CheckFunctionBody(symID, decl, bag)
	return checked, bag
}

func findFunctionDecl(b *ast.Builder, file *ast.File, name source.StringID) *ast.FunctionDecl {
	for _, itemID := range file.Items {
		item := b.Item(itemID)
		if item.Kind == ast.ItemFunction && item.Function.Name == name {
			return item.Function
		}
	}
	return nil
}

func span() source.Span { return source.Span{} }

func TestCheckFunctionBody_AddTwoParams(t *testing.T) {
	b := ast.NewBuilder(nil)
	interner, intName := newFixture(b)
	futureName := b.Strings.Intern("Future")
	numeric := map[source.StringID]bool{intName: true}

	intType := b.NewNamedType(intName, nil, span())
	xName := b.Strings.Intern("x")
	yName := b.Strings.Intern("y")
	addName := b.Strings.Intern("add")

	xPlace := b.NewVariablePlace(xName, span())
	yPlace := b.NewVariablePlace(yName, span())
	xExpr := b.NewPlaceExprNode(ast.PlaceModeGive, xPlace, span())
	yExpr := b.NewPlaceExprNode(ast.PlaceModeGive, yPlace, span())
	body := b.NewBinary(ast.BinaryAdd, xExpr, yExpr, span())

	fnItem := b.NewFunction(ast.FunctionDecl{
		Name: addName,
		Params: []ast.FnParamSyn{
			{Name: xName, Type: intType, Span: span()},
			{Name: yName, Type: intType, Span: span()},
		},
		ReturnType: intType,
		Body:       body,
		Span:       span(),
	})

	file := b.NewFile(source.FileID(1), []ast.ItemID{fnItem}, span())

	checked, bag := resolveAndCheck(t, b, interner, file, addName, numeric, futureName)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if checked.Kind != ir.CheckedBinary {
		t.Fatalf("checked.Kind = %v, want CheckedBinary", checked.Kind)
	}
	if checked.Type != interner.Builtins().Int {
		t.Fatalf("checked.Type = %v, want Int", checked.Type)
	}
}

func TestCheckFunctionBody_TailTypeMismatchReportsSubtypeFailure(t *testing.T) {
	b := ast.NewBuilder(nil)
	interner, intName := newFixture(b)
	futureName := b.Strings.Intern("Future")
	numeric := map[source.StringID]bool{intName: true}

	intType := b.NewNamedType(intName, nil, span())
	fnName := b.Strings.Intern("wrongTail")

	body := b.NewBoolLiteral(true, span())

	fnItem := b.NewFunction(ast.FunctionDecl{
		Name:       fnName,
		ReturnType: intType,
		Body:       body,
		Span:       span(),
	})

	file := b.NewFile(source.FileID(1), []ast.ItemID{fnItem}, span())

	_, bag := resolveAndCheck(t, b, interner, file, fnName, numeric, futureName)
	if !bag.HasErrors() {
		t.Fatalf("expected a subtype failure for a Bool tail against an Int return type")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SubtypeFailure {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected diag.SubtypeFailure among %+v", bag.Items())
	}
}

func TestCheckFunctionBody_GiveAfterShareConflict(t *testing.T) {
	b := ast.NewBuilder(nil)
	interner, intName := newFixture(b)
	futureName := b.Strings.Intern("Future")
	numeric := map[source.StringID]bool{intName: true}

	// class Box { v: Int }
	boxName := b.Strings.Intern("Box")
	vName := b.Strings.Intern("v")
	intType := b.NewNamedType(intName, nil, span())
	classItem := b.NewClass(ast.ClassDecl{
		Name:   boxName,
		Fields: []ast.FieldSyn{{Name: vName, Type: intType, Span: span()}},
		Span:   span(),
	})

	// fn useBox(b: Box) -> Box { let _ = share b; give b }
	bName := b.Strings.Intern("b")
	boxType := b.NewNamedType(boxName, nil, span())
	bPlace := b.NewVariablePlace(bName, span())

	shareExpr := b.NewPlaceExprNode(ast.PlaceModeShare, bPlace, span())
	giveExpr := b.NewPlaceExprNode(ast.PlaceModeGive, bPlace, span())
	discardName := b.Strings.Intern("_discard")
	letExpr := b.NewLet(discardName, ast.NoTypeExprID, shareExpr, giveExpr, span())

	fnName := b.Strings.Intern("useBox")
	fnItem := b.NewFunction(ast.FunctionDecl{
		Name: fnName,
		Params: []ast.FnParamSyn{
			{Name: bName, Type: boxType, Span: span()},
		},
		ReturnType: boxType,
		Body:       letExpr,
		Span:       span(),
	})

	file := b.NewFile(source.FileID(1), []ast.ItemID{classItem, fnItem}, span())

	_, bag := resolveAndCheck(t, b, interner, file, fnName, numeric, futureName)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.PredicateFailure {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected diag.PredicateFailure for give-after-share, got %+v", bag.Items())
	}
}

func TestCheckFunctionBody_LetAndSeq(t *testing.T) {
	b := ast.NewBuilder(nil)
	interner, intName := newFixture(b)
	futureName := b.Strings.Intern("Future")
	numeric := map[source.StringID]bool{intName: true}

	fnName := b.Strings.Intern("letSeq")
	xName := b.Strings.Intern("x")

	lit := b.NewIntLiteral("1", span())
	xPlace := b.NewVariablePlace(xName, span())
	xRead := b.NewPlaceExprNode(ast.PlaceModeGive, xPlace, span())
	letExpr := b.NewLet(xName, ast.NoTypeExprID, lit, xRead, span())
	unitLit := b.NewUnitLiteral(span())
	seqExpr := b.NewSeq(letExpr, unitLit, span())

	fnItem := b.NewFunction(ast.FunctionDecl{
		Name:       fnName,
		ReturnType: ast.NoTypeExprID,
		Body:       seqExpr,
		Span:       span(),
	})

	file := b.NewFile(source.FileID(1), []ast.ItemID{fnItem}, span())

	checked, bag := resolveAndCheck(t, b, interner, file, fnName, numeric, futureName)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if checked.Kind != ir.CheckedSeq {
		t.Fatalf("checked.Kind = %v, want CheckedSeq", checked.Kind)
	}
	if checked.Type != interner.Builtins().Unit {
		t.Fatalf("checked.Type = %v, want Unit", checked.Type)
	}
}
