package ast

import "dada/internal/source"

// Builder constructs a fixture AST with arena-backed storage, the way a real
// parser would populate one. Tests build trees directly through a Builder
// instead of going through lexing/parsing, which remains an external
// collaborator outside this module's scope.
type Builder struct {
	Strings *source.Interner

	items      []Item
	exprs      []Expr
	placeExprs []PlaceExpr
	typeExprs  []TypeExpr
	permExprs  []PermExpr
	files      []File
}

// NewBuilder creates an empty Builder. If strings is nil, a fresh interner is
// allocated.
func NewBuilder(strings *source.Interner) *Builder {
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Strings:    strings,
		items:      make([]Item, 1),     // index 0 reserved for NoItemID
		exprs:      make([]Expr, 1),      // index 0 reserved for NoExprID
		placeExprs: make([]PlaceExpr, 1), // index 0 reserved for NoPlaceExprID
		typeExprs:  make([]TypeExpr, 1),  // index 0 reserved for NoTypeExprID
		permExprs:  make([]PermExpr, 1),  // index 0 reserved for NoPermExprID
	}
}

// Intern interns a string, a thin convenience wrapper over Strings.Intern.
func (b *Builder) Intern(s string) source.StringID { return b.Strings.Intern(s) }

// NewFile records a parsed file with the given top-level items.
func (b *Builder) NewFile(sourceFile source.FileID, items []ItemID, span source.Span) *File {
	f := File{SourceFile: sourceFile, Items: items, Span: span}
	b.files = append(b.files, f)
	return &b.files[len(b.files)-1]
}

// Item returns the item for id, or nil if id is invalid.
func (b *Builder) Item(id ItemID) *Item {
	if !id.IsValid() || int(id) >= len(b.items) {
		return nil
	}
	return &b.items[id]
}

// Expr returns the expression for id, or nil if id is invalid.
func (b *Builder) Expr(id ExprID) *Expr {
	if !id.IsValid() || int(id) >= len(b.exprs) {
		return nil
	}
	return &b.exprs[id]
}

// PlaceExpr returns the place-expression for id, or nil if id is invalid.
func (b *Builder) PlaceExpr(id PlaceExprID) *PlaceExpr {
	if !id.IsValid() || int(id) >= len(b.placeExprs) {
		return nil
	}
	return &b.placeExprs[id]
}

// TypeExpr returns the syntactic type for id, or nil if id is invalid.
func (b *Builder) TypeExpr(id TypeExprID) *TypeExpr {
	if !id.IsValid() || int(id) >= len(b.typeExprs) {
		return nil
	}
	return &b.typeExprs[id]
}

// PermExpr returns the syntactic permission for id, or nil if id is invalid.
func (b *Builder) PermExpr(id PermExprID) *PermExpr {
	if !id.IsValid() || int(id) >= len(b.permExprs) {
		return nil
	}
	return &b.permExprs[id]
}

func (b *Builder) pushItem(it Item) ItemID {
	id := ItemID(len(b.items))
	b.items = append(b.items, it)
	return id
}

func (b *Builder) pushExpr(e Expr) ExprID {
	id := ExprID(len(b.exprs))
	b.exprs = append(b.exprs, e)
	return id
}

func (b *Builder) pushPlace(p PlaceExpr) PlaceExprID {
	id := PlaceExprID(len(b.placeExprs))
	b.placeExprs = append(b.placeExprs, p)
	return id
}

func (b *Builder) pushType(t TypeExpr) TypeExprID {
	id := TypeExprID(len(b.typeExprs))
	b.typeExprs = append(b.typeExprs, t)
	return id
}

func (b *Builder) pushPerm(p PermExpr) PermExprID {
	id := PermExprID(len(b.permExprs))
	b.permExprs = append(b.permExprs, p)
	return id
}

// --- Items ---

func (b *Builder) NewClass(decl ClassDecl) ItemID {
	decl2 := decl
	return b.pushItem(Item{Kind: ItemClass, Span: decl.Span, Class: &decl2})
}

func (b *Builder) NewFunction(decl FunctionDecl) ItemID {
	decl2 := decl
	return b.pushItem(Item{Kind: ItemFunction, Span: decl.Span, Function: &decl2})
}

func (b *Builder) NewUse(decl UseDecl) ItemID {
	decl2 := decl
	return b.pushItem(Item{Kind: ItemUse, Span: decl.Span, Use: &decl2})
}

// --- Types & permissions ---

func (b *Builder) NewNamedType(name source.StringID, args []GenericArgExpr, span source.Span) TypeExprID {
	return b.pushType(TypeExpr{Kind: TypeExprNamed, Name: name, GenericArgs: args, Span: span})
}

func (b *Builder) NewVarType(name source.StringID, span source.Span) TypeExprID {
	return b.pushType(TypeExpr{Kind: TypeExprVar, Name: name, Span: span})
}

func (b *Builder) NewPermType(perm PermExprID, inner TypeExprID, span source.Span) TypeExprID {
	return b.pushType(TypeExpr{Kind: TypeExprPerm, Perm: perm, Inner: inner, Span: span})
}

func (b *Builder) NewErrorType(span source.Span) TypeExprID {
	return b.pushType(TypeExpr{Kind: TypeExprError, Span: span})
}

func (b *Builder) NewMyPerm(span source.Span) PermExprID {
	return b.pushPerm(PermExpr{Kind: PermExprMy, Span: span})
}

func (b *Builder) NewOurPerm(span source.Span) PermExprID {
	return b.pushPerm(PermExpr{Kind: PermExprOur, Span: span})
}

func (b *Builder) NewMutPerm(places []PlaceSyn, span source.Span) PermExprID {
	return b.pushPerm(PermExpr{Kind: PermExprMut, Places: places, Span: span})
}

func (b *Builder) NewRefPerm(places []PlaceSyn, span source.Span) PermExprID {
	return b.pushPerm(PermExpr{Kind: PermExprRef, Places: places, Span: span})
}

func (b *Builder) NewVarPerm(name source.StringID, span source.Span) PermExprID {
	return b.pushPerm(PermExpr{Kind: PermExprVar, Name: name, Span: span})
}

// --- Place expressions ---

func (b *Builder) NewVariablePlace(name source.StringID, span source.Span) PlaceExprID {
	return b.pushPlace(PlaceExpr{Kind: PlaceExprVariable, Name: name, Span: span})
}

func (b *Builder) NewFieldPlace(base PlaceExprID, field source.StringID, span source.Span) PlaceExprID {
	return b.pushPlace(PlaceExpr{Kind: PlaceExprField, Base: base, Field: field, Span: span})
}

// --- Expressions ---

func (b *Builder) NewIntLiteral(text string, span source.Span) ExprID {
	return b.pushExpr(Expr{Kind: ExprLiteral, LitKind: LiteralInt, LitText: text, Span: span})
}

func (b *Builder) NewBoolLiteral(value bool, span source.Span) ExprID {
	text := "false"
	if value {
		text = "true"
	}
	return b.pushExpr(Expr{Kind: ExprLiteral, LitKind: LiteralBool, LitText: text, Span: span})
}

func (b *Builder) NewStringLiteral(text string, span source.Span) ExprID {
	return b.pushExpr(Expr{Kind: ExprLiteral, LitKind: LiteralString, LitText: text, Span: span})
}

func (b *Builder) NewUnitLiteral(span source.Span) ExprID {
	return b.pushExpr(Expr{Kind: ExprLiteral, LitKind: LiteralUnit, Span: span})
}

func (b *Builder) NewPlaceExprNode(mode PlaceMode, place PlaceExprID, span source.Span) ExprID {
	return b.pushExpr(Expr{Kind: ExprPlace, Mode: mode, Place: place, Span: span})
}

func (b *Builder) NewLet(name source.StringID, declared TypeExprID, init, body ExprID, span source.Span) ExprID {
	return b.pushExpr(Expr{
		Kind: ExprLet, LetName: name, LetDeclaredType: declared,
		LetInit: init, LetBody: body, Span: span,
	})
}

func (b *Builder) NewAssign(target PlaceExprID, value ExprID, span source.Span) ExprID {
	return b.pushExpr(Expr{Kind: ExprAssign, AssignTarget: target, AssignValue: value, Span: span})
}

func (b *Builder) NewSeq(first, second ExprID, span source.Span) ExprID {
	return b.pushExpr(Expr{Kind: ExprSeq, SeqFirst: first, SeqSecond: second, Span: span})
}

func (b *Builder) NewCall(callee source.StringID, generics []GenericArgExpr, args []CallArg, span source.Span) ExprID {
	return b.pushExpr(Expr{
		Kind: ExprCall, CallCallee: callee, CallGenericArgs: generics,
		CallArgs: args, Span: span,
	})
}

func (b *Builder) NewAggregate(typeName source.StringID, generics []GenericArgExpr, fields []AggregateField, span source.Span) ExprID {
	return b.pushExpr(Expr{
		Kind: ExprAggregate, AggTypeName: typeName, AggGenericArgs: generics,
		AggFields: fields, Span: span,
	})
}

func (b *Builder) NewMatch(scrutinee ExprID, arms []MatchArm, span source.Span) ExprID {
	return b.pushExpr(Expr{Kind: ExprMatch, MatchScrutinee: scrutinee, MatchArms: arms, Span: span})
}

func (b *Builder) NewTuple(elems []ExprID, span source.Span) ExprID {
	return b.pushExpr(Expr{Kind: ExprTuple, TupleElems: elems, Span: span})
}

func (b *Builder) NewReturn(operand ExprID, span source.Span) ExprID {
	return b.pushExpr(Expr{Kind: ExprReturn, Operand: operand, Span: span})
}

func (b *Builder) NewAwait(operand ExprID, span source.Span) ExprID {
	return b.pushExpr(Expr{Kind: ExprAwait, Operand: operand, Span: span})
}

func (b *Builder) NewBinary(op BinaryOp, left, right ExprID, span source.Span) ExprID {
	return b.pushExpr(Expr{Kind: ExprBinary, BinOp: op, Left: left, Right: right, Span: span})
}

func (b *Builder) NewUnary(op UnaryOp, operand ExprID, span source.Span) ExprID {
	return b.pushExpr(Expr{Kind: ExprUnary, UnOp: op, Operand: operand, Span: span})
}

func (b *Builder) NewErrorExpr(span source.Span) ExprID {
	return b.pushExpr(Expr{Kind: ExprErr, Span: span})
}
