package checker

import (
	"dada/internal/ast"
	"dada/internal/diag"
	"dada/internal/ir"
	"dada/internal/redterm"
	"dada/internal/source"
	"dada/internal/symbols"
)

// checkExpr is the single recursive dispatch every expression shape passes
// through. Unlike the teacher's separate walkItem/walkStmt pair, the target
// AST has no standalone statement list: ExprLet's body IS its continuation
// and ExprSeq chains first/second, so one function suffices for the whole
// tree.
func (fc *FuncChecker) checkExpr(id ast.ExprID, scope symbols.ScopeID) *ir.CheckedExpr {
	e := fc.svc.Builder.Expr(id)
	if e == nil {
		return fc.errorExpr(source.Span{})
	}
	switch e.Kind {
	case ast.ExprLiteral:
		return fc.checkLiteral(e)
	case ast.ExprPlace:
		return fc.checkPlaceExpr(e, scope)
	case ast.ExprLet:
		return fc.checkLet(e, scope)
	case ast.ExprAssign:
		return fc.checkAssign(e, scope)
	case ast.ExprSeq:
		return fc.checkSeq(e, scope)
	case ast.ExprCall:
		return fc.checkCall(e, scope)
	case ast.ExprAggregate:
		return fc.checkAggregate(e, scope)
	case ast.ExprMatch:
		return fc.checkMatch(e, scope)
	case ast.ExprTuple:
		return fc.checkTuple(e, scope)
	case ast.ExprReturn:
		return fc.checkReturn(e, scope)
	case ast.ExprAwait:
		return fc.checkAwait(e, scope)
	case ast.ExprBinary:
		return fc.checkBinary(e, scope)
	case ast.ExprUnary:
		return fc.checkUnary(e, scope)
	case ast.ExprErr:
		return fc.errorExpr(e.Span)
	default:
		return fc.errorExpr(e.Span)
	}
}

func (fc *FuncChecker) errorExpr(span source.Span) *ir.CheckedExpr {
	return &ir.CheckedExpr{Kind: ir.CheckedError, Type: fc.svc.Interner.ErrorType(), Span: span}
}

func (fc *FuncChecker) checkLiteral(e *ast.Expr) *ir.CheckedExpr {
	b := fc.svc.Interner.Builtins()
	var ty ir.TypeID
	switch e.LitKind {
	case ast.LiteralInt:
		ty = b.Int
	case ast.LiteralBool:
		ty = b.Bool
	case ast.LiteralString:
		ty = b.String
	case ast.LiteralUnit:
		ty = b.Unit
	default:
		ty = fc.svc.Interner.ErrorType()
	}
	return &ir.CheckedExpr{Kind: ir.CheckedLiteral, Type: ty, Span: e.Span, LitKind: e.LitKind, LitText: e.LitText}
}

// checkPlaceExpr resolves the place, checks it against the flow-insensitive
// give-after-share tracker, and re-types it under the read's permission mode.
func (fc *FuncChecker) checkPlaceExpr(e *ast.Expr, scope symbols.ScopeID) *ir.CheckedExpr {
	place := fc.resolvePlace(e.Place, scope)
	fc.checkPlaceModeConflict(e.Mode, place)
	ty := fc.applyPlaceMode(e.Mode, place)
	return &ir.CheckedExpr{Kind: ir.CheckedPlaceExpr, Type: ty, Span: e.Span, Mode: e.Mode, Place: place}
}

// checkLet resolves an optional declared type, checks (or infers from) the
// initializer, declares the local in scope (shadowing any outer binding of
// the same name, per the target AST's block-free lexical nesting), and
// recurses into the body, which is this let's own continuation.
func (fc *FuncChecker) checkLet(e *ast.Expr, scope symbols.ScopeID) *ir.CheckedExpr {
	init := fc.checkExpr(e.LetInit, scope)

	declaredType := init.Type
	if e.LetDeclaredType.IsValid() {
		declaredType = symbols.ResolveType(fc.svc.Table, fc.svc.Interner, fc.svc.Builder, fc.bag, scope, fc.generics, e.LetDeclaredType)
		fc.requireSubtype(init.Type, declaredType, e.Span, diag.SubtypeFailure,
			"let initializer does not match the declared type")
	}

	symID := fc.svc.Table.DeclareShadowing(scope, e.LetName, symbols.Symbol{
		Kind: symbols.SymbolLocal, Span: e.Span, Type: declaredType,
	})

	body := fc.checkExpr(e.LetBody, scope)
	return &ir.CheckedExpr{
		Kind:            ir.CheckedLet,
		Type:            body.Type,
		Span:            e.Span,
		LetLocal:        ir.LocalID(symID),
		LetDeclaredType: declaredType,
		LetInit:         init,
		LetBody:         body,
	}
}

func (fc *FuncChecker) checkAssign(e *ast.Expr, scope symbols.ScopeID) *ir.CheckedExpr {
	target := fc.resolvePlace(e.AssignTarget, scope)
	value := fc.checkExpr(e.AssignValue, scope)
	fc.requireSubtype(value.Type, target.Type, e.Span, diag.SubtypeFailure,
		"assigned value does not match the place's declared type")
	return &ir.CheckedExpr{
		Kind:         ir.CheckedAssign,
		Type:         fc.svc.Interner.Builtins().Unit,
		Span:         e.Span,
		AssignTarget: target,
		AssignValue:  value,
	}
}

func (fc *FuncChecker) checkSeq(e *ast.Expr, scope symbols.ScopeID) *ir.CheckedExpr {
	first := fc.checkExpr(e.SeqFirst, scope)
	second := fc.checkExpr(e.SeqSecond, scope)
	return &ir.CheckedExpr{
		Kind:      ir.CheckedSeq,
		Type:      second.Type,
		Span:      e.Span,
		SeqFirst:  first,
		SeqSecond: second,
	}
}

func (fc *FuncChecker) checkTuple(e *ast.Expr, scope symbols.ScopeID) *ir.CheckedExpr {
	elems := make([]*ir.CheckedExpr, len(e.TupleElems))
	terms := make([]ir.GenericTerm, len(e.TupleElems))
	for i, id := range e.TupleElems {
		elems[i] = fc.checkExpr(id, scope)
		terms[i] = ir.TypeTerm(elems[i].Type)
	}
	name := fc.svc.Builder.Intern(tupleConstructorName(len(elems)))
	ty := fc.svc.Interner.InternType(ir.Type{Kind: ir.TypeNamed, Name: name, Args: terms})
	return &ir.CheckedExpr{Kind: ir.CheckedTuple, Type: ty, Span: e.Span, TupleElems: elems}
}

func tupleConstructorName(arity int) string {
	switch arity {
	case 0:
		return "Unit"
	case 2:
		return "Pair"
	case 3:
		return "Triple"
	default:
		digits := make([]byte, 0, 8)
		n := arity
		if n == 0 {
			digits = append(digits, '0')
		}
		for n > 0 {
			digits = append([]byte{byte('0' + n%10)}, digits...)
		}
		return "Tuple" + string(digits)
	}
}

// checkReturn checks the operand (Unit when absent) directly against the
// function's declared return type, using InvalidReturnValue rather than
// SubtypeFailure since this is an explicit return statement (§4.H scenario
// b's sibling: an early, explicit return).
func (fc *FuncChecker) checkReturn(e *ast.Expr, scope symbols.ScopeID) *ir.CheckedExpr {
	var operand *ir.CheckedExpr
	if e.Operand.IsValid() {
		operand = fc.checkExpr(e.Operand, scope)
	} else {
		operand = &ir.CheckedExpr{Kind: ir.CheckedLiteral, Type: fc.svc.Interner.Builtins().Unit, Span: e.Span, LitKind: ast.LiteralUnit}
	}
	fc.requireSubtype(operand.Type, fc.returnType, e.Span, diag.InvalidReturnValue,
		"return value is not assignable to the function's declared return type")
	return &ir.CheckedExpr{Kind: ir.CheckedReturn, Type: fc.svc.Interner.Builtins().Never, Span: e.Span, Operand: operand}
}

// checkAwait requires the operand's type to be an instantiation of the
// well-known Future constructor, via require_future (subtype.RequireFuture,
// §4.G), then unwraps its sole generic argument directly (RequireFuture only
// confirms the shape; it has no access to the un-reduced generic argument).
func (fc *FuncChecker) checkAwait(e *ast.Expr, scope symbols.ScopeID) *ir.CheckedExpr {
	operand := fc.checkExpr(e.Operand, scope)
	rty, _ := redterm.Reduce(fc.svc.Interner, operand.Type)
	if !fc.sub.RequireFuture(rty, fc.svc.FutureName, fc.bag, e.Span) {
		return fc.errorExpr(e.Span)
	}
	name, args, ok := fc.unwrapNamed(operand.Type)
	if !ok || name != fc.svc.FutureName || len(args) != 1 || args[0].Kind != ir.GenericKindType {
		return fc.errorExpr(e.Span)
	}
	return &ir.CheckedExpr{Kind: ir.CheckedAwait, Type: args[0].Type, Span: e.Span, Operand: operand}
}

func (fc *FuncChecker) checkUnary(e *ast.Expr, scope symbols.ScopeID) *ir.CheckedExpr {
	operand := fc.checkExpr(e.Operand, scope)
	b := fc.svc.Interner.Builtins()
	var resultType ir.TypeID
	switch e.UnOp {
	case ast.UnaryNeg:
		fc.requireNumeric(operand.Type, e.Span)
		resultType = operand.Type
	case ast.UnaryNot:
		fc.requireSubtype(operand.Type, b.Bool, e.Span, diag.SubtypeFailure, "operand of ! must be Bool")
		resultType = b.Bool
	default:
		resultType = fc.svc.Interner.ErrorType()
	}
	return &ir.CheckedExpr{Kind: ir.CheckedUnary, Type: resultType, Span: e.Span, UnOp: e.UnOp, Operand: operand}
}

func (fc *FuncChecker) checkBinary(e *ast.Expr, scope symbols.ScopeID) *ir.CheckedExpr {
	left := fc.checkExpr(e.Left, scope)
	right := fc.checkExpr(e.Right, scope)
	b := fc.svc.Interner.Builtins()

	var resultType ir.TypeID
	switch e.BinOp {
	case ast.BinaryAdd, ast.BinarySub, ast.BinaryMul, ast.BinaryDiv:
		fc.requireNumeric(left.Type, e.Span)
		fc.requireNumeric(right.Type, e.Span)
		resultType = left.Type
	case ast.BinaryLt, ast.BinaryLe, ast.BinaryGt, ast.BinaryGe:
		fc.requireNumeric(left.Type, e.Span)
		fc.requireNumeric(right.Type, e.Span)
		resultType = b.Bool
	case ast.BinaryEq, ast.BinaryNe:
		fc.requireSubtype(right.Type, left.Type, e.Span, diag.SubtypeFailure, "operands of == / != must have the same type")
		resultType = b.Bool
	case ast.BinaryAnd, ast.BinaryOr:
		fc.requireSubtype(left.Type, b.Bool, e.Span, diag.SubtypeFailure, "operand of && / || must be Bool")
		fc.requireSubtype(right.Type, b.Bool, e.Span, diag.SubtypeFailure, "operand of && / || must be Bool")
		resultType = b.Bool
	default:
		resultType = fc.svc.Interner.ErrorType()
	}
	return &ir.CheckedExpr{Kind: ir.CheckedBinary, Type: resultType, Span: e.Span, BinOp: e.BinOp, Left: left, Right: right}
}

// requireNumeric drives require_numeric (subtype.RequireNumeric, §4.G)
// against the checker's numeric-name set, rather than re-implementing the
// same named operation inline.
func (fc *FuncChecker) requireNumeric(ty ir.TypeID, span source.Span) {
	rty, _ := redterm.Reduce(fc.svc.Interner, ty)
	fc.sub.RequireNumeric(rty, fc.svc.NumericNames, fc.bag, span)
}
