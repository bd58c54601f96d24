package ir

import (
	"testing"

	"dada/internal/source"
)

func TestSubstitute_ReplacesTypeVarWithConcreteArg(t *testing.T) {
	in := NewInterner(source.NewInterner())
	boxedVar := in.InternType(Type{Kind: TypeVar, Var: 0})

	got := Substitute(in, boxedVar, []GenericTerm{TypeTerm(in.Builtins().Int)})
	if got != in.Builtins().Int {
		t.Fatalf("Substitute(var(0), [Int]) = %v, want %v", got, in.Builtins().Int)
	}
}

func TestSubstitute_LeavesOutOfRangeVarUnchanged(t *testing.T) {
	in := NewInterner(source.NewInterner())
	boxedVar := in.InternType(Type{Kind: TypeVar, Var: 3})

	got := Substitute(in, boxedVar, []GenericTerm{TypeTerm(in.Builtins().Int)})
	if got != boxedVar {
		t.Fatalf("Substitute(var(3), [Int]) = %v, want unchanged %v", got, boxedVar)
	}
}

func TestSubstitute_RecursesIntoNamedArgsAndPermInner(t *testing.T) {
	in := NewInterner(source.NewInterner())
	strings := in.Strings()
	vecName := strings.Intern("Vec")

	elemVar := in.InternType(Type{Kind: TypeVar, Var: 0})
	vecOfVar := in.InternType(Type{Kind: TypeNamed, Name: vecName, Args: []GenericTerm{TypeTerm(elemVar)}})

	permVar := in.InternPermission(Permission{Kind: PermVar, Var: 0})
	wrapped := in.InternType(Type{Kind: TypePerm, Perm: permVar, Inner: vecOfVar})

	args := []GenericTerm{
		TypeTerm(in.Builtins().String),
		PermTerm(in.InternPermission(Permission{Kind: PermOur})),
	}
	got := Substitute(in, wrapped, args)

	gotType, ok := in.LookupType(got)
	if !ok || gotType.Kind != TypePerm {
		t.Fatalf("Substitute result is not a TypePerm: %+v", gotType)
	}
	innerType, ok := in.LookupType(gotType.Inner)
	if !ok || innerType.Kind != TypeNamed || innerType.Name != vecName {
		t.Fatalf("inner type = %+v, want Vec[...]", innerType)
	}
	if len(innerType.Args) != 1 || innerType.Args[0].Type != in.Builtins().String {
		t.Fatalf("Vec's substituted arg = %+v, want String", innerType.Args)
	}

	permDesc, ok := in.LookupPermission(gotType.Perm)
	if !ok || permDesc.Kind != PermOur {
		t.Fatalf("substituted permission = %+v, want PermOur", permDesc)
	}
}

func TestInternType_StructuralDeduplication(t *testing.T) {
	in := NewInterner(source.NewInterner())
	strings := in.Strings()
	name := strings.Intern("Box")

	a := in.InternType(Type{Kind: TypeNamed, Name: name})
	b := in.InternType(Type{Kind: TypeNamed, Name: name})
	if a != b {
		t.Fatalf("InternType produced distinct ids for structurally equal types: %v, %v", a, b)
	}
}
