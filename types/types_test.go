// Copyright © 2020 The Rhyme Authors under an MIT-style license.

package types

import (
	"math/big"
	"testing"

	"github.com/rhymelang/rhyme/ast"
)

func TestRankOrder(t *testing.T) {
	for i := 1; i < len(Numerics); i++ {
		a, b := Numerics[i-1], Numerics[i]
		if a.Rank() >= b.Rank() {
			t.Errorf("%s.Rank()=%d >= %s.Rank()=%d", a, a.Rank(), b, b.Rank())
		}
	}
}

func TestMax(t *testing.T) {
	for _, a := range Numerics {
		for _, b := range Numerics {
			ab, ba := Max(a, b), Max(b, a)
			if ab != ba {
				t.Errorf("Max(%s, %s)=%s, Max(%s, %s)=%s", a, b, ab, b, a, ba)
			}
			if ab.Rank() < a.Rank() || ab.Rank() < b.Rank() {
				t.Errorf("Max(%s, %s)=%s ranks below an input", a, b, ab)
			}
			if ab != a && ab != b {
				t.Errorf("Max(%s, %s)=%s is neither input", a, b, ab)
			}
		}
	}
}

func TestMaxExamples(t *testing.T) {
	tests := []struct {
		a, b, want Numeric
	}{
		{U8, U8, U8},
		{U8, U64, U64},
		{U64, I8, I8},
		{I64, F32, F32},
		{F32, F64, F64},
		{I32, U16, I32},
	}
	for _, test := range tests {
		if got := Max(test.a, test.b); got != test.want {
			t.Errorf("Max(%s, %s)=%s, want %s", test.a, test.b, got, test.want)
		}
	}
}

var arithOps = []ast.Op{ast.Add, ast.Sub, ast.Mul, ast.Div, ast.Rem}

var nonNumerics = []Type{
	Str{},
	CStr{},
	Void{},
	Invalid{},
	Vector{Elem: I32},
	Function{Ret: I32},
}

func TestArithmetic(t *testing.T) {
	for _, op := range arithOps {
		for _, a := range Numerics {
			for _, b := range Numerics {
				got, ok := ApplyBinary(a, op, b)
				if !ok {
					t.Errorf("%s %s %s failed", a, op, b)
					continue
				}
				if want := Max(a, b); !Equal(got, want) {
					t.Errorf("%s %s %s = %s, want %s", a, op, b, got, want)
				}
			}
			for _, b := range nonNumerics {
				if got, ok := ApplyBinary(a, op, b); ok || IsValid(got) {
					t.Errorf("%s %s %s = %s, %v; want invalid", a, op, b, got, ok)
				}
				if got, ok := ApplyBinary(b, op, a); ok || IsValid(got) {
					t.Errorf("%s %s %s = %s, %v; want invalid", b, op, a, got, ok)
				}
			}
		}
	}
}

func TestUnsupportedBinaryOp(t *testing.T) {
	if got, ok := ApplyBinary(I32, ast.Neg, I32); ok || IsValid(got) {
		t.Errorf("got %s, %v; want invalid", got, ok)
	}
	if got, ok := ApplyBinary(I32, ast.BadOp, I32); ok || IsValid(got) {
		t.Errorf("got %s, %v; want invalid", got, ok)
	}
}

func TestAssignEqualTypes(t *testing.T) {
	ts := []Type{
		U8, I32, F64,
		Str{},
		CStr{},
		Vector{Elem: U8},
		Function{Ret: I32, Parms: []Type{I32, Str{}}},
	}
	for _, typ := range ts {
		got, ok := ApplyBinary(typ, ast.Assign, typ)
		if !ok || !Equal(got, typ) {
			t.Errorf("%s = %s: got %s, %v; want %s, true", typ, typ, got, ok, typ)
		}
	}
}

func TestAssignNumericDirection(t *testing.T) {
	for _, target := range Numerics {
		for _, value := range Numerics {
			got, ok := ApplyBinary(target, ast.Assign, value)
			switch {
			case target.Rank() >= value.Rank():
				if !ok || !Equal(got, target) {
					t.Errorf("widening %s into %s: got %s, %v; want %s, true",
						value, target, got, ok, target)
				}
			default:
				if ok || IsValid(got) {
					t.Errorf("narrowing %s into %s: got %s, %v; want invalid",
						value, target, got, ok)
				}
			}
		}
	}
}

func TestAssignExamples(t *testing.T) {
	tests := []struct {
		value, target Type
		ok            bool
	}{
		{value: U8, target: U16, ok: true},
		{value: U16, target: F64, ok: true},
		{value: I32, target: I64, ok: true},
		{value: U64, target: I8, ok: true},
		{value: I64, target: I32, ok: false},
		{value: F64, target: I64, ok: false},
		{value: Str{}, target: CStr{}, ok: false},
		{value: CStr{}, target: Str{}, ok: false},
		{value: I32, target: Str{}, ok: false},
		{value: Invalid{}, target: Invalid{}, ok: false},
		{value: Void{}, target: Void{}, ok: true},
		{value: Vector{Elem: U8}, target: Vector{Elem: U16}, ok: false},
	}
	for _, test := range tests {
		_, ok := Assignable(test.value, test.target)
		if ok != test.ok {
			t.Errorf("Assignable(%s, %s)=%v, want %v", test.value, test.target, ok, test.ok)
		}
	}
}

func TestApplyUnary(t *testing.T) {
	for _, n := range Numerics {
		got, ok := ApplyUnary(ast.Neg, n)
		if n.Class == Unsigned {
			if ok || IsValid(got) {
				t.Errorf("-%s: got %s, %v; want invalid", n, got, ok)
			}
			continue
		}
		if !ok || !Equal(got, n) {
			t.Errorf("-%s: got %s, %v; want %s, true", n, got, ok, n)
		}
	}
	for _, typ := range nonNumerics {
		if got, ok := ApplyUnary(ast.Neg, typ); ok || IsValid(got) {
			t.Errorf("-%s: got %s, %v; want invalid", typ, got, ok)
		}
	}
	if got, ok := ApplyUnary(ast.Add, I32); ok || IsValid(got) {
		t.Errorf("unsupported unary: got %s, %v; want invalid", got, ok)
	}
}

func TestEqual(t *testing.T) {
	fn := func(ret Type, parms ...Type) Function { return Function{Ret: ret, Parms: parms} }
	tests := []struct {
		a, b Type
		want bool
	}{
		{a: I32, b: I32, want: true},
		{a: I32, b: U32, want: false},
		{a: I32, b: I64, want: false},
		{a: Str{}, b: Str{}, want: true},
		{a: Str{}, b: CStr{}, want: false},
		{a: Void{}, b: Void{}, want: true},
		{a: Void{}, b: Invalid{}, want: false},
		{a: Invalid{}, b: Invalid{}, want: false},
		{a: Invalid{}, b: I32, want: false},
		{a: Vector{Elem: U8}, b: Vector{Elem: U8}, want: true},
		{a: Vector{Elem: U8}, b: Vector{Elem: I8}, want: false},
		{a: Vector{Elem: U8}, b: U8, want: false},
		{a: fn(I32, I32, Str{}), b: fn(I32, I32, Str{}), want: true},
		{a: fn(I32, I32, Str{}), b: fn(I32, Str{}, I32), want: false},
		{a: fn(I32, I32), b: fn(I32, I32, I32), want: false},
		{a: fn(I32), b: fn(Void{}), want: false},
		{a: fn(Void{}), b: fn(Void{}), want: true},
		{a: fn(Invalid{}), b: fn(Invalid{}), want: false},
	}
	for _, test := range tests {
		if got := Equal(test.a, test.b); got != test.want {
			t.Errorf("Equal(%s, %s)=%v, want %v", test.a, test.b, got, test.want)
		}
		if got := Equal(test.b, test.a); got != test.want {
			t.Errorf("Equal(%s, %s)=%v, want %v", test.b, test.a, got, test.want)
		}
	}
}

func TestFromName(t *testing.T) {
	for _, n := range Numerics {
		got, ok := FromName(n.String())
		if !ok || !Equal(got, n) {
			t.Errorf("FromName(%q)=%s, %v; want %s, true", n.String(), got, ok, n)
		}
	}
	for name, want := range map[string]Type{"str": Str{}, "cstr": CStr{}, "void": Void{}} {
		if got, ok := FromName(name); !ok || !Equal(got, want) {
			t.Errorf("FromName(%q)=%s, %v; want %s, true", name, got, ok, want)
		}
	}
	for _, name := range []string{"var", "int", "i128", "", "string"} {
		if got, ok := FromName(name); ok || IsValid(got) {
			t.Errorf("FromName(%q)=%s, %v; want invalid", name, got, ok)
		}
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		n    Numeric
		v    string
		want bool
	}{
		{U8, "0", true},
		{U8, "255", true},
		{U8, "256", false},
		{U8, "-1", false},
		{I8, "127", true},
		{I8, "128", false},
		{I8, "-128", true},
		{I8, "-129", false},
		{I32, "2147483647", true},
		{I32, "2147483648", false},
		{U64, "18446744073709551615", true},
		{U64, "18446744073709551616", false},
		{F32, "18446744073709551616", true},
	}
	for _, test := range tests {
		v, ok := new(big.Int).SetString(test.v, 10)
		if !ok {
			t.Fatalf("bad test value %s", test.v)
		}
		if got := test.n.Contains(v); got != test.want {
			t.Errorf("%s.Contains(%s)=%v, want %v", test.n, test.v, got, test.want)
		}
	}
}

func TestContainsFloat(t *testing.T) {
	tests := []struct {
		n    Numeric
		v    string
		want bool
	}{
		{F64, "1.5", true},
		{F64, "1e308", true},
		{F64, "1e400", false},
		{F64, "-1e400", false},
		{F32, "1e38", true},
		{F32, "1e39", false},
		{F64, "1e39", true},
		{I64, "1.0", false},
	}
	for _, test := range tests {
		v, ok := new(big.Float).SetString(test.v)
		if !ok {
			t.Fatalf("bad test value %s", test.v)
		}
		if got := test.n.ContainsFloat(v); got != test.want {
			t.Errorf("%s.ContainsFloat(%s)=%v, want %v", test.n, test.v, got, test.want)
		}
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		t    Type
		want string
	}{
		{U8, "u8"},
		{I64, "i64"},
		{F32, "f32"},
		{Str{}, "str"},
		{CStr{}, "cstr"},
		{Void{}, "void"},
		{Vector{Elem: U8}, "u8[]"},
		{Function{Ret: I32, Parms: []Type{I32, Str{}}}, "(i32, str) -> i32"},
		{Function{Ret: Void{}}, "() -> void"},
		{Function{Ret: Function{Ret: I32}}, "() -> (() -> i32)"},
	}
	for _, test := range tests {
		if got := test.t.String(); got != test.want {
			t.Errorf("got %q, want %q", got, test.want)
		}
	}
}
