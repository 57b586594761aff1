package ast

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"i32 x;", "i32 x"},
		{"i32 x = 5;", "i32 x = 5"},
		{"u8[] v = [1, 2, 3];", "u8[] v = [1, 2, 3]"},
		{"var a = 1, b = 2;", "var a = 1, b = 2"},
		{`str s = "hello";`, `str s = "hello"`},
		{`cstr s = c"hello";`, `cstr s = c"hello"`},
		{"f64 f = 1.5;", "f64 f = 1.5"},
		{"i32 x = -y;", "i32 x = -y"},
		{"i32 x = (a + b) * c;", "i32 x = (a + b) * c"},
		{"i32 x = a - b / c % d;", "i32 x = a - b / c % d"},
		{"i32 x = f(1, g(2));", "i32 x = f(1, g(2))"},
		{"i32 x = y = 3;", "i32 x = y = 3"},
		{"void main() {}", "void main()"},
		{"i32 add(i32 a, str b) { return a; }", "i32 add(i32 a, str b)"},
		{"i32[] id(i32[] v);", "i32[] id(i32[] v)"},
		{"#if linux { i32 x; }", "#if linux"},
		{"#if !linux { i32 x; } #else { i32 y; }", "#if !linux"},
	}
	for _, test := range tests {
		u, err := Parse("", strings.NewReader(test.src))
		if err != nil {
			t.Errorf("failed to parse [%s]: %s,", test.src, err.Error())
			continue
		}
		if len(u.Root.Decls) != 1 {
			t.Errorf("got %d decls, want 1", len(u.Root.Decls))
			continue
		}
		if got := String(u.Root.Decls[0]); got != test.want {
			t.Errorf("String(%q)=%q, want %q", test.src, got, test.want)
		}
	}
}
