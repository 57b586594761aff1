// Copyright © 2020 The Rhyme Authors under an MIT-style license.

package check

import (
	"fmt"
	"math/big"

	"github.com/rhymelang/rhyme/ast"
	"github.com/rhymelang/rhyme/types"
)

// checkExpr checks an expression, records its type, and returns it.
// want is the type expected by the context, or nil.
// It is only a hint: literals take their type from it when they can,
// but checkExpr never reports a mismatch with want.
func checkExpr(x *state, e ast.Expr, want types.Type) types.Type {
	switch e := e.(type) {
	case *ast.Literal:
		return checkLiteral(x, e, want)
	case *ast.Binding:
		return checkBinding(x, e)
	case *ast.Binary:
		return checkBinary(x, e, want)
	case *ast.Unary:
		return checkUnary(x, e, want)
	case *ast.Grouping:
		return x.record(e, checkExpr(x, e.X, want))
	case *ast.AssignExpr:
		return checkAssign(x, e)
	case *ast.Call:
		return checkCall(x, e)
	case *ast.ArrayLit:
		return checkArrayLit(x, e, want)
	default:
		x.internal(e, "unexpected expression %T", e)
		panic("impossible")
	}
}

// numeric returns want if it is a numeric type, and nil otherwise.
func numeric(want types.Type) types.Type {
	if _, ok := want.(types.Numeric); ok {
		return want
	}
	return nil
}

func checkLiteral(x *state, n *ast.Literal, want types.Type) (t types.Type) {
	defer x.tr("checkLiteral(%s)", n.Tok.Text)(&t)
	switch n.Tok.Kind {
	case ast.TokInt:
		return x.record(n, intLit(x, n, want, false))
	case ast.TokFloat:
		return x.record(n, floatLit(x, n, want))
	case ast.TokString:
		return x.record(n, types.Str{})
	case ast.TokCString:
		return x.record(n, types.CStr{})
	default:
		x.internal(n, "bad literal token kind %s", n.Tok.Kind)
		panic("impossible")
	}
}

// intLit returns the type of an integer literal, negated if neg is set.
// The literal has the expected numeric type if there is one,
// otherwise it has type i32.
// A value out of range of the type is an error.
func intLit(x *state, n *ast.Literal, want types.Type, neg bool) types.Type {
	v, ok := new(big.Int).SetString(n.Tok.Text, 0)
	if !ok {
		x.internal(n, "malformed integer literal %s", n.Tok.Text)
	}
	if neg {
		v.Neg(v)
	}
	t := types.I32
	if w, ok := want.(types.Numeric); ok {
		t = w
	}
	if !t.Contains(v) {
		x.err(n, "constant %s overflows %s", v, t)
		return types.Invalid{}
	}
	return t
}

// floatLit returns the type of a float literal.
// The literal has the expected float type if there is one,
// otherwise it has the configured default float type.
// A value that rounds to infinity in the type is an error.
func floatLit(x *state, n *ast.Literal, want types.Type) types.Type {
	v, ok := new(big.Float).SetString(n.Tok.Text)
	if !ok {
		x.internal(n, "malformed float literal %s", n.Tok.Text)
	}
	t := x.floatType()
	if w, ok := want.(types.Numeric); ok && w.Class == types.Float {
		t = w
	}
	if !t.ContainsFloat(v) {
		x.err(n, "constant %s overflows %s", n.Tok.Text, t)
		return types.Invalid{}
	}
	return t
}

func checkBinding(x *state, n *ast.Binding) (t types.Type) {
	defer x.tr("checkBinding(%s)", n.Ident.Text)(&t)
	t, ok := x.env.Lookup(n.Ident.Text)
	if !ok {
		x.err(n, "undefined: %s", n.Ident.Text)
		return types.Invalid{}
	}
	return x.record(n, t)
}

func checkBinary(x *state, n *ast.Binary, want types.Type) (t types.Type) {
	defer x.tr("checkBinary(%s)", ast.String(n))(&t)
	want = numeric(want)
	var l, r types.Type
	switch lc, rc := constant(n.Left), constant(n.Right); {
	case lc && rc:
		l = checkExpr(x, n.Left, want)
		r = checkExpr(x, n.Right, want)
	case lc:
		// A constant operand takes the type of the other operand, not want.
		r = checkExpr(x, n.Right, nil)
		l = checkExpr(x, n.Left, numeric(r))
	case rc:
		l = checkExpr(x, n.Left, nil)
		r = checkExpr(x, n.Right, numeric(l))
	default:
		l = checkExpr(x, n.Left, nil)
		r = checkExpr(x, n.Right, nil)
	}
	if !types.IsValid(l) || !types.IsValid(r) {
		return types.Invalid{}
	}
	t, ok := types.ApplyBinary(l, n.Op, r)
	if !ok {
		x.err(n.OpTok, "can't apply operator '%s' on types '%s' and '%s'", n.Op, l, r)
		return types.Invalid{}
	}
	return x.record(n, t)
}

func checkUnary(x *state, n *ast.Unary, want types.Type) (t types.Type) {
	defer x.tr("checkUnary(%s)", ast.String(n))(&t)
	want = numeric(want)
	if n.Op == ast.Neg && intLiteral(n.X) {
		// The range of a negated constant is checked as a negative value.
		t = checkNegatedInt(x, n.X, want)
	} else {
		t = checkExpr(x, n.X, want)
	}
	if !types.IsValid(t) {
		return types.Invalid{}
	}
	r, ok := types.ApplyUnary(n.Op, t)
	if !ok {
		x.err(n, "can't apply operator '%s' on type '%s'", n.Op, t)
		return types.Invalid{}
	}
	return x.record(n, r)
}

// intLiteral returns whether e is an integer literal, possibly parenthesized.
func intLiteral(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.Grouping:
		return intLiteral(e.X)
	case *ast.Literal:
		return e.Tok.Kind == ast.TokInt
	default:
		return false
	}
}

func checkNegatedInt(x *state, e ast.Expr, want types.Type) types.Type {
	if g, ok := e.(*ast.Grouping); ok {
		return x.record(g, checkNegatedInt(x, g.X, want))
	}
	lit := e.(*ast.Literal)
	return x.record(lit, intLit(x, lit, want, true))
}

// constant returns whether e is built only from numeric literals.
func constant(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.Literal:
		return e.Tok.Kind == ast.TokInt || e.Tok.Kind == ast.TokFloat
	case *ast.Grouping:
		return constant(e.X)
	case *ast.Unary:
		return constant(e.X)
	case *ast.Binary:
		return constant(e.Left) && constant(e.Right)
	default:
		return false
	}
}

func checkAssign(x *state, n *ast.AssignExpr) (t types.Type) {
	defer x.tr("checkAssign(%s)", ast.String(n))(&t)
	target, ok := n.Target.(*ast.Binding)
	if !ok {
		x.internal(n.Target, "can't assign to %s", ast.String(n.Target))
	}
	tt := checkBinding(x, target)
	v := checkExpr(x, n.Val, tt)
	if !types.IsValid(tt) || !types.IsValid(v) {
		return types.Invalid{}
	}
	t, ok = types.ApplyBinary(tt, ast.Assign, v)
	if !ok {
		x.err(n, "can't assign a value of type '%s' to a binding of type '%s'", v, tt)
		return types.Invalid{}
	}
	return x.record(n, t)
}

func checkCall(x *state, n *ast.Call) (t types.Type) {
	defer x.tr("checkCall(%s)", ast.String(n))(&t)
	ft := checkExpr(x, n.Fun, nil)
	if !types.IsValid(ft) {
		checkExprs(x, n.Args)
		return types.Invalid{}
	}
	fn, ok := ft.(types.Function)
	if !ok {
		x.err(n.Fun, "cannot call non-function %s (type '%s')", ast.String(n.Fun), ft)
		checkExprs(x, n.Args)
		return types.Invalid{}
	}
	if len(n.Args) != len(fn.Parms) {
		x.err(n, "%s passed to '%s', expected %d",
			plural(len(n.Args), "argument"), ast.String(n.Fun), len(fn.Parms))
		checkExprs(x, n.Args)
		return types.Invalid{}
	}
	ok = true
	for i, arg := range n.Args {
		at := checkExpr(x, arg, fn.Parms[i])
		switch {
		case !types.IsValid(at):
			ok = false
		case ok && !types.Equal(at, fn.Parms[i]):
			x.err(arg, "argument %d has type '%s', expected '%s'", i+1, at, fn.Parms[i])
			ok = false
		}
	}
	if !ok {
		return types.Invalid{}
	}
	return x.record(n, fn.Ret)
}

func checkExprs(x *state, es []ast.Expr) {
	for _, e := range es {
		checkExpr(x, e, nil)
	}
}

// checkArrayLit checks a vector literal.
// The element type is that of the expected vector type,
// or if there is none, the type of the first element.
func checkArrayLit(x *state, n *ast.ArrayLit, want types.Type) (t types.Type) {
	defer x.tr("checkArrayLit(%s)", ast.String(n))(&t)
	var elem types.Type
	if v, ok := want.(types.Vector); ok {
		elem = v.Elem
	}
	ok := true
	for _, e := range n.Elems {
		et := checkExpr(x, e, elem)
		switch {
		case !types.IsValid(et):
			ok = false
		case elem == nil:
			if _, isVoid := et.(types.Void); isVoid {
				x.err(e, "%s (type void) used as a value", ast.String(e))
				ok = false
				continue
			}
			elem = et
		case !types.Equal(et, elem):
			x.err(e, "a value of type '%s' used in a vector of '%s'", et, elem)
			ok = false
		}
	}
	if !ok {
		return types.Invalid{}
	}
	if elem == nil {
		x.err(n, "can't infer the element type of an empty vector literal")
		return types.Invalid{}
	}
	return x.record(n, types.Vector{Elem: elem})
}

func plural(n int, s string) string {
	if n == 1 {
		return "1 " + s
	}
	return fmt.Sprintf("%d %ss", n, s)
}
