// Package check does type checking of a parsed compilation unit.
package check

import (
	"fmt"
	"io"

	"github.com/rhymelang/rhyme/ast"
	"github.com/rhymelang/rhyme/diag"
	"github.com/rhymelang/rhyme/loc"
	"github.com/rhymelang/rhyme/types"
)

// Config are configuration parameters for type checking.
type Config struct {
	// FloatSize is the bit size of the type of a float literal
	// that has no expected float type.
	// It must be either 32 or 64.
	// If FloatSize is 0, 64 is used.
	FloatSize int

	// Trace is whether to enable debug tracing.
	Trace bool

	// TraceOut is where trace output is written.
	// If nil, os.Stdout is used.
	// With CheckAll, TraceOut must be safe for concurrent writes.
	TraceOut io.Writer
}

// Info is the result of checking a unit.
type Info struct {
	// Types maps each successfully typed node to its type.
	// Nodes that failed to type have no entry.
	Types map[ast.Node]types.Type

	// Diags are the unit's diagnostics in the order they were found.
	Diags *diag.Sink
}

// TypeOf returns the recorded type of a node,
// or Invalid if the node has no recorded type.
func (info *Info) TypeOf(n ast.Node) types.Type {
	if t, ok := info.Types[n]; ok {
		return t
	}
	return types.Invalid{}
}

// An InternalError reports a syntax tree that the checker can't handle.
// It is never caused by a well-formed tree from the parser.
type InternalError struct {
	Loc loc.Loc
	Msg string
}

func (err *InternalError) Error() string {
	return fmt.Sprintf("%s: internal error: %s", err.Loc, err.Msg)
}

// Check type checks a unit whose directives have been resolved.
//
// Type errors are reported as diagnostics in the returned Info;
// the error result is non-nil only for an *InternalError,
// in which case the Info holds what was found before checking was aborted.
func Check(unit *ast.Unit, cfg Config) (info *Info, err error) {
	x := newState(cfg, unit)
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		ierr, ok := r.(*InternalError)
		if !ok {
			panic(r)
		}
		info = &Info{Types: x.types, Diags: x.diags}
		err = ierr
	}()
	if unit.Root == nil {
		panic(&InternalError{Loc: loc.Loc{Path: unit.Path}, Msg: "no compilation unit"})
	}
	checkUnit(x, unit.Root)
	return &Info{Types: x.types, Diags: x.diags}, nil
}

func checkUnit(x *state, root *ast.CompilationUnit) {
	defer x.tr("checkUnit(%s)", x.unit.Path)(nil)
	x.env.Open()
	defer x.env.Close()

	gatherFuncs(x, root.Decls)
	for _, d := range root.Decls {
		checkDecl(x, d)
	}
}

// gatherFuncs declares the signatures of all functions in the unit scope,
// so that calls may precede the called function's declaration.
func gatherFuncs(x *state, decls []ast.Decl) {
	for _, d := range decls {
		switch d := d.(type) {
		case *ast.Directive:
			gatherFuncs(x, x.unit.Directives[d])
		case *ast.FuncDecl:
			gatherFunc(x, d)
		}
	}
}

func gatherFunc(x *state, fn *ast.FuncDecl) {
	defer x.tr("gatherFunc(%s)", fn.Name.Text)(nil)
	name := fn.Name.Text
	if prev, ok := x.funcs[name]; ok {
		x.err(fn.Name, "%s redefined", name).
			Note("previous definition is at %s", x.unit.Loc(prev.Name))
		return
	}
	x.funcs[name] = fn

	sig := types.Function{Ret: resolveType(x, fn.Ret)}
	for _, p := range fn.Parms {
		t := resolveType(x, p.Type)
		if _, isVoid := t.(types.Void); isVoid {
			x.err(p, "parameter %s can't have type void", p.Name.Text)
			t = types.Invalid{}
		}
		sig.Parms = append(sig.Parms, t)
	}
	x.sigs[fn] = sig
	if !validSig(sig) {
		x.env.Declare(name, types.Invalid{})
		return
	}
	x.env.Declare(name, sig)
}

func validSig(sig types.Function) bool {
	if !types.IsValid(sig.Ret) {
		return false
	}
	for _, p := range sig.Parms {
		if !types.IsValid(p) {
			return false
		}
	}
	return true
}

// resolveType returns the type named by a type name,
// reporting a diagnostic and returning Invalid for an unknown name.
// The implicit type var is not resolved here; callers that allow it handle it.
func resolveType(x *state, tn *ast.TypeName) types.Type {
	name := tn.Name.Text
	if name == "var" {
		x.err(tn, "implicit type var is not allowed here")
		return types.Invalid{}
	}
	t, ok := types.FromName(name)
	if !ok {
		x.err(tn, "unknown type '%s'", name)
		return types.Invalid{}
	}
	if !tn.Vector {
		return t
	}
	if _, isVoid := t.(types.Void); isVoid {
		x.err(tn, "can't make a vector of void")
		return types.Invalid{}
	}
	return types.Vector{Elem: t}
}

func checkDecl(x *state, d ast.Decl) {
	switch d := d.(type) {
	case *ast.Directive:
		for _, dep := range x.unit.Directives[d] {
			checkDecl(x, dep)
		}
	case *ast.FuncDecl:
		checkFunc(x, d)
	case *ast.BindingDecl:
		checkBindingDecl(x, d)
	default:
		x.internal(d, "unexpected declaration %T", d)
	}
}

func checkFunc(x *state, fn *ast.FuncDecl) {
	defer x.tr("checkFunc(%s)", fn.Name.Text)(nil)
	sig, ok := x.sigs[fn]
	if !ok {
		// A redefinition; its signature was never gathered.
		sig = types.Function{Ret: types.Invalid{}}
		for range fn.Parms {
			sig.Parms = append(sig.Parms, types.Invalid{})
		}
	} else if validSig(sig) {
		x.record(fn, sig)
	}

	x.env.Open()
	defer x.env.Close()
	for i, p := range fn.Parms {
		x.env.Declare(p.Name.Text, sig.Parms[i])
		x.record(p, sig.Parms[i])
	}
	if fn.Body == nil {
		return
	}

	oldRet := x.ret
	x.ret = sig.Ret
	defer func() { x.ret = oldRet }()
	for _, s := range fn.Body.Stmts {
		checkStmt(x, s)
	}
	x.record(fn.Body, types.Void{})
}

func checkBindingDecl(x *state, d *ast.BindingDecl) (t types.Type) {
	defer x.tr("checkBindingDecl(%s)", ast.String(d))(&t)
	switch {
	case d.Type.Name.Text == "var" && !d.Type.Vector:
		return checkImplicitDecl(x, d)
	case d.Type.Vector:
		return checkVectorDecl(x, d)
	default:
		return checkExplicitDecl(x, d)
	}
}

func checkImplicitDecl(x *state, d *ast.BindingDecl) types.Type {
	if len(d.Declarators) != 1 {
		x.err(d, "implicitly-typed declaration can't apply to multiple declarators")
		declareInvalid(x, d)
		return types.Invalid{}
	}
	dc := d.Declarators[0]
	if dc.Init == nil {
		x.err(dc, "implicitly-typed declaration must have an initialization value")
		declareInvalid(x, d)
		return types.Invalid{}
	}
	t := checkExpr(x, dc.Init, nil)
	if _, isVoid := t.(types.Void); isVoid {
		x.err(dc.Init, "%s (type void) used as a value", ast.String(dc.Init))
		t = types.Invalid{}
	}
	x.env.Declare(dc.Name.Text, t)
	x.record(dc, t)
	return x.record(d, t)
}

func checkExplicitDecl(x *state, d *ast.BindingDecl) types.Type {
	t := resolveType(x, d.Type)
	if _, isVoid := t.(types.Void); isVoid {
		x.err(d.Type, "a binding can't have type void")
		t = types.Invalid{}
	}
	ok := types.IsValid(t)
	for _, dc := range d.Declarators {
		if dc.Init != nil {
			it := checkExpr(x, dc.Init, t)
			switch {
			case !types.IsValid(it):
				ok = false
			case !types.IsValid(t):
				break
			case !types.Equal(t, it):
				x.err(dc, "can't initialize a binding of type '%s' with a value of type '%s'", t, it)
				ok = false
			}
		}
		x.env.Declare(dc.Name.Text, t)
		x.record(dc, t)
	}
	if !ok {
		return types.Invalid{}
	}
	return x.record(d, t)
}

// checkVectorDecl checks a declaration T[] a = [...], b = [...].
// Each declarator is bound to the element type T.
func checkVectorDecl(x *state, d *ast.BindingDecl) types.Type {
	vt := resolveType(x, d.Type)
	elem := types.Type(types.Invalid{})
	if v, isVec := vt.(types.Vector); isVec {
		elem = v.Elem
	}
	ok := types.IsValid(vt)
	for _, dc := range d.Declarators {
		dcOK := ok
		switch init := dc.Init.(type) {
		case nil:
			x.err(dc, "vector binding %s must have an initialization value", dc.Name.Text)
			dcOK = false
		case *ast.ArrayLit:
			if !types.IsValid(vt) {
				checkExprs(x, init.Elems)
				break
			}
			if !types.IsValid(checkExpr(x, init, vt)) {
				dcOK = false
			}
		default:
			checkExpr(x, init, nil)
			x.err(init, "expected a vector literal")
			dcOK = false
		}
		if !dcOK {
			ok = false
			x.env.Declare(dc.Name.Text, types.Invalid{})
			continue
		}
		x.env.Declare(dc.Name.Text, elem)
		x.record(dc, elem)
	}
	if !ok {
		return types.Invalid{}
	}
	return x.record(d, vt)
}

// declareInvalid binds each declarator of d to Invalid,
// so that later references are not reported as undefined.
func declareInvalid(x *state, d *ast.BindingDecl) {
	for _, dc := range d.Declarators {
		x.env.Declare(dc.Name.Text, types.Invalid{})
	}
}

func checkStmt(x *state, s ast.Stmt) {
	switch s := s.(type) {
	case *ast.BindingDecl:
		checkBindingDecl(x, s)
	case *ast.Block:
		checkBlock(x, s)
	case *ast.Return:
		checkReturn(x, s)
	case *ast.If:
		checkIf(x, s)
	case *ast.ExprStmt:
		if t := checkExpr(x, s.Expr, nil); types.IsValid(t) {
			x.record(s, t)
		}
	default:
		x.internal(s, "unexpected statement %T", s)
	}
}

func checkBlock(x *state, b *ast.Block) {
	defer x.tr("checkBlock")(nil)
	x.env.Open()
	defer x.env.Close()
	for _, s := range b.Stmts {
		checkStmt(x, s)
	}
	x.record(b, types.Void{})
}

func checkReturn(x *state, r *ast.Return) {
	defer x.tr("checkReturn(%s)", ast.String(r))(nil)
	if x.ret == nil {
		x.internal(r, "return outside of a function")
	}
	var got types.Type = types.Void{}
	if r.Val != nil {
		got = checkExpr(x, r.Val, x.ret)
	}
	if !types.IsValid(got) || !types.IsValid(x.ret) {
		return
	}
	if !types.Equal(got, x.ret) {
		if r.Val == nil {
			x.err(r, "missing return value, '%s' expected", x.ret)
		} else {
			x.err(r.Val, "can't return a value of type '%s', '%s' expected", got, x.ret)
		}
		return
	}
	x.record(r, got)
}

func checkIf(x *state, n *ast.If) {
	defer x.tr("checkIf")(nil)
	c := checkExpr(x, n.Cond, nil)
	if types.IsValid(c) {
		if _, ok := c.(types.Numeric); !ok {
			x.err(n.Cond, "condition must be numeric, got '%s'", c)
		}
	}
	checkBranch(x, n.Then)
	if n.Else != nil {
		checkBranch(x, n.Else)
	}
	x.record(n, types.Void{})
}

func checkBranch(x *state, s ast.Stmt) {
	x.env.Open()
	defer x.env.Close()
	checkStmt(x, s)
}
