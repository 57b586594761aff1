package check

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rhymelang/rhyme/ast"
	"github.com/rhymelang/rhyme/diag"
	"github.com/rhymelang/rhyme/types"
)

type state struct {
	cfg   Config
	unit  *ast.Unit
	env   Env
	types map[ast.Node]types.Type
	diags *diag.Sink

	// sigs are the gathered function signatures.
	sigs map[*ast.FuncDecl]types.Function
	// funcs maps gathered function names to their first declaration.
	funcs map[string]*ast.FuncDecl
	// ret is the declared return type of the function being checked,
	// or nil outside of a function body.
	ret types.Type

	indent string
}

func newState(cfg Config, unit *ast.Unit) *state {
	x := &state{
		cfg:   cfg,
		unit:  unit,
		types: make(map[ast.Node]types.Type),
		diags: new(diag.Sink),
		sigs:  make(map[*ast.FuncDecl]types.Function),
		funcs: make(map[string]*ast.FuncDecl),
	}
	setConfigDefaults(x)
	return x
}

func setConfigDefaults(x *state) {
	switch x.cfg.FloatSize {
	case 0:
		x.cfg.FloatSize = 64
	case 32, 64:
		break
	default:
		panic("bad FloatSize " + strconv.Itoa(x.cfg.FloatSize))
	}
	if x.cfg.TraceOut == nil {
		x.cfg.TraceOut = os.Stdout
	}
}

func (x *state) floatType() types.Numeric {
	return types.Numeric{Class: types.Float, Bits: x.cfg.FloatSize}
}

func (x *state) err(n ast.Node, f string, vs ...interface{}) *diag.Diagnostic {
	d := x.diags.Errorf(x.unit.Loc(n), f, vs...)
	x.log("error: %s", d.Msg)
	return d
}

// internal aborts checking of the unit
// because the tree violates an invariant the parser guarantees.
func (x *state) internal(n ast.Node, f string, vs ...interface{}) {
	panic(&InternalError{Loc: x.unit.Loc(n), Msg: fmt.Sprintf(f, vs...)})
}

// record notes the type of a node and returns the type.
// Invalid types are not recorded.
func (x *state) record(n ast.Node, t types.Type) types.Type {
	if types.IsValid(t) {
		x.types[n] = t
	}
	return t
}

// tr traces entry into a check function.
// The returned function, if called with a non-nil pointer,
// traces the resulting type.
func (x *state) tr(f string, vs ...interface{}) func(*types.Type) {
	if !x.cfg.Trace {
		return func(*types.Type) {}
	}
	x.log(f, vs...)
	olddent := x.indent
	x.indent += "---"
	return func(t *types.Type) {
		defer func() { x.indent = olddent }()
		if t == nil || *t == nil {
			return
		}
		x.log("%s", *t)
	}
}

func (x *state) log(f string, vs ...interface{}) {
	if !x.cfg.Trace {
		return
	}
	fmt.Fprintf(x.cfg.TraceOut, "%s%s\n", x.indent, fmt.Sprintf(f, vs...))
}
