// Copyright © 2020 The Rhyme Authors under an MIT-style license.

package ast

import (
	"io"
	"io/ioutil"
	"os"
	"strconv"

	"github.com/eaburns/peggy/peg"
	"github.com/rhymelang/rhyme/loc"
)

// Parse parses a *Unit from an io.Reader.
// The first argument is the file path or "" if unspecified.
// The returned Unit has an empty directive map;
// directives are resolved separately.
func Parse(path string, r io.Reader) (*Unit, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parse(path, string(data))
}

// ParseFile parses the source in the file specified by a path.
func ParseFile(path string) (*Unit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(path, f)
}

// A ParseError is a syntax error.
type ParseError struct {
	Path string
	Text string
	Fail *peg.Fail
}

// Tree returns the tree of failed grammar rules leading to the error.
func (err *ParseError) Tree() *peg.Fail { return err.Fail }

func (err *ParseError) Error() string {
	e := peg.SimpleError(err.Text, err.Fail)
	e.FilePath = err.Path
	return e.Error()
}

type parser struct {
	toks  []Token
	pos   int
	rules []*peg.Fail
}

type bailout struct{ fail *peg.Fail }

func parse(path, text string) (u *Unit, err error) {
	toks, fail := scan(path, text)
	if fail != nil {
		return nil, &ParseError{Path: path, Text: text, Fail: fail}
	}
	p := &parser{toks: toks}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		b, ok := r.(bailout)
		if !ok {
			panic(r)
		}
		u, err = nil, &ParseError{Path: path, Text: text, Fail: b.fail}
	}()
	root := p.compilationUnit(len(text))
	u = &Unit{
		Path:       path,
		Text:       text,
		Root:       root,
		Directives: make(map[*Directive][]Decl),
	}
	u.Locs.Add(path, text)
	return u, nil
}

// rule pushes a named rule onto the stack used to build failure trees.
// The returned function pops it.
func (p *parser) rule(name string) func() {
	p.rules = append(p.rules, &peg.Fail{Name: name, Pos: p.tok().Range[0]})
	return func() { p.rules = p.rules[:len(p.rules)-1] }
}

func (p *parser) fail(want string) { p.failAt(p.tok().Range[0], want) }

func (p *parser) failAt(pos int, want string) {
	fail := &peg.Fail{Pos: pos, Want: want}
	for i := len(p.rules) - 1; i >= 0; i-- {
		r := *p.rules[i]
		r.Kids = []*peg.Fail{fail}
		fail = &r
	}
	panic(bailout{fail})
}

func (p *parser) tok() Token { return p.peek(0) }

func (p *parser) peek(n int) Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) next() Token {
	t := p.tok()
	if t.Kind != TokEOF {
		p.pos++
	}
	return t
}

// end returns the end offset of the last consumed token.
func (p *parser) end() int {
	if p.pos == 0 {
		return 0
	}
	return p.toks[p.pos-1].Range[1]
}

func (p *parser) isPunct(s string) bool {
	t := p.tok()
	return t.Kind == TokPunct && t.Text == s
}

func (p *parser) isKeyword(s string) bool {
	t := p.tok()
	return t.Kind == TokIdent && t.Text == s
}

func isName(t Token) bool {
	if t.Kind != TokIdent {
		return false
	}
	switch t.Text {
	case "return", "if", "else":
		return false
	}
	return true
}

func (p *parser) expect(s string) Token {
	if !p.isPunct(s) {
		p.fail(strconv.Quote(s))
	}
	return p.next()
}

func (p *parser) keyword(s string) Token {
	if !p.isKeyword(s) {
		p.fail(strconv.Quote(s))
	}
	return p.next()
}

func (p *parser) ident() Token {
	if !isName(p.tok()) {
		p.fail("identifier")
	}
	return p.next()
}

func (p *parser) compilationUnit(end int) *CompilationUnit {
	defer p.rule("Unit")()
	var decls []Decl
	for p.tok().Kind != TokEOF {
		decls = append(decls, p.topDecl())
	}
	return &CompilationUnit{Range: loc.Range{0, end}, Decls: decls}
}

func (p *parser) topDecl() Decl {
	defer p.rule("TopDecl")()
	if p.isPunct("#") {
		return p.directive()
	}
	typ := p.typeName()
	name := p.ident()
	if p.isPunct("(") {
		return p.funcDecl(typ, name)
	}
	d := p.bindingDecl(typ, name)
	p.expect(";")
	return d
}

func (p *parser) declBlock() []Decl {
	p.expect("{")
	decls := []Decl{}
	for !p.isPunct("}") {
		if p.tok().Kind == TokEOF {
			p.fail(`"}"`)
		}
		decls = append(decls, p.topDecl())
	}
	p.expect("}")
	return decls
}

func (p *parser) directive() *Directive {
	defer p.rule("Directive")()
	start := p.expect("#").Range[0]
	p.keyword("if")
	d := &Directive{}
	if p.isPunct("!") {
		p.next()
		d.Not = true
	}
	d.Name = p.ident()
	d.Then = p.declBlock()
	if p.isPunct("#") && p.peek(1).Kind == TokIdent && p.peek(1).Text == "else" {
		p.next()
		p.next()
		d.Else = p.declBlock()
	}
	d.Range = loc.Range{start, p.end()}
	return d
}

func (p *parser) typeName() *TypeName {
	defer p.rule("Type")()
	name := p.ident()
	t := &TypeName{Name: name}
	if p.isPunct("[") {
		p.next()
		p.expect("]")
		t.Vector = true
	}
	t.Range = loc.Range{name.Range[0], p.end()}
	return t
}

func (p *parser) funcDecl(ret *TypeName, name Token) *FuncDecl {
	defer p.rule("FuncDecl")()
	p.expect("(")
	fun := &FuncDecl{Ret: ret, Name: name}
	for !p.isPunct(")") {
		if len(fun.Parms) > 0 {
			p.expect(",")
		}
		typ := p.typeName()
		id := p.ident()
		fun.Parms = append(fun.Parms, &Param{
			Range: loc.Range{typ.Range[0], id.Range[1]},
			Type:  typ,
			Name:  id,
		})
	}
	p.expect(")")
	if p.isPunct(";") {
		p.next()
	} else {
		fun.Body = p.block()
	}
	fun.Range = loc.Range{ret.Range[0], p.end()}
	return fun
}

func (p *parser) bindingDecl(typ *TypeName, name Token) *BindingDecl {
	defer p.rule("BindingDecl")()
	d := &BindingDecl{Type: typ}
	for {
		dc := &Declarator{Name: name}
		if p.isPunct("=") {
			p.next()
			dc.Init = p.expr()
		}
		dc.Range = loc.Range{name.Range[0], p.end()}
		d.Declarators = append(d.Declarators, dc)
		if !p.isPunct(",") {
			break
		}
		p.next()
		name = p.ident()
	}
	d.Range = loc.Range{typ.Range[0], p.end()}
	return d
}

// isDeclStart returns whether the next tokens begin a binding declaration:
// either T x or T[] x.
func (p *parser) isDeclStart() bool {
	if !isName(p.tok()) {
		return false
	}
	if isName(p.peek(1)) {
		return true
	}
	isPunct := func(t Token, s string) bool { return t.Kind == TokPunct && t.Text == s }
	return isPunct(p.peek(1), "[") && isPunct(p.peek(2), "]") && isName(p.peek(3))
}

func (p *parser) block() *Block {
	defer p.rule("Block")()
	start := p.expect("{").Range[0]
	b := &Block{}
	for !p.isPunct("}") {
		if p.tok().Kind == TokEOF {
			p.fail(`"}"`)
		}
		b.Stmts = append(b.Stmts, p.stmt())
	}
	p.expect("}")
	b.Range = loc.Range{start, p.end()}
	return b
}

func (p *parser) stmt() Stmt {
	defer p.rule("Stmt")()
	switch {
	case p.isPunct("{"):
		return p.block()
	case p.isKeyword("return"):
		start := p.next().Range[0]
		ret := &Return{}
		if !p.isPunct(";") {
			ret.Val = p.expr()
		}
		p.expect(";")
		ret.Range = loc.Range{start, p.end()}
		return ret
	case p.isKeyword("if"):
		start := p.next().Range[0]
		p.expect("(")
		n := &If{Cond: p.expr()}
		p.expect(")")
		n.Then = p.stmt()
		if p.isKeyword("else") {
			p.next()
			n.Else = p.stmt()
		}
		n.Range = loc.Range{start, p.end()}
		return n
	case p.isDeclStart():
		typ := p.typeName()
		d := p.bindingDecl(typ, p.ident())
		p.expect(";")
		return d
	default:
		x := p.expr()
		p.expect(";")
		return &ExprStmt{Range: loc.Range{x.GetRange()[0], p.end()}, Expr: x}
	}
}

func (p *parser) expr() Expr {
	defer p.rule("Expr")()
	lhs := p.sum()
	if !p.isPunct("=") {
		return lhs
	}
	if _, ok := lhs.(*Binding); !ok {
		p.failAt(lhs.GetRange()[0], "identifier")
	}
	p.next()
	val := p.expr()
	return &AssignExpr{
		Range:  loc.Range{lhs.GetRange()[0], val.GetRange()[1]},
		Target: lhs,
		Val:    val,
	}
}

func (p *parser) sum() Expr {
	x := p.prod()
	for p.isPunct("+") || p.isPunct("-") {
		opTok := p.next()
		op := Add
		if opTok.Text == "-" {
			op = Sub
		}
		y := p.prod()
		x = &Binary{
			Range: loc.Range{x.GetRange()[0], y.GetRange()[1]},
			Op:    op,
			OpTok: opTok,
			Left:  x,
			Right: y,
		}
	}
	return x
}

func (p *parser) prod() Expr {
	x := p.unary()
	for p.isPunct("*") || p.isPunct("/") || p.isPunct("%") {
		opTok := p.next()
		var op Op
		switch opTok.Text {
		case "*":
			op = Mul
		case "/":
			op = Div
		default:
			op = Rem
		}
		y := p.unary()
		x = &Binary{
			Range: loc.Range{x.GetRange()[0], y.GetRange()[1]},
			Op:    op,
			OpTok: opTok,
			Left:  x,
			Right: y,
		}
	}
	return x
}

func (p *parser) unary() Expr {
	if !p.isPunct("-") {
		return p.postfix()
	}
	start := p.next().Range[0]
	x := p.unary()
	return &Unary{Range: loc.Range{start, x.GetRange()[1]}, Op: Neg, X: x}
}

func (p *parser) postfix() Expr {
	x := p.primary()
	for p.isPunct("(") {
		p.next()
		call := &Call{Fun: x, Args: p.exprs(")")}
		call.Range = loc.Range{x.GetRange()[0], p.end()}
		x = call
	}
	return x
}

// exprs parses a comma-separated list of expressions
// and the closing delimiter.
func (p *parser) exprs(close string) []Expr {
	var xs []Expr
	for !p.isPunct(close) {
		if len(xs) > 0 {
			p.expect(",")
		}
		xs = append(xs, p.expr())
	}
	p.expect(close)
	return xs
}

func (p *parser) primary() Expr {
	defer p.rule("Primary")()
	tok := p.tok()
	switch {
	case tok.Kind == TokInt || tok.Kind == TokFloat || tok.Kind == TokString || tok.Kind == TokCString:
		p.next()
		return &Literal{Range: tok.Range, Tok: tok}
	case isName(tok):
		p.next()
		return &Binding{Range: tok.Range, Ident: tok}
	case p.isPunct("("):
		p.next()
		g := &Grouping{X: p.expr()}
		p.expect(")")
		g.Range = loc.Range{tok.Range[0], p.end()}
		return g
	case p.isPunct("["):
		p.next()
		a := &ArrayLit{Elems: p.exprs("]")}
		a.Range = loc.Range{tok.Range[0], p.end()}
		return a
	}
	p.fail("expression")
	return nil
}
