// Package ast is the syntax tree of Rhyme source files.
package ast

import (
	"github.com/rhymelang/rhyme/loc"
)

// A Unit is a single parsed source file: the unit of type checking.
type Unit struct {
	Path string
	Text string
	Root *CompilationUnit

	// Directives maps each directive to the declarations it contributes,
	// in the order they are to be checked.
	// It is filled in by directive resolution before type checking;
	// a directive with no entry contributes nothing.
	Directives map[*Directive][]Decl

	Locs loc.Files
}

// Loc returns the location of a node in the unit.
func (u *Unit) Loc(n Node) loc.Loc {
	if l := u.Locs.Loc(n.GetRange()); l != nil {
		return *l
	}
	return loc.Loc{Path: u.Path}
}

// A Node is a node of the AST with location information.
type Node interface {
	GetRange() loc.Range
}

// A Decl is a top-level declaration.
type Decl interface {
	Node
	isDecl()
}

// A Stmt is a statement within a function body or block.
type Stmt interface {
	Node
	isStmt()
}

// An Expr is an expression.
type Expr interface {
	Node
	isExpr()
}

// TokenKind is the lexical class of a token.
type TokenKind int

const (
	TokEOF TokenKind = iota
	TokIdent
	TokInt
	TokFloat
	TokString
	TokCString
	TokPunct
)

func (k TokenKind) String() string {
	switch k {
	case TokEOF:
		return "EOF"
	case TokIdent:
		return "identifier"
	case TokInt:
		return "integer"
	case TokFloat:
		return "float"
	case TokString:
		return "string"
	case TokCString:
		return "C string"
	case TokPunct:
		return "punctuation"
	default:
		return "unknown"
	}
}

// A Token is a lexical token.
type Token struct {
	loc.Range
	Kind TokenKind
	// Text is the raw source text of the token,
	// including quotes and the c prefix of C strings.
	Text string
}

// Op is an operator kind.
type Op int

const (
	BadOp Op = iota
	Add
	Sub
	Mul
	Div
	Rem
	Assign
	Neg
)

func (op Op) String() string {
	switch op {
	case Add:
		return "+"
	case Sub, Neg:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Rem:
		return "%"
	case Assign:
		return "="
	default:
		return "?"
	}
}

// A CompilationUnit is the root of a file's syntax tree.
type CompilationUnit struct {
	loc.Range
	Decls []Decl
}

// A Directive conditionally contributes declarations.
// Which of Then or Else is used is decided by directive resolution.
type Directive struct {
	loc.Range
	// Not is whether the condition is negated: #if !Name.
	Not  bool
	Name Token
	Then []Decl
	Else []Decl
}

func (*Directive) isDecl() {}

// A FuncDecl is a function declaration.
type FuncDecl struct {
	loc.Range
	Ret   *TypeName
	Name  Token
	Parms []*Param
	// Body is nil for a declaration without a body.
	Body *Block
}

func (*FuncDecl) isDecl() {}

// A Param is a function parameter.
type Param struct {
	loc.Range
	Type *TypeName
	Name Token
}

// A TypeName is the name of a type as written in the source.
type TypeName struct {
	loc.Range
	Name Token
	// Vector is whether this is a vector of the named type: T[].
	Vector bool
}

// A BindingDecl declares one or more bindings sharing a type.
type BindingDecl struct {
	loc.Range
	Type        *TypeName
	Declarators []*Declarator
}

func (*BindingDecl) isDecl() {}
func (*BindingDecl) isStmt() {}

// A Declarator is a single name with an optional initializer.
type Declarator struct {
	loc.Range
	Name Token
	// Init is nil if there is no initializer.
	Init Expr
}

// A Block is a braced sequence of statements.
type Block struct {
	loc.Range
	Stmts []Stmt
}

func (*Block) isStmt() {}

// A Return is a return statement.
type Return struct {
	loc.Range
	// Val is nil for a bare return.
	Val Expr
}

func (*Return) isStmt() {}

// An If is a conditional statement.
type If struct {
	loc.Range
	Cond Expr
	Then Stmt
	// Else is nil if there is no else branch.
	Else Stmt
}

func (*If) isStmt() {}

// An ExprStmt is an expression used as a statement.
type ExprStmt struct {
	loc.Range
	Expr Expr
}

func (*ExprStmt) isStmt() {}

// A Literal is an integer, float, string, or C string literal.
type Literal struct {
	loc.Range
	Tok Token
}

func (*Literal) isExpr() {}

// A Binding is a reference to a named binding.
type Binding struct {
	loc.Range
	Ident Token
}

func (*Binding) isExpr() {}

// A Binary is an arithmetic binary expression.
type Binary struct {
	loc.Range
	Op    Op
	OpTok Token
	Left  Expr
	Right Expr
}

func (*Binary) isExpr() {}

// A Unary is a prefix operator expression.
type Unary struct {
	loc.Range
	Op Op
	X  Expr
}

func (*Unary) isExpr() {}

// A Grouping is a parenthesized expression.
type Grouping struct {
	loc.Range
	X Expr
}

func (*Grouping) isExpr() {}

// An AssignExpr is an assignment expression.
type AssignExpr struct {
	loc.Range
	// Target is a *Binding in any tree built by the parser.
	Target Expr
	Val    Expr
}

func (*AssignExpr) isExpr() {}

// A Call is a function call.
type Call struct {
	loc.Range
	Fun  Expr
	Args []Expr
}

func (*Call) isExpr() {}

// An ArrayLit is a vector literal: [a, b, c].
type ArrayLit struct {
	loc.Range
	Elems []Expr
}

func (*ArrayLit) isExpr() {}
