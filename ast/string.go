package ast

import (
	"fmt"
	"strings"
)

// String returns a human-readable rendering of a node.
// Function and block bodies are elided.
func String(n Node) string {
	var s strings.Builder
	buildString(&s, n)
	return s.String()
}

func (n *TypeName) String() string { return String(n) }

func buildString(s *strings.Builder, n Node) {
	switch n := n.(type) {
	case nil:
		s.WriteString("<nil>")
	case *CompilationUnit:
		fmt.Fprintf(s, "unit(%d decls)", len(n.Decls))
	case *Directive:
		s.WriteString("#if ")
		if n.Not {
			s.WriteRune('!')
		}
		s.WriteString(n.Name.Text)
	case *FuncDecl:
		buildString(s, n.Ret)
		s.WriteRune(' ')
		s.WriteString(n.Name.Text)
		s.WriteRune('(')
		for i, p := range n.Parms {
			if i > 0 {
				s.WriteString(", ")
			}
			buildString(s, p)
		}
		s.WriteRune(')')
	case *Param:
		buildString(s, n.Type)
		s.WriteRune(' ')
		s.WriteString(n.Name.Text)
	case *TypeName:
		s.WriteString(n.Name.Text)
		if n.Vector {
			s.WriteString("[]")
		}
	case *BindingDecl:
		buildString(s, n.Type)
		s.WriteRune(' ')
		for i, d := range n.Declarators {
			if i > 0 {
				s.WriteString(", ")
			}
			buildString(s, d)
		}
	case *Declarator:
		s.WriteString(n.Name.Text)
		if n.Init != nil {
			s.WriteString(" = ")
			buildString(s, n.Init)
		}
	case *Block:
		s.WriteString("{…}")
	case *Return:
		s.WriteString("return")
		if n.Val != nil {
			s.WriteRune(' ')
			buildString(s, n.Val)
		}
	case *If:
		s.WriteString("if (")
		buildString(s, n.Cond)
		s.WriteString(") …")
	case *ExprStmt:
		buildString(s, n.Expr)
	case *Literal:
		s.WriteString(n.Tok.Text)
	case *Binding:
		s.WriteString(n.Ident.Text)
	case *Binary:
		buildString(s, n.Left)
		s.WriteRune(' ')
		s.WriteString(n.Op.String())
		s.WriteRune(' ')
		buildString(s, n.Right)
	case *Unary:
		s.WriteString(n.Op.String())
		buildString(s, n.X)
	case *Grouping:
		s.WriteRune('(')
		buildString(s, n.X)
		s.WriteRune(')')
	case *AssignExpr:
		buildString(s, n.Target)
		s.WriteString(" = ")
		buildString(s, n.Val)
	case *Call:
		buildString(s, n.Fun)
		s.WriteRune('(')
		buildList(s, n.Args)
		s.WriteRune(')')
	case *ArrayLit:
		s.WriteRune('[')
		buildList(s, n.Elems)
		s.WriteRune(']')
	case Token:
		s.WriteString(n.Text)
	default:
		fmt.Fprintf(s, "%T", n)
	}
}

func buildList(s *strings.Builder, xs []Expr) {
	for i, x := range xs {
		if i > 0 {
			s.WriteString(", ")
		}
		buildString(s, x)
	}
}
