// The rhymelist command lists the top-level declarations of Rhyme source files
// along with their checked types.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/eaburns/peggy/peg"
	"github.com/eaburns/pretty"
	"github.com/rhymelang/rhyme/ast"
	"github.com/rhymelang/rhyme/check"
	"github.com/rhymelang/rhyme/mod"
	"github.com/rhymelang/rhyme/resolve"
	"github.com/rhymelang/rhyme/types"
)

var (
	dump = flag.Bool("dump", false, "print the syntax tree of each declaration")
	all  = flag.Bool("all", false, "list declarations excluded by directives too")
)

func main() {
	flag.Usage = usage
	flag.Parse()
	pretty.Indent = "    "

	if len(flag.Args()) == 0 {
		u, err := ast.Parse("", os.Stdin)
		if err != nil {
			die(err)
		}
		resolve.Directives(u, nil)
		list(os.Stdout, u)
		return
	}
	for _, path := range flag.Args() {
		m, err := mod.Load(path)
		if err != nil {
			die(err)
		}
		units, errs := m.Parse()
		if len(errs) > 0 {
			die(errs[0])
		}
		for _, u := range units {
			list(os.Stdout, u)
		}
	}
}

// list writes each top-level declaration of the unit with its type.
func list(w io.Writer, u *ast.Unit) {
	info, err := check.Check(u, check.Config{})
	if err != nil {
		die(err)
	}
	var listDecls func([]ast.Decl, string)
	listDecls = func(decls []ast.Decl, indent string) {
		for _, d := range decls {
			dir, ok := d.(*ast.Directive)
			if !ok {
				fmt.Fprintf(w, "%s%s: %s", indent, u.Loc(d), ast.String(d))
				if t := info.TypeOf(d); types.IsValid(t) {
					fmt.Fprintf(w, " : %s", t)
				}
				fmt.Fprintln(w)
				if *dump {
					fmt.Fprintln(w, pretty.String(d))
				}
				continue
			}
			fmt.Fprintf(w, "%s%s: %s\n", indent, u.Loc(d), ast.String(d))
			if *all {
				listDecls(dir.Then, indent+"\t")
				if dir.Else != nil {
					fmt.Fprintf(w, "%s#else\n", indent)
					listDecls(dir.Else, indent+"\t")
				}
				continue
			}
			listDecls(u.Directives[dir], indent+"\t")
		}
	}
	listDecls(u.Root.Decls, "")
	for _, err := range info.Diags.Errors() {
		fmt.Fprintln(w, err)
	}
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage of %s:\n", os.Args[0])
	fmt.Fprintf(out, "%s [flags] [module dir or file...]\n", os.Args[0])
	flag.PrintDefaults()
}

func die(err error) {
	if pe, ok := err.(interface{ Tree() *peg.Fail }); ok {
		peg.PrettyWrite(os.Stdout, pe.Tree())
		fmt.Println("")
	}
	fmt.Println(err)
	os.Exit(1)
}
