// Package resolve decides which declarations
// conditional directives contribute to a unit.
package resolve

import (
	"github.com/rhymelang/rhyme/ast"
)

// Directives fills in u.Directives.
// A directive #if NAME contributes its then-declarations
// if NAME is among defines, and its else-declarations otherwise;
// #if !NAME is the reverse.
// Directives nested in the contributed declarations are resolved too.
// Directives that are not contributed get no entry.
func Directives(u *ast.Unit, defines []string) {
	set := make(map[string]bool, len(defines))
	for _, d := range defines {
		set[d] = true
	}
	if u.Directives == nil {
		u.Directives = make(map[*ast.Directive][]ast.Decl)
	}
	if u.Root != nil {
		resolve(u, set, u.Root.Decls)
	}
}

func resolve(u *ast.Unit, set map[string]bool, decls []ast.Decl) {
	for _, d := range decls {
		dir, ok := d.(*ast.Directive)
		if !ok {
			continue
		}
		deps := dir.Else
		if set[dir.Name.Text] != dir.Not {
			deps = dir.Then
		}
		u.Directives[dir] = deps
		resolve(u, set, deps)
	}
}
