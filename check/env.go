package check

import (
	"github.com/rhymelang/rhyme/types"
)

// An Env is a stack of lexical scopes, each binding names to types.
// The zero value is an Env with no scopes.
type Env struct {
	top   *scope
	depth int
}

type scope struct {
	up    *scope
	names map[string]types.Type
}

// Open pushes a new, empty innermost scope.
func (e *Env) Open() {
	e.top = &scope{up: e.top, names: make(map[string]types.Type)}
	e.depth++
}

// Close pops the innermost scope, discarding its bindings.
// Close panics if there is no open scope.
func (e *Env) Close() {
	if e.top == nil {
		panic("close of empty scope stack")
	}
	e.top = e.top.up
	e.depth--
}

// Depth returns the number of open scopes.
func (e *Env) Depth() int { return e.depth }

// Declare binds a name in the innermost scope,
// replacing any binding of the name already in that scope.
// Declare panics if there is no open scope.
func (e *Env) Declare(name string, t types.Type) {
	if e.top == nil {
		panic("declare with no open scope")
	}
	e.top.names[name] = t
}

// Lookup returns the type bound to a name in the innermost scope that binds it.
// The second result is false if no open scope binds the name.
func (e *Env) Lookup(name string) (types.Type, bool) {
	for s := e.top; s != nil; s = s.up {
		if t, ok := s.names[name]; ok {
			return t, true
		}
	}
	return types.Invalid{}, false
}

// Contains returns whether any open scope binds the name.
func (e *Env) Contains(name string) bool {
	_, ok := e.Lookup(name)
	return ok
}
