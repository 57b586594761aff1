package main

import (
	"errors"
	"strings"

	"github.com/eaburns/peggy/peg"
	"github.com/rhymelang/rhyme/ast"
	"github.com/rhymelang/rhyme/check"
	"github.com/rhymelang/rhyme/resolve"
	"github.com/rhymelang/rhyme/types"
)

const sessionPath = "<input>"

// A session is the accepted declarations of an interactive session.
// Each input is checked together with everything accepted before it.
type session struct {
	cfg     check.Config
	defines []string
	src     string
}

// eval checks input as more top-level declarations.
// If there are no errors, the input is accepted,
// and eval returns a line describing each new declaration.
func (s *session) eval(input string) ([]string, []error) {
	text := s.src + input + "\n"
	u, err := ast.Parse(sessionPath, strings.NewReader(text))
	if err != nil {
		return nil, []error{err}
	}
	resolve.Directives(u, s.defines)
	info, err := check.Check(u, s.cfg)
	if err != nil {
		return nil, []error{err}
	}
	if info.Diags.HadError() {
		return nil, info.Diags.Errors()
	}

	var lines []string
	for _, d := range u.Root.Decls {
		if d.GetRange()[0] < len(s.src) {
			continue
		}
		line := ast.String(d)
		if t := info.TypeOf(d); types.IsValid(t) {
			line += " : " + t.String()
		}
		lines = append(lines, line)
	}
	s.src = text
	return lines, nil
}

// incomplete returns whether input fails to parse
// only because it ends before a declaration is complete.
func (s *session) incomplete(input string) bool {
	text := s.src + input + "\n"
	_, err := ast.Parse(sessionPath, strings.NewReader(text))
	var perr *ast.ParseError
	if !errors.As(err, &perr) {
		return false
	}
	return maxPos(perr.Fail) >= len(strings.TrimRight(text, " \t\n"))
}

func maxPos(f *peg.Fail) int {
	pos := f.Pos
	for _, k := range f.Kids {
		if p := maxPos(k); p > pos {
			pos = p
		}
	}
	return pos
}

func (s *session) reset() { s.src = "" }
