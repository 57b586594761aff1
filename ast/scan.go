package ast

import (
	"strings"
	"text/scanner"

	"github.com/eaburns/peggy/peg"
	"github.com/rhymelang/rhyme/loc"
)

// scan splits text into tokens, ending with a TokEOF token.
// A c immediately followed by a string literal is a single C string token.
// The returned *peg.Fail is non-nil if the text has a lexical error.
func scan(path, text string) ([]Token, *peg.Fail) {
	var fail *peg.Fail
	var s scanner.Scanner
	s.Init(strings.NewReader(text))
	s.Filename = path
	s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats |
		scanner.ScanStrings | scanner.ScanComments | scanner.SkipComments
	s.Error = func(s *scanner.Scanner, msg string) {
		if fail == nil {
			fail = &peg.Fail{
				Name: "Token",
				Pos:  s.Position.Offset,
				Kids: []*peg.Fail{{Pos: s.Position.Offset, Want: msg}},
			}
		}
	}

	var toks []Token
	for r := s.Scan(); r != scanner.EOF; r = s.Scan() {
		start := s.Position.Offset
		txt := s.TokenText()
		tok := Token{
			Range: loc.Range{start, start + len(txt)},
			Text:  txt,
		}
		switch r {
		case scanner.Ident:
			tok.Kind = TokIdent
		case scanner.Int:
			tok.Kind = TokInt
		case scanner.Float:
			tok.Kind = TokFloat
		case scanner.String:
			tok.Kind = TokString
			if n := len(toks); n > 0 {
				prev := &toks[n-1]
				if prev.Kind == TokIdent && prev.Text == "c" && prev.Range[1] == start {
					prev.Kind = TokCString
					prev.Text += txt
					prev.Range[1] = tok.Range[1]
					continue
				}
			}
		default:
			tok.Kind = TokPunct
		}
		toks = append(toks, tok)
	}
	toks = append(toks, Token{
		Range: loc.Range{len(text), len(text)},
		Kind:  TokEOF,
	})
	return toks, fail
}
