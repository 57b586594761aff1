package types

import (
	"strconv"
	"strings"
)

func (n Numeric) String() string {
	switch n.Class {
	case Unsigned:
		return "u" + strconv.Itoa(n.Bits)
	case Signed:
		return "i" + strconv.Itoa(n.Bits)
	default:
		return "f" + strconv.Itoa(n.Bits)
	}
}

func (Str) String() string     { return "str" }
func (CStr) String() string    { return "cstr" }
func (Void) String() string    { return "void" }
func (Invalid) String() string { return "invalid" }

func (n Function) String() string {
	var s strings.Builder
	s.WriteRune('(')
	for i, p := range n.Parms {
		if i > 0 {
			s.WriteString(", ")
		}
		buildTypeString(&s, p)
	}
	s.WriteString(") -> ")
	buildTypeString(&s, n.Ret)
	return s.String()
}

func (n Vector) String() string {
	var s strings.Builder
	buildTypeString(&s, n.Elem)
	s.WriteString("[]")
	return s.String()
}

func buildTypeString(s *strings.Builder, t Type) {
	switch t := t.(type) {
	case nil:
		s.WriteString("<nil>")
	case Function:
		s.WriteRune('(')
		s.WriteString(t.String())
		s.WriteRune(')')
	default:
		s.WriteString(t.String())
	}
}
