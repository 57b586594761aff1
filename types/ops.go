// Copyright © 2020 The Rhyme Authors under an MIT-style license.

package types

import (
	"github.com/rhymelang/rhyme/ast"
)

// ApplyBinary returns the result type of a binary operator
// and whether the operator may be applied to the operand types.
// If the operator may not be applied, the result type is Invalid.
//
// The arithmetic operators, + - * / %, require two Numeric operands
// and result in the higher ranked of the two.
//
// For the assignment operator, =, lhs is the type of the target
// and rhs is the type of the value stored into it.
// The result is the target type. See Assignable.
func ApplyBinary(lhs Type, op ast.Op, rhs Type) (Type, bool) {
	switch op {
	case ast.Add, ast.Sub, ast.Mul, ast.Div, ast.Rem:
		l, ok := lhs.(Numeric)
		if !ok {
			return Invalid{}, false
		}
		r, ok := rhs.(Numeric)
		if !ok {
			return Invalid{}, false
		}
		return Max(l, r), true
	case ast.Assign:
		return Assignable(rhs, lhs)
	default:
		return Invalid{}, false
	}
}

// Assignable returns whether a value of type value
// may be stored into a target of type target,
// and the resulting type, which is the target type.
//
// Equal types are always assignable.
// A Numeric value is assignable to a Numeric target
// of equal or higher rank; narrowing is not allowed.
func Assignable(value, target Type) (Type, bool) {
	if Equal(value, target) {
		return target, true
	}
	v, ok := value.(Numeric)
	if !ok {
		return Invalid{}, false
	}
	t, ok := target.(Numeric)
	if !ok || t.Rank() < v.Rank() {
		return Invalid{}, false
	}
	return t, true
}

// ApplyUnary returns the result type of a unary operator
// and whether the operator may be applied to the operand type.
//
// Negation applies to signed integer and float types,
// resulting in the operand type.
// No other unary operator is supported.
func ApplyUnary(op ast.Op, t Type) (Type, bool) {
	switch op {
	case ast.Neg:
		n, ok := t.(Numeric)
		if !ok || n.Class == Unsigned {
			return Invalid{}, false
		}
		return n, true
	default:
		return Invalid{}, false
	}
}
