// Package types is the Rhyme type model:
// the closed set of types, their structural equality,
// and the numeric ranking used for promotion and widening.
package types

import (
	"math"
	"math/big"
)

// A Type is one of:
// 	Numeric
// 	Str
// 	CStr
// 	Void
// 	Invalid
// 	Function
// 	Vector
type Type interface {
	String() string
	isType()
}

// A Primitive is a Numeric, Str, CStr, Void, or Invalid type.
type Primitive interface {
	Type
	isPrimitive()
}

// Class is the class of a numeric type.
// Classes are ordered by promotion precedence.
type Class int

const (
	Unsigned Class = iota
	Signed
	Float
)

// A Numeric is an integer or floating point type.
type Numeric struct {
	Class Class
	// Bits is 8, 16, 32, or 64 for integers, and 32 or 64 for floats.
	Bits int
}

// Str is the managed string type.
type Str struct{}

// CStr is the null-terminated string type.
type CStr struct{}

// Void is the type of functions and statements with no value.
type Void struct{}

// Invalid is the type of an expression that failed to check.
// It is not equal to any type, including itself.
type Invalid struct{}

// A Function is the type of a function.
type Function struct {
	Ret   Type
	Parms []Type
}

// A Vector is a homogeneous sequence type.
type Vector struct {
	Elem Type
}

func (Numeric) isType()  {}
func (Str) isType()      {}
func (CStr) isType()     {}
func (Void) isType()     {}
func (Invalid) isType()  {}
func (Function) isType() {}
func (Vector) isType()   {}

func (Numeric) isPrimitive() {}
func (Str) isPrimitive()     {}
func (CStr) isPrimitive()    {}
func (Void) isPrimitive()    {}
func (Invalid) isPrimitive() {}

var (
	U8  = Numeric{Class: Unsigned, Bits: 8}
	U16 = Numeric{Class: Unsigned, Bits: 16}
	U32 = Numeric{Class: Unsigned, Bits: 32}
	U64 = Numeric{Class: Unsigned, Bits: 64}
	I8  = Numeric{Class: Signed, Bits: 8}
	I16 = Numeric{Class: Signed, Bits: 16}
	I32 = Numeric{Class: Signed, Bits: 32}
	I64 = Numeric{Class: Signed, Bits: 64}
	F32 = Numeric{Class: Float, Bits: 32}
	F64 = Numeric{Class: Float, Bits: 64}
)

// Numerics is every numeric type in ascending rank order.
var Numerics = []Numeric{U8, U16, U32, U64, I8, I16, I32, I64, F32, F64}

// FromName returns the type for a type name as written in source.
// The second result is false if the name is not a type.
// Note that var is not a type: an implicitly-typed binding
// takes the type of its initializer.
func FromName(name string) (Type, bool) {
	switch name {
	case "u8":
		return U8, true
	case "u16":
		return U16, true
	case "u32":
		return U32, true
	case "u64":
		return U64, true
	case "i8":
		return I8, true
	case "i16":
		return I16, true
	case "i32":
		return I32, true
	case "i64":
		return I64, true
	case "f32":
		return F32, true
	case "f64":
		return F64, true
	case "str":
		return Str{}, true
	case "cstr":
		return CStr{}, true
	case "void":
		return Void{}, true
	default:
		return Invalid{}, false
	}
}

// Equal returns whether two types are structurally equal.
// Invalid is never equal to anything.
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case Numeric:
		b, ok := b.(Numeric)
		return ok && a == b
	case Str:
		_, ok := b.(Str)
		return ok
	case CStr:
		_, ok := b.(CStr)
		return ok
	case Void:
		_, ok := b.(Void)
		return ok
	case Function:
		b, ok := b.(Function)
		if !ok || len(a.Parms) != len(b.Parms) || !Equal(a.Ret, b.Ret) {
			return false
		}
		for i := range a.Parms {
			if !Equal(a.Parms[i], b.Parms[i]) {
				return false
			}
		}
		return true
	case Vector:
		b, ok := b.(Vector)
		return ok && Equal(a.Elem, b.Elem)
	default:
		return false
	}
}

// IsValid returns whether t is a type other than Invalid.
func IsValid(t Type) bool {
	if t == nil {
		return false
	}
	_, bad := t.(Invalid)
	return !bad
}

// Rank returns the position of n in the numeric total order.
// Classes order unsigned < signed < float,
// and within a class, types order by bit width.
func (n Numeric) Rank() int {
	var w int
	switch n.Bits {
	case 8:
		w = 0
	case 16:
		w = 1
	case 32:
		w = 2
	case 64:
		w = 3
	default:
		panic("impossible")
	}
	return int(n.Class)*4 + w
}

// Max returns the higher ranked of two numeric types.
func Max(a, b Numeric) Numeric {
	if a.Rank() >= b.Rank() {
		return a
	}
	return b
}

// IsInt returns whether n is an integer type.
func (n Numeric) IsInt() bool { return n.Class != Float }

// Contains returns whether the integer v is representable in n.
// Every integer is considered representable in a float type.
func (n Numeric) Contains(v *big.Int) bool {
	switch n.Class {
	case Float:
		return true
	case Unsigned:
		return v.Sign() >= 0 && v.BitLen() <= n.Bits
	default:
		min := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), uint(n.Bits-1)))
		max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(n.Bits-1)), big.NewInt(1))
		return v.Cmp(min) >= 0 && v.Cmp(max) <= 0
	}
}

// ContainsFloat returns whether v is finite when rounded to the float type n.
// No float is representable in an integer type.
func (n Numeric) ContainsFloat(v *big.Float) bool {
	switch {
	case n.Class != Float:
		return false
	case n.Bits == 32:
		f, _ := v.Float32()
		return !math.IsInf(float64(f), 0)
	default:
		f, _ := v.Float64()
		return !math.IsInf(f, 0)
	}
}
