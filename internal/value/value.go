// Package value defines the runtime values the interpreter computes with.
package value

import (
	"math"
	"strconv"
)

// Value is a runtime value. The set of implementations is closed:
// Number, String, Bool and Nil.
type Value interface {
	// String renders the value the way a print statement shows it.
	String() string
	// TypeName names the dynamic type for diagnostics.
	TypeName() string
	value()
}

// Number is a 64-bit floating point number.
type Number float64

// String is a sequence of characters.
type String string

// Bool is a boolean.
type Bool bool

// Nil is the absence of a value. All Nil values are equal.
type Nil struct{}

func (Number) value() {}
func (String) value() {}
func (Bool) value()   {}
func (Nil) value()    {}

func (Number) TypeName() string { return "number" }
func (String) TypeName() string { return "string" }
func (Bool) TypeName() string   { return "boolean" }
func (Nil) TypeName() string    { return "nil" }

// String returns the shortest decimal form of n. Integral numbers carry no
// fractional part, so 45.0 renders as "45".
func (n Number) String() string {
	f := float64(n)
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (s String) String() string { return string(s) }

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

func (Nil) String() string { return "nil" }

// Truthy reports whether v counts as true. Nil and false are falsy;
// everything else, zero and the empty string included, is truthy.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case Nil:
		return false
	case Bool:
		return bool(v)
	case nil:
		return false
	}
	return true
}

// Equal reports whether a and b are the same value. Values of different
// types are never equal; Nil equals only Nil.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Number:
		bn, ok := b.(Number)
		return ok && a == bn
	case String:
		bs, ok := b.(String)
		return ok && a == bs
	case Bool:
		bb, ok := b.(Bool)
		return ok && a == bb
	}
	return false
}

// ToGo converts v to the corresponding Go value: float64, string, bool,
// or nil for Nil.
func ToGo(v Value) any {
	switch v := v.(type) {
	case Number:
		return float64(v)
	case String:
		return string(v)
	case Bool:
		return bool(v)
	}
	return nil
}
