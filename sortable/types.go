package sortable

import "math"

// Int is a sortable wrapper type for the built-in int type.
//
// To convert back to a regular int, use a type conversion:
//
//	var s sortable.Int = 42
//	regularInt := int(s)
type Int int

// Byte is a sortable wrapper type for the built-in byte type.
type Byte byte

// String is a sortable wrapper type for the built-in string type.
// Strings are ordered bytewise, as with the < operator.
type String string

// Float64 is a sortable wrapper type for float64. NaN sorts before every
// other value and equals itself, so Float64 stays a total order.
type Float64 float64

// Compile-time checks.
var (
	_ Sortable[Int]     = (*Int)(nil)
	_ Sortable[Byte]    = (*Byte)(nil)
	_ Sortable[String]  = (*String)(nil)
	_ Sortable[Float64] = (*Float64)(nil)
)

func (i Int) Equals(other Int) bool   { return i == other }
func (i Int) LessThan(other Int) bool { return i < other }

func (b Byte) Equals(other Byte) bool   { return b == other }
func (b Byte) LessThan(other Byte) bool { return b < other }

func (s String) Equals(other String) bool   { return s == other }
func (s String) LessThan(other String) bool { return s < other }

func (f Float64) isNaN() bool { return math.IsNaN(float64(f)) }

// Equals returns true if both values are equal, or both are NaN.
func (f Float64) Equals(other Float64) bool {
	return f == other || (f.isNaN() && other.isNaN())
}

// LessThan returns true if f sorts before other; NaN sorts first.
func (f Float64) LessThan(other Float64) bool {
	switch {
	case f.isNaN():
		return !other.isNaN()
	case other.isNaN():
		return false
	default:
		return f < other
	}
}
