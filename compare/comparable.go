// Package compare provides utilities for comparing values: equality through
// Comparable, and three-way ordering through Comparator.
//
// A Comparator returns a negative number when a sorts before b, zero when the
// two are equivalent and a positive number when a sorts after b. Sorted
// collections only ever consult the sign of the result.
package compare

// Comparable is a generic interface for types that can compare themselves for equality.
// Types implementing this interface must provide their own Equals method that determines
// whether two values are equal according to the type's semantics.
type Comparable[T any] interface {
	Equals(other T) bool
}

// Equals compares two values using the Comparable interface.
// It delegates to the Equals method of the first argument.
func Equals[T any](a Comparable[T], b T) bool {
	return a.Equals(b)
}
