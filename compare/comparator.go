package compare

import "cmp"

// Comparator is a three-way comparison between two values of the same type.
// It must describe a total order and be deterministic: the sorted list relies
// on it to keep its tree in order, and an inconsistent comparator corrupts
// ranks silently.
type Comparator[T any] func(a, b T) int

// Probe is an asymmetric comparator between a probe value of type P and a
// stored element of type E. It answers where the probe would sort relative
// to the element, which lets callers search a list of E by a key of another
// type (for example a list of records searched by id).
type Probe[P, E any] func(probe P, element E) int

// Natural returns the ascending comparator for an ordered type.
// Floating point NaNs sort before every other value, as in cmp.Compare.
func Natural[T cmp.Ordered]() Comparator[T] {
	return cmp.Compare[T]
}

// Reverse returns a comparator that orders values in the opposite direction.
func (c Comparator[T]) Reverse() Comparator[T] {
	return func(a, b T) int {
		return c(b, a)
	}
}

// Then returns a comparator that breaks ties of c using next.
func (c Comparator[T]) Then(next Comparator[T]) Comparator[T] {
	return func(a, b T) int {
		if r := c(a, b); r != 0 {
			return r
		}

		return next(a, b)
	}
}

// Equal reports whether a and b are equivalent under c.
func (c Comparator[T]) Equal(a, b T) bool {
	return c(a, b) == 0
}

// Less reports whether a sorts strictly before b under c.
func (c Comparator[T]) Less(a, b T) bool {
	return c(a, b) < 0
}

// AsProbe turns c into a Probe whose probe and element types coincide.
func (c Comparator[T]) AsProbe() Probe[T, T] {
	return Probe[T, T](c)
}

// By orders values of type T by a key extracted with key.
func By[T any, K cmp.Ordered](key func(T) K) Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}
