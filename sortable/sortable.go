package sortable

import (
	"github.com/amp-labs/amp-sortedlist/compare"
)

// Sortable is implemented by types that know both their equality and their order.
type Sortable[T any] interface {
	compare.Comparable[T]

	LessThan(other T) bool
}

// Comparator returns the three-way comparator induced by a Sortable type.
func Comparator[T Sortable[T]]() compare.Comparator[T] {
	return func(a, b T) int {
		switch {
		case a.LessThan(b):
			return -1
		case a.Equals(b):
			return 0
		default:
			return 1
		}
	}
}
