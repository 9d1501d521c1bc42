package compare

import "github.com/amp-labs/amp-sortedlist/optional"

// NullOrder decides where null values sort relative to every non-null value.
type NullOrder int

const (
	// NullsFirst sorts null before every non-null value.
	NullsFirst NullOrder = iota
	// NullsLast sorts null after every non-null value.
	NullsLast
)

// String returns a human-readable representation of the policy.
func (n NullOrder) String() string {
	switch n {
	case NullsFirst:
		return "nulls-first"
	case NullsLast:
		return "nulls-last"
	default:
		return "unknown"
	}
}

// nullSign resolves the comparison when at least one side is null.
// It returns the result and true when the comparison was decided by nullness.
func (n NullOrder) nullSign(aNull, bNull bool) (int, bool) {
	switch {
	case aNull && bNull:
		return 0, true
	case aNull:
		if n == NullsLast {
			return 1, true
		}

		return -1, true
	case bNull:
		if n == NullsLast {
			return -1, true
		}

		return 1, true
	default:
		return 0, false
	}
}

// Nullable lifts a comparator over T into one over *T, where a nil pointer is
// null and is placed according to order. Non-nil pointers are compared by the
// values they point to.
func Nullable[T any](c Comparator[T], order NullOrder) Comparator[*T] {
	return func(a, b *T) int {
		if r, decided := order.nullSign(a == nil, b == nil); decided {
			return r
		}

		return c(*a, *b)
	}
}

// Optional lifts a comparator over T into one over optional.Value[T], where
// None is null and is placed according to order.
func Optional[T any](c Comparator[T], order NullOrder) Comparator[optional.Value[T]] {
	return func(a, b optional.Value[T]) int {
		av, aSet := a.Get()
		bv, bSet := b.Get()

		if r, decided := order.nullSign(!aSet, !bSet); decided {
			return r
		}

		return c(av, bv)
	}
}
