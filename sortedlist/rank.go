package sortedlist

import (
	"reflect"

	"github.com/amp-labs/amp-sortedlist/compare"
)

// search finds the first (or, with last set, the last) node whose element
// matches probe exactly, together with its rank. It returns (none, -1) when
// no element matches.
func search[P, E any](l *List[E], probe P, p compare.Probe[P, E], last bool) (int, int) {
	found, rank := none, -1
	offset := 0

	for i := l.root; i != none; {
		n := &l.nodes[i]
		c := p(probe, n.element)

		switch {
		case c < 0:
			i = n.left
		case c > 0:
			offset += n.leftCount + 1
			i = n.right
		default:
			found, rank = i, offset+n.leftCount

			if last {
				offset += n.leftCount + 1
				i = n.right
			} else {
				i = n.left
			}
		}
	}

	return found, rank
}

// bound returns the number of leading elements that sort before probe. With
// strict set, elements matching probe count as sorting before it too, so the
// result is the rank of the first element sorting strictly after probe.
// The result is in [0, size].
func bound[P, E any](l *List[E], probe P, p compare.Probe[P, E], strict bool) int {
	rank := 0

	for i := l.root; i != none; {
		n := &l.nodes[i]
		c := p(probe, n.element)

		if c > 0 || (strict && c == 0) {
			rank += n.leftCount + 1
			i = n.right
		} else {
			i = n.left
		}
	}

	return rank
}

func (l *List[E]) orMissing(rank int) int {
	if rank >= l.size {
		return -1
	}

	return rank
}

// asElement converts an untyped probe into an element. An untyped nil is
// accepted when E can hold nil.
func asElement[E any](v any) (E, bool) {
	if e, ok := v.(E); ok {
		return e, true
	}

	var zero E

	if v != nil {
		return zero, false
	}

	switch reflect.TypeFor[E]().Kind() { //nolint:exhaustive
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return zero, true
	default:
		return zero, false
	}
}

// Contains returns true if some element compares equal to value.
// Time complexity: O(log n).
func (l *List[E]) Contains(value E) bool {
	n, _ := search(l, value, l.cmp.AsProbe(), false)

	return n != none
}

// ContainsAny is Contains for an untyped value. A value that is not an E is
// never contained.
func (l *List[E]) ContainsAny(value any) bool {
	e, ok := asElement[E](value)

	return ok && l.Contains(e)
}

// IndexOf returns the rank of the first element equal to value, or -1.
// Time complexity: O(log n).
func (l *List[E]) IndexOf(value E) int {
	_, rank := search(l, value, l.cmp.AsProbe(), false)

	return rank
}

// IndexOfAny is IndexOf for an untyped value. A value that is not an E
// yields -1.
func (l *List[E]) IndexOfAny(value any) int {
	e, ok := asElement[E](value)
	if !ok {
		return -1
	}

	return l.IndexOf(e)
}

// LastIndexOf returns the rank of the last element equal to value, or -1.
// Time complexity: O(log n).
func (l *List[E]) LastIndexOf(value E) int {
	_, rank := search(l, value, l.cmp.AsProbe(), true)

	return rank
}

// GreaterIndexOf returns the rank of the first element that sorts strictly
// after value, or -1 if there is none. In a descending list that is the
// first element smaller than value.
// Time complexity: O(log n).
func (l *List[E]) GreaterIndexOf(value E) int {
	return l.orMissing(bound(l, value, l.cmp.AsProbe(), true))
}

// GreaterOrEqualIndexOf returns the rank of the first element that does not
// sort before value, or -1 if there is none.
func (l *List[E]) GreaterOrEqualIndexOf(value E) int {
	return l.orMissing(bound(l, value, l.cmp.AsProbe(), false))
}

// SmallerIndexOf returns the rank of the last element that sorts strictly
// before value, or -1 if there is none.
func (l *List[E]) SmallerIndexOf(value E) int {
	return bound(l, value, l.cmp.AsProbe(), false) - 1
}

// SmallerOrEqualIndexOf returns the rank of the last element that does not
// sort after value, or -1 if there is none.
func (l *List[E]) SmallerOrEqualIndexOf(value E) int {
	return bound(l, value, l.cmp.AsProbe(), true) - 1
}

// IndexOfFunc returns the rank of the first element e with p(probe, e) == 0,
// or -1. The probe must be consistent with the list order: p(probe, e) must
// not decrease as e moves forward in the list.
//
// Example:
//
//	type user struct{ id int; name string }
//
//	users, _ := sortedlist.New(compare.By(func(u user) int { return u.id }))
//	byID := func(id int, u user) int { return cmp.Compare(id, u.id) }
//	i := sortedlist.IndexOfFunc(users, 42, byID)
//
// Time complexity: O(log n).
func IndexOfFunc[P, E any](s Sequence[E], probe P, p compare.Probe[P, E]) int {
	_, rank := search(s.tree(), probe, p, false)

	return rank
}

// LastIndexOfFunc returns the rank of the last element e with
// p(probe, e) == 0, or -1.
func LastIndexOfFunc[P, E any](s Sequence[E], probe P, p compare.Probe[P, E]) int {
	_, rank := search(s.tree(), probe, p, true)

	return rank
}

// GreaterIndexOfFunc returns the rank of the first element e with
// p(probe, e) < 0, or -1.
func GreaterIndexOfFunc[P, E any](s Sequence[E], probe P, p compare.Probe[P, E]) int {
	l := s.tree()

	return l.orMissing(bound(l, probe, p, true))
}

// GreaterOrEqualIndexOfFunc returns the rank of the first element e with
// p(probe, e) <= 0, or -1.
func GreaterOrEqualIndexOfFunc[P, E any](s Sequence[E], probe P, p compare.Probe[P, E]) int {
	l := s.tree()

	return l.orMissing(bound(l, probe, p, false))
}

// SmallerIndexOfFunc returns the rank of the last element e with
// p(probe, e) > 0, or -1.
func SmallerIndexOfFunc[P, E any](s Sequence[E], probe P, p compare.Probe[P, E]) int {
	return bound(s.tree(), probe, p, false) - 1
}

// SmallerOrEqualIndexOfFunc returns the rank of the last element e with
// p(probe, e) >= 0, or -1.
func SmallerOrEqualIndexOfFunc[P, E any](s Sequence[E], probe P, p compare.Probe[P, E]) int {
	return bound(s.tree(), probe, p, true) - 1
}
