package sortedlist

import (
	"fmt"
	"slices"

	"github.com/amp-labs/amp-sortedlist/errors"
)

// appendRange appends, in order, the elements of the subtree rooted at i whose
// ranks fall in [from, to). offset is the rank of the subtree's first node.
// Subtrees entirely outside the range are never visited.
func (l *List[E]) appendRange(dst []E, i, offset, from, to int) []E {
	for i != none {
		n := &l.nodes[i]
		rank := offset + n.leftCount

		if from < rank {
			dst = l.appendRange(dst, n.left, offset, from, to)
		}

		if rank >= to {
			return dst
		}

		if rank >= from {
			dst = append(dst, n.element)
		}

		offset = rank + 1
		i = n.right
	}

	return dst
}

// SubList returns a new, independent list holding the elements of ranks
// [from, to), ordered by the same comparator. It fails with
// errors.ErrIndexOutOfRange unless 0 <= from <= to <= Size().
// Time complexity: O(log n + k) for k = to - from.
func (l *List[E]) SubList(from, to int) (*List[E], error) {
	if from < 0 || to > l.size || from > to {
		return nil, fmt.Errorf("%w: range [%d, %d), size %d", errors.ErrIndexOutOfRange, from, to, l.size)
	}

	sub := newList(l.cmp, nil)
	if from == to {
		return sub, nil
	}

	sub.build(l.appendRange(make([]E, 0, to-from), l.root, 0, from, to))

	return sub, nil
}

// Resort repairs the order of the list after elements were mutated in ways
// that changed how they compare. Elements are sorted stably and written back
// into the existing nodes, so the shape of the tree, and therefore the
// position of every live iterator, is left untouched.
//
// Resort is a best-effort repair: if the comparator itself is inconsistent
// the result is still undefined.
// Time complexity: O(n log n).
func (l *List[E]) Resort() error {
	entries := l.Entries()
	slices.SortStableFunc(entries, l.cmp)

	k := 0
	for i := l.first(l.root); i != none; i = l.next(i) {
		l.nodes[i].element = entries[k]
		k++
	}

	return nil
}
