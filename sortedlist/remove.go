package sortedlist

import (
	"github.com/amp-labs/amp-sortedlist/optional"
)

// Remove deletes the first element equal to value and returns it, or returns
// None when no element compares equal. The returned element is the stored
// one, which may differ from value in fields the comparator ignores.
// Remove never fails on a List; the error exists so that immutable views can
// refuse it.
// Time complexity: O(log n).
func (l *List[E]) Remove(value E) (optional.Value[E], error) {
	n, _ := search(l, value, l.cmp.AsProbe(), false)
	if n == none {
		return optional.None[E](), nil
	}

	return optional.Some(l.delete(n)), nil
}

// RemoveAt deletes and returns the element at index.
// It fails with errors.ErrIndexOutOfRange unless 0 <= index < Size().
// Time complexity: O(log n).
func (l *List[E]) RemoveAt(index int) (E, error) {
	if err := l.checkIndex(index, l.size); err != nil {
		var zero E

		return zero, err
	}

	return l.delete(l.locate(l.root, index)), nil
}

// RemoveAny is Remove for an untyped value. A value that is not an E cannot
// be in the list, so it yields None rather than an error.
func (l *List[E]) RemoveAny(value any) (optional.Value[E], error) {
	e, ok := asElement[E](value)
	if !ok {
		return optional.None[E](), nil
	}

	return l.Remove(e)
}

// delete unlinks node z, rebalances, recycles its slot and returns its element.
//
// A node with children is replaced by its in-order predecessor when it has a
// left child, or by its successor otherwise. The replacement node itself is
// moved into z's position (elements never move between nodes), so the arena
// indices of all other nodes stay valid; iterators rely on that.
func (l *List[E]) delete(z int) E {
	zn := &l.nodes[z]
	element := zn.element

	var start int

	switch {
	case zn.left == none && zn.right == none:
		start = zn.parent
		l.replaceChild(zn.parent, z, none)
	default:
		var y int
		if zn.left != none {
			y = l.last(zn.left)
		} else {
			y = l.first(zn.right)
		}

		yn := &l.nodes[y]

		if yn.parent == z {
			// y is z's direct child and keeps its own outer subtree.
			start = y

			if zn.left == y {
				yn.right = zn.right
				if zn.right != none {
					l.nodes[zn.right].parent = y
				}
			}
		} else {
			// y is an extreme node deeper down: its only child takes its place.
			start = yn.parent

			child := yn.right
			if zn.left != none {
				child = yn.left
			}

			l.replaceChild(yn.parent, y, child)

			yn.left, yn.right = zn.left, zn.right
			if yn.left != none {
				l.nodes[yn.left].parent = y
			}

			if yn.right != none {
				l.nodes[yn.right].parent = y
			}
		}

		l.replaceChild(zn.parent, z, y)

		yn.leftHeight, yn.rightHeight = zn.leftHeight, zn.rightHeight
		yn.leftCount, yn.rightCount = zn.leftCount, zn.rightCount
	}

	l.release(z)
	l.retrace(start)

	l.size--
	l.modCount++

	return element
}
