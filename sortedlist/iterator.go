package sortedlist

import (
	"fmt"

	"github.com/amp-labs/amp-sortedlist/errors"
)

// Iterator is a bidirectional cursor over a List. The cursor sits between two
// elements: NextIndex is the rank Next would return, PreviousIndex the rank
// Previous would return.
//
// The iterator is fail-fast. If the list is structurally modified other than
// through this iterator's own Remove and Add, every later call fails with
// errors.ErrConcurrentModification.
type Iterator[E any] struct {
	list *List[E]

	// next is the node at nextIndex, or none when the cursor is at the end.
	next      int
	nextIndex int

	// lastReturned is the node most recently returned by Next or Previous,
	// or none when there is nothing to remove.
	lastReturned int

	expectedModCount int
	readOnly         bool
}

// Iterator returns a cursor positioned before the element of rank index, so
// that Next returns that element. It fails with errors.ErrIndexOutOfRange
// unless 0 <= index <= Size().
// Time complexity: O(log n).
func (l *List[E]) Iterator(index int) (*Iterator[E], error) {
	return l.iterator(index, false)
}

func (l *List[E]) iterator(index int, readOnly bool) (*Iterator[E], error) {
	if index < 0 || index > l.size {
		return nil, fmt.Errorf("%w: cursor %d, size %d", errors.ErrIndexOutOfRange, index, l.size)
	}

	return &Iterator[E]{
		list:             l,
		next:             l.locate(l.root, index),
		nextIndex:        index,
		expectedModCount: l.modCount,
		readOnly:         readOnly,
	}, nil
}

func (it *Iterator[E]) checkForComodification() error {
	if it.list.modCount != it.expectedModCount {
		return errors.ErrConcurrentModification
	}

	return nil
}

// HasNext returns true if Next would return an element.
func (it *Iterator[E]) HasNext() bool {
	return it.nextIndex < it.list.size
}

// HasPrevious returns true if Previous would return an element.
func (it *Iterator[E]) HasPrevious() bool {
	return it.nextIndex > 0
}

// NextIndex returns the rank of the element Next would return, or Size() at
// the end of the list.
func (it *Iterator[E]) NextIndex() int {
	return it.nextIndex
}

// PreviousIndex returns the rank of the element Previous would return, or -1
// at the start of the list.
func (it *Iterator[E]) PreviousIndex() int {
	return it.nextIndex - 1
}

// Next returns the element after the cursor and moves the cursor past it.
// It fails with errors.ErrNoSuchElement at the end of the list.
func (it *Iterator[E]) Next() (E, error) {
	var zero E

	if err := it.checkForComodification(); err != nil {
		return zero, err
	}

	if !it.HasNext() {
		return zero, errors.ErrNoSuchElement
	}

	l := it.list
	it.lastReturned = it.next
	it.next = l.next(it.next)
	it.nextIndex++

	return l.nodes[it.lastReturned].element, nil
}

// Previous returns the element before the cursor and moves the cursor back
// over it. It fails with errors.ErrNoSuchElement at the start of the list.
func (it *Iterator[E]) Previous() (E, error) {
	var zero E

	if err := it.checkForComodification(); err != nil {
		return zero, err
	}

	if !it.HasPrevious() {
		return zero, errors.ErrNoSuchElement
	}

	l := it.list
	if it.next == none {
		it.next = l.last(l.root)
	} else {
		it.next = l.previous(it.next)
	}

	it.lastReturned = it.next
	it.nextIndex--

	return l.nodes[it.lastReturned].element, nil
}

// Remove deletes the element last returned by Next or Previous. It fails with
// errors.ErrIllegalState when there is no such element, either because
// neither was called yet or because Remove or Add was called since.
func (it *Iterator[E]) Remove() error {
	if it.readOnly {
		return errors.ErrUnsupported
	}

	if err := it.checkForComodification(); err != nil {
		return err
	}

	if it.lastReturned == none {
		return errors.ErrIllegalState
	}

	l := it.list

	if it.lastReturned == it.next {
		// Returned by Previous: the cursor moves on to the successor.
		it.next = l.next(it.next)
	} else {
		it.nextIndex--
	}

	l.delete(it.lastReturned)

	it.lastReturned = none
	it.expectedModCount = l.modCount

	return nil
}

// Add inserts element at its sorted position, which is not necessarily the
// cursor position. When the element lands at or before the cursor, the
// cursor shifts so that Next still returns the same element as before.
func (it *Iterator[E]) Add(element E) error {
	if it.readOnly {
		return errors.ErrUnsupported
	}

	if err := it.checkForComodification(); err != nil {
		return err
	}

	l := it.list

	n := l.insert(element)
	if l.rankOf(n) <= it.nextIndex {
		it.nextIndex++
	}

	it.lastReturned = none
	it.expectedModCount = l.modCount

	return nil
}

// Set always fails with errors.ErrUnsupported: overwriting an element in
// place could break the order. Remove the element and Add the new one instead.
func (it *Iterator[E]) Set(E) error {
	return errors.ErrUnsupported
}
