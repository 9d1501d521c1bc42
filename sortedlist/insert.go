package sortedlist

import (
	"slices"
)

// Add inserts element at its sorted position, before any element it compares
// equal to. Add never fails on a List; the error exists so that immutable
// views can refuse it.
// Time complexity: O(log n).
func (l *List[E]) Add(element E) error {
	l.insert(element)

	return nil
}

// AddUnique inserts element only if no equal element is present, and reports
// whether it was inserted.
// Time complexity: O(log n).
func (l *List[E]) AddUnique(element E) (bool, error) {
	if l.Contains(element) {
		return false, nil
	}

	l.insert(element)

	return true, nil
}

// AddAll rebuilds the tree from a merge, instead of inserting one by one, once
// the batch holds at least 1/bulkThreshold as many elements as the list.
const bulkThreshold = 2

// AddAll inserts every element. The result is identical to calling Add for
// each element in order, including the relative order of equal elements.
// Large batches are merged and the tree rebuilt in one pass.
// Time complexity: O(k log n), or O(n + k log k) for large batches.
func (l *List[E]) AddAll(elements ...E) error {
	if len(elements) == 0 {
		return nil
	}

	if len(elements)*bulkThreshold < l.size || len(elements) < bulkThreshold {
		for _, e := range elements {
			l.insert(e)
		}

		return nil
	}

	// Sequential insertion puts each element before the equal ones already
	// present, so equal elements end up in reverse arrival order. Reversing and
	// then sorting stably reproduces exactly that.
	batch := slices.Clone(elements)
	slices.Reverse(batch)
	slices.SortStableFunc(batch, l.cmp)

	merged := make([]E, 0, l.size+len(batch))
	existing := l.Entries()

	i, j := 0, 0
	for i < len(batch) && j < len(existing) {
		if l.cmp(batch[i], existing[j]) <= 0 {
			merged = append(merged, batch[i])
			i++
		} else {
			merged = append(merged, existing[j])
			j++
		}
	}

	merged = append(merged, batch[i:]...)
	merged = append(merged, existing[j:]...)

	l.build(merged)
	l.modCount += len(elements)

	return nil
}

// insert attaches a new node for element and rebalances. It returns the new
// node's arena index, which stays valid until that node is removed.
func (l *List[E]) insert(element E) int {
	var n int

	if l.root == none {
		n = l.alloc(element, none)
		l.root = n
	} else {
		parent, cur, toLeft := none, l.root, false

		for cur != none {
			parent = cur
			toLeft = l.cmp(element, l.nodes[cur].element) <= 0

			if toLeft {
				cur = l.nodes[cur].left
			} else {
				cur = l.nodes[cur].right
			}
		}

		n = l.alloc(element, parent)

		if toLeft {
			l.nodes[parent].left = n
		} else {
			l.nodes[parent].right = n
		}

		l.retrace(parent)
	}

	l.size++
	l.modCount++

	return n
}

// build replaces the whole tree with a perfectly balanced one holding sorted,
// which must already be in list order.
func (l *List[E]) build(sorted []E) {
	clear(l.nodes)
	l.nodes = slices.Grow(l.nodes[:1], len(sorted))
	l.free = none
	l.root = l.buildRange(sorted, none)
	l.size = len(sorted)
}

func (l *List[E]) buildRange(s []E, parent int) int {
	if len(s) == 0 {
		return none
	}

	mid := len(s) / 2
	i := l.alloc(s[mid], parent)
	left := l.buildRange(s[:mid], i)
	right := l.buildRange(s[mid+1:], i)

	l.nodes[i].left, l.nodes[i].right = left, right
	l.refresh(i)

	return i
}
