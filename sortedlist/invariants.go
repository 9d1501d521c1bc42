package sortedlist

import (
	"fmt"
	"hash"

	"github.com/amp-labs/amp-sortedlist/errors"
	"github.com/amp-labs/amp-sortedlist/hashing"
)

// maxViolations caps how many problems Validate reports for one tree.
const maxViolations = 16

// Validate checks every structural invariant of the tree and returns nil when
// they all hold. Otherwise the error wraps errors.ErrInvariant once per
// violation found:
//   - each child points back at its parent, and the root has no parent,
//   - the stored heights and counts match the actual subtrees,
//   - every balance factor is within [-1, 1],
//   - an in-order walk is ordered by the comparator,
//   - the node count matches Size().
//
// Validate is meant for tests and diagnostics.
// Time complexity: O(n).
func (l *List[E]) Validate() error {
	var errs errors.Collection

	violation := func(format string, args ...any) {
		if errs.Len() < maxViolations {
			errs.Add(fmt.Errorf("%w: %s", errors.ErrInvariant, fmt.Sprintf(format, args...)))
		}
	}

	if l.root != none && l.nodes[l.root].parent != none {
		violation("root %d has parent %d", l.root, l.nodes[l.root].parent)
	}

	if s := &l.nodes[none]; s.parent != none || s.left != none || s.right != none ||
		s.leftHeight != 0 || s.rightHeight != 0 || s.leftCount != 0 || s.rightCount != 0 {
		violation("sentinel slot was written to")
	}

	_, count := l.validateSubtree(l.root, violation)
	if count != l.size {
		violation("tree holds %d nodes, size is %d", count, l.size)
	}

	prev := none
	for i := l.first(l.root); i != none; i = l.next(i) {
		if prev != none && l.cmp(l.nodes[prev].element, l.nodes[i].element) > 0 {
			violation("node %d (%v) sorts after its successor %d (%v)",
				prev, l.nodes[prev].element, i, l.nodes[i].element)
		}

		prev = i
	}

	return errs.GetError()
}

// validateSubtree checks links, counters and balance below i and returns the
// actual height and node count of the subtree.
func (l *List[E]) validateSubtree(i int, violation func(string, ...any)) (int, int) {
	if i == none {
		return 0, 0
	}

	n := &l.nodes[i]

	for _, child := range []int{n.left, n.right} {
		if child != none && l.nodes[child].parent != i {
			violation("child %d of node %d points at parent %d", child, i, l.nodes[child].parent)
		}
	}

	lh, lc := l.validateSubtree(n.left, violation)
	rh, rc := l.validateSubtree(n.right, violation)

	if n.leftHeight != lh || n.rightHeight != rh {
		violation("node %d stores heights %d/%d, actual %d/%d", i, n.leftHeight, n.rightHeight, lh, rh)
	}

	if n.leftCount != lc || n.rightCount != rc {
		violation("node %d stores counts %d/%d, actual %d/%d", i, n.leftCount, n.rightCount, lc, rc)
	}

	if b := lh - rh; b > 1 || b < -1 {
		violation("node %d has balance %d", i, b)
	}

	return max(lh, rh) + 1, lc + rc + 1
}

// UpdateHash writes the elements in order to h, making List a
// hashing.Hashable. Elements that are themselves hashing.Hashable write
// their own content; any other element is written in its fmt %v form.
// Each element is followed by a zero byte so adjacent elements cannot blend.
func (l *List[E]) UpdateHash(h hash.Hash) error {
	sep := []byte{0}

	for e := range l.Seq() {
		var err error

		if hv, ok := any(e).(hashing.Hashable); ok {
			err = hv.UpdateHash(h)
		} else {
			_, err = fmt.Fprint(h, e)
		}

		if err != nil {
			return err
		}

		if _, err := h.Write(sep); err != nil {
			return err
		}
	}

	return nil
}
