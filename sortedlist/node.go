package sortedlist

// none is the arena index meaning "no node". Slot 0 of the arena is a
// zero-valued sentinel, so reading the counters of an absent child yields 0
// without a branch. Nothing may ever write to slot 0.
const none = 0

// node is one stored element and its local topology. Links are arena
// indices rather than pointers: parent is a back-reference that must always
// agree with the child link designating the node.
//
// Freed slots are chained through left, with parent and right cleared.
type node[E any] struct {
	element E

	parent, left, right int

	// Heights and cardinalities of the child subtrees (0 when absent).
	leftHeight, rightHeight int
	leftCount, rightCount   int
}

// balance is leftHeight - rightHeight. The tree keeps it within [-1, 1].
func (n *node[E]) balance() int {
	return n.leftHeight - n.rightHeight
}

// depth is the height of the taller child subtree.
func (n *node[E]) depth() int {
	return max(n.leftHeight, n.rightHeight)
}

// subtreeSize is the number of nodes in the subtree rooted here.
func (n *node[E]) subtreeSize() int {
	return n.leftCount + n.rightCount + 1
}

// height returns the height of the subtree rooted at i (0 for none).
func (l *List[E]) height(i int) int {
	if i == none {
		return 0
	}

	return l.nodes[i].depth() + 1
}

// count returns the number of nodes in the subtree rooted at i (0 for none).
func (l *List[E]) count(i int) int {
	if i == none {
		return 0
	}

	return l.nodes[i].subtreeSize()
}

// alloc places element in a free slot (or a new one) and returns its index.
// Any *node obtained before alloc may be invalidated by slice growth.
func (l *List[E]) alloc(element E, parent int) int {
	if i := l.free; i != none {
		l.free = l.nodes[i].left
		l.nodes[i] = node[E]{element: element, parent: parent}

		return i
	}

	l.nodes = append(l.nodes, node[E]{element: element, parent: parent})

	return len(l.nodes) - 1
}

// release returns slot i to the free list. The node must already be unlinked.
// The slot is zeroed so the element can be garbage collected.
func (l *List[E]) release(i int) {
	l.nodes[i] = node[E]{left: l.free}
	l.free = i
}

// refresh recomputes the four counters of i from its children.
func (l *List[E]) refresh(i int) {
	n := &l.nodes[i]
	n.leftHeight = l.height(n.left)
	n.rightHeight = l.height(n.right)
	n.leftCount = l.count(n.left)
	n.rightCount = l.count(n.right)
}

// replaceChild makes child take old's place under parent, or at the root when
// parent is none, and points child back at parent.
func (l *List[E]) replaceChild(parent, old, child int) {
	switch {
	case parent == none:
		l.root = child
	case l.nodes[parent].left == old:
		l.nodes[parent].left = child
	default:
		l.nodes[parent].right = child
	}

	if child != none {
		l.nodes[child].parent = parent
	}
}

// rotateLeft rotates the subtree rooted at i to the left and returns the new
// local root (i's former right child).
//
// Before:                       After:
//
//	  i                             r
//	 / \                           / \
//	a   r                         i   c
//	   / \            =>         / \
//	  b   c                     a   b
//
// Both rotated nodes get their counters recomputed from their new children.
func (l *List[E]) rotateLeft(i int) int {
	n := &l.nodes[i]
	r := n.right
	rn := &l.nodes[r]

	l.replaceChild(n.parent, i, r)

	n.right = rn.left
	if rn.left != none {
		l.nodes[rn.left].parent = i
	}

	rn.left = i
	n.parent = r

	l.refresh(i)
	l.refresh(r)

	return r
}

// rotateRight is the mirror image of rotateLeft and returns i's former left child.
func (l *List[E]) rotateRight(i int) int {
	n := &l.nodes[i]
	lc := n.left
	ln := &l.nodes[lc]

	l.replaceChild(n.parent, i, lc)

	n.left = ln.right
	if ln.right != none {
		l.nodes[ln.right].parent = i
	}

	ln.right = i
	n.parent = lc

	l.refresh(i)
	l.refresh(lc)

	return lc
}

// rebalance restores |balance| <= 1 at i, which must be off by exactly two,
// and returns the new local root. A double rotation is used when the heavy
// child leans toward the inside.
func (l *List[E]) rebalance(i int) int {
	n := &l.nodes[i]

	if n.balance() > 0 {
		if l.nodes[n.left].balance() < 0 {
			l.rotateLeft(n.left)
		}

		return l.rotateRight(i)
	}

	if l.nodes[n.right].balance() > 0 {
		l.rotateRight(n.right)
	}

	return l.rotateLeft(i)
}

// retrace walks from i up to the root after a structural change below i,
// refreshing counters and rotating wherever a node went out of balance.
//
// The walk always reaches the root: cardinalities change on every ancestor,
// and after a removal a rotation can shorten a subtree and unbalance the
// next ancestor up, so there is no earlier point at which to stop.
func (l *List[E]) retrace(i int) {
	for i != none {
		l.refresh(i)

		if b := l.nodes[i].balance(); b > 1 || b < -1 {
			i = l.rebalance(i)
		}

		i = l.nodes[i].parent
	}
}

// locate returns the node of rank k within the subtree rooted at i,
// or none when k is out of the subtree's range.
func (l *List[E]) locate(i, k int) int {
	for i != none {
		n := &l.nodes[i]

		switch {
		case k < n.leftCount:
			i = n.left
		case k > n.leftCount:
			k -= n.leftCount + 1
			i = n.right
		default:
			return i
		}
	}

	return none
}

// rankOf returns the 0-based position of node i in the whole sequence.
func (l *List[E]) rankOf(i int) int {
	rank := l.nodes[i].leftCount

	for p := l.nodes[i].parent; p != none; i, p = p, l.nodes[p].parent {
		if l.nodes[p].right == i {
			rank += l.nodes[p].leftCount + 1
		}
	}

	return rank
}

// first returns the leftmost node of the subtree rooted at i.
func (l *List[E]) first(i int) int {
	if i == none {
		return none
	}

	for l.nodes[i].left != none {
		i = l.nodes[i].left
	}

	return i
}

// last returns the rightmost node of the subtree rooted at i.
func (l *List[E]) last(i int) int {
	if i == none {
		return none
	}

	for l.nodes[i].right != none {
		i = l.nodes[i].right
	}

	return i
}

// next returns the in-order successor of i, or none at the end.
func (l *List[E]) next(i int) int {
	if r := l.nodes[i].right; r != none {
		return l.first(r)
	}

	p := l.nodes[i].parent
	for p != none && l.nodes[p].right == i {
		i, p = p, l.nodes[p].parent
	}

	return p
}

// previous returns the in-order predecessor of i, or none at the start.
func (l *List[E]) previous(i int) int {
	if lc := l.nodes[i].left; lc != none {
		return l.last(lc)
	}

	p := l.nodes[i].parent
	for p != none && l.nodes[p].left == i {
		i, p = p, l.nodes[p].parent
	}

	return p
}
