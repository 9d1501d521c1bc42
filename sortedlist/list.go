// Package sortedlist provides List, a sorted sequence backed by an
// order-statistics AVL tree.
//
// Every node carries the heights and cardinalities of its two subtrees, so the
// list supports, all in O(log n):
//   - sorted insertion and removal by comparator,
//   - positional access by index as if it were a slice,
//   - rank queries: the first and last index of a value, of a probe of another
//     type, and of the boundaries where elements start to sort after or before
//     a value.
//
// Equal elements are kept in a stable way: a newly added element is placed
// before every element it compares equal to.
//
// A List is not safe for concurrent use. Iterators detect structural changes
// made behind their back and fail with errors.ErrConcurrentModification, but
// this is a best-effort check, not a synchronization mechanism.
package sortedlist

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/amp-labs/amp-sortedlist/compare"
	"github.com/amp-labs/amp-sortedlist/errors"
	"github.com/amp-labs/amp-sortedlist/optional"
	"github.com/amp-labs/amp-sortedlist/sortable"
)

// List is a sorted sequence addressable by index. The zero value is not
// usable; create lists with New or one of its variants.
type List[E any] struct {
	cmp compare.Comparator[E]

	// nodes is the arena; nodes[0] is the sentinel.
	nodes []node[E]
	root  int
	free  int

	size int

	// modCount is bumped on every structural change and read by iterators.
	modCount int
}

type options[E any] struct {
	descending bool
	elements   []E
}

// Option configures a List at construction time.
type Option[E any] func(*options[E])

// WithDescending sorts the list from the largest to the smallest element.
// For lists built with NewNullable or NewOptional the null placement is not
// affected: NullsFirst still puts nulls at index 0.
func WithDescending[E any]() Option[E] {
	return func(o *options[E]) {
		o.descending = true
	}
}

// WithElements adds the given elements to the list on construction, with the
// same result as adding them one by one.
func WithElements[E any](elements ...E) Option[E] {
	return func(o *options[E]) {
		o.elements = append(o.elements, elements...)
	}
}

func collectOptions[E any](opts []Option[E]) options[E] {
	var o options[E]

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// New creates a list ordered by c. It fails with errors.ErrNilComparator when
// c is nil.
func New[E any](c compare.Comparator[E], opts ...Option[E]) (*List[E], error) {
	if c == nil {
		return nil, errors.ErrNilComparator
	}

	o := collectOptions(opts)
	if o.descending {
		c = c.Reverse()
	}

	return newList(c, o.elements), nil
}

// From creates a list ordered by c holding a copy of items.
func From[E any](c compare.Comparator[E], items []E, opts ...Option[E]) (*List[E], error) {
	return New(c, append(slices.Clip(opts), WithElements(items...))...)
}

// NewOrdered creates a list of an ordered type in its natural order.
func NewOrdered[E cmp.Ordered](opts ...Option[E]) *List[E] {
	l, _ := New(compare.Natural[E](), opts...)

	return l
}

// NewSortable creates a list of a sortable type, ordered by its LessThan method.
func NewSortable[E sortable.Sortable[E]](opts ...Option[E]) *List[E] {
	l, _ := New(sortable.Comparator[E](), opts...)

	return l
}

// NewNullable creates a list of pointers ordered by the values they point to,
// where nil is null and is placed according to order.
func NewNullable[T any](
	c compare.Comparator[T], order compare.NullOrder, opts ...Option[*T],
) (*List[*T], error) {
	if c == nil {
		return nil, errors.ErrNilComparator
	}

	o := collectOptions(opts)
	if o.descending {
		c = c.Reverse()
	}

	return newList(compare.Nullable(c, order), o.elements), nil
}

// NewOptional creates a list of optional values ordered by their content,
// where None is null and is placed according to order.
func NewOptional[T any](
	c compare.Comparator[T], order compare.NullOrder, opts ...Option[optional.Value[T]],
) (*List[optional.Value[T]], error) {
	if c == nil {
		return nil, errors.ErrNilComparator
	}

	o := collectOptions(opts)
	if o.descending {
		c = c.Reverse()
	}

	return newList(compare.Optional(c, order), o.elements), nil
}

func newList[E any](c compare.Comparator[E], elements []E) *List[E] {
	l := &List[E]{
		cmp:   c,
		nodes: make([]node[E], 1, len(elements)+1),
	}

	if len(elements) > 0 {
		_ = l.AddAll(elements...)
	}

	return l
}

// Comparator returns the comparator the list is ordered by, including the
// effect of WithDescending.
func (l *List[E]) Comparator() compare.Comparator[E] {
	return l.cmp
}

// Size returns the number of elements in the list.
// Time complexity: O(1).
func (l *List[E]) Size() int {
	return l.size
}

// IsEmpty returns true if the list holds no elements.
func (l *List[E]) IsEmpty() bool {
	return l.size == 0
}

// Height returns the height of the underlying tree (0 when empty).
// An AVL tree of n elements is never taller than about 1.44*log2(n+2).
func (l *List[E]) Height() int {
	return l.height(l.root)
}

// Clear removes every element at once, without rebalancing. The list keeps
// its arena capacity. Clear never fails on a List; the error exists so that
// immutable views can refuse it.
// Time complexity: O(n) to release element references.
func (l *List[E]) Clear() error {
	clear(l.nodes)
	l.nodes = l.nodes[:1]
	l.root, l.free, l.size = none, none, 0
	l.modCount++

	return nil
}

func (l *List[E]) checkIndex(index, limit int) error {
	if index < 0 || index >= limit {
		return fmt.Errorf("%w: index %d, size %d", errors.ErrIndexOutOfRange, index, l.size)
	}

	return nil
}

// Get returns the element at the given index.
// It fails with errors.ErrIndexOutOfRange unless 0 <= index < Size().
// Time complexity: O(log n).
func (l *List[E]) Get(index int) (E, error) {
	if err := l.checkIndex(index, l.size); err != nil {
		var zero E

		return zero, err
	}

	return l.nodes[l.locate(l.root, index)].element, nil
}

// Min returns the first element of the list, or None when it is empty.
// Time complexity: O(log n).
func (l *List[E]) Min() optional.Value[E] {
	if l.root == none {
		return optional.None[E]()
	}

	return optional.Some(l.nodes[l.first(l.root)].element)
}

// Max returns the last element of the list, or None when it is empty.
// Time complexity: O(log n).
func (l *List[E]) Max() optional.Value[E] {
	if l.root == none {
		return optional.None[E]()
	}

	return optional.Some(l.nodes[l.last(l.root)].element)
}

// Clone returns a structurally independent copy of the list sharing only the
// comparator. Elements are copied by value, so pointer elements still point
// at the same targets.
// Time complexity: O(n).
func (l *List[E]) Clone() *List[E] {
	return &List[E]{
		cmp:   l.cmp,
		nodes: slices.Clone(l.nodes),
		root:  l.root,
		free:  l.free,
		size:  l.size,
	}
}

// Immutable returns a read-only view of the list. The view reflects later
// changes made through l; every mutation attempted through the view fails
// with errors.ErrUnsupported.
func (l *List[E]) Immutable() *Immutable[E] {
	return &Immutable[E]{list: l}
}

// Seq returns an iterator over the elements in order.
// The list must not be modified while ranging; if it is, iteration stops.
func (l *List[E]) Seq() iter.Seq[E] {
	return func(yield func(E) bool) {
		mod := l.modCount

		for i := l.first(l.root); i != none && mod == l.modCount; i = l.next(i) {
			if !yield(l.nodes[i].element) {
				return
			}
		}
	}
}

// All returns an iterator over index/element pairs in order.
func (l *List[E]) All() iter.Seq2[int, E] {
	return func(yield func(int, E) bool) {
		mod, index := l.modCount, 0

		for i := l.first(l.root); i != none && mod == l.modCount; i = l.next(i) {
			if !yield(index, l.nodes[i].element) {
				return
			}

			index++
		}
	}
}

// Backward returns an iterator over index/element pairs from the last
// element to the first.
func (l *List[E]) Backward() iter.Seq2[int, E] {
	return func(yield func(int, E) bool) {
		mod, index := l.modCount, l.size-1

		for i := l.last(l.root); i != none && mod == l.modCount; i = l.previous(i) {
			if !yield(index, l.nodes[i].element) {
				return
			}

			index--
		}
	}
}

// Entries returns the elements in order as a new slice (nil when empty).
// Time complexity: O(n).
func (l *List[E]) Entries() []E {
	if l.size == 0 {
		return nil
	}

	return l.appendRange(make([]E, 0, l.size), l.root, 0, 0, l.size)
}

// String renders the list like a slice, for example "[1 2 3]".
func (l *List[E]) String() string {
	var sb strings.Builder

	sb.WriteByte('[')

	for i, e := range l.All() {
		if i > 0 {
			sb.WriteByte(' ')
		}

		fmt.Fprint(&sb, e)
	}

	sb.WriteByte(']')

	return sb.String()
}

// tree lets package functions reach the list behind any Sequence.
func (l *List[E]) tree() *List[E] {
	return l
}
