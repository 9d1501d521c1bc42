package sortedlist

import (
	"hash"
	"iter"

	"github.com/amp-labs/amp-sortedlist/compare"
	"github.com/amp-labs/amp-sortedlist/errors"
	"github.com/amp-labs/amp-sortedlist/optional"
)

// Sequence is the read-only surface shared by List and Immutable. Package
// functions such as IndexOfFunc accept any Sequence.
type Sequence[E any] interface {
	Comparator() compare.Comparator[E]
	Size() int
	IsEmpty() bool
	Height() int
	Get(index int) (E, error)
	Min() optional.Value[E]
	Max() optional.Value[E]
	Contains(value E) bool
	ContainsAny(value any) bool
	IndexOf(value E) int
	IndexOfAny(value any) int
	LastIndexOf(value E) int
	GreaterIndexOf(value E) int
	GreaterOrEqualIndexOf(value E) int
	SmallerIndexOf(value E) int
	SmallerOrEqualIndexOf(value E) int
	SubList(from, to int) (*List[E], error)
	Clone() *List[E]
	Seq() iter.Seq[E]
	All() iter.Seq2[int, E]
	Backward() iter.Seq2[int, E]
	Entries() []E
	UpdateHash(h hash.Hash) error
	Validate() error
	String() string

	tree() *List[E]
}

var (
	_ Sequence[int] = (*List[int])(nil)
	_ Sequence[int] = (*Immutable[int])(nil)
)

// Immutable is a read-only view of a List. It reflects every change made to
// the underlying list, but all of its own mutators fail with
// errors.ErrUnsupported and leave the list untouched.
type Immutable[E any] struct {
	list *List[E]
}

func (v *Immutable[E]) Comparator() compare.Comparator[E] { return v.list.Comparator() }
func (v *Immutable[E]) Size() int                         { return v.list.Size() }
func (v *Immutable[E]) IsEmpty() bool                     { return v.list.IsEmpty() }
func (v *Immutable[E]) Height() int                       { return v.list.Height() }
func (v *Immutable[E]) Get(index int) (E, error)          { return v.list.Get(index) }
func (v *Immutable[E]) Min() optional.Value[E]            { return v.list.Min() }
func (v *Immutable[E]) Max() optional.Value[E]            { return v.list.Max() }
func (v *Immutable[E]) Contains(value E) bool             { return v.list.Contains(value) }
func (v *Immutable[E]) ContainsAny(value any) bool        { return v.list.ContainsAny(value) }
func (v *Immutable[E]) IndexOf(value E) int               { return v.list.IndexOf(value) }
func (v *Immutable[E]) IndexOfAny(value any) int          { return v.list.IndexOfAny(value) }
func (v *Immutable[E]) LastIndexOf(value E) int           { return v.list.LastIndexOf(value) }
func (v *Immutable[E]) GreaterIndexOf(value E) int        { return v.list.GreaterIndexOf(value) }
func (v *Immutable[E]) SmallerIndexOf(value E) int        { return v.list.SmallerIndexOf(value) }
func (v *Immutable[E]) Seq() iter.Seq[E]                  { return v.list.Seq() }
func (v *Immutable[E]) All() iter.Seq2[int, E]            { return v.list.All() }
func (v *Immutable[E]) Backward() iter.Seq2[int, E]       { return v.list.Backward() }
func (v *Immutable[E]) Entries() []E                      { return v.list.Entries() }
func (v *Immutable[E]) UpdateHash(h hash.Hash) error      { return v.list.UpdateHash(h) }
func (v *Immutable[E]) Validate() error                   { return v.list.Validate() }
func (v *Immutable[E]) String() string                    { return v.list.String() }

func (v *Immutable[E]) GreaterOrEqualIndexOf(value E) int {
	return v.list.GreaterOrEqualIndexOf(value)
}

func (v *Immutable[E]) SmallerOrEqualIndexOf(value E) int {
	return v.list.SmallerOrEqualIndexOf(value)
}

// SubList returns a new, mutable list holding a copy of the given range.
func (v *Immutable[E]) SubList(from, to int) (*List[E], error) {
	return v.list.SubList(from, to)
}

// Clone returns a new, mutable copy of the underlying list.
func (v *Immutable[E]) Clone() *List[E] {
	return v.list.Clone()
}

// Iterator returns a cursor over the view whose Remove and Add always fail
// with errors.ErrUnsupported.
func (v *Immutable[E]) Iterator(index int) (*Iterator[E], error) {
	return v.list.iterator(index, true)
}

// Add always fails with errors.ErrUnsupported.
func (v *Immutable[E]) Add(E) error {
	return errors.ErrUnsupported
}

// AddUnique always fails with errors.ErrUnsupported.
func (v *Immutable[E]) AddUnique(E) (bool, error) {
	return false, errors.ErrUnsupported
}

// AddAll always fails with errors.ErrUnsupported.
func (v *Immutable[E]) AddAll(...E) error {
	return errors.ErrUnsupported
}

// Remove always fails with errors.ErrUnsupported.
func (v *Immutable[E]) Remove(E) (optional.Value[E], error) {
	return optional.None[E](), errors.ErrUnsupported
}

// RemoveAt always fails with errors.ErrUnsupported.
func (v *Immutable[E]) RemoveAt(int) (E, error) {
	var zero E

	return zero, errors.ErrUnsupported
}

// RemoveAny always fails with errors.ErrUnsupported.
func (v *Immutable[E]) RemoveAny(any) (optional.Value[E], error) {
	return optional.None[E](), errors.ErrUnsupported
}

// Clear always fails with errors.ErrUnsupported.
func (v *Immutable[E]) Clear() error {
	return errors.ErrUnsupported
}

// Resort always fails with errors.ErrUnsupported.
func (v *Immutable[E]) Resort() error {
	return errors.ErrUnsupported
}

func (v *Immutable[E]) tree() *List[E] {
	return v.list
}
