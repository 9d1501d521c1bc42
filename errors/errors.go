// Package errors holds the sentinel errors shared by the sorted list packages,
// plus a small accumulator for reporting several failures at once.
//
// Callers should compare against the sentinels with the standard library's
// errors.Is, since most of them are returned wrapped with extra context
// (for example the offending index and the list size).
package errors

import "errors"

var (
	ErrNotImplemented = errors.New("not implemented")
	ErrWrongType      = errors.New("wrong type")

	// ErrIndexOutOfRange is returned by positional operations when the index
	// falls outside [0, size) (or [0, size] for cursor positions).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrConcurrentModification is returned by an iterator whose list was
	// structurally modified by someone other than the iterator itself.
	// The list is still valid; only the iterator's cursor is stale.
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrUnsupported is returned by operations that the receiver refuses to
	// perform, such as positional overwrites on a sorted list or any
	// mutation through an immutable view.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrNoSuchElement is returned when an iterator is advanced past either end.
	ErrNoSuchElement = errors.New("no such element")

	// ErrIllegalState is returned when an iterator is asked to remove an element
	// before Next or Previous has returned one (or twice for the same element).
	ErrIllegalState = errors.New("illegal state")

	// ErrNilComparator is returned by constructors that were handed a nil comparator.
	ErrNilComparator = errors.New("nil comparator")

	// ErrInvariant is returned when a structural check finds a corrupted tree.
	ErrInvariant = errors.New("invariant violated")

	// ErrValidation wraps every error produced by validate.Validate.
	ErrValidation = errors.New("validation failed")
)

// Collection is a thread-unsafe utility for accumulating multiple errors.
// It provides methods to add errors, check for errors, and retrieve them as a single combined error.
// Use this when you need to collect errors from multiple operations and return them together.
type Collection struct {
	errors []error
}

// Add appends an error to the collection. Nil errors are automatically ignored.
func (c *Collection) Add(err error) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

// Clear removes all errors from the collection, resetting it to an empty state.
func (c *Collection) Clear() {
	c.errors = nil
}

// HasError returns true if the collection contains at least one error.
func (c *Collection) HasError() bool {
	return len(c.errors) > 0
}

// Len returns the number of errors collected so far.
func (c *Collection) Len() int {
	return len(c.errors)
}

// GetError returns the collected errors as a single error.
// Returns nil if the collection is empty, the single error if there's only one,
// or a joined error (using errors.Join) if there are multiple errors.
func (c *Collection) GetError() error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	default:
		return errors.Join(c.errors...)
	}
}
