// Package sortable provides wrapper types for primitive types that implement
// the Sortable interface, enabling their use as elements of sorted collections.
//
// # Overview
//
// The Sortable interface extends [github.com/amp-labs/amp-sortedlist/compare.Comparable]
// by adding a LessThan method, providing both equality comparison and ordering.
// [Comparator] bridges a Sortable type to the three-way
// [github.com/amp-labs/amp-sortedlist/compare.Comparator] used by the sorted list:
//
//	list := sortedlist.NewSortable[sortable.Int]()
//	_ = list.Add(sortable.Int(42))
//	_ = list.Add(sortable.Int(10))
//
//	// Elements are returned in sorted order: 10, 42
//	for v := range list.Seq() {
//	    fmt.Println(int(v))
//	}
//
// # Creating Custom Sortable Types
//
// Equals and LessThan must agree: for any a and b exactly one of a.LessThan(b),
// b.LessThan(a) and a.Equals(b) holds.
//
//	type Task struct {
//	    Priority int
//	    Name     string
//	}
//
//	func (t Task) Equals(other Task) bool {
//	    return t.Priority == other.Priority && t.Name == other.Name
//	}
//
//	func (t Task) LessThan(other Task) bool {
//	    if t.Priority != other.Priority {
//	        return t.Priority < other.Priority
//	    }
//	    return t.Name < other.Name
//	}
package sortable
