package compare

import (
	"facette.io/natsort"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NaturalString orders strings in natural order, treating runs of digits as
// numbers so that "file2" sorts before "file10".
func NaturalString() Comparator[string] {
	return func(a, b string) int {
		if a == b {
			return 0
		}

		// natsort reports both directions as preceding, or neither, for
		// strings it cannot tell apart ("item1" and "item0001"); byte order
		// breaks those ties.
		ab, ba := natsort.Compare(a, b), natsort.Compare(b, a)

		switch {
		case ab && !ba:
			return -1
		case ba && !ab:
			return 1
		case a < b:
			return -1
		default:
			return 1
		}
	}
}

// Collated orders strings using the collation rules of the given language,
// for example collate.IgnoreCase or collate.Loose can be passed as options.
//
// The returned comparator owns a collate.Collator, which is not safe for
// concurrent use; this matches the single-writer contract of the sorted list.
func Collated(tag language.Tag, opts ...collate.Option) Comparator[string] {
	col := collate.New(tag, opts...)

	return col.CompareString
}
