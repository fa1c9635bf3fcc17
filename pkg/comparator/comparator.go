// Package comparator supplies the key-ordering contract the tree is built on.
package comparator

import "golang.org/x/exp/constraints"

// Func compares two keys: negative if a < b, zero if equal, positive if a > b.
type Func[K any] func(a, b K) int

// Ordered returns the natural Func for any type with built-in ordering.
func Ordered[K constraints.Ordered]() Func[K] {
	return func(a, b K) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
}
