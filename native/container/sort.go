package container

import (
	"cmp"

	"github.com/joshuapare/nativekit/native/algo"
)

// Sortable is implemented by Array and List.
type Sortable[T any] interface {
	SortWith(strategy algo.Strategy, compare algo.Compare[T]) error
}

// SortOrdered sorts s ascending with the recursive quicksort.
func SortOrdered[T cmp.Ordered](s Sortable[T]) error {
	return s.SortWith(algo.Recursive, cmp.Compare[T])
}

// SortOrderedWith sorts s ascending with the given strategy.
func SortOrderedWith[T cmp.Ordered](s Sortable[T], strategy algo.Strategy) error {
	return s.SortWith(strategy, cmp.Compare[T])
}
