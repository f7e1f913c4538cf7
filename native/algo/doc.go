// Package algo sorts and heapifies elements in place inside untyped blocks.
//
// The algorithms address elements through the raw package, so they work on any
// block + stride + count triple and never allocate blocks. Element moves are
// stride-sized byte copies; comparisons read *T views of the slots.
//
// Ordering follows Compare: a negative result means a sorts before b. Under an
// ascending comparer the heap functions maintain a min-heap at index 0.
package algo
