// Package mem provides the capacity policy and reallocation helpers for
// the hybrid array's heap segment.
//
// # Capacity Policy
//
// Growth follows a doubling sequence floored at MinCapacity. Shrinking is
// deliberately asymmetric: the block is halved only once utilization falls
// to a quarter, and a segment holding fewer than MinCapacity elements
// never shrinks. The asymmetry keeps a workload that oscillates around a
// capacity boundary from alternating between grow and shrink on every
// operation.
package mem

// MinCapacity is the smallest non-zero heap capacity (the initial
// reservation, a power of two).
const MinCapacity = 16

// NextCapacity returns the capacity a heap segment of capacity cur should
// grow to in order to hold need elements: the first value in the doubling
// sequence starting at max(MinCapacity, cur) that is >= need.
func NextCapacity(cur, need int) int {
	c := cur
	if c < MinCapacity {
		c = MinCapacity
	}
	for c < need {
		c *= 2
	}
	return c
}

// ShrinkCapacity reports whether a block of the given capacity holding
// length elements should shrink, and the capacity to shrink to (half the
// current one). Releasing an emptied block is the caller's decision.
func ShrinkCapacity(length, capacity int) (int, bool) {
	if length >= MinCapacity && length <= capacity/4 {
		return capacity / 2, true
	}
	return capacity, false
}

// Realloc moves the live elements of old into a block of the given
// capacity. The new capacity must be able to hold every live element, for
// growth and shrink alike; violating that is a programmer error.
func Realloc[T any](old []T, newCap int) []T {
	if newCap < len(old) {
		panic("mem: realloc would drop live elements")
	}
	if newCap == cap(old) {
		return old
	}
	fresh := make([]T, len(old), newCap)
	copy(fresh, old)
	return fresh
}
