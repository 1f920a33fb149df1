// Package hybrid provides a growable sequence container with hybrid
// storage: a fixed-capacity inline segment supplied by the caller and a
// dynamically sized heap segment for the overflow.
//
// The inline segment is filled first and never reallocated, so short
// sequences never touch the allocator:
//
//	var buf [8]Item
//	a := hybrid.New(buf[:])
//	_ = a.Append(item) // stored inline, no allocation
//
// Once the inline segment is full, appends spill into a separately managed
// heap block. The block doubles on growth with a 16-element initial
// reservation and halves on removal only when utilization falls to a
// quarter (never below the 16-element floor), so alternating append/remove
// near a capacity boundary does not thrash the allocator.
//
// Element types with internal ownership register hooks at construction:
//
//	a := hybrid.New(buf[:],
//		hybrid.WithPostCopy[Item](fixup),  // runs on every element of a Clone
//		hybrid.WithDestroy[Item](release), // runs on every live element at Destroy
//	)
//
// # Concurrency
//
// An Array is not safe for concurrent mutation. Concurrent read-only
// access (At, ForEach, Len, Stats) is safe provided no mutation is in
// flight; external synchronization is the caller's responsibility.
package hybrid
