package hybrid

import (
	"fmt"

	"github.com/cgaebel/hybrid/internal/mem"
)

// Array is a growable sequence backed by two cooperating segments: a
// fixed-capacity inline segment supplied by the caller at construction and
// a separately allocated heap segment for the overflow.
//
// Logical order is inline elements first, then heap elements: index i
// resolves to the inline segment when i is below the live inline count and
// to the heap segment otherwise.
//
// The zero value is a usable array with no inline segment (every element
// lives on the heap).
type Array[T any] struct {
	inline []T // caller-supplied backing; len tracks live elements, cap is fixed
	heap   []T // nil exactly when heap capacity is 0

	postCopy   func(*T)
	destroy    func(*T)
	maxHeapCap int

	// Set by Normalize. Once normalized, appends bypass the inline segment
	// so the logical sequence stays contiguous in the heap block.
	normalized bool
}

// Stats describes the storage layout of an Array.
type Stats struct {
	Len       int // logical length
	InlineLen int // live elements in the inline segment
	InlineCap int // fixed inline capacity
	HeapLen   int // live elements in the heap segment
	HeapCap   int // current heap block capacity (0 = no block)
}

// New creates an Array whose inline segment is backed by the given slice.
// The inline capacity is cap(inline), fixed for the array's lifetime; the
// slice's current contents are ignored. A nil slice yields an array with
// inline capacity 0.
//
// The backing slice is owned by the array until Destroy; the caller must
// not access it directly while the array is live.
func New[T any](inline []T, opts ...Option[T]) *Array[T] {
	a := &Array[T]{inline: inline[:0]}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Len returns the logical length. O(1).
func (a *Array[T]) Len() int { return len(a.inline) + len(a.heap) }

// Stats returns the current storage layout.
func (a *Array[T]) Stats() Stats {
	return Stats{
		Len:       a.Len(),
		InlineLen: len(a.inline),
		InlineCap: cap(a.inline),
		HeapLen:   len(a.heap),
		HeapCap:   cap(a.heap),
	}
}

// At returns a pointer to the element at logical index i. The pointer is
// valid until the next mutating operation.
func (a *Array[T]) At(i int) (*T, error) {
	if i < 0 || i >= a.Len() {
		return nil, &ErrOutOfBounds{Index: i, Length: a.Len()}
	}
	if i < len(a.inline) {
		return &a.inline[i], nil
	}
	return &a.heap[i-len(a.inline)], nil
}

// Append stores v at the end of the sequence. The inline segment is filled
// first; once full, elements spill into the heap segment, growing it as
// needed. Amortized O(1).
func (a *Array[T]) Append(v T) error {
	if !a.normalized && len(a.inline) < cap(a.inline) {
		a.inline = append(a.inline, v)
		return nil
	}
	if len(a.heap) == cap(a.heap) {
		if err := a.growHeap(len(a.heap) + 1); err != nil {
			return err
		}
	}
	a.heap = append(a.heap, v)
	return nil
}

// growHeap reallocates the heap block so it can hold at least need
// elements, following the doubling policy.
func (a *Array[T]) growHeap(need int) error {
	newCap := mem.NextCapacity(cap(a.heap), need)
	if a.maxHeapCap > 0 && newCap > a.maxHeapCap {
		if need > a.maxHeapCap {
			return fmt.Errorf("%w: need %d heap slots, capacity capped at %d", ErrAllocationFailed, need, a.maxHeapCap)
		}
		newCap = a.maxHeapCap
	}
	a.heap = mem.Realloc(a.heap, newCap)
	return nil
}

// RemoveLast removes and returns the last logical element. The removed
// value is handed to the caller; the destroy hook does not run on it.
// Returns ErrEmpty on a zero-length array.
func (a *Array[T]) RemoveLast() (T, error) {
	var zero T
	if n := len(a.heap); n > 0 {
		v := a.heap[n-1]
		a.heap[n-1] = zero
		a.heap = a.heap[:n-1]
		a.shrinkHeap()
		return v, nil
	}
	if n := len(a.inline); n > 0 {
		v := a.inline[n-1]
		a.inline[n-1] = zero
		a.inline = a.inline[:n-1]
		return v, nil
	}
	return zero, ErrEmpty
}

// shrinkHeap applies the shrink policy after a heap pop: release the block
// when it empties, halve it when utilization falls to a quarter (subject
// to the 16-element floor).
func (a *Array[T]) shrinkHeap() {
	if len(a.heap) == 0 {
		a.heap = nil
		return
	}
	if target, ok := mem.ShrinkCapacity(len(a.heap), cap(a.heap)); ok {
		a.heap = mem.Realloc(a.heap, target)
	}
}

// UnorderedRemove swaps the element at logical index i with the last
// logical element, pops it, and returns it. O(1) regardless of capacity,
// but the relative order of the surviving elements changes.
func (a *Array[T]) UnorderedRemove(i int) (T, error) {
	p, err := a.At(i)
	if err != nil {
		var zero T
		return zero, err
	}
	last, _ := a.At(a.Len() - 1)
	*p, *last = *last, *p
	return a.RemoveLast()
}

// ForEach calls fn for every element in logical order (inline segment
// first, then heap segment) until fn returns false. Iteration does not
// mutate the array and may be restarted. Mutating the array from fn is a
// precondition violation.
func (a *Array[T]) ForEach(fn func(i int, v *T) bool) {
	for i := range a.inline {
		if !fn(i, &a.inline[i]) {
			return
		}
	}
	off := len(a.inline)
	for i := range a.heap {
		if !fn(off+i, &a.heap[i]) {
			return
		}
	}
}

// Reserve grows the heap segment so the array can hold at least n elements
// without further allocation. It never shrinks. A normalized array stores
// everything on the heap, so its inline capacity no longer counts toward
// the reservation.
func (a *Array[T]) Reserve(n int) error {
	need := n - cap(a.inline)
	if a.normalized {
		need = n
	}
	if need <= cap(a.heap) {
		return nil
	}
	return a.growHeap(need)
}

// IsNormalized reports whether the whole logical sequence currently lives
// in the heap segment (trivially true while the inline segment is empty).
func (a *Array[T]) IsNormalized() bool { return len(a.inline) == 0 }

// Normalize moves every inline element into the heap segment so the whole
// logical sequence occupies one contiguous block, and returns that block
// as a view. Logical order is preserved. The view is valid until the next
// mutating operation.
//
// Normalization is irreversible: the inline segment is not re-populated
// afterward, and subsequent appends go straight to the heap.
func (a *Array[T]) Normalize() ([]T, error) {
	n := len(a.inline)
	if n == 0 {
		a.normalized = true
		return a.heap, nil
	}
	h := len(a.heap)

	// Grow first: a failed growth must leave the array untouched, with the
	// inline segment still in service.
	if cap(a.heap) < n+h {
		if err := a.growHeap(n + h); err != nil {
			return nil, err
		}
	}

	a.heap = a.heap[:n+h]
	copy(a.heap[n:], a.heap[:h])
	copy(a.heap[:n], a.inline)

	clear(a.inline)
	a.inline = a.inline[:0]
	a.normalized = true
	return a.heap, nil
}

// Destroy invokes the destroy hook on every live element (inline segment
// first, then heap segment) and releases the heap block. The array is left
// valid and empty; the caller-supplied inline storage is returned to the
// caller's ownership.
func (a *Array[T]) Destroy() {
	if a.destroy != nil {
		for i := range a.inline {
			a.destroy(&a.inline[i])
		}
		for i := range a.heap {
			a.destroy(&a.heap[i])
		}
	}
	clear(a.inline)
	a.inline = a.inline[:0]
	a.heap = nil
	a.normalized = false
}
