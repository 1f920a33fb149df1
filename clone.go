package hybrid

// Clone returns a deep copy of a: a fresh inline backing of equal
// capacity, a heap block that does not alias the original's, and the
// post-copy hook applied to every element of the copy in logical order.
func (a *Array[T]) Clone() (*Array[T], error) {
	var inline []T
	if cap(a.inline) > 0 {
		inline = make([]T, 0, cap(a.inline))
	}
	return a.CloneInline(inline)
}

// CloneInline is Clone with the destination inline storage supplied by the
// caller, mirroring New. The storage must be able to hold every live
// inline element of a; its capacity becomes the copy's inline capacity.
func (a *Array[T]) CloneInline(inline []T) (*Array[T], error) {
	if cap(inline) < len(a.inline) {
		return nil, &ErrInlineTooSmall{Capacity: cap(inline), Required: len(a.inline)}
	}

	dst := &Array[T]{
		inline:     inline[:len(a.inline)],
		postCopy:   a.postCopy,
		destroy:    a.destroy,
		maxHeapCap: a.maxHeapCap,
		normalized: a.normalized,
	}
	copy(dst.inline, a.inline)

	if a.heap != nil {
		dst.heap = make([]T, len(a.heap), cap(a.heap))
		copy(dst.heap, a.heap)
	}

	if dst.postCopy != nil {
		dst.ForEach(func(_ int, v *T) bool {
			dst.postCopy(v)
			return true
		})
	}
	return dst, nil
}

// Move transfers the contents of a into a new Array without invoking the
// post-copy hook: a pure ownership transfer for values being constructed
// directly in their final location, where running the hook would double
// its side effects.
//
// The source is left empty and fully detached: it keeps its hooks but
// loses its inline storage (capacity 0), so nothing it does afterward can
// alias the moved-to array.
func (a *Array[T]) Move() *Array[T] {
	dst := &Array[T]{
		inline:     a.inline,
		heap:       a.heap,
		postCopy:   a.postCopy,
		destroy:    a.destroy,
		maxHeapCap: a.maxHeapCap,
		normalized: a.normalized,
	}
	a.inline = nil
	a.heap = nil
	a.normalized = false
	return dst
}
