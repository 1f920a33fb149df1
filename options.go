package hybrid

// Option configures an Array at construction time.
type Option[T any] func(*Array[T])

// WithPostCopy sets the post-copy hook, invoked on every element of a
// freshly cloned array so element types with internal ownership (for
// example nested arrays) can re-establish their non-aliasing invariants.
// The default is a no-op.
func WithPostCopy[T any](fn func(*T)) Option[T] {
	return func(a *Array[T]) { a.postCopy = fn }
}

// WithDestroy sets the destroy hook, invoked exactly once per live element
// when the array is destroyed. Elements removed by value are handed to the
// caller and are not passed to the hook. The default is a no-op.
func WithDestroy[T any](fn func(*T)) Option[T] {
	return func(a *Array[T]) { a.destroy = fn }
}

// WithMaxHeapCapacity caps the heap segment at n elements. Growth past the
// cap reports ErrAllocationFailed instead of allocating. Zero (the
// default) means unbounded.
func WithMaxHeapCapacity[T any](n int) Option[T] {
	return func(a *Array[T]) { a.maxHeapCap = n }
}
