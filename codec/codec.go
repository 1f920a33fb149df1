// Package codec encodes hybrid arrays into self-describing snapshot blobs.
//
// A snapshot records the element codec name and the compression type in
// its header, so it can be validated on load: decoding with a different
// element codec than the one that produced the bytes is a reported error,
// not silent corruption.
package codec

// ElementCodec encodes and decodes single elements of a snapshot.
// Implementations must be safe for concurrent use.
type ElementCodec[T any] interface {
	MarshalElement(v *T) ([]byte, error)
	UnmarshalElement(data []byte, v *T) error
	// Name returns the stable name stored in snapshot headers.
	Name() string
}
