package hybrid

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when removing from a zero-length array.
	ErrEmpty = errors.New("hybrid: array is empty")

	// ErrAllocationFailed is returned when growing the heap segment would
	// exceed the configured capacity ceiling.
	ErrAllocationFailed = errors.New("hybrid: allocation failed")
)

// ErrOutOfBounds indicates an access past the logical length.
//
// Out-of-bounds indices are reported, never clamped.
type ErrOutOfBounds struct {
	Index  int
	Length int
}

func (e *ErrOutOfBounds) Error() string {
	return fmt.Sprintf("hybrid: index %d out of bounds (length %d)", e.Index, e.Length)
}

// ErrInlineTooSmall indicates that caller-supplied inline storage cannot
// hold the inline elements of the array being copied.
type ErrInlineTooSmall struct {
	Capacity int
	Required int
}

func (e *ErrInlineTooSmall) Error() string {
	return fmt.Sprintf("hybrid: inline storage capacity %d cannot hold %d elements", e.Capacity, e.Required)
}
