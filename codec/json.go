package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON element codec.
//
// It handles typical structs, maps and slices; funcs, channels and complex
// numbers are not supported. Implement ElementCodec for custom wire
// formats (protobuf, msgpack, hand-rolled binary).
type JSON[T any] struct{}

// MarshalElement encodes the element to JSON.
func (JSON[T]) MarshalElement(v *T) ([]byte, error) { return json.Marshal(v) }

// UnmarshalElement decodes the JSON data into v.
func (JSON[T]) UnmarshalElement(data []byte, v *T) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON[T]) Name() string { return "json" }
