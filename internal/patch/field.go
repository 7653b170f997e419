// Package patch implements a tagged optional-field type for partial updates.
//
// A Field distinguishes three states that plain pointers cannot: absent
// (the caller did not touch the column), null (the caller clears it), and a
// concrete value. Patch structs built from Fields give partial updates a
// compile-time-checked shape instead of a runtime-assembled map.
package patch

import (
	"bytes"
	"encoding/json"
)

// Field carries one optionally-updated value.
// The zero Field is "absent" and is skipped by json's omitzero.
type Field[T any] struct {
	set   bool
	null  bool
	value T
}

// Set returns a Field holding a concrete value.
func Set[T any](v T) Field[T] {
	return Field[T]{set: true, value: v}
}

// Null returns a Field that clears the column.
func Null[T any]() Field[T] {
	return Field[T]{set: true, null: true}
}

// IsSet reports whether the field was provided at all.
func (f Field[T]) IsSet() bool { return f.set }

// IsNull reports whether the field was provided as an explicit null.
func (f Field[T]) IsNull() bool { return f.set && f.null }

// Get returns the concrete value; ok is false when the field is absent
// or null.
func (f Field[T]) Get() (v T, ok bool) {
	if !f.set || f.null {
		return v, false
	}
	return f.value, true
}

// Arg returns the field as a driver argument: the value, or nil for null.
// Only meaningful when IsSet is true.
func (f Field[T]) Arg() any {
	if f.null {
		return nil
	}
	return f.value
}

// IsZero makes absent Fields disappear under the json "omitzero" option.
func (f Field[T]) IsZero() bool { return !f.set }

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.null {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = Field[T]{set: true, null: true}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Field[T]{set: true, value: v}
	return nil
}
