package gf2m

import (
	"fmt"
	"io"
)

// Vector is an ordered sequence of GF(2^m) elements tied to a specific field.
// The vector holds a non-owning reference to the field and never mutates it.
type Vector struct {
	field    *Field
	elements []uint32
}

// NewVector validates every element against the field and copies the slice.
func NewVector(field *Field, elements []uint32) (*Vector, error) {
	for i, e := range elements {
		if !field.IsElementOfThisField(e) {
			return nil, fmt.Errorf("%w: index %d value %#x", ErrInvalidElements, i, e)
		}
	}
	out := make([]uint32, len(elements))
	copy(out, elements)
	return &Vector{field: field, elements: out}, nil
}

// RandomVector draws length uniform field elements from rng.
func RandomVector(field *Field, length int, rng io.Reader) *Vector {
	out := make([]uint32, length)
	for i := range out {
		out[i] = field.RandomElement(rng)
	}
	return &Vector{field: field, elements: out}
}

// Field returns the field the elements belong to.
func (v *Vector) Field() *Field { return v.field }

// Len returns the number of elements.
func (v *Vector) Len() int { return len(v.elements) }

// At returns the element at index i.
func (v *Vector) At(i int) uint32 { return v.elements[i] }

// Elements returns a copy of the element slice.
func (v *Vector) Elements() []uint32 {
	out := make([]uint32, len(v.elements))
	copy(out, v.elements)
	return out
}

// Add returns the element-wise sum of v and w.
func (v *Vector) Add(w *Vector) (*Vector, error) {
	if !v.field.Equal(w.field) || v.Len() != w.Len() {
		return nil, fmt.Errorf("gf2m: vector field or length mismatch")
	}
	out := make([]uint32, v.Len())
	for i := range out {
		out[i] = v.field.Add(v.elements[i], w.elements[i])
	}
	return &Vector{field: v.field, elements: out}, nil
}

// Equal reports element-wise equality over the same field.
func (v *Vector) Equal(w *Vector) bool {
	if w == nil || !v.field.Equal(w.field) || v.Len() != w.Len() {
		return false
	}
	for i := range v.elements {
		if v.elements[i] != w.elements[i] {
			return false
		}
	}
	return true
}
