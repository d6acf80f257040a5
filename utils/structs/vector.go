// Package structs implements generic structs, such as vectors and matrices, including
// their copy and comparison methods.
package structs

import (
	"github.com/google/go-cmp/cmp"

	"golang.org/x/exp/constraints"
)

// Vector is a struct wrapping a generic slice of elements.
type Vector[T constraints.Float | constraints.Integer] []T

// CopyNew returns a deep copy of the object.
func (v Vector[T]) CopyNew() *Vector[T] {
	cpy := make(Vector[T], len(v))
	copy(cpy, v)
	return &cpy
}

// Equal performs a deep equal between the receiver and the operand.
func (v Vector[T]) Equal(other Vector[T]) bool {
	return cmp.Equal([]T(v), []T(other))
}
