package structs

import (
	"github.com/google/go-cmp/cmp"

	"golang.org/x/exp/constraints"
)

// Matrix is a struct wrapping a generic double slice of elements.
type Matrix[T constraints.Float | constraints.Integer] [][]T

// NewMatrix allocates a new zero-valued [Matrix] with the given number of rows and columns.
func NewMatrix[T constraints.Float | constraints.Integer](rows, cols int) Matrix[T] {
	m := make(Matrix[T], rows)
	for i := range m {
		m[i] = make([]T, cols)
	}
	return m
}

// Rows returns the number of rows of the matrix.
func (m Matrix[T]) Rows() int {
	return len(m)
}

// Cols returns the number of columns of the matrix.
func (m Matrix[T]) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// CopyNew returns a deep copy of the object.
func (m Matrix[T]) CopyNew() *Matrix[T] {
	cpy := make(Matrix[T], len(m))
	for i := range m {
		cpy[i] = make([]T, len(m[i]))
		copy(cpy[i], m[i])
	}
	return &cpy
}

// Equal performs a deep equal between the receiver and the operand.
func (m Matrix[T]) Equal(other Matrix[T]) bool {
	return cmp.Equal([][]T(m), [][]T(other))
}
