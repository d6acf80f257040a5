package ring

import (
	"fmt"
)

// NewMatrix allocates a new zero-valued matrix over Z_q with the given number of rows
// and columns.
func NewMatrix(rows, cols int) [][]uint64 {
	m := make([][]uint64, rows)
	for i := range m {
		m[i] = make([]uint64, cols)
	}
	return m
}

// Add writes the entry-wise sum of m1 and m2 mod q on mOut. mOut may alias m1 or m2.
func (r *Ring) Add(m1, m2, mOut [][]uint64) {

	checkSameDims(m1, m2)
	checkSameDims(m1, mOut)

	for i := range m1 {
		p1, p2, p3 := m1[i], m2[i], mOut[i]
		for j := range p1 {
			p3[j] = (p1[j] + p2[j]) & r.Mask
		}
	}
}

// MulScalar writes scalar * m mod q entry-wise on mOut. mOut may alias m.
func (r *Ring) MulScalar(m [][]uint64, scalar uint64, mOut [][]uint64) {

	checkSameDims(m, mOut)

	for i := range m {
		p1, p2 := m[i], mOut[i]
		for j := range p1 {
			p2[j] = (p1[j] * scalar) & r.Mask
		}
	}
}

// MulMatrix writes the matrix product m1 * m2 mod q on mOut. mOut must not alias m1
// or m2.
func (r *Ring) MulMatrix(m1, m2, mOut [][]uint64) {

	rows := len(m1)
	inner := len(m2)
	cols := 0
	if inner > 0 {
		cols = len(m2[0])
	}

	if len(m1) > 0 && len(m1[0]) != inner {
		// Sanity check, mismatched operands are a programming error.
		panic(fmt.Errorf("invalid operands: m1 has %d columns but m2 has %d rows", len(m1[0]), inner))
	}

	if len(mOut) != rows || (rows > 0 && len(mOut[0]) != cols) {
		// Sanity check, mismatched operands are a programming error.
		panic(fmt.Errorf("invalid operands: mOut dimensions do not match %dx%d", rows, cols))
	}

	for i := 0; i < rows; i++ {
		p1, pOut := m1[i], mOut[i]
		for j := range pOut {
			pOut[j] = 0
		}
		// Accumulates row-by-row so that the inner loop walks m2 rows contiguously.
		for k := 0; k < inner; k++ {
			c := p1[k]
			if c == 0 {
				continue
			}
			p2 := m2[k]
			for j := 0; j < cols; j++ {
				pOut[j] += c * p2[j]
			}
		}
		for j := 0; j < cols; j++ {
			pOut[j] &= r.Mask
		}
	}
}

// SubFromIdentity writes I - m mod q entry-wise on mOut, with I the identity matrix.
// mOut may alias m.
func (r *Ring) SubFromIdentity(m, mOut [][]uint64) {

	checkSameDims(m, mOut)

	for i := range m {
		p1, p2 := m[i], mOut[i]
		for j := range p1 {
			var d uint64
			if i == j {
				d = 1
			}
			p2[j] = (d - p1[j]) & r.Mask
		}
	}
}

func checkSameDims(m1, m2 [][]uint64) {
	if len(m1) != len(m2) || (len(m1) > 0 && len(m1[0]) != len(m2[0])) {
		// Sanity check, mismatched operands are a programming error.
		panic(fmt.Errorf("invalid operands: matrix dimensions do not match"))
	}
}
