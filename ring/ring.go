// Package ring implements modular arithmetic, gadget decomposition and sampling for
// vectors and matrices over Z_q, with q a power of two.
package ring

import (
	"fmt"
	"math/bits"

	"github.com/tuneinsight/gsw/utils"
)

// Ring is a structure that keeps all the variables required to operate on elements of Z_q,
// with q a power of two. The canonical representative of an element is the unsigned integer
// in [0, q).
//
// Since q divides 2^64, the two's complement wraparound of uint64 arithmetic is exact
// modulo q: sums and products of canonical representatives can be accumulated on plain
// uint64 values and reduced with a single mask, whatever the length of the summation.
type Ring struct {

	// Modulus q.
	Modulus uint64

	// Mask = q - 1.
	Mask uint64

	// Log2Modulus = log2(q), the number of bits of the gadget decomposition.
	Log2Modulus int
}

// NewRing creates a new [Ring] with modulus q.
// Returns an error if q is not a power of two greater than one.
func NewRing(q uint64) (r *Ring, err error) {

	if q < 2 || !utils.IsPowerOfTwo(q) {
		return nil, fmt.Errorf("invalid modulus: q = %d is not a power of two greater than one", q)
	}

	return &Ring{
		Modulus:     q,
		Mask:        q - 1,
		Log2Modulus: bits.Len64(q) - 1,
	}, nil
}

// Reduce maps a signed value to its canonical representative in [0, q).
func (r *Ring) Reduce(v int64) uint64 {
	return uint64(v) & r.Mask
}

// ReduceCentered maps a value to its centered representative in (-q/2, q/2].
// The centered representative is used for the rounding step of the decryption.
func (r *Ring) ReduceCentered(v uint64) int64 {
	v &= r.Mask
	if v > r.Modulus>>1 {
		return int64(v) - int64(r.Modulus)
	}
	return int64(v)
}

// DotProduct returns the inner product <a, b> mod q of two vectors of canonical
// representatives.
func (r *Ring) DotProduct(a, b []uint64) uint64 {

	if len(a) != len(b) {
		// Sanity check, mismatched operands are a programming error.
		panic(fmt.Errorf("invalid operands: len(a) = %d does not match len(b) = %d", len(a), len(b)))
	}

	var acc uint64
	for i := range a {
		acc += a[i] * b[i]
	}

	return acc & r.Mask
}
