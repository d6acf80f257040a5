package ring

import (
	"fmt"
)

// This file implements the gadget algebra underpinning the controlled noise growth of
// GSW ciphertexts. The gadget vector is g = (1, 2, 4, ..., 2^{l-1}) tensored with the
// identity; [Ring.BitDecomp] and [Ring.PowersOf2] are the mutually adjoint linear maps
// implementing it, linked by the identity
//
//	<BitDecomp(v), PowersOf2(s)> = <v, s> mod q
//
// which holds for any pair of Z_q vectors of equal length.

// BitDecomp writes the binary decomposition of v on w: entry l*j + i of w is bit i of
// v[j] (LSB first). The length of w must be l*len(v).
func (r *Ring) BitDecomp(v, w []uint64) {

	l := r.Log2Modulus

	if len(w) != l*len(v) {
		// Sanity check, mismatched operands are a programming error.
		panic(fmt.Errorf("invalid operands: len(w) = %d does not match l*len(v) = %d", len(w), l*len(v)))
	}

	for j, vj := range v {
		wj := w[j*l : (j+1)*l]
		for i := range wj {
			wj[i] = (vj >> i) & 1
		}
	}
}

// BitDecompNew returns the binary decomposition of v on a newly allocated vector of
// length l*len(v).
func (r *Ring) BitDecompNew(v []uint64) (w []uint64) {
	w = make([]uint64, r.Log2Modulus*len(v))
	r.BitDecomp(v, w)
	return
}

// BitDecompInverse reconstructs on v the Z_q vector whose decomposition is w: entry j of
// v is the sum over i of w[l*j + i] * 2^i mod q. The length of w must be l*len(v).
//
// The entries of w are not restricted to bits: values above one, such as the carries
// produced by the entry-wise addition of two decomposed vectors, are weighted by the
// same powers of two and folded into the reconstruction.
func (r *Ring) BitDecompInverse(w, v []uint64) {

	l := r.Log2Modulus

	if len(w) != l*len(v) {
		// Sanity check, mismatched operands are a programming error.
		panic(fmt.Errorf("invalid operands: len(w) = %d does not match l*len(v) = %d", len(w), l*len(v)))
	}

	for j := range v {
		wj := w[j*l : (j+1)*l]
		var acc uint64
		for i, wi := range wj {
			acc += wi << i
		}
		v[j] = acc & r.Mask
	}
}

// BitDecompInverseNew reconstructs the Z_q vector whose decomposition is w on a newly
// allocated vector of length len(w)/l.
func (r *Ring) BitDecompInverseNew(w []uint64) (v []uint64) {
	v = make([]uint64, len(w)/r.Log2Modulus)
	r.BitDecompInverse(w, v)
	return
}

// Flatten normalizes w to binary form: it reconstructs each block of l entries and
// decomposes it again, so that wOut = BitDecomp(BitDecompInverse(w)). Flatten is the
// identity on vectors that are already bit-valued. wOut may alias w; the length of both
// must be a multiple of l.
func (r *Ring) Flatten(w, wOut []uint64) {

	l := r.Log2Modulus

	if len(w) != len(wOut) || len(w)%l != 0 {
		// Sanity check, mismatched operands are a programming error.
		panic(fmt.Errorf("invalid operands: len(w) = %d and len(wOut) = %d must be equal and divisible by l = %d", len(w), len(wOut), l))
	}

	for j := 0; j < len(w); j += l {

		var acc uint64
		for i, wi := range w[j : j+l] {
			acc += wi << i
		}
		acc &= r.Mask

		wj := wOut[j : j+l]
		for i := range wj {
			wj[i] = (acc >> i) & 1
		}
	}
}

// PowersOf2 writes on w the gadget expansion of b: entry l*j + i of w is b[j] * 2^i
// mod q. The length of w must be l*len(b).
func (r *Ring) PowersOf2(b, w []uint64) {

	l := r.Log2Modulus

	if len(w) != l*len(b) {
		// Sanity check, mismatched operands are a programming error.
		panic(fmt.Errorf("invalid operands: len(w) = %d does not match l*len(b) = %d", len(w), l*len(b)))
	}

	for j, bj := range b {
		wj := w[j*l : (j+1)*l]
		for i := range wj {
			wj[i] = (bj << i) & r.Mask
		}
	}
}

// PowersOf2New returns the gadget expansion of b on a newly allocated vector of length
// l*len(b).
func (r *Ring) PowersOf2New(b []uint64) (w []uint64) {
	w = make([]uint64, r.Log2Modulus*len(b))
	r.PowersOf2(b, w)
	return
}

// BitDecompMatrix applies [Ring.BitDecomp] to each row of m independently. The output
// matrix must have the same number of rows as m and l times its number of columns.
func (r *Ring) BitDecompMatrix(m, mOut [][]uint64) {

	if len(m) != len(mOut) {
		// Sanity check, mismatched operands are a programming error.
		panic(fmt.Errorf("invalid operands: len(m) = %d does not match len(mOut) = %d", len(m), len(mOut)))
	}

	for i := range m {
		r.BitDecomp(m[i], mOut[i])
	}
}

// FlattenMatrix applies [Ring.Flatten] to each row of m independently. mOut may alias m.
func (r *Ring) FlattenMatrix(m, mOut [][]uint64) {

	if len(m) != len(mOut) {
		// Sanity check, mismatched operands are a programming error.
		panic(fmt.Errorf("invalid operands: len(m) = %d does not match len(mOut) = %d", len(m), len(mOut)))
	}

	for i := range m {
		r.Flatten(m[i], mOut[i])
	}
}
