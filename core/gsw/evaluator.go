package gsw

import (
	"github.com/tuneinsight/gsw/ring"
)

// Evaluator is a structure that stores the memory buffers needed to operate
// homomorphically on [Ciphertext]. Every operation re-normalizes its output with a
// row-wise Flatten, which is the precondition keeping the noise growth of subsequent
// multiplications tractable.
//
// Noise growth per operation: Add roughly doubles the noise; Mul grows it by about
// N * ||noise1|| + ||noise2|| and is therefore asymmetric in its arguments; MulScalar
// multiplies it by the scalar.
type Evaluator struct {
	params  Parameters
	buffMul [][]uint64 // N x N
}

// NewEvaluator creates a new [Evaluator].
func NewEvaluator(params ParameterProvider) *Evaluator {
	p := *params.GetGSWParameters()
	return &Evaluator{
		params:  p,
		buffMul: ring.NewMatrix(p.NExpanded(), p.NExpanded()),
	}
}

// GetGSWParameters returns the underlying [Parameters].
func (eval Evaluator) GetGSWParameters() *Parameters {
	return &eval.params
}

// ShallowCopy creates a shallow copy of the receiver in which the read-only
// data-structures are shared and the buffers are reallocated. The receiver and the
// returned [Evaluator] can be used concurrently.
func (eval Evaluator) ShallowCopy() *Evaluator {
	return NewEvaluator(eval.params)
}

// AddNew returns the homomorphic sum of ct1 and ct2 on a new [Ciphertext]. The result
// decrypts to the XOR of the two encrypted bits.
func (eval *Evaluator) AddNew(ct1, ct2 *Ciphertext) (ctOut *Ciphertext) {
	ctOut = NewCiphertext(eval.params)
	eval.Add(ct1, ct2, ctOut)
	return
}

// Add computes the homomorphic sum of ct1 and ct2 and writes the result on ctOut:
// the entry-wise sum mod q followed by a row-wise Flatten. ctOut may alias ct1 or ct2.
func (eval *Evaluator) Add(ct1, ct2, ctOut *Ciphertext) {

	checkCiphertext(eval.params, ct1)
	checkCiphertext(eval.params, ct2)
	checkCiphertext(eval.params, ctOut)

	rQ := eval.params.RingQ()

	rQ.Add(ct1.Value, ct2.Value, ctOut.Value)
	rQ.FlattenMatrix(ctOut.Value, ctOut.Value)
}

// MulNew returns the homomorphic product of ct1 and ct2 on a new [Ciphertext]. The
// result decrypts to the AND of the two encrypted bits.
func (eval *Evaluator) MulNew(ct1, ct2 *Ciphertext) (ctOut *Ciphertext) {
	ctOut = NewCiphertext(eval.params)
	eval.Mul(ct1, ct2, ctOut)
	return
}

// Mul computes the homomorphic product of ct1 and ct2 and writes the result on ctOut:
// the N x N matrix product mod q followed by a row-wise Flatten. ctOut may alias ct1
// or ct2.
func (eval *Evaluator) Mul(ct1, ct2, ctOut *Ciphertext) {

	checkCiphertext(eval.params, ct1)
	checkCiphertext(eval.params, ct2)
	checkCiphertext(eval.params, ctOut)

	rQ := eval.params.RingQ()

	rQ.MulMatrix(ct1.Value, ct2.Value, eval.buffMul)
	rQ.FlattenMatrix(eval.buffMul, ctOut.Value)
}

// NandNew returns the homomorphic NAND of ct1 and ct2 on a new [Ciphertext]. The
// result decrypts to 1 - mu1*mu2.
func (eval *Evaluator) NandNew(ct1, ct2 *Ciphertext) (ctOut *Ciphertext) {
	ctOut = NewCiphertext(eval.params)
	eval.Nand(ct1, ct2, ctOut)
	return
}

// Nand computes the homomorphic NAND of ct1 and ct2 and writes the result on ctOut:
// the matrix product is subtracted entry-wise from the identity mod q, then
// re-normalized with a row-wise Flatten. ctOut may alias ct1 or ct2.
func (eval *Evaluator) Nand(ct1, ct2, ctOut *Ciphertext) {

	checkCiphertext(eval.params, ct1)
	checkCiphertext(eval.params, ct2)
	checkCiphertext(eval.params, ctOut)

	rQ := eval.params.RingQ()

	rQ.MulMatrix(ct1.Value, ct2.Value, eval.buffMul)
	rQ.SubFromIdentity(eval.buffMul, eval.buffMul)
	rQ.FlattenMatrix(eval.buffMul, ctOut.Value)
}

// MulScalarNew returns the product of ct by a Z_q scalar on a new [Ciphertext].
func (eval *Evaluator) MulScalarNew(ct *Ciphertext, scalar uint64) (ctOut *Ciphertext) {
	ctOut = NewCiphertext(eval.params)
	eval.MulScalar(ct, scalar, ctOut)
	return
}

// MulScalar multiplies every entry of ct by scalar mod q, re-normalizes with a
// row-wise Flatten and writes the result on ctOut. ctOut may alias ct. This is the
// scalar-times-ciphertext operation of the bootstrapping linear combination.
func (eval *Evaluator) MulScalar(ct *Ciphertext, scalar uint64, ctOut *Ciphertext) {

	checkCiphertext(eval.params, ct)
	checkCiphertext(eval.params, ctOut)

	rQ := eval.params.RingQ()

	rQ.MulScalar(ct.Value, scalar, ctOut.Value)
	rQ.FlattenMatrix(ctOut.Value, ctOut.Value)
}
