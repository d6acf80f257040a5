package gsw

import (
	"fmt"
)

// Bootstrapper is a structure that stores an [EvaluationKey] and the memory buffers
// needed to refresh ciphertexts.
//
// Bootstrapping homomorphically re-evaluates the linear part of the decryption: the
// noise of the output is determined by the evaluation-key noise and the size of the
// linear combination, independently of the input noise. If the input is so noisy that
// its clear linear part already rounds to the wrong bit, bootstrapping cannot recover
// the correct one.
type Bootstrapper struct {
	*Evaluator
	evk        *EvaluationKey
	buffCoeffs []uint64
	buffCt     *Ciphertext
}

// NewBootstrapper creates a new [Bootstrapper] from an [EvaluationKey] generated with
// [KeyGenerator.GenEvaluationKeyNew].
func NewBootstrapper(params ParameterProvider, evk *EvaluationKey) *Bootstrapper {

	p := *params.GetGSWParameters()

	if len(evk.Value) != p.NExpanded() {
		// Sanity check, a mismatched key is a programming error.
		panic(fmt.Errorf("invalid evaluation key: %d entries do not match parameters %d", len(evk.Value), p.NExpanded()))
	}

	return &Bootstrapper{
		Evaluator:  NewEvaluator(p),
		evk:        evk,
		buffCoeffs: make([]uint64, p.NExpanded()),
		buffCt:     NewCiphertext(p),
	}
}

// ShallowCopy creates a shallow copy of the receiver in which the evaluation key is
// shared and the buffers are reallocated. The receiver and the returned
// [Bootstrapper] can be used concurrently.
func (btp Bootstrapper) ShallowCopy() *Bootstrapper {
	return NewBootstrapper(btp.params, btp.evk)
}

// BootstrapNew refreshes ct and returns the result on a new [Ciphertext].
func (btp *Bootstrapper) BootstrapNew(ct *Ciphertext) (ctOut *Ciphertext) {
	ctOut = NewCiphertext(btp.params)
	btp.Bootstrap(ct, ctOut)
	return
}

// Bootstrap refreshes ct and writes the result on ctOut. ctOut may alias ct.
//
// The clear decryption computes <c, PowersOf2(s)> with c = ct[l-1]. Within block j of
// the gadget expansion, PowersOf2(s)[j*l+k] = 2^k * s[j], so the coefficient carried
// by s[j] is sum_k c[j*l+k] * 2^k. Rewriting that sum against the bit decomposition
// of s yields, for each bit index i = j*l + k,
//
//	coeff[i] = sum_{u=0..l-1} c[j*l+u] * 2^{k+u} mod q
//
// and <c, PowersOf2(s)> = sum_i coeff[i] * BitDecomp(s)[i] mod q. The same linear
// combination is assembled homomorphically over the evaluation-key entries, which
// encrypt exactly BitDecomp(s): terms with a zero coefficient are skipped, the first
// non-zero term seeds the accumulator and the remaining ones are folded with
// [Evaluator.Add] in increasing index order.
func (btp *Bootstrapper) Bootstrap(ct, ctOut *Ciphertext) {

	checkCiphertext(btp.params, ct)
	checkCiphertext(btp.params, ctOut)

	rQ := btp.params.RingQ()
	l := btp.params.LogQ()
	N := btp.params.NExpanded()

	c := ct.Value[l-1]
	coeffs := btp.buffCoeffs

	for i := 0; i < N; i++ {

		block := (i / l) * l
		k := i % l

		var acc uint64
		for u, cu := range c[block : block+l] {
			acc += cu << (k + u)
		}

		coeffs[i] = acc & rQ.Mask
	}

	var seeded bool
	for i, coeff := range coeffs {

		if coeff == 0 {
			continue
		}

		if !seeded {
			btp.MulScalar(btp.evk.Value[i], coeff, ctOut)
			seeded = true
			continue
		}

		btp.MulScalar(btp.evk.Value[i], coeff, btp.buffCt)
		btp.Add(ctOut, btp.buffCt, ctOut)
	}

	if !seeded {
		for i := range ctOut.Value {
			for j := range ctOut.Value[i] {
				ctOut.Value[i][j] = 0
			}
		}
	}
}
