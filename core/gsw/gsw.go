// Package gsw implements the GSW (Gentry-Sahai-Waters) fully homomorphic encryption
// scheme over LWE ciphertexts. Ciphertexts are N x N matrices over Z_q kept in
// bit-decomposed (flattened) form; homomorphic addition, multiplication and NAND
// operate on single-bit plaintexts. The package also implements bootstrapping, which
// refreshes a noisy ciphertext by homomorphically evaluating the linear part of the
// decryption under an evaluation key encrypting the bits of the secret key.
package gsw

import (
	"github.com/google/go-cmp/cmp"

	"github.com/tuneinsight/gsw/utils/structs"
)

// SecretKey is a structure that stores the secret key s = (1, -t_1, ..., -t_n) mod q,
// with t uniform in Z_q^n.
type SecretKey struct {
	Value structs.Vector[uint64]
}

// NewSecretKey allocates a new zero-valued [SecretKey] of length n+1.
func NewSecretKey(params ParameterProvider) *SecretKey {
	p := params.GetGSWParameters()
	return &SecretKey{Value: make(structs.Vector[uint64], p.N()+1)}
}

// CopyNew creates a deep copy of the receiver and returns it.
func (sk SecretKey) CopyNew() *SecretKey {
	return &SecretKey{Value: *sk.Value.CopyNew()}
}

// Equal performs a deep equal between the receiver and the operand.
func (sk SecretKey) Equal(other *SecretKey) bool {
	return cmp.Equal(sk.Value, other.Value)
}

// PublicKey is a structure that stores the public key, an m x (n+1) matrix A whose
// first column is b = B*t + e mod q and whose remaining columns are the uniform
// matrix B, so that A*s = e with e the sampled noise.
type PublicKey struct {
	Value structs.Matrix[uint64]
}

// NewPublicKey allocates a new zero-valued [PublicKey] of dimension m x (n+1).
func NewPublicKey(params ParameterProvider) *PublicKey {
	p := params.GetGSWParameters()
	return &PublicKey{Value: structs.NewMatrix[uint64](p.M(), p.N()+1)}
}

// CopyNew creates a deep copy of the receiver and returns it.
func (pk PublicKey) CopyNew() *PublicKey {
	return &PublicKey{Value: *pk.Value.CopyNew()}
}

// Equal performs a deep equal between the receiver and the operand.
func (pk PublicKey) Equal(other *PublicKey) bool {
	return cmp.Equal(pk.Value, other.Value)
}

// EvaluationKey is a structure that stores the bootstrapping key: an ordered sequence
// of N ciphertexts, the i-th encrypting the i-th bit of BitDecomp(s).
//
// Publishing encryptions of the secret-key bits under the corresponding public key is
// sound under the circular-security assumption; the scheme provides no reduction for
// it. Callers that do not bootstrap do not need an [EvaluationKey].
type EvaluationKey struct {
	Value []*Ciphertext
}

// NewEvaluationKey allocates a new [EvaluationKey] holding (n+1)*l zero-valued
// ciphertexts.
func NewEvaluationKey(params ParameterProvider) *EvaluationKey {
	p := params.GetGSWParameters()
	evk := &EvaluationKey{Value: make([]*Ciphertext, p.NExpanded())}
	for i := range evk.Value {
		evk.Value[i] = NewCiphertext(p)
	}
	return evk
}

// CopyNew creates a deep copy of the receiver and returns it.
func (evk EvaluationKey) CopyNew() *EvaluationKey {
	cpy := &EvaluationKey{Value: make([]*Ciphertext, len(evk.Value))}
	for i := range evk.Value {
		cpy.Value[i] = evk.Value[i].CopyNew()
	}
	return cpy
}

// Equal performs a deep equal between the receiver and the operand.
func (evk EvaluationKey) Equal(other *EvaluationKey) bool {
	if len(evk.Value) != len(other.Value) {
		return false
	}
	for i := range evk.Value {
		if !evk.Value[i].Equal(other.Value[i]) {
			return false
		}
	}
	return true
}
