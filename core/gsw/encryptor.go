package gsw

import (
	"fmt"

	"github.com/tuneinsight/gsw/ring"
	"github.com/tuneinsight/gsw/utils/sampling"
)

// Encryptor is a structure used to encrypt bits under a [PublicKey], as well as a
// memory buffer for intermediate values.
type Encryptor struct {
	params Parameters
	pk     *PublicKey

	prng          sampling.PRNG
	binarySampler *ring.BinarySampler

	buffR  [][]uint64 // N x m
	buffRA [][]uint64 // N x (n+1)
}

// NewEncryptor creates a new [Encryptor] from the provided [PublicKey]. The key can be
// nil, in which case the [Encryptor] can only be used after [Encryptor.WithKey].
func NewEncryptor(params ParameterProvider, pk *PublicKey) *Encryptor {

	p := *params.GetGSWParameters()

	if pk != nil {
		checkPublicKey(p, pk)
	}

	prng, err := sampling.NewPRNG()
	if err != nil {
		// Sanity check, this error should not happen.
		panic(err)
	}

	return &Encryptor{
		params:        p,
		pk:            pk,
		prng:          prng,
		binarySampler: ring.NewBinarySampler(prng, p.RingQ()),
		buffR:         ring.NewMatrix(p.NExpanded(), p.M()),
		buffRA:        ring.NewMatrix(p.NExpanded(), p.N()+1),
	}
}

// GetGSWParameters returns the underlying [Parameters].
func (enc Encryptor) GetGSWParameters() *Parameters {
	return &enc.params
}

// WithKey returns a shallow copy of the receiver with the provided [PublicKey] as
// encryption key. The copy shares the PRNG and the buffers of the receiver, and the
// two must not be used concurrently.
func (enc Encryptor) WithKey(pk *PublicKey) *Encryptor {
	checkPublicKey(enc.params, pk)
	enc.pk = pk
	return &enc
}

// WithPRNG replaces the PRNG of the receiver, restarting the sampling stream from the
// state of the provided PRNG, and returns the receiver. Encryptions become
// deterministic given the PRNG state.
func (enc *Encryptor) WithPRNG(prng sampling.PRNG) *Encryptor {
	enc.prng = prng
	enc.binarySampler = ring.NewBinarySampler(prng, enc.params.RingQ())
	return enc
}

// ShallowCopy creates a shallow copy of the receiver in which the read-only
// data-structures are shared, the buffers are reallocated and the PRNG is fresh. The
// receiver and the returned [Encryptor] can be used concurrently.
func (enc Encryptor) ShallowCopy() *Encryptor {
	return NewEncryptor(enc.params, enc.pk)
}

// EncryptNew encrypts the input bit and returns the result on a new [Ciphertext].
func (enc *Encryptor) EncryptNew(bit uint64) (ct *Ciphertext) {
	ct = NewCiphertext(enc.params)
	enc.Encrypt(bit, ct)
	return
}

// Encrypt encrypts the input bit and writes the result on ct:
//
//	ct = Flatten(mu*I + BitDecomp(R*A))
//
// with R a fresh uniform binary N x m matrix and A the public key. The noise of the
// resulting encryption is bounded by N*m*B in magnitude.
func (enc *Encryptor) Encrypt(bit uint64, ct *Ciphertext) {

	if bit > 1 {
		// Contract violation, fails loudly.
		panic(fmt.Errorf("invalid plaintext: bit must be 0 or 1 but is %d", bit))
	}

	if enc.pk == nil {
		panic(fmt.Errorf("cannot Encrypt: no encryption key is set"))
	}

	checkCiphertext(enc.params, ct)

	rQ := enc.params.RingQ()

	enc.binarySampler.ReadMatrix(enc.buffR)

	rQ.MulMatrix(enc.buffR, enc.pk.Value, enc.buffRA)

	rQ.BitDecompMatrix(enc.buffRA, ct.Value)

	for i := range ct.Value {
		ct.Value[i][i] = (ct.Value[i][i] + bit) & rQ.Mask
	}

	rQ.FlattenMatrix(ct.Value, ct.Value)
}

func checkPublicKey(params Parameters, pk *PublicKey) {
	if pk.Value.Rows() != params.M() || pk.Value.Cols() != params.N()+1 {
		// Sanity check, a mismatched key is a programming error.
		panic(fmt.Errorf("invalid public key: dimensions %dx%d do not match parameters %dx%d",
			pk.Value.Rows(), pk.Value.Cols(), params.M(), params.N()+1))
	}
}

func checkCiphertext(params Parameters, ct *Ciphertext) {
	if N := params.NExpanded(); ct.Value.Rows() != N || ct.Value.Cols() != N {
		// Sanity check, a mismatched ciphertext is a programming error.
		panic(fmt.Errorf("invalid ciphertext: dimensions %dx%d do not match parameters %dx%d",
			ct.Value.Rows(), ct.Value.Cols(), N, N))
	}
}
