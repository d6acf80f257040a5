package gsw

import (
	"fmt"

	"github.com/tuneinsight/gsw/ring"
	"github.com/tuneinsight/gsw/utils/sampling"
)

// KeyGenerator is a structure that stores the elements required to create new keys,
// as well as a memory buffer for intermediate values.
type KeyGenerator struct {
	params Parameters

	prng           sampling.PRNG
	uniformSampler *ring.UniformSampler
	errorSampler   *ring.ErrorSampler

	buffB [][]uint64 // m x n, uniform matrix B of the public key
	buffE []uint64   // m, noise of the public key
}

// NewKeyGenerator creates a new [KeyGenerator], from which the secret and public keys,
// as well as the bootstrapping [EvaluationKey], can be generated.
func NewKeyGenerator(params ParameterProvider) *KeyGenerator {

	prng, err := sampling.NewPRNG()
	if err != nil {
		// Sanity check, this error should not happen.
		panic(err)
	}

	return newKeyGenerator(*params.GetGSWParameters(), prng)
}

func newKeyGenerator(params Parameters, prng sampling.PRNG) *KeyGenerator {
	return &KeyGenerator{
		params:         params,
		prng:           prng,
		uniformSampler: ring.NewUniformSampler(prng, params.RingQ()),
		errorSampler:   ring.NewErrorSampler(prng, params.RingQ(), params.NoiseBound()),
		buffB:          ring.NewMatrix(params.M(), params.N()),
		buffE:          make([]uint64, params.M()),
	}
}

// GetGSWParameters returns the underlying [Parameters].
func (kgen KeyGenerator) GetGSWParameters() *Parameters {
	return &kgen.params
}

// WithPRNG replaces the PRNG of the receiver, restarting the sampling streams from the
// state of the provided PRNG, and returns the receiver. Key generation becomes
// deterministic given the PRNG state.
func (kgen *KeyGenerator) WithPRNG(prng sampling.PRNG) *KeyGenerator {
	kgen.prng = prng
	kgen.uniformSampler = ring.NewUniformSampler(prng, kgen.params.RingQ())
	kgen.errorSampler = ring.NewErrorSampler(prng, kgen.params.RingQ(), kgen.params.NoiseBound())
	return kgen
}

// GenSecretKeyNew generates a new [SecretKey] s = (1, -t_1, ..., -t_n) mod q with t
// uniform in Z_q^n.
func (kgen *KeyGenerator) GenSecretKeyNew() (sk *SecretKey) {
	sk = NewSecretKey(kgen.params)
	kgen.GenSecretKey(sk)
	return
}

// GenSecretKey generates a secret key on sk.
func (kgen *KeyGenerator) GenSecretKey(sk *SecretKey) {

	t := make([]uint64, kgen.params.N())
	kgen.uniformSampler.Read(t)

	rQ := kgen.params.RingQ()

	sk.Value[0] = 1
	for i, ti := range t {
		sk.Value[i+1] = rQ.Reduce(-int64(ti))
	}
}

// GenPublicKeyNew generates a new [PublicKey] from the provided [SecretKey].
func (kgen *KeyGenerator) GenPublicKeyNew(sk *SecretKey) (pk *PublicKey) {
	pk = NewPublicKey(kgen.params)
	kgen.GenPublicKey(sk, pk)
	return
}

// GenPublicKey generates a public key on pk from the provided [SecretKey]: an
// m x (n+1) matrix A = [b | B] with B uniform and b = B*t + e mod q, so that
// A*s = e with |e| bounded by the noise bound.
func (kgen *KeyGenerator) GenPublicKey(sk *SecretKey, pk *PublicKey) {

	checkSecretKey(kgen.params, sk)

	rQ := kgen.params.RingQ()

	// Recovers t from s = (1, -t).
	t := make([]uint64, kgen.params.N())
	for i := range t {
		t[i] = rQ.Reduce(-int64(sk.Value[i+1]))
	}

	B := kgen.buffB
	kgen.uniformSampler.ReadMatrix(B)
	kgen.errorSampler.Read(kgen.buffE)

	for i := range pk.Value {
		pk.Value[i][0] = (rQ.DotProduct(B[i], t) + kgen.buffE[i]) & rQ.Mask
		copy(pk.Value[i][1:], B[i])
	}
}

// GenKeyPairNew generates a new [SecretKey] and a corresponding [PublicKey].
func (kgen *KeyGenerator) GenKeyPairNew() (sk *SecretKey, pk *PublicKey) {
	sk = kgen.GenSecretKeyNew()
	pk = kgen.GenPublicKeyNew(sk)
	return
}

// GenEvaluationKeyNew generates a new bootstrapping [EvaluationKey] from the provided
// key pair: the i-th ciphertext encrypts the i-th bit of BitDecomp(s), with fresh
// encryption randomness per entry drawn sequentially from the receiver's PRNG.
func (kgen *KeyGenerator) GenEvaluationKeyNew(sk *SecretKey, pk *PublicKey) (evk *EvaluationKey) {
	evk = NewEvaluationKey(kgen.params)
	kgen.GenEvaluationKey(sk, pk, evk)
	return
}

// GenEvaluationKey generates a bootstrapping evaluation key on evk from the provided
// key pair.
func (kgen *KeyGenerator) GenEvaluationKey(sk *SecretKey, pk *PublicKey, evk *EvaluationKey) {

	checkSecretKey(kgen.params, sk)

	if len(evk.Value) != kgen.params.NExpanded() {
		// Sanity check, a mismatched key is a programming error.
		panic(fmt.Errorf("invalid evaluation key: %d entries do not match parameters %d", len(evk.Value), kgen.params.NExpanded()))
	}

	w := kgen.params.RingQ().BitDecompNew(sk.Value)

	enc := NewEncryptor(kgen.params, pk).WithPRNG(kgen.prng)

	for i := range evk.Value {
		enc.Encrypt(w[i], evk.Value[i])
	}
}

func checkSecretKey(params Parameters, sk *SecretKey) {
	if len(sk.Value) != params.N()+1 || sk.Value[0] != 1 {
		// Sanity check, a mismatched key is a programming error.
		panic(fmt.Errorf("invalid secret key: length %d or leading coefficient does not match parameters", len(sk.Value)))
	}
}
