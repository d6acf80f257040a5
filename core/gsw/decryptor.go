package gsw

import (
	"github.com/tuneinsight/gsw/utils"
)

// Decryptor is a structure used to decrypt [Ciphertext]. It stores the secret key and
// its precomputed gadget expansion.
type Decryptor struct {
	params Parameters
	sk     *SecretKey
	powQ   []uint64 // PowersOf2(s), length N
}

// NewDecryptor instantiates a new [Decryptor] from the provided [SecretKey].
func NewDecryptor(params ParameterProvider, sk *SecretKey) *Decryptor {

	p := *params.GetGSWParameters()

	checkSecretKey(p, sk)

	return &Decryptor{
		params: p,
		sk:     sk,
		powQ:   p.RingQ().PowersOf2New(sk.Value),
	}
}

// GetGSWParameters returns the underlying [Parameters].
func (d Decryptor) GetGSWParameters() *Parameters {
	return &d.params
}

// WithKey creates a shallow copy of the receiver with a new decryption key. The
// receiver and the returned [Decryptor] can be used concurrently.
func (d Decryptor) WithKey(sk *SecretKey) *Decryptor {
	return NewDecryptor(d.params, sk)
}

// DecryptNew decrypts ct and returns the encrypted bit.
//
// Decryption reads row l-1 of the ciphertext, whose gadget weight 2^{l-1} is
// comparable to q/2 and maximizes the margin between signal and noise: it computes
// the centered residue of <ct[l-1], PowersOf2(s)> and rounds its magnitude by the
// weight. The result is the rounded bit whatever the embedded noise; callers diagnose
// noise issues with [Decryptor.DecryptLinearPart] or [Decryptor.Noise].
func (d *Decryptor) DecryptNew(ct *Ciphertext) uint64 {

	rQ := d.params.RingQ()
	scale := int64(1) << (d.params.LogQ() - 1)

	res := rQ.ReduceCentered(d.DecryptLinearPart(ct))

	return uint64((utils.Abs(res)+scale>>1)/scale) & 1
}

// DecryptLinearPart returns the canonical residue of <ct[l-1], PowersOf2(s)> mod q,
// the linear form that [Decryptor.DecryptNew] rounds and that bootstrapping
// recomputes homomorphically. For a valid encryption of mu the value is
// mu * 2^{l-1} + e mod q with e the embedded noise.
func (d *Decryptor) DecryptLinearPart(ct *Ciphertext) uint64 {

	checkCiphertext(d.params, ct)

	return d.params.RingQ().DotProduct(ct.Value[d.params.LogQ()-1], d.powQ)
}

// Noise returns the centered noise embedded in an encryption of the given bit: the
// centered residue of <ct[l-1], PowersOf2(s)> - bit * 2^{l-1} mod q. Decryption
// returns the correct bit as long as the magnitude of the noise stays below q/4.
func (d *Decryptor) Noise(ct *Ciphertext, bit uint64) int64 {

	rQ := d.params.RingQ()

	signal := bit << (d.params.LogQ() - 1)

	return rQ.ReduceCentered(d.DecryptLinearPart(ct) - signal)
}
