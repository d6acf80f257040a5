package gsw

import (
	"encoding/json"
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/tuneinsight/gsw/ring"
)

// MaxLogQ is the log2 of the largest supported ciphertext modulus. It keeps the
// largest gadget weight 2^{2l-2}, used by the bootstrapping coefficient rewrite,
// within a machine shift.
const MaxLogQ = 31

// MinLogQ is the log2 of the smallest supported ciphertext modulus.
const MinLogQ = 2

// ParameterProvider is an interface for types that expose the GSW [Parameters].
type ParameterProvider interface {
	GetGSWParameters() *Parameters
}

// ParametersLiteral is a literal representation of GSW parameters. It has public fields
// and is used to express unchecked user-defined parameters literally into Go programs.
// The [NewParametersFromLiteral] function is used to generate the actual checked
// parameters from the literal representation.
//
// Users must set the modulus size (LogQ), the LWE dimension (N), the number of LWE
// samples of the public matrix (M) and the noise bound (NoiseBound); the gadget
// length l = LogQ and the gadget-expanded dimension (N+1)*l are derived.
type ParametersLiteral struct {
	LogQ       int
	N          int
	M          int
	NoiseBound int64
}

// Parameters represents a set of GSW parameters. Its fields are private and immutable.
// See [ParametersLiteral] for user-specified parameters.
type Parameters struct {
	logQ       int
	n          int
	m          int
	noiseBound int64
	ringQ      *ring.Ring
}

// NewParametersFromLiteral instantiates a set of [Parameters] from a [ParametersLiteral].
// It returns the empty parameters Parameters{} and a non-nil error if the specified
// parameters are invalid.
func NewParametersFromLiteral(pl ParametersLiteral) (params Parameters, err error) {

	if pl.LogQ < MinLogQ || pl.LogQ > MaxLogQ {
		return Parameters{}, fmt.Errorf("invalid parameters: LogQ must be in [%d, %d] but is %d", MinLogQ, MaxLogQ, pl.LogQ)
	}

	if pl.N < 1 {
		return Parameters{}, fmt.Errorf("invalid parameters: N must be at least 1 but is %d", pl.N)
	}

	if pl.M < 1 {
		return Parameters{}, fmt.Errorf("invalid parameters: M must be at least 1 but is %d", pl.M)
	}

	if pl.NoiseBound < 0 {
		return Parameters{}, fmt.Errorf("invalid parameters: NoiseBound must be non-negative but is %d", pl.NoiseBound)
	}

	ringQ, err := ring.NewRing(1 << pl.LogQ)
	if err != nil {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w", err)
	}

	return Parameters{
		logQ:       pl.LogQ,
		n:          pl.N,
		m:          pl.M,
		noiseBound: pl.NoiseBound,
		ringQ:      ringQ,
	}, nil
}

// GetGSWParameters returns the receiver; it implements the [ParameterProvider]
// interface.
func (p Parameters) GetGSWParameters() *Parameters {
	return &p
}

// ParametersLiteral returns the [ParametersLiteral] of the receiver.
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		LogQ:       p.logQ,
		N:          p.n,
		M:          p.m,
		NoiseBound: p.noiseBound,
	}
}

// Q returns the ciphertext modulus q = 2^LogQ.
func (p Parameters) Q() uint64 {
	return p.ringQ.Modulus
}

// LogQ returns log2(q), which is also the gadget length l.
func (p Parameters) LogQ() int {
	return p.logQ
}

// N returns the LWE dimension n.
func (p Parameters) N() int {
	return p.n
}

// M returns the number of LWE samples of the public matrix.
func (p Parameters) M() int {
	return p.m
}

// NoiseBound returns the bound B of the symmetric noise interval [-B, B].
func (p Parameters) NoiseBound() int64 {
	return p.noiseBound
}

// NExpanded returns the gadget-expanded dimension (n+1) * l, which is the number of
// rows and columns of a ciphertext.
func (p Parameters) NExpanded() int {
	return (p.n + 1) * p.logQ
}

// RingQ returns the underlying [ring.Ring].
func (p Parameters) RingQ() *ring.Ring {
	return p.ringQ
}

// Equal returns true if the receiver and the operand represent the same set of
// parameters.
func (p Parameters) Equal(other *Parameters) bool {
	return cmp.Equal(p.ParametersLiteral(), other.ParametersLiteral())
}

// MarshalJSON encodes the receiver into its [ParametersLiteral] JSON representation.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ParametersLiteral())
}

// UnmarshalJSON decodes a [ParametersLiteral] JSON representation on the receiver.
func (p *Parameters) UnmarshalJSON(data []byte) (err error) {
	var pl ParametersLiteral
	if err = json.Unmarshal(data, &pl); err != nil {
		return err
	}
	*p, err = NewParametersFromLiteral(pl)
	return
}
