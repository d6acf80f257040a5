package gsw

import (
	"github.com/google/go-cmp/cmp"

	"github.com/tuneinsight/gsw/utils/structs"
)

// Ciphertext is a GSW ciphertext: an N x N matrix over Z_q, with N = (n+1)*l the
// gadget-expanded dimension. A valid encryption of a bit mu satisfies
// C * v = mu * v + e with v = PowersOf2(s) and e small. All ciphertexts produced by
// this package are flattened: each row is in bit-decomposed form.
type Ciphertext struct {
	Value structs.Matrix[uint64]
}

// NewCiphertext allocates a new zero-valued [Ciphertext] of dimension N x N.
func NewCiphertext(params ParameterProvider) *Ciphertext {
	p := params.GetGSWParameters()
	N := p.NExpanded()
	return &Ciphertext{Value: structs.NewMatrix[uint64](N, N)}
}

// CopyNew creates a deep copy of the receiver and returns it.
func (ct Ciphertext) CopyNew() *Ciphertext {
	return &Ciphertext{Value: *ct.Value.CopyNew()}
}

// Equal performs a deep equal between the receiver and the operand.
func (ct Ciphertext) Equal(other *Ciphertext) bool {
	return cmp.Equal(ct.Value, other.Value)
}
