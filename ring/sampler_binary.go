package ring

import (
	"github.com/tuneinsight/gsw/utils/sampling"
)

// BinarySampler wraps a [sampling.PRNG] and represents the state of a sampler of
// uniform values in {0, 1}.
type BinarySampler struct {
	baseSampler
}

// NewBinarySampler creates a new instance of [BinarySampler] from a PRNG and a ring
// definition.
func NewBinarySampler(prng sampling.PRNG, baseRing *Ring) *BinarySampler {
	return &BinarySampler{newBaseSampler(prng, baseRing)}
}

// Read samples new values uniformly in {0, 1} on the input vector, consuming one byte
// of the PRNG stream per value.
func (s *BinarySampler) Read(values []uint64) {
	for i := range values {
		values[i] = uint64(s.nextByte() & 1)
	}
}

// ReadMatrix samples new values uniformly in {0, 1} on each row of the input matrix,
// row by row.
func (s *BinarySampler) ReadMatrix(m [][]uint64) {
	for i := range m {
		s.Read(m[i])
	}
}
