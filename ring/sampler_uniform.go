package ring

import (
	"github.com/tuneinsight/gsw/utils/sampling"
)

// UniformSampler wraps a [sampling.PRNG] and represents the state of a sampler of
// uniform values in [0, q).
type UniformSampler struct {
	baseSampler
}

// NewUniformSampler creates a new instance of [UniformSampler] from a PRNG and a ring
// definition.
func NewUniformSampler(prng sampling.PRNG, baseRing *Ring) *UniformSampler {
	return &UniformSampler{newBaseSampler(prng, baseRing)}
}

// Read samples new values uniformly in [0, q) on the input vector.
// Since q is a power of two, masking the PRNG stream is an exact uniform sampling and
// no rejection is needed.
func (s *UniformSampler) Read(values []uint64) {
	mask := s.baseRing.Mask
	for i := range values {
		values[i] = s.next8Bytes() & mask
	}
}

// ReadMatrix samples new values uniformly in [0, q) on each row of the input matrix,
// row by row.
func (s *UniformSampler) ReadMatrix(m [][]uint64) {
	for i := range m {
		s.Read(m[i])
	}
}
