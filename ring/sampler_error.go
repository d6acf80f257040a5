package ring

import (
	"fmt"
	"math/bits"

	"github.com/tuneinsight/gsw/utils/sampling"
)

// ErrorSampler wraps a [sampling.PRNG] and represents the state of a sampler of values
// uniform in the symmetric interval [-bound, bound], stored as canonical representatives
// in [0, q).
type ErrorSampler struct {
	baseSampler
	bound int64
	span  uint64
	mask  uint64
}

// NewErrorSampler creates a new instance of [ErrorSampler] from a PRNG, a ring
// definition and a noise bound. The bound must be non-negative and small with respect
// to q; a bound of zero yields a sampler that always returns zero.
func NewErrorSampler(prng sampling.PRNG, baseRing *Ring, bound int64) *ErrorSampler {

	if bound < 0 || uint64(2*bound+1) > baseRing.Modulus {
		// Sanity check, an invalid bound is a programming error.
		panic(fmt.Errorf("invalid noise bound: %d", bound))
	}

	span := uint64(2*bound + 1)

	return &ErrorSampler{
		baseSampler: newBaseSampler(prng, baseRing),
		bound:       bound,
		span:        span,
		mask:        uint64(1)<<bits.Len64(span-1) - 1,
	}
}

// Read samples new values uniformly in [-bound, bound] on the input vector, as
// canonical representatives mod q. Sampling is by rejection on the masked PRNG stream,
// one byte per attempt when the interval holds at most 256 values, eight bytes per
// attempt otherwise.
func (s *ErrorSampler) Read(values []uint64) {

	if s.bound == 0 {
		for i := range values {
			values[i] = 0
		}
		return
	}

	for i := range values {
		var v uint64
		for {
			if s.span <= 256 {
				v = uint64(s.nextByte()) & s.mask
			} else {
				v = s.next8Bytes() & s.mask
			}
			if v < s.span {
				break
			}
		}
		values[i] = s.baseRing.Reduce(int64(v) - s.bound)
	}
}

// ReadMatrix samples new values uniformly in [-bound, bound] on each row of the input
// matrix, row by row.
func (s *ErrorSampler) ReadMatrix(m [][]uint64) {
	for i := range m {
		s.Read(m[i])
	}
}
