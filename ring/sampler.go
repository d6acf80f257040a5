package ring

import (
	"github.com/tuneinsight/gsw/utils/sampling"
)

// Sampler is an interface for random vector samplers over Z_q.
type Sampler interface {

	// Read samples new values on the input vector.
	Read(values []uint64)

	// ReadMatrix samples new values on each row of the input matrix, row by row.
	ReadMatrix(m [][]uint64)
}

var _ Sampler = (*UniformSampler)(nil)
var _ Sampler = (*BinarySampler)(nil)
var _ Sampler = (*ErrorSampler)(nil)

type baseSampler struct {
	prng     sampling.PRNG
	baseRing *Ring
	buff     []byte
	ptr      int
}

const samplerBuffSize = 1024

func newBaseSampler(prng sampling.PRNG, baseRing *Ring) baseSampler {
	return baseSampler{
		prng:     prng,
		baseRing: baseRing,
		buff:     make([]byte, samplerBuffSize),
		ptr:      samplerBuffSize,
	}
}

// next8Bytes returns the next 8 bytes of the underlying PRNG stream as an uint64,
// replenishing the byte pool when it runs empty.
func (s *baseSampler) next8Bytes() uint64 {

	if s.ptr == len(s.buff) {
		if _, err := s.prng.Read(s.buff); err != nil {
			// Sanity check, this error should not happen.
			panic(err)
		}
		s.ptr = 0
	}

	b := s.buff[s.ptr : s.ptr+8]
	s.ptr += 8

	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}

// nextByte returns the next byte of the underlying PRNG stream.
func (s *baseSampler) nextByte() byte {

	if s.ptr == len(s.buff) {
		if _, err := s.prng.Read(s.buff); err != nil {
			// Sanity check, this error should not happen.
			panic(err)
		}
		s.ptr = 0
	}

	b := s.buff[s.ptr]
	s.ptr++

	return b
}
