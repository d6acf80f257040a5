package gsw

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/tuneinsight/gsw/utils"
)

// NoiseStats stores summary statistics of the noise embedded in a batch of
// ciphertexts, in absolute value of the centered residue. The noise budget is the
// margin between Max and q/4, beyond which decryption fails.
type NoiseStats struct {
	Mean   float64
	Median float64
	Std    float64
	Min    float64
	Max    float64
}

func (ns NoiseStats) String() string {
	return fmt.Sprintf("noise: mean=%.2f median=%.2f std=%.2f min=%.2f max=%.2f",
		ns.Mean, ns.Median, ns.Std, ns.Min, ns.Max)
}

// GetNoiseStats returns summary statistics of the noise of the input ciphertexts,
// which must encrypt the corresponding entries of bits. Returns an error if the batch
// is empty or if the two slices have mismatched lengths.
func GetNoiseStats(dec *Decryptor, cts []*Ciphertext, bits []uint64) (ns NoiseStats, err error) {

	if len(cts) == 0 || len(cts) != len(bits) {
		return NoiseStats{}, fmt.Errorf("invalid batch: %d ciphertexts for %d bits", len(cts), len(bits))
	}

	noise := make([]float64, len(cts))
	for i := range cts {
		noise[i] = float64(utils.Abs(dec.Noise(cts[i], bits[i])))
	}

	if ns.Mean, err = stats.Mean(noise); err != nil {
		return NoiseStats{}, err
	}

	if ns.Median, err = stats.Median(noise); err != nil {
		return NoiseStats{}, err
	}

	if ns.Std, err = stats.StandardDeviation(noise); err != nil {
		return NoiseStats{}, err
	}

	if ns.Min, err = stats.Min(noise); err != nil {
		return NoiseStats{}, err
	}

	if ns.Max, err = stats.Max(noise); err != nil {
		return NoiseStats{}, err
	}

	return
}
