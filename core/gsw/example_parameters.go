package gsw

import (
	"fmt"
)

// SecurityLevel labels the shipped example parameter sets.
type SecurityLevel uint8

const (
	// Toy parameters, for tests and quick experiments.
	Toy SecurityLevel = iota + 1
	// Low security parameters.
	Low
	// Medium security parameters.
	Medium
)

var securityLevelToString = [4]string{"Undefined", "Toy", "Low", "Medium"}

func (level SecurityLevel) String() string {
	if int(level) >= len(securityLevelToString) {
		return "Unknown"
	}
	return securityLevelToString[int(level)]
}

var (
	// ExampleParametersToy is an example parameter set with q = 2^20, n = 8, m = 256
	// and noise bound 1. The noise budget barely covers one multiplication followed
	// by a bootstrapping.
	ExampleParametersToy = ParametersLiteral{
		LogQ:       20,
		N:          8,
		M:          256,
		NoiseBound: 1,
	}

	// ExampleParametersLow is an example parameter set with q = 2^24, n = 24, m = 384
	// and noise bound 2.
	ExampleParametersLow = ParametersLiteral{
		LogQ:       24,
		N:          24,
		M:          384,
		NoiseBound: 2,
	}

	// ExampleParametersMedium is an example parameter set with q = 2^26, n = 48,
	// m = 768 and noise bound 4.
	ExampleParametersMedium = ParametersLiteral{
		LogQ:       26,
		N:          48,
		M:          768,
		NoiseBound: 4,
	}
)

// NewParametersForLevel instantiates the example [Parameters] for the given
// [SecurityLevel].
//
// The example parameter sets are chosen for correctness and speed of the test suite.
// They are not backed by a lattice security estimate and must not be used to protect
// real data.
func NewParametersForLevel(level SecurityLevel) (Parameters, error) {
	switch level {
	case Toy:
		return NewParametersFromLiteral(ExampleParametersToy)
	case Low:
		return NewParametersFromLiteral(ExampleParametersLow)
	case Medium:
		return NewParametersFromLiteral(ExampleParametersMedium)
	default:
		return Parameters{}, fmt.Errorf("invalid security level: %d", level)
	}
}
