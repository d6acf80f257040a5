// Package utils implements various helper functions.
package utils

import (
	"golang.org/x/exp/constraints"
)

// Min returns the minimum between to comparable values.
func Min[V constraints.Ordered](a, b V) V {
	if a <= b {
		return a
	}
	return b
}

// Max returns the maximum between to comparable values.
func Max[V constraints.Ordered](a, b V) V {
	if a >= b {
		return a
	}
	return b
}

// Abs returns the absolute value of a signed value.
func Abs[V constraints.Signed](a V) V {
	if a < 0 {
		return -a
	}
	return a
}

// IsPowerOfTwo returns true if the input is a power of two, false otherwise.
func IsPowerOfTwo[V constraints.Unsigned](n V) bool {
	return n != 0 && n&(n-1) == 0
}
