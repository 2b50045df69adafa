// Package num defines the numeric scalar and window-length abstractions
// shared by the streaming indicator engine.
package num

import "math"

// Value is the scalar type every indicator computes over. Arithmetic stays
// closed over the chosen precision; nothing widens behind the caller's back.
type Value interface {
	~float32 | ~float64
}

// Period is the integer type used for window lengths. Narrower widths trade
// maximum window size for a smaller per-indicator footprint.
type Period interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// NaN returns the not-a-number sentinel in the chosen precision.
func NaN[V Value]() V {
	return V(math.NaN())
}

// IsNaN reports whether v is the NaN sentinel. Works without widening:
// NaN is the only value that does not equal itself.
func IsNaN[V Value](v V) bool {
	return v != v
}

// Sqrt returns the square root of v in the chosen precision.
func Sqrt[V Value](v V) V {
	return V(math.Sqrt(float64(v)))
}

// Abs returns the absolute value of v.
func Abs[V Value](v V) V {
	if v < 0 {
		return -v
	}
	return v
}
