//go:build !value32

package num

// Scalar is the build-selected default precision. Build with the value32 tag
// to switch the drivers to single precision.
type Scalar = float64
