//go:build value32

package num

// Scalar is the build-selected default precision (single precision under the
// value32 tag).
type Scalar = float32
