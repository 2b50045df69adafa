//go:build period64

package num

// Count is the build-selected default window-length width (64-bit under the
// period64 tag).
type Count = uint64
