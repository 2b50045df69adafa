//go:build period16

package num

// Count is the build-selected default window-length width (16-bit under the
// period16 tag).
type Count = uint16
