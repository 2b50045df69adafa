//go:build !period16 && !period64

package num

// Count is the build-selected default window-length width. The period16 and
// period64 tags select narrower or wider widths.
type Count = uint32
