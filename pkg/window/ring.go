//go:build !windowunchecked

package window

import "github.com/tathienbao/tastream/pkg/num"

// Ring is the window implementation indicators are built on. The default is
// the checked Window; building with the windowunchecked tag swaps in the
// Unchecked variant repo-wide. The two are bit-identical for valid inputs.
type Ring[V num.Value, P num.Period] = Window[V, P]

// NewRing constructs the build-selected window implementation. Parameter
// validation always runs here, in both configurations; the unchecked build
// only removes checks from the push path.
func NewRing[V num.Value, P num.Period](period P, seed V) (*Ring[V, P], error) {
	return New[V, P](period, seed)
}
