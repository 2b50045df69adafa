//go:build windowunchecked

package window

import (
	"fmt"

	"github.com/tathienbao/tastream/pkg/num"
)

// Ring is the window implementation indicators are built on. This build uses
// the Unchecked variant; see unchecked.go for the contract.
type Ring[V num.Value, P num.Period] = Unchecked[V, P]

// NewRing constructs the build-selected window implementation. Parameter
// validation still runs here; only the push path is unchecked.
func NewRing[V num.Value, P num.Period](period P, seed V) (*Ring[V, P], error) {
	if period == 0 {
		return nil, fmt.Errorf("window period must be >= 1: %w", ErrInvalidParameter)
	}
	return NewUnchecked[V, P](period, seed), nil
}
