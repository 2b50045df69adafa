// Package indicator implements streaming technical indicators over the
// sliding-window engine. Every indicator follows the same state-machine
// contract: construct from validated parameters plus the first input, which
// primes the internal state so the very first output is already meaningful,
// then feed one input at a time through Next and read one output per step.
//
// Priming replicates the first input across the whole window, so there is no
// NaN warm-up phase: an SMA constructed from v reports v immediately, as if
// period copies of v had already been observed.
//
// Construction is the only operation that can fail; Next never does. A NaN
// input is not an error, it flows through the arithmetic and clears once
// evicted from the window.
//
// An indicator instance is owned by a single caller and is not safe for
// concurrent use. Independent instances share nothing and may live on
// independent goroutines.
package indicator

import (
	"fmt"

	"github.com/tathienbao/tastream/pkg/num"
	"github.com/tathienbao/tastream/pkg/window"
)

// ErrInvalidParameter is returned by indicator constructors when a period or
// coefficient is outside its valid range.
var ErrInvalidParameter = window.ErrInvalidParameter

// Method is the streaming contract every indicator implements. Next consumes
// one input and returns the output for that step; Current returns the output
// of the last step without advancing, including the primed first output
// right after construction. Both are O(1) amortized.
type Method[V num.Value, R any] interface {
	Next(input V) R
	Current() R
}

// Alpha derives an exponential smoothing coefficient from a period using the
// conventional 2/(period+1) mapping.
func Alpha[V num.Value, P num.Period](period P) V {
	return 2 / (V(period) + 1)
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidParameter)...)
}
