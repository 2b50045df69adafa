package indicator

import (
	"github.com/tathienbao/tastream/pkg/num"
	"github.com/tathienbao/tastream/pkg/window"
)

// ATR is a streaming average true range. It consumes full bars rather than a
// single scalar, so it sits outside the Method contract, but it follows the
// same lifecycle: construct-and-prime, then one bar in, one output out.
type ATR[V num.Value, P num.Period] struct {
	win       *window.Ring[V, P]
	prevClose V
	last      V
}

// NewATR constructs an ATR primed from the first bar. The first true range
// is high - low (no previous close exists yet) and seeds the whole window.
func NewATR[V num.Value, P num.Period](period P, high, low, close V) (*ATR[V, P], error) {
	tr := high - low
	win, err := window.NewRing[V, P](period, tr)
	if err != nil {
		return nil, err
	}
	return &ATR[V, P]{win: win, prevClose: close, last: tr}, nil
}

// Next consumes one bar and returns the average true range. The comparison
// chain starts from high - low so a NaN anywhere in the bar propagates.
func (a *ATR[V, P]) Next(high, low, close V) V {
	tr := high - low
	if hpc := num.Abs(high - a.prevClose); hpc > tr {
		tr = hpc
	}
	if lpc := num.Abs(low - a.prevClose); lpc > tr {
		tr = lpc
	}
	a.prevClose = close

	a.win.PushAndEvict(tr)
	a.last = a.win.Mean()
	return a.last
}

// Current returns the output of the last step.
func (a *ATR[V, P]) Current() V {
	return a.last
}

// Period returns the configured window length.
func (a *ATR[V, P]) Period() P {
	return a.win.Period()
}
