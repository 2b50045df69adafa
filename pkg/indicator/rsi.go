package indicator

import (
	"github.com/tathienbao/tastream/pkg/num"
	"github.com/tathienbao/tastream/pkg/window"
)

// RSI is a streaming relative strength index. Gains and losses derived from
// consecutive input deltas are averaged over two sliding windows; the
// previous input needed for the delta is explicit state, never hidden.
//
// Priming: replicating the first input yields all-zero deltas, so both
// windows start at zero and the first output is 100 (the avgLoss == 0
// convention).
type RSI[V num.Value, P num.Period] struct {
	gains  *window.Ring[V, P]
	losses *window.Ring[V, P]
	prev   V
	last   V
}

var _ Method[float64, float64] = (*RSI[float64, uint32])(nil)

// NewRSI constructs an RSI primed with first.
func NewRSI[V num.Value, P num.Period](period P, first V) (*RSI[V, P], error) {
	gains, err := window.NewRing[V, P](period, 0)
	if err != nil {
		return nil, err
	}
	losses, err := window.NewRing[V, P](period, 0)
	if err != nil {
		return nil, err
	}
	return &RSI[V, P]{gains: gains, losses: losses, prev: first, last: 100}, nil
}

// Next consumes one input and returns 100 - 100/(1 + avgGain/avgLoss), or
// 100 when the average loss is zero.
func (r *RSI[V, P]) Next(input V) V {
	d := input - r.prev
	r.prev = input

	gain := d
	if gain < 0 {
		gain = 0
	}
	loss := -d
	if loss < 0 {
		loss = 0
	}

	r.gains.PushAndEvict(gain)
	r.losses.PushAndEvict(loss)

	avgGain := r.gains.Mean()
	avgLoss := r.losses.Mean()
	if avgLoss == 0 {
		r.last = 100
		return r.last
	}

	r.last = 100 - 100/(1+avgGain/avgLoss)
	return r.last
}

// Current returns the output of the last step.
func (r *RSI[V, P]) Current() V {
	return r.last
}

// Period returns the configured window length.
func (r *RSI[V, P]) Period() P {
	return r.gains.Period()
}
