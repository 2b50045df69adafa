package indicator

import (
	"github.com/tathienbao/tastream/pkg/num"
)

// EMA is a streaming exponential moving average. Unlike the windowed
// indicators it keeps no history at all, only the previous output, so its
// state is a single scalar regardless of the smoothing horizon.
type EMA[V num.Value] struct {
	alpha V
	prev  V
}

var _ Method[float64, float64] = (*EMA[float64])(nil)

// NewEMA constructs an EMA with alpha derived from period as 2/(period+1),
// primed with first.
func NewEMA[V num.Value, P num.Period](period P, first V) (*EMA[V], error) {
	if period == 0 {
		return nil, invalidf("ema period must be >= 1")
	}
	return NewEMAAlpha(Alpha[V](period), first)
}

// NewEMAAlpha constructs an EMA with an explicit decay factor. Alpha must
// lie in (0, 1]; a NaN alpha is rejected by the same comparison.
func NewEMAAlpha[V num.Value](alpha, first V) (*EMA[V], error) {
	if !(alpha > 0 && alpha <= 1) {
		return nil, invalidf("ema alpha %v outside (0, 1]", alpha)
	}
	return &EMA[V]{alpha: alpha, prev: first}, nil
}

// Next returns alpha*input + (1-alpha)*previous and remembers the result.
func (e *EMA[V]) Next(input V) V {
	e.prev = e.alpha*input + (1-e.alpha)*e.prev
	return e.prev
}

// Current returns the output of the last step.
func (e *EMA[V]) Current() V {
	return e.prev
}
