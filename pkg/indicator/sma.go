package indicator

import (
	"github.com/tathienbao/tastream/pkg/num"
	"github.com/tathienbao/tastream/pkg/window"
)

// SMA is a streaming simple moving average over the last period inputs.
type SMA[V num.Value, P num.Period] struct {
	win  *window.Ring[V, P]
	last V
}

var _ Method[float64, float64] = (*SMA[float64, uint32])(nil)

// NewSMA constructs an SMA primed with first. The first output equals first
// exactly (the mean of period copies of it).
func NewSMA[V num.Value, P num.Period](period P, first V) (*SMA[V, P], error) {
	win, err := window.NewRing[V, P](period, first)
	if err != nil {
		return nil, err
	}
	return &SMA[V, P]{win: win, last: first}, nil
}

// Next pushes input into the window and returns the new mean.
func (s *SMA[V, P]) Next(input V) V {
	s.win.PushAndEvict(input)
	s.last = s.win.Mean()
	return s.last
}

// Current returns the output of the last step.
func (s *SMA[V, P]) Current() V {
	return s.last
}

// Period returns the configured window length.
func (s *SMA[V, P]) Period() P {
	return s.win.Period()
}
