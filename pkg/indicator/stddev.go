package indicator

import (
	"github.com/tathienbao/tastream/pkg/num"
	"github.com/tathienbao/tastream/pkg/window"
)

// StdDev is a streaming population standard deviation over the last period
// inputs. Alongside the window's running sum it maintains a running sum of
// squares, so variance = sumsq/period - mean^2 comes out in O(1).
type StdDev[V num.Value, P num.Period] struct {
	win   *window.Ring[V, P]
	sumsq V
	last  V
}

var _ Method[float64, float64] = (*StdDev[float64, uint32])(nil)

// NewStdDev constructs a StdDev primed with first. A constant-filled window
// has zero variance, so the first output is 0.
func NewStdDev[V num.Value, P num.Period](period P, first V) (*StdDev[V, P], error) {
	win, err := window.NewRing[V, P](period, first)
	if err != nil {
		return nil, err
	}
	return &StdDev[V, P]{
		win:   win,
		sumsq: first * first * V(period),
	}, nil
}

// Next pushes input and returns the standard deviation of the window.
func (s *StdDev[V, P]) Next(input V) V {
	evicted := s.win.PushAndEvict(input)
	s.sumsq += input*input - evicted*evicted
	if evicted != evicted {
		// A NaN left the window; rebuild the square sum the same way the
		// window rebuilds its value sum.
		var sq V
		for _, v := range s.win.Values() {
			sq += v * v
		}
		s.sumsq = sq
	}

	mean := s.win.Mean()
	variance := s.sumsq/V(s.win.Period()) - mean*mean
	if variance < 0 {
		// Rounding can push a near-constant window fractionally below zero.
		// NaN compares false and passes through untouched.
		variance = 0
	}
	s.last = num.Sqrt(variance)
	return s.last
}

// Current returns the output of the last step.
func (s *StdDev[V, P]) Current() V {
	return s.last
}

// Mean returns the window mean from the last step.
func (s *StdDev[V, P]) Mean() V {
	return s.win.Mean()
}

// Period returns the configured window length.
func (s *StdDev[V, P]) Period() P {
	return s.win.Period()
}
