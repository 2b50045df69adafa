package window

import (
	"fmt"

	"github.com/tathienbao/tastream/pkg/num"
)

// MinMax is a sliding window that additionally maintains the current minimum
// and maximum. A push is O(1) unless it evicts the current extreme, in which
// case the extreme is recomputed by a single scan of the window. Extremes
// change rarely relative to pushes, so the amortized cost stays constant and
// the worst case is bounded by one pass over period values.
type MinMax[V num.Value, P num.Period] struct {
	buf    []V
	head   int
	sum    V
	min    V
	max    V
	period P
}

// NewMinMax allocates a min/max window seeded like Window.New. Fails with
// ErrInvalidParameter when period is zero.
func NewMinMax[V num.Value, P num.Period](period P, seed V) (*MinMax[V, P], error) {
	if period == 0 {
		return nil, fmt.Errorf("window period must be >= 1: %w", ErrInvalidParameter)
	}

	n := int(period)
	buf := make([]V, n)
	for i := range buf {
		buf[i] = seed
	}

	return &MinMax[V, P]{
		buf:    buf,
		sum:    seed * V(n),
		min:    seed,
		max:    seed,
		period: period,
	}, nil
}

// PushAndEvict inserts v as the newest value, evicts and returns the oldest,
// and updates sum, min and max.
func (w *MinMax[V, P]) PushAndEvict(v V) V {
	evicted := w.buf[w.head]
	w.buf[w.head] = v
	w.head++
	if w.head == len(w.buf) {
		w.head = 0
	}
	if len(w.buf) == 1 {
		w.sum = v
	} else {
		w.sum += v - evicted
		if evicted != evicted {
			var s V
			for _, x := range w.buf {
				s += x
			}
			w.sum = s
		}
	}

	switch {
	case evicted == w.min && v > w.min:
		w.rescan()
	case evicted == w.max && v < w.max:
		w.rescan()
	default:
		if v < w.min {
			w.min = v
		}
		if v > w.max {
			w.max = v
		}
	}

	return evicted
}

// rescan recomputes min and max from the buffer. Only called when the
// current extreme was evicted.
func (w *MinMax[V, P]) rescan() {
	mn, mx := w.buf[0], w.buf[0]
	for _, v := range w.buf[1:] {
		if v < mn {
			mn = v
		}
		if v > mx {
			mx = v
		}
	}
	w.min, w.max = mn, mx
}

// Sum returns the running sum of the values currently held.
func (w *MinMax[V, P]) Sum() V {
	return w.sum
}

// Mean returns sum / period.
func (w *MinMax[V, P]) Mean() V {
	return w.sum / V(len(w.buf))
}

// Min returns the smallest value currently held.
func (w *MinMax[V, P]) Min() V {
	return w.min
}

// Max returns the largest value currently held.
func (w *MinMax[V, P]) Max() V {
	return w.max
}

// Period returns the window capacity.
func (w *MinMax[V, P]) Period() P {
	return w.period
}
