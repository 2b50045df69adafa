// Package window provides the fixed-capacity sliding window primitive that
// windowed indicators are built on. A window holds the most recent period
// values and maintains its aggregates incrementally, so a push is O(1) and
// history is never rescanned.
package window

import (
	"errors"
	"fmt"

	"github.com/tathienbao/tastream/pkg/num"
)

// ErrInvalidParameter is returned when a window or indicator is constructed
// with parameters outside their valid range. It is the only error the engine
// produces; once constructed, pushing values never fails.
var ErrInvalidParameter = errors.New("invalid parameter")

// Window is a fixed-capacity ring of the most recent period values with a
// running sum. Construction seeds every slot, so the window is full from the
// first moment and the mean is always defined.
//
// The sum is maintained as sum += pushed - evicted, except when one push
// replaces every held value; then the sum is assigned from the new contents
// directly. A NaN input therefore
// poisons the sum until that value is evicted period pushes later; this is
// exact incremental arithmetic, not a defect. Because NaN - NaN is NaN, the
// sum is rebuilt by one scan on the push that evicts a NaN, the only case
// where the incremental update cannot recover.
//
// A Window is owned by a single indicator instance and is not safe for
// concurrent use.
type Window[V num.Value, P num.Period] struct {
	buf    []V
	head   int
	sum    V
	period P
}

// New allocates a window of capacity period with every slot set to seed and
// sum = seed * period. Fails with ErrInvalidParameter when period is zero.
func New[V num.Value, P num.Period](period P, seed V) (*Window[V, P], error) {
	if period == 0 {
		return nil, fmt.Errorf("window period must be >= 1: %w", ErrInvalidParameter)
	}

	n := int(period)
	buf := make([]V, n)
	for i := range buf {
		buf[i] = seed
	}

	return &Window[V, P]{
		buf:    buf,
		sum:    seed * V(n),
		period: period,
	}, nil
}

// PushAndEvict inserts v as the newest value, evicts the oldest and returns
// it. The running sum is updated from the two values alone. A push that
// replaces the entire window (period 1) assigns the sum outright: v is the
// exact sum of the contents, and the incremental form would accumulate
// cancellation error across magnitude swings.
func (w *Window[V, P]) PushAndEvict(v V) V {
	evicted := w.buf[w.head]
	w.buf[w.head] = v
	w.head++
	if w.head == len(w.buf) {
		w.head = 0
	}
	if len(w.buf) == 1 {
		w.sum = v
		return evicted
	}
	w.sum += v - evicted
	if evicted != evicted {
		w.resum()
	}
	return evicted
}

// resum rebuilds the sum from the buffer. Only called when a NaN was
// evicted; subtracting NaN cannot restore a finite sum.
func (w *Window[V, P]) resum() {
	var s V
	for _, v := range w.buf {
		s += v
	}
	w.sum = s
}

// Sum returns the running sum of the values currently held.
func (w *Window[V, P]) Sum() V {
	return w.sum
}

// Mean returns sum / period. The window is always full, so this is always
// defined.
func (w *Window[V, P]) Mean() V {
	return w.sum / V(len(w.buf))
}

// Period returns the window capacity.
func (w *Window[V, P]) Period() P {
	return w.period
}

// Values returns a copy of the held values, oldest first. Intended for tests
// and debugging, not the hot path.
func (w *Window[V, P]) Values() []V {
	out := make([]V, len(w.buf))
	for i := range out {
		out[i] = w.buf[(w.head+i)%len(w.buf)]
	}
	return out
}
