package indicator

import (
	"github.com/tathienbao/tastream/pkg/num"
)

// Bands is one Bollinger Bands output step.
type Bands[V num.Value] struct {
	Upper  V
	Middle V
	Lower  V
}

// Boll is streaming Bollinger Bands: a window mean with bands at
// k standard deviations around it. Built on StdDev, which carries both the
// window and the running sum of squares.
type Boll[V num.Value, P num.Period] struct {
	sd   *StdDev[V, P]
	k    V
	last Bands[V]
}

var _ Method[float64, Bands[float64]] = (*Boll[float64, uint32])(nil)

// NewBoll constructs Bollinger Bands primed with first. The seeded window is
// constant, so all three bands start at first. The band width k must be
// positive; NaN is rejected by the same comparison.
func NewBoll[V num.Value, P num.Period](period P, k, first V) (*Boll[V, P], error) {
	if !(k > 0) {
		return nil, invalidf("bollinger band width %v must be > 0", k)
	}
	sd, err := NewStdDev[V, P](period, first)
	if err != nil {
		return nil, err
	}
	return &Boll[V, P]{
		sd:   sd,
		k:    k,
		last: Bands[V]{Upper: first, Middle: first, Lower: first},
	}, nil
}

// Next pushes input and returns the new bands.
func (b *Boll[V, P]) Next(input V) Bands[V] {
	sd := b.sd.Next(input)
	mid := b.sd.Mean()
	b.last = Bands[V]{
		Upper:  mid + b.k*sd,
		Middle: mid,
		Lower:  mid - b.k*sd,
	}
	return b.last
}

// Current returns the output of the last step.
func (b *Boll[V, P]) Current() Bands[V] {
	return b.last
}

// Period returns the configured window length.
func (b *Boll[V, P]) Period() P {
	return b.sd.Period()
}
