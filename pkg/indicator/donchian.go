package indicator

import (
	"github.com/tathienbao/tastream/pkg/num"
	"github.com/tathienbao/tastream/pkg/window"
)

// Channel is one Donchian channel output step.
type Channel[V num.Value] struct {
	Upper  V
	Middle V
	Lower  V
}

// Donchian is a streaming Donchian channel: the highest and lowest input
// over the last period steps, with the midline between them. It runs on the
// min/max window variant, which pays a bounded rescan only when the current
// extreme is evicted.
type Donchian[V num.Value, P num.Period] struct {
	win  *window.MinMax[V, P]
	last Channel[V]
}

var _ Method[float64, Channel[float64]] = (*Donchian[float64, uint32])(nil)

// NewDonchian constructs a Donchian channel primed with first; all three
// lines start at first.
func NewDonchian[V num.Value, P num.Period](period P, first V) (*Donchian[V, P], error) {
	win, err := window.NewMinMax[V, P](period, first)
	if err != nil {
		return nil, err
	}
	return &Donchian[V, P]{
		win:  win,
		last: Channel[V]{Upper: first, Middle: first, Lower: first},
	}, nil
}

// Next pushes input and returns the new channel.
func (d *Donchian[V, P]) Next(input V) Channel[V] {
	d.win.PushAndEvict(input)
	hi, lo := d.win.Max(), d.win.Min()
	d.last = Channel[V]{
		Upper:  hi,
		Middle: (hi + lo) / 2,
		Lower:  lo,
	}
	return d.last
}

// Current returns the output of the last step.
func (d *Donchian[V, P]) Current() Channel[V] {
	return d.last
}

// Period returns the configured window length.
func (d *Donchian[V, P]) Period() P {
	return d.win.Period()
}
