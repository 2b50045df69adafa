package window

import (
	"unsafe"

	"github.com/tathienbao/tastream/pkg/num"
)

// Unchecked is a Window with the hot-path bounds and validity checks removed.
// Slot access goes through raw pointer arithmetic, so neither the compiler's
// bounds check nor any parameter re-validation runs on a push.
//
// Given the same period, seed and input sequence, an Unchecked window yields
// bit-identical results to Window; the update arithmetic is the same
// statement for statement. The trade is that every invariant is established
// at construction and trusted afterwards: NewUnchecked does not validate its
// parameters, and a zero period or an aliased instance is undefined behavior
// rather than an error.
//
// Callers opt in at build time via the windowunchecked tag; nothing selects
// this type by default.
type Unchecked[V num.Value, P num.Period] struct {
	data   *V
	n      uintptr
	head   uintptr
	sum    V
	period P
}

// NewUnchecked allocates an unchecked window. No validation: period must be
// >= 1 or behavior is undefined. Use NewRing for the validated entry point.
func NewUnchecked[V num.Value, P num.Period](period P, seed V) *Unchecked[V, P] {
	n := int(period)
	buf := make([]V, n)
	for i := range buf {
		buf[i] = seed
	}

	return &Unchecked[V, P]{
		data:   unsafe.SliceData(buf),
		n:      uintptr(n),
		sum:    seed * V(n),
		period: period,
	}
}

// slot returns a pointer to the i-th buffer slot without a bounds check.
func (w *Unchecked[V, P]) slot(i uintptr) *V {
	return (*V)(unsafe.Add(unsafe.Pointer(w.data), i*unsafe.Sizeof(*w.data)))
}

// PushAndEvict inserts v as the newest value, evicts the oldest and returns
// it. Identical arithmetic to Window.PushAndEvict, minus the checks.
func (w *Unchecked[V, P]) PushAndEvict(v V) V {
	p := w.slot(w.head)
	evicted := *p
	*p = v
	w.head++
	if w.head == w.n {
		w.head = 0
	}
	if w.n == 1 {
		w.sum = v
		return evicted
	}
	w.sum += v - evicted
	if evicted != evicted {
		var s V
		for i := uintptr(0); i < w.n; i++ {
			s += *w.slot(i)
		}
		w.sum = s
	}
	return evicted
}

// Sum returns the running sum of the values currently held.
func (w *Unchecked[V, P]) Sum() V {
	return w.sum
}

// Mean returns sum / period.
func (w *Unchecked[V, P]) Mean() V {
	return w.sum / V(w.n)
}

// Period returns the window capacity.
func (w *Unchecked[V, P]) Period() P {
	return w.period
}

// Values returns a copy of the held values, oldest first.
func (w *Unchecked[V, P]) Values() []V {
	out := make([]V, w.n)
	for i := uintptr(0); i < w.n; i++ {
		out[i] = *w.slot((w.head + i) % w.n)
	}
	return out
}
