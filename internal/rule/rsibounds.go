package rule

import (
	"context"
	"fmt"

	"github.com/tathienbao/tastream/internal/types"
	"github.com/tathienbao/tastream/pkg/num"
)

// RSIBounds fires when the RSI crosses into overbought or oversold
// territory. Each bound re-arms only after the RSI returns inside the
// band, so a market that sits above the bound produces one trigger, not a
// trigger per bar.
type RSIBounds struct {
	overbought num.Scalar
	oversold   num.Scalar

	firedHigh bool
	firedLow  bool
}

// NewRSIBounds creates the rule with the given bounds (conventionally
// 70/30).
func NewRSIBounds(overbought, oversold num.Scalar) *RSIBounds {
	return &RSIBounds{overbought: overbought, oversold: oversold}
}

// OnPoint checks the point's RSI against both bounds. A NaN RSI (indicator
// disabled or poisoned input) fires nothing: every comparison is false.
func (r *RSIBounds) OnPoint(ctx context.Context, point types.Point) []types.Trigger {
	var triggers []types.Trigger

	switch {
	case point.RSI >= r.overbought && !r.firedHigh:
		r.firedHigh = true
		triggers = append(triggers, newTrigger(r.Name(), point,
			fmt.Sprintf("RSI %.2f crossed above %.2f", point.RSI, r.overbought), point.RSI))
	case point.RSI < r.overbought:
		r.firedHigh = false
	}

	switch {
	case point.RSI <= r.oversold && !r.firedLow:
		r.firedLow = true
		triggers = append(triggers, newTrigger(r.Name(), point,
			fmt.Sprintf("RSI %.2f crossed below %.2f", point.RSI, r.oversold), point.RSI))
	case point.RSI > r.oversold:
		r.firedLow = false
	}

	return triggers
}

// Name returns the rule identifier.
func (r *RSIBounds) Name() string {
	return "rsi_bounds"
}

// Reset clears the re-arm state.
func (r *RSIBounds) Reset() {
	r.firedHigh = false
	r.firedLow = false
}
