package rule

import (
	"context"
	"fmt"

	"github.com/tathienbao/tastream/internal/types"
	"github.com/tathienbao/tastream/pkg/num"
)

// SMACross fires when the close crosses its moving average. The previous
// bar's relation is explicit state; the first point only establishes it.
type SMACross struct {
	havePrev  bool
	prevAbove bool
}

// NewSMACross creates the rule.
func NewSMACross() *SMACross {
	return &SMACross{}
}

// OnPoint compares close and SMA against the previous relation. NaN in
// either value skips the point and drops the stored relation, so a cross
// is never inferred across a gap.
func (r *SMACross) OnPoint(ctx context.Context, point types.Point) []types.Trigger {
	if num.IsNaN(point.Close) || num.IsNaN(point.SMA) {
		r.havePrev = false
		return nil
	}

	above := point.Close > point.SMA
	defer func() {
		r.havePrev = true
		r.prevAbove = above
	}()

	if !r.havePrev || above == r.prevAbove {
		return nil
	}

	direction := "below"
	if above {
		direction = "above"
	}
	return []types.Trigger{newTrigger(r.Name(), point,
		fmt.Sprintf("close %.4f crossed %s SMA %.4f", point.Close, direction, point.SMA), point.Close)}
}

// Name returns the rule identifier.
func (r *SMACross) Name() string {
	return "sma_cross"
}

// Reset clears the stored relation.
func (r *SMACross) Reset() {
	r.havePrev = false
	r.prevAbove = false
}
