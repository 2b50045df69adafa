package rule

import (
	"context"
	"testing"
	"time"

	"github.com/tathienbao/tastream/internal/config"
	"github.com/tathienbao/tastream/internal/types"
	"github.com/tathienbao/tastream/pkg/num"
)

func pointWithRSI(rsi num.Scalar) types.Point {
	return types.Point{
		Bar: types.Bar{Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		RSI: rsi,
	}
}

func pointWithSMA(close, sma num.Scalar) types.Point {
	return types.Point{
		Bar: types.Bar{Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Close: close},
		SMA: sma,
	}
}

func TestRSIBounds_FiresOncePerExcursion(t *testing.T) {
	ctx := context.Background()
	rule := NewRSIBounds(70, 30)

	if got := rule.OnPoint(ctx, pointWithRSI(50)); len(got) != 0 {
		t.Fatalf("inside band fired %d triggers", len(got))
	}

	got := rule.OnPoint(ctx, pointWithRSI(75))
	if len(got) != 1 {
		t.Fatalf("crossing above fired %d triggers, want 1", len(got))
	}
	if got[0].Rule != "rsi_bounds" {
		t.Errorf("rule = %q, want rsi_bounds", got[0].Rule)
	}
	if got[0].Value != 75 {
		t.Errorf("value = %v, want 75", got[0].Value)
	}
	if got[0].ID == "" {
		t.Error("trigger ID is empty")
	}

	// Still above: no re-fire
	if got := rule.OnPoint(ctx, pointWithRSI(80)); len(got) != 0 {
		t.Fatalf("holding above re-fired %d triggers", len(got))
	}

	// Back inside re-arms, then fires again
	rule.OnPoint(ctx, pointWithRSI(60))
	if got := rule.OnPoint(ctx, pointWithRSI(71)); len(got) != 1 {
		t.Fatalf("re-armed cross fired %d triggers, want 1", len(got))
	}
}

func TestRSIBounds_Oversold(t *testing.T) {
	ctx := context.Background()
	rule := NewRSIBounds(70, 30)

	got := rule.OnPoint(ctx, pointWithRSI(25))
	if len(got) != 1 {
		t.Fatalf("crossing below fired %d triggers, want 1", len(got))
	}
	if got := rule.OnPoint(ctx, pointWithRSI(20)); len(got) != 0 {
		t.Fatalf("holding below re-fired %d triggers", len(got))
	}
}

func TestRSIBounds_NaNFiresNothing(t *testing.T) {
	ctx := context.Background()
	rule := NewRSIBounds(70, 30)

	if got := rule.OnPoint(ctx, pointWithRSI(num.NaN[num.Scalar]())); len(got) != 0 {
		t.Fatalf("NaN fired %d triggers", len(got))
	}
}

func TestRSIBounds_Reset(t *testing.T) {
	ctx := context.Background()
	rule := NewRSIBounds(70, 30)

	rule.OnPoint(ctx, pointWithRSI(75))
	rule.Reset()
	if got := rule.OnPoint(ctx, pointWithRSI(75)); len(got) != 1 {
		t.Fatalf("after reset fired %d triggers, want 1", len(got))
	}
}

func TestSMACross_Fires(t *testing.T) {
	ctx := context.Background()
	rule := NewSMACross()

	// First point only establishes the relation
	if got := rule.OnPoint(ctx, pointWithSMA(9, 10)); len(got) != 0 {
		t.Fatalf("first point fired %d triggers", len(got))
	}

	got := rule.OnPoint(ctx, pointWithSMA(11, 10))
	if len(got) != 1 {
		t.Fatalf("cross above fired %d triggers, want 1", len(got))
	}
	if got[0].Rule != "sma_cross" {
		t.Errorf("rule = %q, want sma_cross", got[0].Rule)
	}

	// Same side: nothing
	if got := rule.OnPoint(ctx, pointWithSMA(12, 10)); len(got) != 0 {
		t.Fatalf("same side fired %d triggers", len(got))
	}

	// Cross back down
	if got := rule.OnPoint(ctx, pointWithSMA(9, 10)); len(got) != 1 {
		t.Fatalf("cross below fired %d triggers, want 1", len(got))
	}
}

func TestSMACross_NaNDropsRelation(t *testing.T) {
	ctx := context.Background()
	rule := NewSMACross()

	rule.OnPoint(ctx, pointWithSMA(9, 10))
	rule.OnPoint(ctx, pointWithSMA(num.NaN[num.Scalar](), 10))

	// The point after the gap re-establishes the relation, never infers a
	// cross over it.
	if got := rule.OnPoint(ctx, pointWithSMA(11, 10)); len(got) != 0 {
		t.Fatalf("cross inferred across NaN gap: %d triggers", len(got))
	}
}

func TestFromConfig(t *testing.T) {
	rules := FromConfig(config.RulesConfig{
		RSIOverbought: 70,
		RSIOversold:   30,
		SMACross:      true,
	})
	if len(rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(rules))
	}

	rules = FromConfig(config.RulesConfig{})
	if len(rules) != 0 {
		t.Fatalf("empty config built %d rules, want 0", len(rules))
	}
}
