package indicator

import (
	"errors"
	"math"
	"testing"
)

func TestEMA_Scenario(t *testing.T) {
	// period 3 -> alpha 0.5
	ema, err := NewEMA[float64, uint32](3, 10)
	if err != nil {
		t.Fatalf("NewEMA: %v", err)
	}

	if got := ema.Current(); got != 10 {
		t.Errorf("primed output = %v, want 10", got)
	}
	if got := ema.Next(20); got != 15 {
		t.Errorf("Next(20) = %v, want 15", got)
	}
	if got := ema.Next(10); got != 12.5 {
		t.Errorf("Next(10) = %v, want 12.5", got)
	}
}

func TestEMA_PeriodOneIsIdentity(t *testing.T) {
	// period 1 -> alpha 1: no smoothing possible.
	ema, err := NewEMA[float64, uint32](1, 5)
	if err != nil {
		t.Fatalf("NewEMA: %v", err)
	}

	for _, x := range []float64{1, -3, 0.25, 1e6} {
		if got := ema.Next(x); got != x {
			t.Errorf("Next(%v) = %v, want identity", x, got)
		}
	}
}

func TestEMA_AlphaValidation(t *testing.T) {
	cases := []struct {
		name  string
		alpha float64
		ok    bool
	}{
		{"zero", 0, false},
		{"negative", -0.1, false},
		{"above one", 1.0001, false},
		{"nan", math.NaN(), false},
		{"one", 1, true},
		{"half", 0.5, true},
		{"tiny", 1e-9, true},
	}

	for _, tc := range cases {
		_, err := NewEMAAlpha(tc.alpha, 1.0)
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("%s: error = %v, want ErrInvalidParameter", tc.name, err)
		}
	}
}

func TestEMA_ZeroPeriod(t *testing.T) {
	_, err := NewEMA[float64, uint32](0, 1)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("NewEMA(0) error = %v, want ErrInvalidParameter", err)
	}
}

func TestEMA_AlphaFromPeriod(t *testing.T) {
	if got := Alpha[float64](uint32(3)); got != 0.5 {
		t.Errorf("Alpha(3) = %v, want 0.5", got)
	}
	if got := Alpha[float64](uint32(1)); got != 1 {
		t.Errorf("Alpha(1) = %v, want 1", got)
	}
}
