package indicator

import (
	"errors"
	"math"
	"testing"
)

func TestSMA_PrimedFirstOutput(t *testing.T) {
	sma, err := NewSMA[float64, uint32](5, 42.5)
	if err != nil {
		t.Fatalf("NewSMA: %v", err)
	}

	// The window holds five copies of the first input, so the first output
	// is exact, not approximate.
	if got := sma.Current(); got != 42.5 {
		t.Errorf("Current = %v, want 42.5", got)
	}
}

func TestSMA_Scenario(t *testing.T) {
	sma, err := NewSMA[float64, uint32](3, 10)
	if err != nil {
		t.Fatalf("NewSMA: %v", err)
	}

	if got := sma.Current(); got != 10 {
		t.Errorf("primed output = %v, want 10", got)
	}

	// Window [10 10 10] -> push 20 evicts a seed: [10 10 20], sum 40.
	if got := sma.Next(20); got != 40.0/3.0 {
		t.Errorf("Next(20) = %v, want %v", got, 40.0/3.0)
	}

	// Push 30 evicts another seed: [10 20 30], sum 60.
	if got := sma.Next(30); got != 20 {
		t.Errorf("Next(30) = %v, want 20", got)
	}

	if got := sma.Current(); got != 20 {
		t.Errorf("Current = %v, want 20", got)
	}
}

func TestSMA_PeriodOneIsIdentity(t *testing.T) {
	sma, err := NewSMA[float64, uint32](1, 3)
	if err != nil {
		t.Fatalf("NewSMA: %v", err)
	}

	for _, x := range []float64{7, -2.5, 0, 1e9, 3.14159} {
		if got := sma.Next(x); got != x {
			t.Errorf("Next(%v) = %v, want identity", x, got)
		}
	}
}

func TestSMA_ZeroPeriod(t *testing.T) {
	_, err := NewSMA[float64, uint32](0, 1)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("NewSMA(0) error = %v, want ErrInvalidParameter", err)
	}
}

func TestSMA_NaNPropagatesForExactlyPeriodSteps(t *testing.T) {
	const period = 4
	sma, err := NewSMA[float64, uint32](period, 1)
	if err != nil {
		t.Fatalf("NewSMA: %v", err)
	}

	if got := sma.Next(math.NaN()); !math.IsNaN(got) {
		t.Fatalf("output after NaN input = %v, want NaN", got)
	}
	for i := 0; i < period-1; i++ {
		if got := sma.Next(2); !math.IsNaN(got) {
			t.Fatalf("step %d after NaN: output = %v, want NaN", i+1, got)
		}
	}

	// The NaN is evicted on this push; the window is [2 2 2 2].
	if got := sma.Next(2); got != 2 {
		t.Errorf("output after NaN eviction = %v, want 2", got)
	}
}

func TestSMA_Float32(t *testing.T) {
	sma, err := NewSMA[float32, uint16](2, 1)
	if err != nil {
		t.Fatalf("NewSMA: %v", err)
	}

	if got := sma.Next(3); got != 2 {
		t.Errorf("Next(3) = %v, want 2", got)
	}
}
