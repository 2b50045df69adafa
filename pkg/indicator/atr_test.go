package indicator

import (
	"errors"
	"testing"
)

func TestATR_PrimedFromFirstBar(t *testing.T) {
	atr, err := NewATR[float64, uint32](5, 12, 10, 11)
	if err != nil {
		t.Fatalf("NewATR: %v", err)
	}

	// First true range is high - low = 2, replicated across the window.
	if got := atr.Current(); got != 2 {
		t.Errorf("primed output = %v, want 2", got)
	}
}

func TestATR_TrueRangeUsesPreviousClose(t *testing.T) {
	atr, err := NewATR[float64, uint32](2, 12, 10, 11)
	if err != nil {
		t.Fatalf("NewATR: %v", err)
	}

	// Plain bar: tr = max(13-11, |13-11|, |11-11|) = 2. Window [2 2].
	if got := atr.Next(13, 11, 12); got != 2 {
		t.Errorf("Next = %v, want 2", got)
	}

	// Gap up from close 12: tr = max(2, |20-12|, |18-12|) = 8. Window [2 8].
	if got := atr.Next(20, 18, 19); got != 5 {
		t.Errorf("Next after gap = %v, want 5", got)
	}
}

func TestATR_ZeroPeriod(t *testing.T) {
	_, err := NewATR[float64, uint32](0, 2, 1, 1)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("NewATR(0) error = %v, want ErrInvalidParameter", err)
	}
}
