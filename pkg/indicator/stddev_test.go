package indicator

import (
	"errors"
	"math"
	"testing"
)

func TestStdDev_PrimedOutputIsZero(t *testing.T) {
	sd, err := NewStdDev[float64, uint32](20, 99)
	if err != nil {
		t.Fatalf("NewStdDev: %v", err)
	}

	if got := sd.Current(); got != 0 {
		t.Errorf("primed output = %v, want 0", got)
	}
}

func TestStdDev_ConstantInputsStayZero(t *testing.T) {
	sd, err := NewStdDev[float64, uint32](5, 3)
	if err != nil {
		t.Fatalf("NewStdDev: %v", err)
	}

	for i := 0; i < 10; i++ {
		if got := sd.Next(3); got != 0 {
			t.Fatalf("step %d: StdDev of constant inputs = %v, want 0", i, got)
		}
	}
}

func TestStdDev_KnownWindow(t *testing.T) {
	sd, err := NewStdDev[float64, uint32](3, 10)
	if err != nil {
		t.Fatalf("NewStdDev: %v", err)
	}

	sd.Next(20)
	got := sd.Next(30)

	// Window [10 20 30]: mean 20, variance (100+0+100)/3.
	want := math.Sqrt(200.0 / 3.0)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("StdDev = %v, want %v", got, want)
	}
	if mean := sd.Mean(); mean != 20 {
		t.Errorf("Mean = %v, want 20", mean)
	}
}

func TestStdDev_RecoversAfterNaN(t *testing.T) {
	const period = 3
	sd, err := NewStdDev[float64, uint32](period, 1)
	if err != nil {
		t.Fatalf("NewStdDev: %v", err)
	}

	if got := sd.Next(math.NaN()); !math.IsNaN(got) {
		t.Fatalf("output after NaN input = %v, want NaN", got)
	}
	for i := 0; i < period-1; i++ {
		if got := sd.Next(2); !math.IsNaN(got) {
			t.Fatalf("step %d after NaN: output = %v, want NaN", i+1, got)
		}
	}

	// The NaN is evicted here; both the value sum and the square sum must
	// come back finite.
	if got := sd.Next(2); got != 0 {
		t.Errorf("output after NaN eviction = %v, want 0 (constant window)", got)
	}
}

func TestStdDev_ZeroPeriod(t *testing.T) {
	_, err := NewStdDev[float64, uint32](0, 1)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("NewStdDev(0) error = %v, want ErrInvalidParameter", err)
	}
}
