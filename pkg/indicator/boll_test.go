package indicator

import (
	"errors"
	"math"
	"testing"
)

func TestBoll_PrimedBandsCollapse(t *testing.T) {
	boll, err := NewBoll[float64, uint32](20, 2, 50)
	if err != nil {
		t.Fatalf("NewBoll: %v", err)
	}

	got := boll.Current()
	if got.Upper != 50 || got.Middle != 50 || got.Lower != 50 {
		t.Errorf("primed bands = %+v, want all 50", got)
	}
}

func TestBoll_KnownWindow(t *testing.T) {
	boll, err := NewBoll[float64, uint32](3, 2, 10)
	if err != nil {
		t.Fatalf("NewBoll: %v", err)
	}

	boll.Next(20)
	got := boll.Next(30)

	// Window [10 20 30]: middle 20, sd sqrt(200/3).
	sd := math.Sqrt(200.0 / 3.0)
	if got.Middle != 20 {
		t.Errorf("Middle = %v, want 20", got.Middle)
	}
	if math.Abs(got.Upper-(20+2*sd)) > 1e-9 {
		t.Errorf("Upper = %v, want %v", got.Upper, 20+2*sd)
	}
	if math.Abs(got.Lower-(20-2*sd)) > 1e-9 {
		t.Errorf("Lower = %v, want %v", got.Lower, 20-2*sd)
	}
}

func TestBoll_BandsStaySymmetric(t *testing.T) {
	boll, err := NewBoll[float64, uint32](5, 1.5, 100)
	if err != nil {
		t.Fatalf("NewBoll: %v", err)
	}

	x := 100.0
	state := uint64(3)
	for i := 0; i < 200; i++ {
		state = state*6364136223846793005 + 1442695040888963407
		x += float64(int64(state>>33)%20-10) / 4.0

		b := boll.Next(x)
		if b.Upper < b.Middle || b.Middle < b.Lower {
			t.Fatalf("step %d: bands out of order: %+v", i, b)
		}
		if math.Abs((b.Upper-b.Middle)-(b.Middle-b.Lower)) > 1e-9 {
			t.Fatalf("step %d: bands asymmetric: %+v", i, b)
		}
	}
}

func TestBoll_InvalidWidth(t *testing.T) {
	for _, k := range []float64{0, -1, math.NaN()} {
		_, err := NewBoll[float64, uint32](3, k, 1)
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("NewBoll(k=%v) error = %v, want ErrInvalidParameter", k, err)
		}
	}
}

func TestBoll_ZeroPeriod(t *testing.T) {
	_, err := NewBoll[float64, uint32](0, 2, 1)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("NewBoll(0) error = %v, want ErrInvalidParameter", err)
	}
}
