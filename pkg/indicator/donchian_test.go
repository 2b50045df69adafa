package indicator

import (
	"errors"
	"testing"
)

func TestDonchian_PrimedChannelCollapses(t *testing.T) {
	dc, err := NewDonchian[float64, uint32](10, 25)
	if err != nil {
		t.Fatalf("NewDonchian: %v", err)
	}

	got := dc.Current()
	if got.Upper != 25 || got.Middle != 25 || got.Lower != 25 {
		t.Errorf("primed channel = %+v, want all 25", got)
	}
}

func TestDonchian_TracksExtremes(t *testing.T) {
	dc, err := NewDonchian[float64, uint32](3, 10)
	if err != nil {
		t.Fatalf("NewDonchian: %v", err)
	}

	// Window [10 10 12]
	if got := dc.Next(12); got.Upper != 12 || got.Lower != 10 || got.Middle != 11 {
		t.Errorf("Next(12) = %+v, want 12/11/10", got)
	}

	// Window [10 12 8]
	if got := dc.Next(8); got.Upper != 12 || got.Lower != 8 {
		t.Errorf("Next(8) = %+v, want upper 12 lower 8", got)
	}

	// Window [12 8 9]
	if got := dc.Next(9); got.Upper != 12 || got.Lower != 8 {
		t.Errorf("Next(9) = %+v, want upper 12 lower 8", got)
	}

	// The 12 is evicted here; window [8 9 7].
	if got := dc.Next(7); got.Upper != 9 || got.Lower != 7 || got.Middle != 8 {
		t.Errorf("Next(7) = %+v, want 9/8/7", got)
	}
}

func TestDonchian_ZeroPeriod(t *testing.T) {
	_, err := NewDonchian[float64, uint32](0, 1)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("NewDonchian(0) error = %v, want ErrInvalidParameter", err)
	}
}
