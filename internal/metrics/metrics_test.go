package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/tathienbao/tastream/internal/config"
	"github.com/tathienbao/tastream/internal/types"
	"github.com/tathienbao/tastream/pkg/num"
)

func allEnabled() config.IndicatorsConfig {
	return config.IndicatorsConfig{
		SMAPeriod:      3,
		EMAPeriod:      3,
		RSIPeriod:      3,
		ATRPeriod:      3,
		StdDevPeriod:   3,
		BollPeriod:     3,
		BollWidth:      2,
		DonchianPeriod: 3,
	}
}

func TestRecorder_RecordBar(t *testing.T) {
	r := NewRecorder(allEnabled())

	r.RecordBar(types.Bar{Timestamp: time.Now(), Close: 100})
	r.RecordBar(types.Bar{Timestamp: time.Now(), Close: 101})
}

func TestRecorder_RecordPoint(t *testing.T) {
	r := NewRecorder(allEnabled())

	r.RecordPoint(types.Point{
		SMA: 10, EMA: 10, RSI: 50,
		ATR: 1, StdDev: 0.5,
		BollMiddle: 10, DonchianUpper: 11,
	})
}

func TestRecorder_SkipsDisabledIndicators(t *testing.T) {
	// Only SMA enabled; every other field carries the disabled-NaN marker.
	r := NewRecorder(config.IndicatorsConfig{SMAPeriod: 3})

	nan := num.NaN[num.Scalar]()
	emaUpdates := testutil.ToFloat64(IndicatorUpdates.WithLabelValues("ema"))
	emaNaNs := testutil.ToFloat64(NaNOutputs.WithLabelValues("ema"))
	smaUpdates := testutil.ToFloat64(IndicatorUpdates.WithLabelValues("sma"))

	r.RecordPoint(types.Point{
		SMA: 10, EMA: nan, RSI: nan,
		ATR: nan, StdDev: nan,
		BollMiddle: nan, DonchianUpper: nan,
	})

	if got := testutil.ToFloat64(IndicatorUpdates.WithLabelValues("ema")); got != emaUpdates {
		t.Errorf("ema updates = %v, want unchanged %v", got, emaUpdates)
	}
	if got := testutil.ToFloat64(NaNOutputs.WithLabelValues("ema")); got != emaNaNs {
		t.Errorf("ema NaN outputs = %v, want unchanged %v", got, emaNaNs)
	}
	if got := testutil.ToFloat64(IndicatorUpdates.WithLabelValues("sma")); got != smaUpdates+1 {
		t.Errorf("sma updates = %v, want %v", got, smaUpdates+1)
	}
}

func TestRecorder_CountsNaNFromEnabledIndicator(t *testing.T) {
	r := NewRecorder(config.IndicatorsConfig{EMAPeriod: 3})

	before := testutil.ToFloat64(NaNOutputs.WithLabelValues("ema"))
	r.RecordPoint(types.Point{EMA: num.NaN[num.Scalar]()})

	if got := testutil.ToFloat64(NaNOutputs.WithLabelValues("ema")); got != before+1 {
		t.Errorf("ema NaN outputs = %v, want %v", got, before+1)
	}
}

func TestRecorder_RecordTrigger(t *testing.T) {
	r := NewRecorder(allEnabled())

	r.RecordTrigger(types.Trigger{Rule: "rsi_bounds"})
	r.RecordTrigger(types.Trigger{Rule: "sma_cross"})
}

func TestRecorder_RecordFeedStatus(t *testing.T) {
	r := NewRecorder(allEnabled())

	r.RecordFeedStatus(true)
	r.RecordFeedStatus(false)
}

func TestRecorder_RecordRun(t *testing.T) {
	r := NewRecorder(allEnabled())

	r.RecordRun(types.RunStatusCompleted)
	r.RecordRun(types.RunStatusFailed)
}

func TestTimer(t *testing.T) {
	timer := NewTimer()
	time.Sleep(time.Millisecond)

	if timer.Elapsed() <= 0 {
		t.Error("elapsed should be positive")
	}
	timer.ObserveBar()
}
