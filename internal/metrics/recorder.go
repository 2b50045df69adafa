package metrics

import (
	"time"

	"github.com/tathienbao/tastream/internal/config"
	"github.com/tathienbao/tastream/internal/types"
	"github.com/tathienbao/tastream/pkg/num"
)

// Recorder provides methods for recording metrics. It knows which indicators
// are enabled so that a disabled indicator's NaN placeholder never counts as
// an update or a NaN output.
type Recorder struct {
	cfg config.IndicatorsConfig
}

// NewRecorder creates a metrics recorder for the given indicator selection.
func NewRecorder(cfg config.IndicatorsConfig) *Recorder {
	return &Recorder{cfg: cfg}
}

// RecordBar records one consumed bar.
func (r *Recorder) RecordBar(bar types.Bar) {
	BarsProcessed.Inc()
	LastBarTimestamp.Set(float64(bar.Timestamp.Unix()))
}

// RecordPoint records the indicator outputs of one enriched point.
func (r *Recorder) RecordPoint(point types.Point) {
	record := func(name string, enabled bool, v num.Scalar) {
		if !enabled {
			return
		}
		IndicatorUpdates.WithLabelValues(name).Inc()
		if num.IsNaN(v) {
			NaNOutputs.WithLabelValues(name).Inc()
		}
	}

	record("sma", r.cfg.SMAPeriod > 0, point.SMA)
	record("ema", r.cfg.EMAPeriod > 0, point.EMA)
	record("rsi", r.cfg.RSIPeriod > 0, point.RSI)
	record("atr", r.cfg.ATRPeriod > 0, point.ATR)
	record("stddev", r.cfg.StdDevPeriod > 0, point.StdDev)
	record("boll", r.cfg.BollPeriod > 0, point.BollMiddle)
	record("donchian", r.cfg.DonchianPeriod > 0, point.DonchianUpper)
}

// RecordTrigger records a rule trigger.
func (r *Recorder) RecordTrigger(trigger types.Trigger) {
	TriggersTotal.WithLabelValues(trigger.Rule).Inc()
}

// RecordFeedStatus records feed connection status.
func (r *Recorder) RecordFeedStatus(connected bool) {
	if connected {
		FeedConnected.Set(1)
	} else {
		FeedConnected.Set(0)
	}
}

// RecordBarLatency records per-bar enrichment latency.
func (r *Recorder) RecordBarLatency(duration time.Duration) {
	BarLatency.Observe(duration.Seconds())
}

// RecordRun records a finished replay run.
func (r *Recorder) RecordRun(status types.RunStatus) {
	RunsTotal.WithLabelValues(status.String()).Inc()
}

// Timer is a helper for measuring latency.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed duration.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// ObserveBar observes the elapsed time as bar latency.
func (t *Timer) ObserveBar() {
	BarLatency.Observe(t.Elapsed().Seconds())
}
