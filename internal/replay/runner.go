// Package replay drives a full feed through the indicator pipeline and
// records the outcome.
package replay

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tathienbao/tastream/internal/alerting"
	"github.com/tathienbao/tastream/internal/metrics"
	"github.com/tathienbao/tastream/internal/persistence"
	"github.com/tathienbao/tastream/internal/rule"
	"github.com/tathienbao/tastream/internal/stream"
	"github.com/tathienbao/tastream/internal/types"
	"github.com/tathienbao/tastream/pkg/num"
)

// pointBatchSize is the number of points buffered before a persistence flush.
const pointBatchSize = 500

// Summary aggregates the finite outputs of one indicator over a run.
type Summary struct {
	Min   float64
	Max   float64
	sum   float64
	count int
}

func (s *Summary) observe(v num.Scalar) {
	if num.IsNaN(v) {
		return
	}
	f := float64(v)
	if s.count == 0 || f < s.Min {
		s.Min = f
	}
	if s.count == 0 || f > s.Max {
		s.Max = f
	}
	s.sum += f
	s.count++
}

// Mean returns the mean of the observed finite outputs.
func (s *Summary) Mean() float64 {
	if s.count == 0 {
		return 0
	}
	return s.sum / float64(s.count)
}

// Count returns the number of finite outputs observed.
func (s *Summary) Count() int {
	return s.count
}

// Result holds the outcome of a completed run.
type Result struct {
	RunID      string
	Source     string
	StartedAt  time.Time
	FinishedAt time.Time
	Bars       int
	NaNPoints  int
	Triggers   int

	TriggersByRule map[string]int
	Indicators     map[string]*Summary
}

// Render returns a human-readable run report.
func (r *Result) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== RUN %s ===\n", r.RunID)
	fmt.Fprintf(&b, "Source:     %s\n", r.Source)
	fmt.Fprintf(&b, "Duration:   %s\n", r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))
	fmt.Fprintf(&b, "Bars:       %d\n", r.Bars)
	fmt.Fprintf(&b, "NaN points: %d\n", r.NaNPoints)
	fmt.Fprintf(&b, "Triggers:   %d\n", r.Triggers)

	names := make([]string, 0, len(r.Indicators))
	for name := range r.Indicators {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s := r.Indicators[name]
		if s.Count() == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %-10s min=%.4f max=%.4f mean=%.4f\n", name, s.Min, s.Max, s.Mean())
	}

	rules := make([]string, 0, len(r.TriggersByRule))
	for name := range r.TriggersByRule {
		rules = append(rules, name)
	}
	sort.Strings(rules)
	for _, name := range rules {
		fmt.Fprintf(&b, "  %-10s triggers=%d\n", name, r.TriggersByRule[name])
	}

	return b.String()
}

// Runner replays a feed through the engine, evaluates rules and records
// points, triggers and metrics.
type Runner struct {
	feed     stream.Feed
	engine   *stream.Engine
	rules    []rule.Rule
	alerter  alerting.Alerter
	repo     persistence.Repository
	recorder *metrics.Recorder
	logger   *slog.Logger
}

// Options configures a runner. Repo, Alerter and Recorder are optional.
type Options struct {
	Feed     stream.Feed
	Engine   *stream.Engine
	Rules    []rule.Rule
	Alerter  alerting.Alerter
	Repo     persistence.Repository
	Recorder *metrics.Recorder
	Logger   *slog.Logger
}

// NewRunner creates a runner from the given components.
func NewRunner(opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		feed:     opts.Feed,
		engine:   opts.Engine,
		rules:    opts.Rules,
		alerter:  opts.Alerter,
		repo:     opts.Repo,
		recorder: opts.Recorder,
		logger:   logger,
	}
}

// Run replays the whole feed. It returns the run result and the first error
// that stopped the run, if any. A cancelled context counts as a failure.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		RunID:          uuid.New().String(),
		Source:         r.feed.Name(),
		StartedAt:      time.Now(),
		TriggersByRule: make(map[string]int),
		Indicators: map[string]*Summary{
			"sma":      {},
			"ema":      {},
			"rsi":      {},
			"atr":      {},
			"stddev":   {},
			"boll":     {},
			"donchian": {},
		},
	}

	run := types.Run{
		ID:        result.RunID,
		Source:    result.Source,
		StartedAt: result.StartedAt,
		Status:    types.RunStatusRunning,
	}
	if r.repo != nil {
		if err := r.repo.SaveRun(ctx, run); err != nil {
			return nil, fmt.Errorf("save run: %w", err)
		}
	}

	r.logger.Info("run started", "run_id", result.RunID, "source", result.Source)
	r.alert(ctx, alerting.SeverityInfo, "run started", "rule", "lifecycle", "run_id", result.RunID)
	if r.recorder != nil {
		r.recorder.RecordFeedStatus(true)
	}

	pipeline := stream.NewPipeline(r.feed, r.engine)
	points, err := pipeline.Subscribe(ctx)
	if err != nil {
		r.finish(ctx, result, &run, types.RunStatusFailed)
		return result, fmt.Errorf("subscribe: %w", err)
	}

	var batch []types.Point
	for point := range points {
		timer := metrics.NewTimer()
		result.Bars++
		r.observe(result, point)

		for _, rl := range r.rules {
			for _, trigger := range rl.OnPoint(ctx, point) {
				result.Triggers++
				result.TriggersByRule[trigger.Rule]++
				r.onTrigger(ctx, result.RunID, trigger)
			}
		}

		if r.recorder != nil {
			r.recorder.RecordBar(point.Bar)
			r.recorder.RecordPoint(point)
			r.recorder.RecordBarLatency(timer.Elapsed())
		}

		if r.repo != nil {
			batch = append(batch, point)
			if len(batch) >= pointBatchSize {
				if err := r.repo.SavePoints(ctx, result.RunID, batch); err != nil {
					r.finish(ctx, result, &run, types.RunStatusFailed)
					return result, fmt.Errorf("save points: %w", err)
				}
				batch = batch[:0]
			}
		}
	}

	if r.repo != nil && len(batch) > 0 {
		if err := r.repo.SavePoints(ctx, result.RunID, batch); err != nil {
			r.finish(ctx, result, &run, types.RunStatusFailed)
			return result, fmt.Errorf("save points: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		r.finish(ctx, result, &run, types.RunStatusFailed)
		return result, err
	}

	r.finish(ctx, result, &run, types.RunStatusCompleted)
	return result, nil
}

func (r *Runner) observe(result *Result, point types.Point) {
	result.Indicators["sma"].observe(point.SMA)
	result.Indicators["ema"].observe(point.EMA)
	result.Indicators["rsi"].observe(point.RSI)
	result.Indicators["atr"].observe(point.ATR)
	result.Indicators["stddev"].observe(point.StdDev)
	result.Indicators["boll"].observe(point.BollMiddle)
	result.Indicators["donchian"].observe((point.DonchianUpper + point.DonchianLower) / 2)

	if num.IsNaN(point.Close) {
		result.NaNPoints++
	}
}

func (r *Runner) onTrigger(ctx context.Context, runID string, trigger types.Trigger) {
	r.logger.Info("rule triggered",
		"rule", trigger.Rule,
		"message", trigger.Message,
		"value", float64(trigger.Value),
	)
	r.alert(ctx, alerting.SeverityWarning, trigger.Message, "rule", trigger.Rule, "value", float64(trigger.Value))

	if r.recorder != nil {
		r.recorder.RecordTrigger(trigger)
	}
	if r.repo != nil {
		if err := r.repo.SaveTrigger(ctx, runID, trigger); err != nil {
			r.logger.Error("save trigger failed", "err", err)
		}
	}
}

func (r *Runner) finish(ctx context.Context, result *Result, run *types.Run, status types.RunStatus) {
	result.FinishedAt = time.Now()
	run.FinishedAt = result.FinishedAt
	run.Status = status
	run.Bars = result.Bars

	if r.recorder != nil {
		r.recorder.RecordFeedStatus(false)
		r.recorder.RecordRun(status)
	}

	if r.repo != nil {
		// Best effort on a fresh context so a cancelled run still lands.
		updateCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := r.repo.UpdateRun(updateCtx, *run); err != nil {
			r.logger.Error("update run failed", "err", err)
		}
	}

	severity := alerting.SeverityInfo
	if status == types.RunStatusFailed {
		severity = alerting.SeverityHigh
	}
	r.alert(ctx, severity, fmt.Sprintf("run %s", strings.ToLower(status.String())),
		"rule", "lifecycle",
		"run_id", result.RunID,
		"bars", result.Bars,
		"triggers", result.Triggers,
	)

	r.logger.Info("run finished",
		"run_id", result.RunID,
		"status", status.String(),
		"bars", result.Bars,
		"triggers", result.Triggers,
	)
}

func (r *Runner) alert(ctx context.Context, severity alerting.Severity, message string, fields ...any) {
	if r.alerter == nil {
		return
	}
	if err := r.alerter.Alert(ctx, severity, message, fields...); err != nil {
		r.logger.Error("alert failed", "err", err)
	}
}
