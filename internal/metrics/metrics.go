// Package metrics exposes Prometheus metrics for the pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline metrics.
var (
	BarsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tastream_bars_processed_total",
		Help: "Total number of input bars consumed by the engine.",
	})

	IndicatorUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tastream_indicator_updates_total",
		Help: "Total indicator update steps, per indicator.",
	}, []string{"indicator"})

	NaNOutputs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tastream_nan_outputs_total",
		Help: "Total NaN outputs observed, per indicator.",
	}, []string{"indicator"})

	BarLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tastream_bar_latency_seconds",
		Help:    "Time spent enriching one bar with all indicator outputs.",
		Buckets: prometheus.ExponentialBuckets(1e-7, 4, 12),
	})

	TriggersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tastream_triggers_total",
		Help: "Total rule triggers, per rule.",
	}, []string{"rule"})

	FeedConnected = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tastream_feed_connected",
		Help: "Whether a feed is currently delivering bars (1/0).",
	})

	LastBarTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tastream_last_bar_timestamp_seconds",
		Help: "Timestamp of the most recent bar, as Unix seconds.",
	})

	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tastream_runs_total",
		Help: "Total replay runs, per final status.",
	}, []string{"status"})
)
