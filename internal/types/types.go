// Package types defines shared types used across the indicator pipeline.
package types

import (
	"time"

	"github.com/tathienbao/tastream/pkg/num"
)

// Bar represents one input sample from a feed. Scalar-only indicators
// consume Close; ATR consumes the full bar.
type Bar struct {
	Timestamp time.Time
	Open      num.Scalar
	High      num.Scalar
	Low       num.Scalar
	Close     num.Scalar
	Volume    int64
}

// Point is a bar enriched with the indicator outputs computed for it. Fields
// for indicators that were not enabled hold NaN so a zero value is never
// mistaken for a computed output.
type Point struct {
	Bar

	SMA    num.Scalar
	EMA    num.Scalar
	RSI    num.Scalar
	ATR    num.Scalar
	StdDev num.Scalar

	BollUpper  num.Scalar
	BollMiddle num.Scalar
	BollLower  num.Scalar

	DonchianUpper num.Scalar
	DonchianLower num.Scalar
}

// Trigger represents a rule firing on a point.
type Trigger struct {
	ID        string
	Timestamp time.Time
	Rule      string
	Message   string
	Value     num.Scalar
}

// RunStatus represents the state of a recorded replay run.
type RunStatus int

const (
	RunStatusRunning RunStatus = iota
	RunStatusCompleted
	RunStatusFailed
)

func (s RunStatus) String() string {
	switch s {
	case RunStatusRunning:
		return "RUNNING"
	case RunStatusCompleted:
		return "COMPLETED"
	case RunStatusFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Run identifies one recorded pass of a feed through the engine.
type Run struct {
	ID         string
	Source     string
	StartedAt  time.Time
	FinishedAt time.Time
	Status     RunStatus
	Bars       int
}
