// Package alerting provides notification capabilities for the pipeline.
package alerting

import (
	"context"
)

// Severity represents the alert severity level.
type Severity int

const (
	// SeverityInfo is for informational messages.
	SeverityInfo Severity = iota
	// SeverityWarning is for warning messages.
	SeverityWarning
	// SeverityHigh is for high priority alerts.
	SeverityHigh
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// Alerter defines the interface for sending alerts.
type Alerter interface {
	// Alert sends an alert with the given severity and message.
	Alert(ctx context.Context, severity Severity, message string, fields ...any) error
	// Name returns the name of the alerter.
	Name() string
}

// AlertEvent represents a pre-defined alert event type.
type AlertEvent string

const (
	// EventRuleTriggered is sent when a rule fires on a point.
	EventRuleTriggered AlertEvent = "rule_triggered"
	// EventNaNDetected is sent when an indicator output turns NaN.
	EventNaNDetected AlertEvent = "nan_detected"
	// EventFeedEnded is sent when the input feed closes.
	EventFeedEnded AlertEvent = "feed_ended"
	// EventRunStarted is sent when a replay run starts.
	EventRunStarted AlertEvent = "run_started"
	// EventRunCompleted is sent when a replay run completes.
	EventRunCompleted AlertEvent = "run_completed"
)

// EventSeverity returns the default severity for an event.
func EventSeverity(event AlertEvent) Severity {
	switch event {
	case EventNaNDetected:
		return SeverityWarning
	case EventRuleTriggered:
		return SeverityHigh
	default:
		return SeverityInfo
	}
}
