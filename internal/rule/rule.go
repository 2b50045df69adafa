// Package rule implements alerting rules evaluated over enriched points.
package rule

import (
	"context"

	"github.com/google/uuid"
	"github.com/tathienbao/tastream/internal/config"
	"github.com/tathienbao/tastream/internal/types"
	"github.com/tathienbao/tastream/pkg/num"
)

// Rule defines the interface for point-stream rules. Rules receive enriched
// points and produce triggers; they carry their own state (previous values,
// re-arm flags) and must not be shared between pipelines.
type Rule interface {
	// OnPoint processes one point and returns any triggers.
	// Returns nil or an empty slice when nothing fires.
	OnPoint(ctx context.Context, point types.Point) []types.Trigger

	// Name returns the rule identifier.
	Name() string

	// Reset clears all rule state.
	Reset()
}

// FromConfig builds the configured rule set.
func FromConfig(cfg config.RulesConfig) []Rule {
	var rules []Rule
	if cfg.RSIOverbought > 0 || cfg.RSIOversold > 0 {
		rules = append(rules, NewRSIBounds(num.Scalar(cfg.RSIOverbought), num.Scalar(cfg.RSIOversold)))
	}
	if cfg.SMACross {
		rules = append(rules, NewSMACross())
	}
	return rules
}

// newTrigger constructs a trigger with consistent defaults.
func newTrigger(ruleName string, point types.Point, message string, value num.Scalar) types.Trigger {
	return types.Trigger{
		ID:        uuid.New().String(),
		Timestamp: point.Timestamp,
		Rule:      ruleName,
		Message:   message,
		Value:     value,
	}
}
