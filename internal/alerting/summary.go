package alerting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// SummaryAlerter accumulates alerts during a run and renders them as a
// single report at the end, instead of emitting them one by one.
type SummaryAlerter struct {
	mu       sync.Mutex
	started  time.Time
	total    int
	bySource map[string]int
	worst    Severity
}

// NewSummaryAlerter creates a new summary alerter.
func NewSummaryAlerter() *SummaryAlerter {
	return &SummaryAlerter{
		started:  time.Now(),
		bySource: make(map[string]int),
	}
}

// Name returns the name of the alerter.
func (s *SummaryAlerter) Name() string {
	return "summary"
}

// Alert accumulates the alert. The first "rule" field value is used to
// bucket counts per source.
func (s *SummaryAlerter) Alert(_ context.Context, severity Severity, message string, fields ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total++
	if severity > s.worst {
		s.worst = severity
	}

	source := "other"
	for i := 0; i < len(fields)-1; i += 2 {
		if key, ok := fields[i].(string); ok && key == "rule" {
			source = fmt.Sprintf("%v", fields[i+1])
			break
		}
	}
	s.bySource[source]++

	return nil
}

// Render returns the accumulated report.
func (s *SummaryAlerter) Render() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "=== ALERT SUMMARY ===\n")
	fmt.Fprintf(&b, "Window:        %s\n", time.Since(s.started).Round(time.Second))
	fmt.Fprintf(&b, "Total alerts:  %d\n", s.total)
	fmt.Fprintf(&b, "Worst:         %s\n", s.worst)

	sources := make([]string, 0, len(s.bySource))
	for src := range s.bySource {
		sources = append(sources, src)
	}
	sort.Strings(sources)
	for _, src := range sources {
		fmt.Fprintf(&b, "  %-16s %d\n", src, s.bySource[src])
	}

	return b.String()
}

// Total returns the number of accumulated alerts.
func (s *SummaryAlerter) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}
