package alerting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// MultiAlerter fans one alert out to every configured channel concurrently.
// A slow or failing channel never blocks the others; failures are logged per
// channel and joined into one returned error.
type MultiAlerter struct {
	mu       sync.RWMutex
	channels []Alerter
	logger   *slog.Logger
}

// NewMultiAlerter creates a fan-out alerter over the given channels.
func NewMultiAlerter(logger *slog.Logger, channels ...Alerter) *MultiAlerter {
	if logger == nil {
		logger = slog.Default()
	}
	return &MultiAlerter{
		channels: channels,
		logger:   logger,
	}
}

// Name returns the name of the alerter.
func (m *MultiAlerter) Name() string {
	return "multi"
}

// AddAlerter adds a channel to the fan-out.
func (m *MultiAlerter) AddAlerter(channel Alerter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels = append(m.channels, channel)
}

// Alert delivers the alert to every channel. The returned error joins one
// entry per failed channel, each wrapped with the channel name.
func (m *MultiAlerter) Alert(ctx context.Context, severity Severity, message string, fields ...any) error {
	m.mu.RLock()
	channels := make([]Alerter, len(m.channels))
	copy(channels, m.channels)
	m.mu.RUnlock()

	var (
		wg     sync.WaitGroup
		errsMu sync.Mutex
		errs   []error
	)

	for _, channel := range channels {
		wg.Add(1)
		go func(a Alerter) {
			defer wg.Done()
			if err := a.Alert(ctx, severity, message, fields...); err != nil {
				m.logger.Error("alert channel failed",
					"channel", a.Name(),
					"severity", severity.String(),
					"err", err,
				)
				errsMu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", a.Name(), err))
				errsMu.Unlock()
			}
		}(channel)
	}
	wg.Wait()

	return errors.Join(errs...)
}

// AlertEvent delivers a pipeline lifecycle event with its default severity.
// The event name is attached as a field so channels can bucket on it.
func (m *MultiAlerter) AlertEvent(ctx context.Context, event AlertEvent, message string, fields ...any) error {
	attrs := append([]any{"event", string(event)}, fields...)
	return m.Alert(ctx, EventSeverity(event), message, attrs...)
}
