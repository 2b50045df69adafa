package stream

import (
	"context"

	"github.com/tathienbao/tastream/internal/types"
	"golang.org/x/time/rate"
)

// PacedFeed wraps a feed and throttles delivery to a fixed number of bars
// per second, so a file replay can be watched at human speed or fed to a
// downstream consumer at a controlled rate.
type PacedFeed struct {
	inner   Feed
	limiter *rate.Limiter
}

// NewPacedFeed wraps inner, delivering at most barsPerSec bars per second.
func NewPacedFeed(inner Feed, barsPerSec int) *PacedFeed {
	return &PacedFeed{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(barsPerSec), 1),
	}
}

// Subscribe starts the throttled delivery.
func (f *PacedFeed) Subscribe(ctx context.Context) (<-chan types.Bar, error) {
	inner, err := f.inner.Subscribe(ctx)
	if err != nil {
		return nil, err
	}

	ch := make(chan types.Bar)

	go func() {
		defer close(ch)
		for bar := range inner {
			if err := f.limiter.Wait(ctx); err != nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			case ch <- bar:
			}
		}
	}()

	return ch, nil
}

// Close shuts down the wrapped feed.
func (f *PacedFeed) Close() error {
	return f.inner.Close()
}

// Name returns the wrapped feed's identifier.
func (f *PacedFeed) Name() string {
	return f.inner.Name()
}
