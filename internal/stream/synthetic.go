package stream

import (
	"context"
	"math/rand"
	"time"

	"github.com/tathienbao/tastream/internal/types"
	"github.com/tathienbao/tastream/pkg/num"
)

// SyntheticFeed generates a seeded random-walk bar sequence. Useful for
// demos and for exercising the pipeline without data files; the same seed
// always yields the same sequence.
type SyntheticFeed struct {
	seed       int64
	bars       int
	startPrice float64
	stepPct    float64
}

// NewSyntheticFeed creates a random-walk feed of the given length. stepPct
// is the maximum per-bar move as a percentage of the current price.
func NewSyntheticFeed(seed int64, bars int, startPrice, stepPct float64) *SyntheticFeed {
	return &SyntheticFeed{
		seed:       seed,
		bars:       bars,
		startPrice: startPrice,
		stepPct:    stepPct,
	}
}

// Subscribe starts generating bars. The channel closes after the configured
// number of bars or when the context is cancelled.
func (f *SyntheticFeed) Subscribe(ctx context.Context) (<-chan types.Bar, error) {
	ch := make(chan types.Bar, 100)

	go func() {
		defer close(ch)

		rng := rand.New(rand.NewSource(f.seed))
		price := f.startPrice
		ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		for i := 0; i < f.bars; i++ {
			open := price
			move := price * f.stepPct / 100 * (2*rng.Float64() - 1)
			price += move

			high, low := open, price
			if low > high {
				high, low = low, high
			}
			// Wicks beyond the open/close range.
			high += price * f.stepPct / 400 * rng.Float64()
			low -= price * f.stepPct / 400 * rng.Float64()

			bar := types.Bar{
				Timestamp: ts,
				Open:      num.Scalar(open),
				High:      num.Scalar(high),
				Low:       num.Scalar(low),
				Close:     num.Scalar(price),
				Volume:    int64(100 + rng.Intn(900)),
			}
			ts = ts.Add(time.Minute)

			select {
			case <-ctx.Done():
				return
			case ch <- bar:
			}
		}
	}()

	return ch, nil
}

// Close is a no-op for the synthetic feed.
func (f *SyntheticFeed) Close() error {
	return nil
}

// Name returns the feed identifier.
func (f *SyntheticFeed) Name() string {
	return "synthetic"
}
