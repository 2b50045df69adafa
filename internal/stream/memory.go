package stream

import (
	"context"

	"github.com/tathienbao/tastream/internal/types"
)

// MemoryFeed provides bars from an in-memory slice. Useful for testing.
type MemoryFeed struct {
	bars []types.Bar
}

// NewMemoryFeed creates a feed from pre-loaded bars.
func NewMemoryFeed(bars []types.Bar) *MemoryFeed {
	return &MemoryFeed{bars: bars}
}

// Subscribe starts sending bars from memory.
func (f *MemoryFeed) Subscribe(ctx context.Context) (<-chan types.Bar, error) {
	ch := make(chan types.Bar, len(f.bars))

	go func() {
		defer close(ch)
		for _, bar := range f.bars {
			select {
			case <-ctx.Done():
				return
			case ch <- bar:
			}
		}
	}()

	return ch, nil
}

// Close is a no-op for the memory feed.
func (f *MemoryFeed) Close() error {
	return nil
}

// Name returns the feed identifier.
func (f *MemoryFeed) Name() string {
	return "memory"
}

// AddBar appends a bar to the feed.
func (f *MemoryFeed) AddBar(bar types.Bar) {
	f.bars = append(f.bars, bar)
}
