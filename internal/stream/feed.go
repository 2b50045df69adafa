// Package stream handles input feeds and drives bars through the indicator
// engine.
package stream

import (
	"context"
	"fmt"

	"github.com/tathienbao/tastream/internal/config"
	"github.com/tathienbao/tastream/internal/types"
)

// Feed defines the interface for bar sources. Implementations can be CSV
// replays, synthetic generators or in-memory fixtures.
type Feed interface {
	// Subscribe starts delivering bars in input order. The channel is
	// closed when the context is cancelled or the feed ends.
	Subscribe(ctx context.Context) (<-chan types.Bar, error)

	// Close shuts down the feed and releases resources.
	Close() error

	// Name returns the feed identifier (e.g., "csv", "synthetic").
	Name() string
}

// FromConfig builds the configured feed, wrapped for pacing when requested.
func FromConfig(cfg config.FeedConfig) (Feed, error) {
	var feed Feed
	switch cfg.Type {
	case "csv":
		feed = NewCSVFeed(cfg.Path)
	case "synthetic":
		s := cfg.Synthetic
		feed = NewSyntheticFeed(s.Seed, s.Bars, s.StartPrice, s.StepPct)
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownFeed, cfg.Type)
	}

	if cfg.PaceBarsPerSec > 0 {
		feed = NewPacedFeed(feed, cfg.PaceBarsPerSec)
	}
	return feed, nil
}

// Pipeline combines a feed with the indicator engine.
type Pipeline struct {
	feed   Feed
	engine *Engine
}

// NewPipeline creates a pipeline over the given feed and engine.
func NewPipeline(feed Feed, engine *Engine) *Pipeline {
	return &Pipeline{feed: feed, engine: engine}
}

// Subscribe starts streaming enriched points. The first bar primes the
// engine; every bar yields exactly one point.
func (p *Pipeline) Subscribe(ctx context.Context) (<-chan types.Point, error) {
	bars, err := p.feed.Subscribe(ctx)
	if err != nil {
		return nil, err
	}

	points := make(chan types.Point, 100)

	go func() {
		defer close(points)
		for {
			select {
			case <-ctx.Done():
				return
			case bar, ok := <-bars:
				if !ok {
					return
				}
				point, err := p.engine.OnBar(bar)
				if err != nil {
					return
				}
				select {
				case points <- point:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return points, nil
}

// Close shuts down the underlying feed.
func (p *Pipeline) Close() error {
	return p.feed.Close()
}
