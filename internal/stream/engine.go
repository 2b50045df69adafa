package stream

import (
	"fmt"

	"github.com/tathienbao/tastream/internal/config"
	"github.com/tathienbao/tastream/internal/types"
	"github.com/tathienbao/tastream/pkg/indicator"
	"github.com/tathienbao/tastream/pkg/num"
)

// Engine runs the configured indicator set over a bar stream. The first bar
// constructs and primes every indicator (their first outputs are valid
// immediately); each subsequent bar advances them one step.
//
// An Engine is owned by a single pipeline and must not be shared.
type Engine struct {
	cfg    config.IndicatorsConfig
	primed bool

	sma      *indicator.SMA[num.Scalar, num.Count]
	ema      *indicator.EMA[num.Scalar]
	rsi      *indicator.RSI[num.Scalar, num.Count]
	atr      *indicator.ATR[num.Scalar, num.Count]
	stddev   *indicator.StdDev[num.Scalar, num.Count]
	boll     *indicator.Boll[num.Scalar, num.Count]
	donchian *indicator.Donchian[num.Scalar, num.Count]
}

// NewEngine creates an engine for the given indicator selection. Indicators
// are constructed lazily from the first bar.
func NewEngine(cfg config.IndicatorsConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Primed reports whether the first bar has been consumed.
func (e *Engine) Primed() bool {
	return e.primed
}

// OnBar consumes one bar and returns the enriched point. Only the first call
// can fail (invalid construction parameters); afterwards it is infallible.
func (e *Engine) OnBar(bar types.Bar) (types.Point, error) {
	if !e.primed {
		if err := e.prime(bar); err != nil {
			return types.Point{}, err
		}
		e.primed = true
		return e.snapshot(bar), nil
	}

	if e.sma != nil {
		e.sma.Next(bar.Close)
	}
	if e.ema != nil {
		e.ema.Next(bar.Close)
	}
	if e.rsi != nil {
		e.rsi.Next(bar.Close)
	}
	if e.atr != nil {
		e.atr.Next(bar.High, bar.Low, bar.Close)
	}
	if e.stddev != nil {
		e.stddev.Next(bar.Close)
	}
	if e.boll != nil {
		e.boll.Next(bar.Close)
	}
	if e.donchian != nil {
		e.donchian.Next(bar.Close)
	}

	return e.snapshot(bar), nil
}

// prime constructs every enabled indicator from the first bar.
func (e *Engine) prime(bar types.Bar) error {
	var err error
	if p := e.cfg.SMAPeriod; p > 0 {
		if e.sma, err = indicator.NewSMA[num.Scalar, num.Count](p, bar.Close); err != nil {
			return fmt.Errorf("sma: %w", err)
		}
	}
	if p := e.cfg.EMAPeriod; p > 0 {
		if e.ema, err = indicator.NewEMA[num.Scalar, num.Count](p, bar.Close); err != nil {
			return fmt.Errorf("ema: %w", err)
		}
	}
	if p := e.cfg.RSIPeriod; p > 0 {
		if e.rsi, err = indicator.NewRSI[num.Scalar, num.Count](p, bar.Close); err != nil {
			return fmt.Errorf("rsi: %w", err)
		}
	}
	if p := e.cfg.ATRPeriod; p > 0 {
		if e.atr, err = indicator.NewATR[num.Scalar, num.Count](p, bar.High, bar.Low, bar.Close); err != nil {
			return fmt.Errorf("atr: %w", err)
		}
	}
	if p := e.cfg.StdDevPeriod; p > 0 {
		if e.stddev, err = indicator.NewStdDev[num.Scalar, num.Count](p, bar.Close); err != nil {
			return fmt.Errorf("stddev: %w", err)
		}
	}
	if p := e.cfg.BollPeriod; p > 0 {
		if e.boll, err = indicator.NewBoll[num.Scalar, num.Count](p, num.Scalar(e.cfg.BollWidth), bar.Close); err != nil {
			return fmt.Errorf("boll: %w", err)
		}
	}
	if p := e.cfg.DonchianPeriod; p > 0 {
		if e.donchian, err = indicator.NewDonchian[num.Scalar, num.Count](p, bar.Close); err != nil {
			return fmt.Errorf("donchian: %w", err)
		}
	}
	return nil
}

// snapshot reads the current output of every indicator into a point.
// Disabled indicators report NaN, never zero.
func (e *Engine) snapshot(bar types.Bar) types.Point {
	nan := num.NaN[num.Scalar]()
	point := types.Point{
		Bar:           bar,
		SMA:           nan,
		EMA:           nan,
		RSI:           nan,
		ATR:           nan,
		StdDev:        nan,
		BollUpper:     nan,
		BollMiddle:    nan,
		BollLower:     nan,
		DonchianUpper: nan,
		DonchianLower: nan,
	}

	if e.sma != nil {
		point.SMA = e.sma.Current()
	}
	if e.ema != nil {
		point.EMA = e.ema.Current()
	}
	if e.rsi != nil {
		point.RSI = e.rsi.Current()
	}
	if e.atr != nil {
		point.ATR = e.atr.Current()
	}
	if e.stddev != nil {
		point.StdDev = e.stddev.Current()
	}
	if e.boll != nil {
		bands := e.boll.Current()
		point.BollUpper = bands.Upper
		point.BollMiddle = bands.Middle
		point.BollLower = bands.Lower
	}
	if e.donchian != nil {
		ch := e.donchian.Current()
		point.DonchianUpper = ch.Upper
		point.DonchianLower = ch.Lower
	}

	return point
}
