// Package config handles configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/tathienbao/tastream/internal/types"
	"github.com/tathienbao/tastream/pkg/num"
	"gopkg.in/yaml.v3"
)

// Config represents the full application configuration.
type Config struct {
	Feed        FeedConfig        `yaml:"feed"`
	Indicators  IndicatorsConfig  `yaml:"indicators"`
	Rules       RulesConfig       `yaml:"rules"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Persistence PersistenceConfig `yaml:"persistence"`
	Alerting    AlertingConfig    `yaml:"alerting"`
}

// FeedConfig holds input feed settings.
type FeedConfig struct {
	Type           string          `yaml:"type"` // csv | synthetic
	Path           string          `yaml:"path"` // for csv
	PaceBarsPerSec int             `yaml:"pace_bars_per_sec"` // 0 = unpaced
	Synthetic      SyntheticConfig `yaml:"synthetic"`
}

// SyntheticConfig holds random-walk generator settings.
type SyntheticConfig struct {
	Seed       int64   `yaml:"seed"`
	Bars       int     `yaml:"bars"`
	StartPrice float64 `yaml:"start_price"`
	StepPct    float64 `yaml:"step_pct"`
}

// IndicatorsConfig selects which indicators the engine runs and with which
// periods. A zero period disables the indicator.
type IndicatorsConfig struct {
	SMAPeriod      num.Count `yaml:"sma_period"`
	EMAPeriod      num.Count `yaml:"ema_period"`
	RSIPeriod      num.Count `yaml:"rsi_period"`
	ATRPeriod      num.Count `yaml:"atr_period"`
	StdDevPeriod   num.Count `yaml:"stddev_period"`
	BollPeriod     num.Count `yaml:"boll_period"`
	BollWidth      float64   `yaml:"boll_width"`
	DonchianPeriod num.Count `yaml:"donchian_period"`
}

// AnyEnabled reports whether at least one indicator is configured.
func (c IndicatorsConfig) AnyEnabled() bool {
	return c.SMAPeriod > 0 || c.EMAPeriod > 0 || c.RSIPeriod > 0 ||
		c.ATRPeriod > 0 || c.StdDevPeriod > 0 || c.BollPeriod > 0 ||
		c.DonchianPeriod > 0
}

// RulesConfig holds alerting rule settings.
type RulesConfig struct {
	RSIOverbought float64 `yaml:"rsi_overbought"`
	RSIOversold   float64 `yaml:"rsi_oversold"`
	SMACross      bool    `yaml:"sma_cross"`
}

// MetricsConfig holds metrics server settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port"`
	Path    string `yaml:"path"`
}

// PersistenceConfig holds run-recording settings.
type PersistenceConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // sqlite file
}

// AlertingConfig holds alerting settings.
type AlertingConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Channels []string `yaml:"channels"` // console | summary
}

// Default returns a configuration with the conventional indicator set.
func Default() *Config {
	return &Config{
		Feed: FeedConfig{
			Type: "synthetic",
			Synthetic: SyntheticConfig{
				Seed:       1,
				Bars:       1000,
				StartPrice: 100,
				StepPct:    0.5,
			},
		},
		Indicators: IndicatorsConfig{
			SMAPeriod:      20,
			EMAPeriod:      20,
			RSIPeriod:      14,
			ATRPeriod:      14,
			StdDevPeriod:   20,
			BollPeriod:     20,
			BollWidth:      2,
			DonchianPeriod: 20,
		},
		Rules: RulesConfig{
			RSIOverbought: 70,
			RSIOversold:   30,
		},
		Metrics: MetricsConfig{
			Port: 9090,
			Path: "/metrics",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes loads configuration from YAML bytes.
func LoadFromBytes(data []byte) (*Config, error) {
	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []string

	// Feed validation
	switch c.Feed.Type {
	case "csv":
		if c.Feed.Path == "" {
			errs = append(errs, "feed.path is required for csv feeds")
		}
	case "synthetic":
		if c.Feed.Synthetic.Bars <= 0 {
			errs = append(errs, "feed.synthetic.bars must be positive")
		}
		if c.Feed.Synthetic.StartPrice <= 0 {
			errs = append(errs, "feed.synthetic.start_price must be positive")
		}
	default:
		errs = append(errs, fmt.Sprintf("feed.type '%s' is not supported", c.Feed.Type))
	}
	if c.Feed.PaceBarsPerSec < 0 {
		errs = append(errs, "feed.pace_bars_per_sec must not be negative")
	}

	// Indicator validation
	if !c.Indicators.AnyEnabled() {
		errs = append(errs, "indicators: at least one indicator must be enabled")
	}
	if c.Indicators.BollPeriod > 0 && c.Indicators.BollWidth <= 0 {
		errs = append(errs, "indicators.boll_width must be positive when boll_period is set")
	}

	// Rule validation
	if c.Rules.RSIOverbought < c.Rules.RSIOversold {
		errs = append(errs, "rules.rsi_overbought must not be below rules.rsi_oversold")
	}
	if c.Rules.RSIOverbought > 100 || c.Rules.RSIOversold < 0 {
		errs = append(errs, "rules.rsi_overbought and rules.rsi_oversold must lie in [0, 100]")
	}
	if c.Rules.SMACross && c.Indicators.SMAPeriod == 0 {
		errs = append(errs, "rules.sma_cross requires indicators.sma_period")
	}

	// Metrics validation
	if c.Metrics.Enabled {
		if c.Metrics.Port <= 0 || c.Metrics.Port > 65535 {
			errs = append(errs, "metrics.port must be a valid port")
		}
		if c.Metrics.Path == "" {
			errs = append(errs, "metrics.path is required when metrics are enabled")
		}
	}

	// Persistence validation
	if c.Persistence.Enabled && c.Persistence.Path == "" {
		errs = append(errs, "persistence.path is required when persistence is enabled")
	}

	// Alerting validation
	for _, ch := range c.Alerting.Channels {
		if ch != "console" && ch != "summary" {
			errs = append(errs, fmt.Sprintf("alerting.channels '%s' is not supported", ch))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", types.ErrInvalidConfig, strings.Join(errs, "; "))
	}

	return nil
}
