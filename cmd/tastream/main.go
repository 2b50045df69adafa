// Package main is the entry point for the tastream indicator pipeline.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tathienbao/tastream/internal/alerting"
	"github.com/tathienbao/tastream/internal/config"
	"github.com/tathienbao/tastream/internal/metrics"
	"github.com/tathienbao/tastream/internal/persistence"
	"github.com/tathienbao/tastream/internal/replay"
	"github.com/tathienbao/tastream/internal/rule"
	"github.com/tathienbao/tastream/internal/stream"
)

// Version information (set by build flags).
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Parse command
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "version", "-v", "--version":
		cmdVersion()
	case "help", "-h", "--help":
		printUsage()
	case "run":
		cmdRun(os.Args[2:])
	case "replay":
		cmdReplay(os.Args[2:])
	case "validate":
		cmdValidate(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tastream - Streaming Technical Indicator Pipeline

Usage:
  tastream <command> [options]

Commands:
  run        Stream a feed through the indicators continuously
  replay     Replay a full feed and print a run report
  validate   Validate configuration file
  version    Show version information
  help       Show this help message

Examples:
  tastream run --config config.yaml
  tastream replay --config config.yaml --data data/bars.csv
  tastream validate --config config.yaml

Use "tastream <command> --help" for more information about a command.`)
}

func cmdVersion() {
	fmt.Printf("tastream version %s\n", Version)
	fmt.Printf("  Build time: %s\n", BuildTime)
	fmt.Printf("  Git commit: %s\n", GitCommit)
}

func cmdValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "Path to configuration file")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Configuration is valid!")
	fmt.Printf("  Feed:            %s\n", cfg.Feed.Type)
	fmt.Printf("  SMA period:      %d\n", cfg.Indicators.SMAPeriod)
	fmt.Printf("  EMA period:      %d\n", cfg.Indicators.EMAPeriod)
	fmt.Printf("  RSI period:      %d\n", cfg.Indicators.RSIPeriod)
	fmt.Printf("  Bollinger:       period=%d width=%.1f\n", cfg.Indicators.BollPeriod, cfg.Indicators.BollWidth)
	fmt.Printf("  Metrics enabled: %v\n", cfg.Metrics.Enabled)
}

func cmdReplay(args []string) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "Path to configuration file")
	dataPath := fs.String("data", "", "Path to CSV data file (overrides feed config)")
	verbose := fs.Bool("verbose", false, "Verbose output")
	fs.Parse(args)

	// Setup logging
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if *dataPath != "" {
		cfg.Feed.Type = "csv"
		cfg.Feed.Path = *dataPath
	}
	// Replays run at full speed
	cfg.Feed.PaceBarsPerSec = 0

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner, summary, cleanup, err := buildRunner(cfg, logger, false)
	if err != nil {
		slog.Error("failed to build pipeline", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	slog.Info("starting replay", "feed", cfg.Feed.Type, "path", cfg.Feed.Path)

	result, err := runner.Run(ctx)
	if err != nil {
		slog.Error("replay failed", "err", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Print(result.Render())
	if summary != nil && summary.Total() > 0 {
		fmt.Println()
		fmt.Print(summary.Render())
	}
}

func cmdRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "Path to configuration file")
	fs.Parse(args)

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	// Setup signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("tastream starting",
		"version", Version,
		"feed", cfg.Feed.Type,
	)

	var server *metrics.Server
	if cfg.Metrics.Enabled {
		server = metrics.NewServer(cfg.Metrics, logger)
		if err := server.Start(); err != nil {
			slog.Error("failed to start metrics server", "err", err)
			os.Exit(1)
		}
	}

	runner, _, cleanup, err := buildRunner(cfg, logger, cfg.Metrics.Enabled)
	if err != nil {
		slog.Error("failed to build pipeline", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	result, err := runner.Run(ctx)
	if err != nil && ctx.Err() == nil {
		slog.Error("run failed", "err", err)
		os.Exit(1)
	}

	if result != nil {
		slog.Info("feed drained",
			"bars", result.Bars,
			"triggers", result.Triggers,
		)
	}

	// Graceful shutdown with timeout
	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "err", err)
		}
	}

	slog.Info("tastream shutdown complete")
}

// buildRunner assembles feed, engine, rules, alerting and persistence from
// the configuration. The returned cleanup closes the feed and repository.
func buildRunner(cfg *config.Config, logger *slog.Logger, withMetrics bool) (*replay.Runner, *alerting.SummaryAlerter, func(), error) {
	feed, err := stream.FromConfig(cfg.Feed)
	if err != nil {
		return nil, nil, nil, err
	}

	var summary *alerting.SummaryAlerter
	multi := alerting.NewMultiAlerter(logger)
	if cfg.Alerting.Enabled {
		for _, ch := range cfg.Alerting.Channels {
			switch ch {
			case "console":
				multi.AddAlerter(alerting.NewConsoleAlerter(logger))
			case "summary":
				summary = alerting.NewSummaryAlerter()
				multi.AddAlerter(summary)
			}
		}
	}

	var repo persistence.Repository
	if cfg.Persistence.Enabled {
		repo, err = persistence.NewSQLiteRepository(cfg.Persistence.Path)
		if err != nil {
			_ = feed.Close()
			return nil, nil, nil, err
		}
	}

	var recorder *metrics.Recorder
	if withMetrics {
		recorder = metrics.NewRecorder(cfg.Indicators)
	}

	runner := replay.NewRunner(replay.Options{
		Feed:     feed,
		Engine:   stream.NewEngine(cfg.Indicators),
		Rules:    rule.FromConfig(cfg.Rules),
		Alerter:  multi,
		Repo:     repo,
		Recorder: recorder,
		Logger:   logger,
	})

	cleanup := func() {
		_ = feed.Close()
		if repo != nil {
			_ = repo.Close()
		}
	}

	return runner, summary, cleanup, nil
}
