// Command duelsim plays many seeded arena battles without a terminal and
// reports how the roster is balanced.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/battlecore/internal/ai"
	"github.com/udisondev/battlecore/internal/config"
	"github.com/udisondev/battlecore/internal/game/battle"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configPath := flag.String("config", "", "path to arena config (default $"+config.EnvPath+" or "+config.DefaultPath+")")
	battles := flag.Int("battles", 0, "number of battles (overrides config)")
	workers := flag.Int("workers", 0, "parallel workers (overrides config)")
	flag.Parse()

	cfg, err := config.LoadArena(config.ResolvePath(*configPath))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *battles > 0 {
		cfg.Simulation.Battles = *battles
	}
	if *workers > 0 {
		cfg.Simulation.Workers = *workers
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	catalog, err := battle.LoadCatalog(cfg)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	slog.Info("simulation starting",
		"battles", cfg.Simulation.Battles,
		"workers", cfg.Simulation.Workers,
		"seed", seed)

	rep, err := simulate(ctx, cfg, catalog, seed)
	if err != nil {
		return fmt.Errorf("simulating: %w", err)
	}

	rep.print(os.Stdout, cfg)
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
