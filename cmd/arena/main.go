// Command arena is the terminal front end of the BattleCore duel: one human
// player against the computer opponent.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/battlecore/internal/ai"
	"github.com/udisondev/battlecore/internal/config"
	"github.com/udisondev/battlecore/internal/game/battle"
)

// quitSignal wakes the event loop on shutdown.
type quitSignal struct{}

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
		fmt.Fprintln(os.Stderr, "arena:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configPath := flag.String("config", "", "path to arena config (default $"+config.EnvPath+" or "+config.DefaultPath+")")
	flag.Parse()

	cfg, err := config.LoadArena(config.ResolvePath(*configPath))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// stdout belongs to the terminal UI.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("battlecore arena starting", "log_level", cfg.LogLevel, "opponent_delay", cfg.OpponentDelay)

	catalog, err := battle.LoadCatalog(cfg)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	// Timer callbacks are queued into the tcell loop so only that loop ever
	// touches the session.
	sched := battle.NewTimerScheduler(func(fn func()) {
		if err := screen.PostEvent(tcell.NewEventInterrupt(fn)); err != nil {
			slog.Warn("dropping deferred turn", "err", err)
		}
	})

	session, err := battle.NewSessionFromConfig(cfg, catalog, battle.WithScheduler(sched))
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	v := newView(screen, session)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-gctx.Done()
		_ = screen.PostEvent(tcell.NewEventInterrupt(quitSignal{}))
		return nil
	})

	g.Go(func() error {
		defer cancel()
		return eventLoop(v)
	})

	err = g.Wait()
	slog.Info("battlecore arena stopped", "battle_id", session.BattleID())
	return err
}

// eventLoop draws and dispatches tcell events until the player quits or a
// quitSignal arrives.
func eventLoop(v *view) error {
	v.draw()
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return nil
			}
		case *tcell.EventInterrupt:
			switch data := ev.Data().(type) {
			case func():
				data()
			case quitSignal:
				return nil
			}
		}
		v.draw()
	}
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
