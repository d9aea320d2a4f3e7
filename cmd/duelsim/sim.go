package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/udisondev/battlecore/internal/ai"
	"github.com/udisondev/battlecore/internal/config"
	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/game/battle"
)

// outcome is the result of one simulated battle.
type outcome struct {
	winner  string
	turns   int
	stalled bool
}

// report aggregates simulated battles.
type report struct {
	mu sync.Mutex

	battles    int
	wins       map[string]int
	totalTurns int
	stalled    int
}

func newReport() *report {
	return &report{wins: make(map[string]int)}
}

func (r *report) add(o outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.battles++
	if o.stalled {
		r.stalled++
		return
	}
	r.wins[o.winner]++
	r.totalTurns += o.turns
}

// meanTurns is averaged over concluded battles only.
func (r *report) meanTurns() float64 {
	concluded := r.battles - r.stalled
	if concluded == 0 {
		return 0
	}
	return float64(r.totalTurns) / float64(concluded)
}

func (r *report) winRate(name string) float64 {
	if r.battles == 0 {
		return 0
	}
	return float64(r.wins[name]) / float64(r.battles)
}

func (r *report) print(w io.Writer, cfg config.Arena) {
	title := cases.Title(language.English)
	player, opponent := cfg.Player.Name, cfg.Opponent.Name

	fmt.Fprintf(w, "Battles:      %d\n", r.battles)
	fmt.Fprintf(w, "%-13s %5.1f%%\n", title.String(player)+":", 100*r.winRate(player))
	fmt.Fprintf(w, "%-13s %5.1f%%\n", title.String(opponent)+":", 100*r.winRate(opponent))
	fmt.Fprintf(w, "Mean turns:   %.1f\n", r.meanTurns())
	fmt.Fprintf(w, "Stalled:      %d\n", r.stalled)
}

// simulate plays cfg.Simulation.Battles battles across the configured number
// of workers. Battle i is seeded from baseSeed+i, so a run is reproducible
// regardless of worker count.
func simulate(ctx context.Context, cfg config.Arena, c *data.Catalog, baseSeed uint64) (*report, error) {
	rep := newReport()
	jobs := make(chan uint64)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for i := range cfg.Simulation.Battles {
			if err := gctx.Err(); err != nil {
				return err
			}
			select {
			case jobs <- baseSeed + uint64(i):
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := range cfg.Simulation.Workers {
		g.Go(func() error {
			for seed := range jobs {
				o, err := playBattle(cfg, c, seed)
				if err != nil {
					return fmt.Errorf("worker %d, seed %d: %w", w, seed, err)
				}
				rep.add(o)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return rep, err
	}
	return rep, nil
}

// playBattle runs one battle to the end. The player side is driven by the
// same greedy policy as the opponent, through the regular input path.
func playBattle(cfg config.Arena, c *data.Catalog, seed uint64) (outcome, error) {
	q := battle.NewQueueScheduler()
	cfg.Seed = seed
	s, err := battle.NewSessionFromConfig(cfg, c,
		battle.WithScheduler(q),
		battle.WithLogger(slog.Default().With("seed", seed)))
	if err != nil {
		return outcome{}, err
	}
	driver := ai.NewGreedyPolicy(c, rand.New(rand.NewPCG(seed, seed+1)))

	for !s.Concluded() {
		if s.Turn() > cfg.Simulation.MaxTurns {
			return outcome{turns: s.Turn(), stalled: true}, nil
		}
		sk := driver.ChooseSkill(s.Player(), s.Opponent())
		if sk == nil {
			slog.Debug("player has no ready skill", "battle_id", s.BattleID(), "turn", s.Turn())
			return outcome{turns: s.Turn(), stalled: true}, nil
		}
		if err := s.SubmitPlayerSkill(sk.Key); err != nil {
			return outcome{}, fmt.Errorf("turn %d: %w", s.Turn(), err)
		}
		q.RunPending()
	}

	result, _ := s.Conclusion()
	return outcome{winner: result.Winner, turns: result.Turns}, nil
}
