// Package battle runs a two-combatant, turn-based duel between a human player
// and a computer opponent: turn order, skill execution, upkeep, opponent
// turns and win detection.
//
// A Session is driven by a single goroutine. The only deferred work is the
// opponent's turn, which runs through a Scheduler after a pacing delay and is
// canceled on restart.
package battle

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/battlecore/internal/ai"
	"github.com/udisondev/battlecore/internal/constants"
	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/game/skill"
	"github.com/udisondev/battlecore/internal/model"
)

// Rejection reasons returned by SubmitPlayerSkill. The input is ignored and a
// rejection line is narrated; callers may drop the error.
var (
	ErrInputLocked      = errors.New("input is locked")
	ErrNotPlayerTurn    = errors.New("not the player's turn")
	ErrSkillUnavailable = errors.New("no ready skill bound to key")
)

// Session holds one duel: the two combatants, whose turn it is, the input
// lock, the turn counter and the pending opponent turn.
type Session struct {
	id     string
	base   *slog.Logger
	logger *slog.Logger

	catalog   *data.Catalog
	engine    *skill.Engine
	policy    ai.Policy
	scheduler Scheduler
	delay     time.Duration
	rng       *rand.Rand

	player   *model.Combatant
	opponent *model.Combatant
	active   *model.Combatant
	waiting  *model.Combatant

	locked     bool
	concluded  bool
	conclusion *Conclusion
	turn       int

	// generation changes on every restart; a deferred opponent turn from an
	// older generation must not touch the new battle.
	generation    uint64
	cancelPending func()

	// armMu keeps the default timer callback from running before
	// scheduleOpponentTurn has finished arming it.
	armMu sync.Mutex

	journal journal
}

// Option configures a Session.
type Option func(*Session)

// WithPolicy sets the opponent's decision policy.
func WithPolicy(p ai.Policy) Option {
	return func(s *Session) { s.policy = p }
}

// WithScheduler sets how the opponent's turn is deferred.
// The default is a TimerScheduler that runs the opponent's turn on the timer
// goroutine once the delay has passed. A caller that touches the session
// while that turn may be running must serialise access itself, or pass a
// scheduler that posts back to its own goroutine.
func WithScheduler(sch Scheduler) Option {
	return func(s *Session) { s.scheduler = sch }
}

// WithOpponentDelay sets the pause before the opponent acts.
func WithOpponentDelay(d time.Duration) Option {
	return func(s *Session) { s.delay = d }
}

// WithRand sets the random source of the default opponent policy.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithLogger sets the base logger; the session adds its battle ID to it.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.base = l }
}

// NewSession creates a session with player acting first.
// Every skill either combatant knows must exist in c.
func NewSession(c *data.Catalog, player, opponent *model.Combatant, opts ...Option) (*Session, error) {
	if c == nil || player == nil || opponent == nil {
		return nil, errors.New("catalog and both combatants are required")
	}
	if player == opponent {
		return nil, errors.New("player and opponent must be different combatants")
	}
	if err := c.Validate(player.SkillIDs()); err != nil {
		return nil, fmt.Errorf("combatant %s: %w", player.Name(), err)
	}
	if err := c.Validate(opponent.SkillIDs()); err != nil {
		return nil, fmt.Errorf("combatant %s: %w", opponent.Name(), err)
	}

	s := &Session{
		catalog:  c,
		player:   player,
		opponent: opponent,
		delay:    constants.DefaultOpponentDelay,
		base:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.base

	if s.scheduler == nil {
		s.scheduler = NewTimerScheduler(s.runArmed)
	}
	if s.policy == nil {
		s.policy = ai.NewGreedyPolicy(c, s.rng)
	}
	s.engine = skill.NewEngine(skill.NarratorFunc(s.narrate))

	s.reset()
	s.narrate(fmt.Sprintf("Welcome to the BattleCore Arena. Awaiting your command (%s).", s.keyHint()))
	return s, nil
}

// Start begins a fresh duel, discarding the current one.
// A pending opponent turn is canceled so it cannot act on the new battle.
func (s *Session) Start() {
	s.reset()
	s.narrate("A new duel begins in the BattleCore Arena!")
}

func (s *Session) reset() {
	s.cancelOpponentTurn()
	s.generation++

	s.player.ResetForNewBattle()
	s.opponent.ResetForNewBattle()
	s.active = s.player
	s.waiting = s.opponent

	s.locked = false
	s.concluded = false
	s.conclusion = nil
	s.turn = constants.FirstTurn
	s.journal.reset()

	s.id = uuid.NewString()
	s.logger = s.base.With("battle_id", s.id)
	s.logger.Info("battle started",
		"player", s.player.Name(),
		"opponent", s.opponent.Name())
}

// SubmitPlayerSkill is the player's only input: use the skill bound to key.
//
// The input is refused (and narrated) while the arena is resolving or the
// battle is over, when it is not the player's turn, or when no ready skill
// matches key. Otherwise the skill resolves, the turn ends and, unless the
// battle concluded, the opponent's turn is scheduled after the delay.
func (s *Session) SubmitPlayerSkill(key string) error {
	if s.locked {
		if s.concluded {
			s.reject("The duel is over. Restart to fight again.")
		} else {
			s.reject(fmt.Sprintf("%s must wait for the current action to resolve.", s.player.Name()))
		}
		return ErrInputLocked
	}
	if s.active != s.player {
		s.reject(fmt.Sprintf("It is not %s's turn.", s.player.Name()))
		return ErrNotPlayerTurn
	}

	sk := s.catalog.SkillByKey(s.player.SkillIDs(), key)
	if sk == nil || !s.player.IsReady(sk) {
		s.reject(fmt.Sprintf("%s fumbles for a skill that isn't ready.", s.player.Name()))
		return fmt.Errorf("key %q: %w", key, ErrSkillUnavailable)
	}

	s.ExecuteSkill(s.active, s.waiting, sk)
	s.EndTurn()
	if !s.CheckForWinner() {
		s.scheduleOpponentTurn()
	}
	return nil
}

// scheduleOpponentTurn defers the opponent's turn and keeps input locked
// until it has run.
func (s *Session) scheduleOpponentTurn() {
	s.armMu.Lock()
	defer s.armMu.Unlock()

	s.locked = true
	gen := s.generation
	s.cancelPending = s.scheduler.Schedule(s.delay, func() {
		s.runOpponentTurn(gen)
	})
	s.logger.Debug("opponent turn scheduled", "delay", s.delay, "turn", s.turn)
}

func (s *Session) runArmed(fn func()) {
	s.armMu.Lock()
	defer s.armMu.Unlock()
	fn()
}

func (s *Session) cancelOpponentTurn() {
	if s.cancelPending == nil {
		return
	}
	s.cancelPending()
	s.cancelPending = nil
	s.logger.Debug("pending opponent turn canceled")
}

func (s *Session) runOpponentTurn(gen uint64) {
	if gen != s.generation {
		s.logger.Debug("discarding stale opponent turn", "generation", gen, "current", s.generation)
		return
	}
	s.cancelPending = nil
	s.opponentTurn()
}

// opponentTurn plays one opponent turn. With no ready skill the opponent
// recalibrates for energy instead; the turn is spent either way.
func (s *Session) opponentTurn() {
	if s.CheckForWinner() {
		return
	}
	if s.active != s.opponent {
		s.logger.Warn("opponent turn fired out of order", "active", s.active.Name())
		s.locked = false
		return
	}

	self, foe := s.active, s.waiting
	if sk := s.policy.ChooseSkill(self, foe); sk != nil {
		s.ExecuteSkill(self, foe, sk)
	} else {
		s.narrate(fmt.Sprintf("%s recalibrates, regaining focus.", self.Name()))
		self.RestoreEnergy(constants.RecalibrateEnergy)
	}
	s.EndTurn()

	if !s.CheckForWinner() {
		s.locked = false
	}
}

// Subscribe registers fn to receive every event as it is published.
// Listeners survive restarts.
func (s *Session) Subscribe(fn func(Event)) {
	s.journal.listeners = append(s.journal.listeners, fn)
}

// Journal returns the events of the current battle in order.
func (s *Session) Journal() []Event {
	out := make([]Event, len(s.journal.events))
	copy(out, s.journal.events)
	return out
}

// BattleID identifies the current battle in logs.
func (s *Session) BattleID() string { return s.id }

// Player returns the human-controlled combatant.
func (s *Session) Player() *model.Combatant { return s.player }

// Opponent returns the computer-controlled combatant.
func (s *Session) Opponent() *model.Combatant { return s.opponent }

// Active returns the combatant whose turn it is.
func (s *Session) Active() *model.Combatant { return s.active }

// Waiting returns the combatant whose turn is next.
func (s *Session) Waiting() *model.Combatant { return s.waiting }

// Turn returns the turn counter, starting at 1.
func (s *Session) Turn() int { return s.turn }

// Locked reports whether input is currently refused.
func (s *Session) Locked() bool { return s.locked }

// Concluded reports whether the battle has a winner.
func (s *Session) Concluded() bool { return s.concluded }

// Conclusion returns the result once the battle has ended.
func (s *Session) Conclusion() (Conclusion, bool) {
	if s.conclusion == nil {
		return Conclusion{}, false
	}
	return *s.conclusion, true
}

// OpponentDelay returns the pause before the opponent acts.
func (s *Session) OpponentDelay() time.Duration { return s.delay }

// Catalog returns the skill catalog the session resolves against.
func (s *Session) Catalog() *data.Catalog { return s.catalog }

// SessionSnapshot is a read-only view of the whole battle for presentation.
type SessionSnapshot struct {
	BattleID   string
	Player     model.Snapshot
	Opponent   model.Snapshot
	Active     string
	PlayerTurn bool
	Locked     bool
	Concluded  bool
	Turn       int
	Conclusion *Conclusion
}

// Snapshot copies the current battle state.
func (s *Session) Snapshot() SessionSnapshot {
	snap := SessionSnapshot{
		BattleID:   s.id,
		Player:     s.player.Snapshot(),
		Opponent:   s.opponent.Snapshot(),
		Active:     s.active.Name(),
		PlayerTurn: s.active == s.player,
		Locked:     s.locked,
		Concluded:  s.concluded,
		Turn:       s.turn,
	}
	if s.conclusion != nil {
		c := *s.conclusion
		snap.Conclusion = &c
	}
	return snap
}

// SkillCard is the player's view of one known skill.
type SkillCard struct {
	Skill    *data.Skill
	Cooldown int
	// Usable is true when submitting the skill's key right now would work.
	Usable bool
}

// PlayerSkills returns a card per player skill, in the player's order.
func (s *Session) PlayerSkills() []SkillCard {
	ids := s.player.SkillIDs()
	cards := make([]SkillCard, 0, len(ids))
	canAct := !s.locked && s.active == s.player
	for _, id := range ids {
		sk := s.catalog.MustSkill(id)
		cards = append(cards, SkillCard{
			Skill:    sk,
			Cooldown: s.player.Cooldown(id),
			Usable:   canAct && s.player.IsReady(sk),
		})
	}
	return cards
}

func (s *Session) narrate(line string) {
	s.journal.publish(Event{Kind: EventNarration, Turn: s.turn, Text: line})
	s.logger.Debug("narration", "turn", s.turn, "text", line)
}

func (s *Session) reject(line string) {
	s.journal.publish(Event{Kind: EventRejection, Turn: s.turn, Text: line})
	s.logger.Debug("input rejected", "turn", s.turn, "text", line)
}

// keyHint renders the player's key range, e.g. "0-4".
func (s *Session) keyHint() string {
	ids := s.player.SkillIDs()
	if len(ids) == 0 {
		return "none"
	}
	first := s.catalog.MustSkill(ids[0]).Key
	last := s.catalog.MustSkill(ids[len(ids)-1]).Key
	if first == last {
		return first
	}
	return first + "-" + last
}
