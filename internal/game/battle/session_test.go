package battle

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/battlecore/internal/ai"
	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/model"
	"github.com/udisondev/battlecore/internal/testutil"
)

func newTestSession(t *testing.T, opts ...Option) (*Session, *QueueScheduler) {
	t.Helper()

	q := NewQueueScheduler()
	player, opponent := testutil.NewDuelists(t)

	all := append([]Option{
		WithScheduler(q),
		WithRand(rand.New(rand.NewPCG(1, 2))),
	}, opts...)

	s, err := NewSession(data.DefaultCatalog(), player, opponent, all...)
	require.NoError(t, err)
	return s, q
}

func journalTexts(s *Session) []string {
	events := s.Journal()
	out := make([]string, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Text)
	}
	return out
}

func lastText(s *Session) string {
	events := s.Journal()
	if len(events) == 0 {
		return ""
	}
	return events[len(events)-1].Text
}

// scriptedPolicy always picks the skill with the given ID if it is ready.
type scriptedPolicy struct {
	catalog *data.Catalog
	skillID int
	calls   int
}

func (p *scriptedPolicy) ChooseSkill(self, _ *model.Combatant) *data.Skill {
	p.calls++
	for _, sk := range ai.ReadySkills(p.catalog, self) {
		if sk.ID == p.skillID {
			return sk
		}
	}
	return nil
}

// leakyScheduler ignores cancellation, like a timer that already fired.
type leakyScheduler struct {
	tasks []func()
}

func (l *leakyScheduler) Schedule(_ time.Duration, fn func()) func() {
	l.tasks = append(l.tasks, fn)
	return func() {}
}

func TestNewSession(t *testing.T) {
	s, q := newTestSession(t)

	assert.Same(t, s.Player(), s.Active())
	assert.Same(t, s.Opponent(), s.Waiting())
	assert.Equal(t, 1, s.Turn())
	assert.False(t, s.Locked())
	assert.False(t, s.Concluded())
	assert.NotEmpty(t, s.BattleID())
	assert.Equal(t, 650*time.Millisecond, s.OpponentDelay())
	assert.Zero(t, q.Pending())
	assert.Equal(t, []string{"Welcome to the BattleCore Arena. Awaiting your command (0-4)."}, journalTexts(s))
}

func TestNewSession_Validation(t *testing.T) {
	c := data.DefaultCatalog()
	a := model.NewCombatant("A", 10, 10, []int{0})
	b := model.NewCombatant("B", 10, 10, []int{0})

	_, err := NewSession(nil, a, b)
	require.Error(t, err)

	_, err = NewSession(c, a, a)
	require.Error(t, err)

	unknown := model.NewCombatant("C", 10, 10, []int{0, 77})
	_, err = NewSession(c, a, unknown)
	require.ErrorIs(t, err, data.ErrSkillNotFound)
}

func TestSubmitPlayerSkill_SchedulesOpponent(t *testing.T) {
	s, q := newTestSession(t, WithOpponentDelay(time.Second))

	require.NoError(t, s.SubmitPlayerSkill("0"))

	assert.Equal(t, 98, s.Opponent().CurrentHP())
	assert.Equal(t, 0, s.Player().Cooldown(0), "player upkeep ran after the cast")
	assert.Same(t, s.Opponent(), s.Active())
	assert.Equal(t, 2, s.Turn())
	assert.True(t, s.Locked(), "input stays locked until the opponent acted")
	assert.Equal(t, 1, q.Pending())
	assert.Equal(t, time.Second, q.LastDelay())

	q.RunPending()

	assert.Same(t, s.Player(), s.Active())
	assert.Equal(t, 3, s.Turn())
	assert.False(t, s.Locked())
}

func TestSubmitPlayerSkill_Rejections(t *testing.T) {
	t.Run("locked while opponent pending", func(t *testing.T) {
		s, _ := newTestSession(t)
		require.NoError(t, s.SubmitPlayerSkill("0"))
		hp := s.Opponent().CurrentHP()

		err := s.SubmitPlayerSkill("1")

		require.ErrorIs(t, err, ErrInputLocked)
		assert.Equal(t, hp, s.Opponent().CurrentHP())
		assert.Equal(t, "Player must wait for the current action to resolve.", lastText(s))
		assert.Equal(t, EventRejection, s.Journal()[len(s.Journal())-1].Kind)
	})

	t.Run("not the player's turn", func(t *testing.T) {
		s, _ := newTestSession(t)
		s.EndTurn()

		err := s.SubmitPlayerSkill("0")

		require.ErrorIs(t, err, ErrNotPlayerTurn)
		assert.Equal(t, "It is not Player's turn.", lastText(s))
	})

	t.Run("unknown key", func(t *testing.T) {
		s, _ := newTestSession(t)

		err := s.SubmitPlayerSkill("9")

		require.ErrorIs(t, err, ErrSkillUnavailable)
		assert.Equal(t, "Player fumbles for a skill that isn't ready.", lastText(s))
		assert.Same(t, s.Player(), s.Active())
		assert.Equal(t, 1, s.Turn())
	})

	t.Run("skill on cooldown", func(t *testing.T) {
		s, _ := newTestSession(t)
		s.Player().SetCooldown(1, 2)

		require.ErrorIs(t, s.SubmitPlayerSkill("1"), ErrSkillUnavailable)
		assert.Equal(t, 110, s.Opponent().CurrentHP())
	})

	t.Run("not enough energy", func(t *testing.T) {
		s, _ := newTestSession(t)
		s.Player().SetCurrentEnergy(5)

		require.ErrorIs(t, s.SubmitPlayerSkill("2"), ErrSkillUnavailable)
		assert.Equal(t, 5, s.Player().CurrentEnergy())
	})

	t.Run("battle over", func(t *testing.T) {
		s, _ := newTestSession(t)
		s.Opponent().SetCurrentHP(0)
		s.CheckForWinner()

		require.ErrorIs(t, s.SubmitPlayerSkill("0"), ErrInputLocked)
		assert.Equal(t, "The duel is over. Restart to fight again.", lastText(s))
	})
}

func TestSubmitPlayerSkill_KillingBlowSkipsOpponent(t *testing.T) {
	s, q := newTestSession(t)
	s.Opponent().SetCurrentHP(12)

	require.NoError(t, s.SubmitPlayerSkill("0"))

	assert.True(t, s.Concluded())
	assert.Zero(t, q.Pending())
	result, ok := s.Conclusion()
	require.True(t, ok)
	assert.Equal(t, "Player", result.Winner)
	assert.Equal(t, "Synth Warden", result.Loser)
}

func TestStart_CancelsPendingOpponentTurn(t *testing.T) {
	s, q := newTestSession(t)
	require.NoError(t, s.SubmitPlayerSkill("0"))
	oldID := s.BattleID()
	require.Equal(t, 1, q.Pending())

	s.Start()

	assert.Zero(t, q.Pending())
	assert.Zero(t, q.RunPending())
	assert.NotEqual(t, oldID, s.BattleID())
	assert.Equal(t, 110, s.Opponent().CurrentHP())
	assert.Equal(t, 100, s.Player().CurrentHP())
	assert.Equal(t, 1, s.Turn())
	assert.False(t, s.Locked())
	assert.Same(t, s.Player(), s.Active())
	assert.Equal(t, []string{"A new duel begins in the BattleCore Arena!"}, journalTexts(s))
}

func TestStart_DiscardsStaleCallback(t *testing.T) {
	leaky := &leakyScheduler{}
	s, _ := newTestSession(t, WithScheduler(leaky))
	require.NoError(t, s.SubmitPlayerSkill("0"))
	require.Len(t, leaky.tasks, 1)

	s.Start()
	leaky.tasks[0]()

	assert.Equal(t, 100, s.Player().CurrentHP(), "old opponent turn must not act on the new battle")
	assert.Same(t, s.Player(), s.Active())
	assert.Equal(t, 1, s.Turn())
	assert.False(t, s.Locked())
}

func TestOpponentTurn_Recalibrates(t *testing.T) {
	c := data.DefaultCatalog()
	policy := &scriptedPolicy{catalog: c, skillID: 99}
	s, q := newTestSession(t, WithPolicy(policy))

	require.NoError(t, s.SubmitPlayerSkill("0"))
	s.Opponent().SetCurrentEnergy(10)
	q.RunPending()

	assert.Equal(t, 1, policy.calls)
	assert.Contains(t, journalTexts(s), "Synth Warden recalibrates, regaining focus.")
	assert.Equal(t, 20, s.Opponent().CurrentEnergy(), "6 for recalibrating plus 4 upkeep")
	assert.Same(t, s.Player(), s.Active())
	assert.False(t, s.Locked())
}

func TestOpponentTurn_LowHealthChoosesRegen(t *testing.T) {
	s, q := newTestSession(t)
	require.NoError(t, s.SubmitPlayerSkill("0"))
	s.Opponent().SetCurrentHP(35)

	q.RunPending()

	assert.Contains(t, journalTexts(s), "Synth Warden channels Solar Reboot.")
	assert.Equal(t, 3, s.Opponent().Cooldown(4), "cooldown ticked once by upkeep")
	assert.Equal(t, 40, s.Opponent().CurrentHP(), "first regen tick in the same upkeep")
}

func TestOpponentTurn_CanWin(t *testing.T) {
	c := data.DefaultCatalog()
	s, q := newTestSession(t, WithPolicy(&scriptedPolicy{catalog: c, skillID: 0}))
	require.NoError(t, s.SubmitPlayerSkill("0"))
	s.Player().SetCurrentHP(5)

	q.RunPending()

	require.True(t, s.Concluded())
	result, _ := s.Conclusion()
	assert.Equal(t, "Synth Warden", result.Winner)
	assert.True(t, s.Locked())
}

func TestNewSession_DefaultSchedulerRunsOpponentTurn(t *testing.T) {
	c := data.DefaultCatalog()
	player, opponent := testutil.NewDuelists(t)

	s, err := NewSession(c, player, opponent,
		WithOpponentDelay(5*time.Millisecond),
		WithPolicy(&scriptedPolicy{catalog: c, skillID: 0}))
	require.NoError(t, err)
	player.SetCurrentHP(5)

	done := make(chan Conclusion, 1)
	s.Subscribe(func(ev Event) {
		if ev.Kind == EventConclusion {
			done <- *ev.Conclusion
		}
	})

	require.NoError(t, s.SubmitPlayerSkill("0"))

	select {
	case result := <-done:
		assert.Equal(t, "Synth Warden", result.Winner)
		assert.Equal(t, 3, result.Turns)
	case <-time.After(2 * time.Second):
		require.Fail(t, "opponent never acted")
	}
	assert.True(t, s.Concluded())
	assert.True(t, s.Locked())
	assert.Equal(t, 98, s.Opponent().CurrentHP())
}

func TestPlayerSkills(t *testing.T) {
	s, q := newTestSession(t)
	cards := s.PlayerSkills()
	require.Len(t, cards, 5)
	for _, card := range cards {
		assert.True(t, card.Usable, card.Skill.Name)
	}

	require.NoError(t, s.SubmitPlayerSkill("1"))
	for _, card := range s.PlayerSkills() {
		assert.False(t, card.Usable, "nothing is usable while the opponent acts")
	}

	q.RunPending()
	cards = s.PlayerSkills()
	assert.Equal(t, 1, cards[1].Cooldown)
	assert.False(t, cards[1].Usable)
	assert.True(t, cards[0].Usable)
}

func TestSnapshot(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.SubmitPlayerSkill("0"))

	snap := s.Snapshot()

	assert.Equal(t, s.BattleID(), snap.BattleID)
	assert.Equal(t, 98, snap.Opponent.HP)
	assert.Equal(t, "Synth Warden", snap.Active)
	assert.False(t, snap.PlayerTurn)
	assert.True(t, snap.Locked)
	assert.Nil(t, snap.Conclusion)
}

// A seeded full battle driven from both sides keeps every combatant inside
// its bounds and always ends with a winner.
func TestSession_FullBattleInvariants(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		s, q := newTestSession(t, WithRand(rand.New(rand.NewPCG(seed, seed))))
		driver := ai.NewGreedyPolicy(s.Catalog(), rand.New(rand.NewPCG(seed, 99)))

		for range 500 {
			if s.Concluded() {
				break
			}
			// Pulse Jab is free and back off cooldown every player turn.
			sk := driver.ChooseSkill(s.Player(), s.Opponent())
			require.NotNil(t, sk)
			require.NoError(t, s.SubmitPlayerSkill(sk.Key))
			q.RunPending()

			for _, c := range []*model.Combatant{s.Player(), s.Opponent()} {
				assert.GreaterOrEqual(t, c.CurrentHP(), 0)
				assert.LessOrEqual(t, c.CurrentHP(), c.MaxHP())
				assert.GreaterOrEqual(t, c.CurrentEnergy(), 0)
				assert.LessOrEqual(t, c.CurrentEnergy(), c.MaxEnergy())
				for _, st := range c.Statuses() {
					assert.Positive(t, st.Duration)
				}
			}
		}

		require.True(t, s.Concluded(), "seed %d", seed)
		result, ok := s.Conclusion()
		require.True(t, ok)
		assert.NotEqual(t, result.Winner, result.Loser)
	}
}
