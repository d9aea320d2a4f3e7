package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/model"
	"github.com/udisondev/battlecore/internal/testutil"
)

func newTestEngine(t *testing.T) (*Engine, *testutil.Recorder) {
	t.Helper()
	rec := &testutil.Recorder{}
	return NewEngine(rec), rec
}

func TestApplyEffect_BurnTargetsDefender(t *testing.T) {
	eng, rec := newTestEngine(t)
	player, enemy := testutil.NewDuelists(t)

	eng.ApplyEffect(player, enemy, data.EffectTemplate{Kind: data.EffectBurn, Duration: 2, Potency: 4})

	burn := enemy.Status(data.EffectBurn)
	require.NotNil(t, burn)
	assert.Equal(t, 2, burn.Duration)
	assert.Equal(t, 4, burn.Potency)
	assert.Nil(t, player.Status(data.EffectBurn))
	assert.Equal(t, []string{"Synth Warden is scorched by flames!"}, rec.Lines)
}

func TestApplyEffect_GuardAndRegenTargetCaster(t *testing.T) {
	eng, rec := newTestEngine(t)
	player, enemy := testutil.NewDuelists(t)

	eng.ApplyEffect(player, enemy, data.EffectTemplate{Kind: data.EffectGuard, Duration: 2, Potency: 8})
	eng.ApplyEffect(player, enemy, data.EffectTemplate{Kind: data.EffectRegen, Duration: 3, Potency: 5})

	assert.Equal(t, 8, player.GuardValue())
	require.NotNil(t, player.Status(data.EffectRegen))
	assert.Empty(t, enemy.Statuses())
	assert.Equal(t, []string{
		"Player reinforces defenses.",
		"Player glows with restorative light.",
	}, rec.Lines)
}

func TestApplyEffect_Refresh(t *testing.T) {
	eng, _ := newTestEngine(t)
	player, enemy := testutil.NewDuelists(t)

	eng.ApplyEffect(player, enemy, data.EffectTemplate{Kind: data.EffectBurn, Duration: 2, Potency: 4})
	eng.TickStatuses(enemy)
	eng.ApplyEffect(player, enemy, data.EffectTemplate{Kind: data.EffectBurn, Duration: 2, Potency: 4})

	statuses := enemy.Statuses()
	require.Len(t, statuses, 1, "burn refreshes instead of stacking")
	assert.Equal(t, 2, statuses[0].Duration)
}

func TestApplyEffect_Siphon(t *testing.T) {
	tests := []struct {
		name         string
		casterEnergy int
		targetEnergy int
		potency      int
		wantCaster   int
		wantTarget   int
	}{
		{"no clamp", 20, 30, 6, 26, 24},
		{"target floored", 20, 4, 6, 26, 0},
		{"caster capped", 48, 30, 6, 50, 24},
		{"both clamp", 49, 2, 6, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, rec := newTestEngine(t)
			player, enemy := testutil.NewDuelists(t)
			player.SetCurrentEnergy(tt.casterEnergy)
			enemy.SetCurrentEnergy(tt.targetEnergy)

			eng.ApplyEffect(player, enemy, data.EffectTemplate{Kind: data.EffectSiphon, Duration: 1, Potency: tt.potency})

			assert.Equal(t, tt.wantCaster, player.CurrentEnergy())
			assert.Equal(t, tt.wantTarget, enemy.CurrentEnergy())
			assert.Empty(t, player.Statuses(), "siphon leaves no status")
			assert.Empty(t, enemy.Statuses(), "siphon leaves no status")
			assert.Equal(t, []string{"Player drains 6 energy."}, rec.Lines)
		})
	}
}

func TestApplyEffect_UnknownIsNoop(t *testing.T) {
	eng, rec := newTestEngine(t)
	player, enemy := testutil.NewDuelists(t)
	before := [2]model.Snapshot{player.Snapshot(), enemy.Snapshot()}

	eng.ApplyEffect(player, enemy, data.EffectTemplate{Kind: data.EffectUnknown, Duration: 3, Potency: 9})

	assert.Equal(t, before, [2]model.Snapshot{player.Snapshot(), enemy.Snapshot()})
	assert.Empty(t, rec.Lines)
}

func TestTickStatuses_Burn(t *testing.T) {
	eng, rec := newTestEngine(t)
	_, enemy := testutil.NewDuelists(t)
	enemy.AddOrRefreshStatus(data.EffectBurn, 2, 4)

	eng.TickStatuses(enemy)
	assert.Equal(t, 106, enemy.CurrentHP())
	require.NotNil(t, enemy.Status(data.EffectBurn))
	assert.Equal(t, 1, enemy.Status(data.EffectBurn).Duration)
	assert.Equal(t, "Synth Warden suffers 4 burn damage.", rec.Last())

	rec.Reset()
	eng.TickStatuses(enemy)
	assert.Equal(t, 102, enemy.CurrentHP())
	assert.Nil(t, enemy.Status(data.EffectBurn))
	assert.Equal(t, []string{"Synth Warden suffers 4 burn damage."}, rec.Lines)
}

func TestTickStatuses_BurnFloorsHealth(t *testing.T) {
	eng, _ := newTestEngine(t)
	_, enemy := testutil.NewDuelists(t)
	enemy.SetCurrentHP(3)
	enemy.AddOrRefreshStatus(data.EffectBurn, 2, 4)

	eng.TickStatuses(enemy)
	assert.Equal(t, 0, enemy.CurrentHP())
}

func TestTickStatuses_RegenCapsHealth(t *testing.T) {
	eng, rec := newTestEngine(t)
	player, _ := testutil.NewDuelists(t)
	player.SetCurrentHP(97)
	player.AddOrRefreshStatus(data.EffectRegen, 3, 5)

	eng.TickStatuses(player)
	assert.Equal(t, 100, player.CurrentHP())
	assert.Equal(t, []string{"Player regenerates 5 HP."}, rec.Lines)
}

func TestTickStatuses_GuardDecay(t *testing.T) {
	eng, rec := newTestEngine(t)
	player, _ := testutil.NewDuelists(t)
	player.AddOrRefreshStatus(data.EffectGuard, 4, 8)

	wantPotency := []int{5, 2, 0}
	for i, want := range wantPotency {
		eng.TickStatuses(player)
		guard := player.Status(data.EffectGuard)
		require.NotNil(t, guard, "tick %d", i)
		assert.Equal(t, want, guard.Potency, "tick %d", i)
		assert.Equal(t, 4-(i+1), guard.Duration, "tick %d", i)
	}

	eng.TickStatuses(player)
	assert.Nil(t, player.Status(data.EffectGuard), "removed when duration reaches 0")
	assert.Equal(t, 0, player.GuardValue())

	assert.Equal(t, []string{
		"Player's guard dissipates.",
		"Player's guard dissipates.",
	}, rec.Lines)
}

func TestTickStatuses_GuardExpiresByDuration(t *testing.T) {
	eng, _ := newTestEngine(t)
	player, _ := testutil.NewDuelists(t)
	player.AddOrRefreshStatus(data.EffectGuard, 2, 8)

	eng.TickStatuses(player)
	assert.Equal(t, 5, player.GuardValue())

	eng.TickStatuses(player)
	assert.Nil(t, player.Status(data.EffectGuard))
}

func TestTickStatuses_UnknownOnlyLosesDuration(t *testing.T) {
	eng, rec := newTestEngine(t)
	player, _ := testutil.NewDuelists(t)
	player.AddOrRefreshStatus(data.EffectUnknown, 2, 7)

	eng.TickStatuses(player)

	st := player.Status(data.EffectUnknown)
	require.NotNil(t, st)
	assert.Equal(t, 1, st.Duration)
	assert.Equal(t, 7, st.Potency)
	assert.Equal(t, 100, player.CurrentHP())
	assert.Empty(t, rec.Lines)
}

func TestEffectFor(t *testing.T) {
	for _, k := range []data.EffectKind{data.EffectBurn, data.EffectGuard, data.EffectSiphon, data.EffectRegen} {
		eff := EffectFor(k)
		require.NotNil(t, eff, k.String())
		assert.Equal(t, k, eff.Kind())
	}
	assert.True(t, EffectFor(data.EffectSiphon).IsInstant())
	assert.False(t, EffectFor(data.EffectBurn).IsInstant())
	assert.Nil(t, EffectFor(data.EffectUnknown))
}

func TestNewEngine_NilNarrator(t *testing.T) {
	eng := NewEngine(nil)
	player, enemy := testutil.NewDuelists(t)

	assert.NotPanics(t, func() {
		eng.ApplyEffect(player, enemy, data.EffectTemplate{Kind: data.EffectBurn, Duration: 1, Potency: 1})
		eng.TickStatuses(enemy)
	})
}
