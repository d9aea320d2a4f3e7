package testutil

import (
	"testing"

	"github.com/udisondev/battlecore/internal/model"
)

// Fixtures holds the stock arena roster shared by tests across packages.
var Fixtures = struct {
	PlayerName      string
	PlayerMaxHP     int
	PlayerMaxEnergy int
	PlayerSkills    []int

	OpponentName      string
	OpponentMaxHP     int
	OpponentMaxEnergy int
	OpponentSkills    []int
}{
	PlayerName:      "Player",
	PlayerMaxHP:     100,
	PlayerMaxEnergy: 50,
	PlayerSkills:    []int{0, 1, 2, 3, 4},

	OpponentName:      "Synth Warden",
	OpponentMaxHP:     110,
	OpponentMaxEnergy: 45,
	OpponentSkills:    []int{0, 1, 3, 4},
}

// NewPlayer returns the stock player at full health and energy.
func NewPlayer(t testing.TB) *model.Combatant {
	t.Helper()
	f := Fixtures
	return model.NewCombatant(f.PlayerName, f.PlayerMaxHP, f.PlayerMaxEnergy, f.PlayerSkills)
}

// NewOpponent returns the stock opponent at full health and energy.
func NewOpponent(t testing.TB) *model.Combatant {
	t.Helper()
	f := Fixtures
	return model.NewCombatant(f.OpponentName, f.OpponentMaxHP, f.OpponentMaxEnergy, f.OpponentSkills)
}

// NewDuelists returns a fresh stock player and opponent.
func NewDuelists(t testing.TB) (player, opponent *model.Combatant) {
	t.Helper()
	return NewPlayer(t), NewOpponent(t)
}
