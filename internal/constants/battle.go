package constants

import "time"

// Upkeep tunables.
const (
	// EnergyRegenPerTurn is restored to a combatant after each turn it completes.
	EnergyRegenPerTurn = 4

	// RecalibrateEnergy is granted to the opponent when it has no ready skill.
	RecalibrateEnergy = 6

	// GuardDecayPerTick is subtracted from guard potency on each status tick.
	GuardDecayPerTick = 3
)

// Opponent decision thresholds.
const (
	// OpponentLowHealth is the health at or below which the opponent prefers regen.
	OpponentLowHealth = 40

	// PlayerFinisherHealth is the player health at or below which the opponent
	// goes for its hardest hitting ready skill.
	PlayerFinisherHealth = 30
)

// FirstTurn is the turn counter value of a fresh battle.
const FirstTurn = 1

// DefaultOpponentDelay is the pause between the player's turn and the opponent's.
const DefaultOpponentDelay = 650 * time.Millisecond
