package model

import "github.com/udisondev/battlecore/internal/data"

// Status is a timed modifier attached to a combatant.
// A combatant holds at most one Status per kind.
type Status struct {
	Kind     data.EffectKind
	Duration int // turns left, counted in the owner's completed turns
	Potency  int
}

// Expired reports whether the status has run out.
func (s *Status) Expired() bool {
	return s.Duration <= 0
}

// WeakenBy lowers potency by n, floored at 0.
// Returns the potency left.
func (s *Status) WeakenBy(n int) int {
	s.Potency = max(0, s.Potency-n)
	return s.Potency
}
