package battle

import (
	"fmt"

	"github.com/udisondev/battlecore/internal/constants"
	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/model"
)

// ExecuteSkill resolves sk cast by attacker on defender: pay the cost, land
// the damage through the defender's guard, apply the effect and restart the
// skill's cooldown. Input is locked while it runs and stays locked once the
// battle has concluded.
//
// The caller checks attacker.IsReady(sk) first.
func (s *Session) ExecuteSkill(attacker, defender *model.Combatant, sk *data.Skill) {
	s.locked = true

	if sk.Cost > 0 {
		attacker.SpendEnergy(sk.Cost)
	}

	if sk.Damage > 0 {
		mitigated := max(0, sk.Damage-defender.GuardValue())
		defender.TakeDamage(mitigated)
		s.narrate(fmt.Sprintf("%s uses %s! %s takes %d damage.", attacker.Name(), sk.Name, defender.Name(), mitigated))
	} else {
		s.narrate(fmt.Sprintf("%s channels %s.", attacker.Name(), sk.Name))
	}

	if sk.Effect != nil {
		s.engine.ApplyEffect(attacker, defender, *sk.Effect)
	}

	// Full cooldown, not decremented: with Cooldown 1 the skill is back on
	// the caster's next turn, with 0 it is never blocked.
	attacker.SetCooldown(sk.ID, sk.Cooldown)

	s.logger.Debug("skill executed",
		"turn", s.turn,
		"attacker", attacker.Name(),
		"skill", sk.Name,
		"defender_hp", defender.CurrentHP(),
		"attacker_energy", attacker.CurrentEnergy())

	s.locked = s.concluded
}

// EndTurn runs upkeep for the combatant that just acted (cooldowns, status
// ticks, energy regeneration), then hands the turn to the other side.
func (s *Session) EndTurn() {
	actor := s.active

	actor.TickCooldowns()
	s.engine.TickStatuses(actor)
	actor.RestoreEnergy(constants.EnergyRegenPerTurn)

	s.active, s.waiting = s.waiting, s.active
	s.turn++
}

// CheckForWinner concludes the battle once either combatant is at 0 health
// and reports whether it is over.
//
// The healthier combatant wins. When both fall to the same health in one
// step, the combatant whose turn is next wins: the side that just acted
// brought the double knockout on itself.
func (s *Session) CheckForWinner() bool {
	if s.concluded {
		return true
	}
	if !s.player.IsDead() && !s.opponent.IsDead() {
		return false
	}

	winner, loser := s.active, s.waiting
	switch {
	case s.player.CurrentHP() > s.opponent.CurrentHP():
		winner, loser = s.player, s.opponent
	case s.opponent.CurrentHP() > s.player.CurrentHP():
		winner, loser = s.opponent, s.player
	}

	s.concluded = true
	s.locked = true
	s.cancelOpponentTurn()

	result := Conclusion{Winner: winner.Name(), Loser: loser.Name(), Turns: s.turn}
	s.conclusion = &result

	s.narrate(fmt.Sprintf("%s collapses. %s stands victorious!", loser.Name(), winner.Name()))
	s.journal.publish(Event{
		Kind:       EventConclusion,
		Turn:       s.turn,
		Text:       result.Summary(),
		Conclusion: &result,
	})

	s.logger.Info("battle concluded",
		"winner", result.Winner,
		"loser", result.Loser,
		"turns", result.Turns)
	return true
}
