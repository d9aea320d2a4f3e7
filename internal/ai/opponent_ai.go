package ai

import (
	"log/slog"
	"math/rand/v2"

	"github.com/udisondev/battlecore/internal/constants"
	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/model"
)

// GreedyPolicy is the arena opponent: a state-only heuristic with no
// lookahead and no memory beyond what cooldowns and statuses already hold.
//
// Priority:
//  1. own health <= OpponentLowHealth and a ready regen skill: heal
//  2. foe health <= PlayerFinisherHealth: hardest hitting ready skill
//  3. otherwise: uniform random ready skill
type GreedyPolicy struct {
	catalog *data.Catalog
	rng     *rand.Rand
}

// NewGreedyPolicy creates a policy drawing random choices from rng.
// A nil rng is replaced by a randomly seeded one.
func NewGreedyPolicy(c *data.Catalog, rng *rand.Rand) *GreedyPolicy {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &GreedyPolicy{catalog: c, rng: rng}
}

// ChooseSkill implements Policy.
func (p *GreedyPolicy) ChooseSkill(self, foe *model.Combatant) *data.Skill {
	ready := ReadySkills(p.catalog, self)
	if len(ready) == 0 {
		if IsDebugEnabled() {
			slog.Debug("opponent has no ready skill", "npc", self.Name(), "energy", self.CurrentEnergy())
		}
		return nil
	}

	if self.CurrentHP() <= constants.OpponentLowHealth {
		for _, sk := range ready {
			if sk.HasEffect(data.EffectRegen) {
				p.logChoice(self, sk, "self-preservation")
				return sk
			}
		}
	}

	if foe.CurrentHP() <= constants.PlayerFinisherHealth {
		best := strongest(ready)
		p.logChoice(self, best, "finisher")
		return best
	}

	chosen := ready[p.rng.IntN(len(ready))]
	p.logChoice(self, chosen, "random")
	return chosen
}

func (p *GreedyPolicy) logChoice(self *model.Combatant, sk *data.Skill, reason string) {
	if !IsDebugEnabled() {
		return
	}
	slog.Debug("opponent chose skill",
		"npc", self.Name(),
		"skill", sk.Name,
		"skillID", sk.ID,
		"reason", reason)
}

// strongest returns the first skill with the highest damage.
func strongest(skills []*data.Skill) *data.Skill {
	best := skills[0]
	for _, sk := range skills[1:] {
		if sk.Damage > best.Damage {
			best = sk
		}
	}
	return best
}
