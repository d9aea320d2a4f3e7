package ai

import (
	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/model"
)

// Policy decides what a computer-controlled combatant does on its turn.
type Policy interface {
	// ChooseSkill returns the skill self should use against foe, or nil when
	// no skill is ready. It must not mutate either combatant.
	ChooseSkill(self, foe *model.Combatant) *data.Skill
}

// ReadySkills returns the skills of cb that are ready right now, in the
// order cb knows them.
func ReadySkills(c *data.Catalog, cb *model.Combatant) []*data.Skill {
	ids := cb.SkillIDs()
	ready := make([]*data.Skill, 0, len(ids))
	for _, id := range ids {
		sk := c.MustSkill(id)
		if cb.IsReady(sk) {
			ready = append(ready, sk)
		}
	}
	return ready
}
