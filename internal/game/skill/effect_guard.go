package skill

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/battlecore/internal/constants"
	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/model"
)

// GuardEffect shields the caster: while active, every hit it takes is reduced
// by the guard's Potency. The guard erodes by GuardDecayPerTick on each of the
// owner's turns whether or not it absorbed anything.
type GuardEffect struct{}

func (e *GuardEffect) Kind() data.EffectKind { return data.EffectGuard }
func (e *GuardEffect) IsInstant() bool       { return false }

func (e *GuardEffect) OnCast(caster, _ *model.Combatant, tmpl data.EffectTemplate, n Narrator) {
	caster.AddOrRefreshStatus(data.EffectGuard, tmpl.Duration, tmpl.Potency)
	n.Narrate(fmt.Sprintf("%s reinforces defenses.", caster.Name()))

	slog.Debug("guard applied", "caster", caster.Name(), "duration", tmpl.Duration, "potency", tmpl.Potency)
}

func (e *GuardEffect) OnTick(owner *model.Combatant, st *model.Status, n Narrator) {
	left := st.WeakenBy(constants.GuardDecayPerTick)
	if left == 0 {
		n.Narrate(fmt.Sprintf("%s's guard dissipates.", owner.Name()))
	}

	slog.Debug("guard tick", "owner", owner.Name(), "potency", left, "duration", st.Duration)
}
