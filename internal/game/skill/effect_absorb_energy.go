package skill

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/model"
)

// SiphonEffect moves energy from target to caster in one shot.
// The target loses Potency (floored at 0) and the caster gains Potency
// (capped at maximum), so energy is only conserved when neither clamp hits.
type SiphonEffect struct{}

func (e *SiphonEffect) Kind() data.EffectKind { return data.EffectSiphon }
func (e *SiphonEffect) IsInstant() bool       { return true }

func (e *SiphonEffect) OnCast(caster, target *model.Combatant, tmpl data.EffectTemplate, n Narrator) {
	drained := target.DrainEnergy(tmpl.Potency)
	gained := caster.RestoreEnergy(tmpl.Potency)
	n.Narrate(fmt.Sprintf("%s drains %d energy.", caster.Name(), tmpl.Potency))

	slog.Debug("siphon",
		"caster", caster.Name(),
		"target", target.Name(),
		"potency", tmpl.Potency,
		"drained", drained,
		"gained", gained)
}

// OnTick is never reached: siphon leaves no status behind.
func (e *SiphonEffect) OnTick(*model.Combatant, *model.Status, Narrator) {}
