package skill

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/model"
)

// RegenEffect is a heal-over-time status on the caster.
// Each tick restores Potency health, capped at maximum.
type RegenEffect struct{}

func (e *RegenEffect) Kind() data.EffectKind { return data.EffectRegen }
func (e *RegenEffect) IsInstant() bool       { return false }

func (e *RegenEffect) OnCast(caster, _ *model.Combatant, tmpl data.EffectTemplate, n Narrator) {
	caster.AddOrRefreshStatus(data.EffectRegen, tmpl.Duration, tmpl.Potency)
	n.Narrate(fmt.Sprintf("%s glows with restorative light.", caster.Name()))

	slog.Debug("regen applied", "caster", caster.Name(), "duration", tmpl.Duration, "potency", tmpl.Potency)
}

func (e *RegenEffect) OnTick(owner *model.Combatant, st *model.Status, n Narrator) {
	healed := owner.Heal(st.Potency)
	n.Narrate(fmt.Sprintf("%s regenerates %d HP.", owner.Name(), st.Potency))

	slog.Debug("regen tick", "owner", owner.Name(), "potency", st.Potency, "healed", healed)
}
