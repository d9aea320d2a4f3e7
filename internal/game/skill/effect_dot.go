package skill

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/model"
)

// BurnEffect sets the target alight: a damage-over-time status that costs
// the target Potency health at the end of each of its turns.
type BurnEffect struct{}

func (e *BurnEffect) Kind() data.EffectKind { return data.EffectBurn }
func (e *BurnEffect) IsInstant() bool       { return false }

func (e *BurnEffect) OnCast(caster, target *model.Combatant, tmpl data.EffectTemplate, n Narrator) {
	target.AddOrRefreshStatus(data.EffectBurn, tmpl.Duration, tmpl.Potency)
	n.Narrate(fmt.Sprintf("%s is scorched by flames!", target.Name()))

	slog.Debug("burn applied",
		"caster", caster.Name(),
		"target", target.Name(),
		"duration", tmpl.Duration,
		"potency", tmpl.Potency)
}

func (e *BurnEffect) OnTick(owner *model.Combatant, st *model.Status, n Narrator) {
	lost := owner.TakeDamage(st.Potency)
	n.Narrate(fmt.Sprintf("%s suffers %d burn damage.", owner.Name(), st.Potency))

	slog.Debug("burn tick", "owner", owner.Name(), "potency", st.Potency, "lost", lost)
}
