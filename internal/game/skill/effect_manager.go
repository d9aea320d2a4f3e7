package skill

import (
	"log/slog"

	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/model"
)

// Engine applies skill effects and ticks the statuses they leave behind.
// Every line it narrates goes to the configured Narrator.
type Engine struct {
	narrator Narrator
}

// NewEngine creates an Engine that narrates to n.
// A nil n discards narration.
func NewEngine(n Narrator) *Engine {
	if n == nil {
		n = discard{}
	}
	return &Engine{narrator: n}
}

// ApplyEffect runs the on-cast behaviour of tmpl.
// Unknown kinds do nothing.
func (e *Engine) ApplyEffect(caster, target *model.Combatant, tmpl data.EffectTemplate) {
	eff := EffectFor(tmpl.Kind)
	if eff == nil {
		slog.Debug("ignoring unknown effect", "caster", caster.Name(), "kind", tmpl.Kind)
		return
	}
	eff.OnCast(caster, target, tmpl, e.narrator)
}

// TickStatus applies one status's per-turn behaviour to its owner.
// Duration bookkeeping is the caller's job.
func (e *Engine) TickStatus(owner *model.Combatant, st *model.Status) {
	eff := EffectFor(st.Kind)
	if eff == nil || eff.IsInstant() {
		return
	}
	eff.OnTick(owner, st, e.narrator)
}

// TickStatuses runs the upkeep of every status on owner: tick effect first,
// then one turn off its duration. Statuses that reach 0 are removed.
func (e *Engine) TickStatuses(owner *model.Combatant) {
	owner.TickStatuses(func(st *model.Status) {
		e.TickStatus(owner, st)
	})
}
