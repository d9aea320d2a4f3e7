package skill

import (
	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/model"
)

// Effect is the behaviour behind one effect kind.
// OnCast runs when a skill carrying the effect resolves; OnTick runs once per
// owner turn for the status the effect left behind. Instant effects leave no
// status and never tick.
type Effect interface {
	Kind() data.EffectKind
	IsInstant() bool
	OnCast(caster, target *model.Combatant, tmpl data.EffectTemplate, n Narrator)
	OnTick(owner *model.Combatant, st *model.Status, n Narrator)
}

// Narrator receives human-readable battle lines in the order they happen.
type Narrator interface {
	Narrate(line string)
}

// NarratorFunc adapts a function to Narrator.
type NarratorFunc func(line string)

// Narrate calls f(line).
func (f NarratorFunc) Narrate(line string) { f(line) }

// discard drops every line.
type discard struct{}

func (discard) Narrate(string) {}
