package model

import (
	"maps"
	"slices"

	"github.com/udisondev/battlecore/internal/data"
)

// Combatant is one side of a battle: health, energy, known skills, cooldowns
// and active statuses.
//
// All numeric state is clamped to [0, max]. A Combatant is owned by a single
// battle session and is not safe for concurrent use.
type Combatant struct {
	name string

	currentHP int
	maxHP     int

	currentEnergy int
	maxEnergy     int

	skillIDs  []int
	cooldowns map[int]int // skillID → turns until ready
	statuses  []*Status   // application order, one per kind
}

// NewCombatant creates a combatant at full health and energy.
// maxHP and maxEnergy are raised to 1 if lower.
func NewCombatant(name string, maxHP, maxEnergy int, skillIDs []int) *Combatant {
	maxHP = max(maxHP, 1)
	maxEnergy = max(maxEnergy, 1)

	return &Combatant{
		name:          name,
		currentHP:     maxHP,
		maxHP:         maxHP,
		currentEnergy: maxEnergy,
		maxEnergy:     maxEnergy,
		skillIDs:      slices.Clone(skillIDs),
		cooldowns:     make(map[int]int, len(skillIDs)),
		statuses:      make([]*Status, 0, 4),
	}
}

// Name returns the display name.
func (c *Combatant) Name() string { return c.name }

// CurrentHP returns current health.
func (c *Combatant) CurrentHP() int { return c.currentHP }

// MaxHP returns maximum health.
func (c *Combatant) MaxHP() int { return c.maxHP }

// CurrentEnergy returns current energy.
func (c *Combatant) CurrentEnergy() int { return c.currentEnergy }

// MaxEnergy returns maximum energy.
func (c *Combatant) MaxEnergy() int { return c.maxEnergy }

// SkillIDs returns the known skill IDs in order.
func (c *Combatant) SkillIDs() []int { return slices.Clone(c.skillIDs) }

// IsDead reports whether health has reached 0.
func (c *Combatant) IsDead() bool { return c.currentHP <= 0 }

// SetCurrentHP sets health, clamped to [0, maxHP].
func (c *Combatant) SetCurrentHP(hp int) {
	c.currentHP = clamp(hp, c.maxHP)
}

// SetCurrentEnergy sets energy, clamped to [0, maxEnergy].
func (c *Combatant) SetCurrentEnergy(energy int) {
	c.currentEnergy = clamp(energy, c.maxEnergy)
}

// TakeDamage lowers health by n (floored at 0) and returns the health lost.
func (c *Combatant) TakeDamage(n int) int {
	before := c.currentHP
	c.SetCurrentHP(c.currentHP - max(n, 0))
	return before - c.currentHP
}

// Heal raises health by n (capped at maxHP) and returns the health gained.
func (c *Combatant) Heal(n int) int {
	before := c.currentHP
	c.SetCurrentHP(c.currentHP + max(n, 0))
	return c.currentHP - before
}

// SpendEnergy pays a skill cost, floored at 0. Returns the energy spent.
func (c *Combatant) SpendEnergy(n int) int {
	return c.DrainEnergy(n)
}

// DrainEnergy removes up to n energy and returns the amount removed.
func (c *Combatant) DrainEnergy(n int) int {
	before := c.currentEnergy
	c.SetCurrentEnergy(c.currentEnergy - max(n, 0))
	return before - c.currentEnergy
}

// RestoreEnergy adds n energy (capped at maxEnergy) and returns the gain.
func (c *Combatant) RestoreEnergy(n int) int {
	before := c.currentEnergy
	c.SetCurrentEnergy(c.currentEnergy + max(n, 0))
	return c.currentEnergy - before
}

// Cooldown returns the turns left before skillID is usable again.
func (c *Combatant) Cooldown(skillID int) int {
	return c.cooldowns[skillID]
}

// SetCooldown starts (or restarts) the cooldown of skillID.
func (c *Combatant) SetCooldown(skillID, turns int) {
	c.cooldowns[skillID] = max(turns, 0)
}

// TickCooldowns lowers every recorded cooldown by one turn, floored at 0.
func (c *Combatant) TickCooldowns() {
	for id, left := range c.cooldowns {
		c.cooldowns[id] = max(0, left-1)
	}
}

// IsReady reports whether sk is off cooldown and affordable.
func (c *Combatant) IsReady(sk *data.Skill) bool {
	return c.cooldowns[sk.ID] == 0 && c.currentEnergy >= sk.Cost
}

// Status returns the active status of kind k, or nil.
func (c *Combatant) Status(k data.EffectKind) *Status {
	for _, st := range c.statuses {
		if st.Kind == k {
			return st
		}
	}
	return nil
}

// Statuses returns copies of the active statuses in application order.
func (c *Combatant) Statuses() []Status {
	out := make([]Status, 0, len(c.statuses))
	for _, st := range c.statuses {
		out = append(out, *st)
	}
	return out
}

// AddOrRefreshStatus attaches a status of kind k, or overwrites duration and
// potency of the existing one. Statuses never stack.
func (c *Combatant) AddOrRefreshStatus(k data.EffectKind, duration, potency int) *Status {
	duration = max(duration, 0)
	potency = max(potency, 0)

	if st := c.Status(k); st != nil {
		st.Duration = duration
		st.Potency = potency
		return st
	}

	st := &Status{Kind: k, Duration: duration, Potency: potency}
	c.statuses = append(c.statuses, st)
	return st
}

// TickStatuses calls apply for every active status, then shortens each by one
// turn and drops the ones that ran out.
func (c *Combatant) TickStatuses(apply func(st *Status)) {
	n := 0
	for _, st := range c.statuses {
		if apply != nil {
			apply(st)
		}
		st.Duration--
		if st.Expired() {
			continue
		}
		c.statuses[n] = st
		n++
	}
	clear(c.statuses[n:])
	c.statuses = c.statuses[:n]
}

// GuardValue returns the potency of the active guard, or 0.
// Incoming damage is reduced by this amount when it lands.
func (c *Combatant) GuardValue() int {
	if st := c.Status(data.EffectGuard); st != nil {
		return st.Potency
	}
	return 0
}

// ResetForNewBattle restores full health and energy and clears cooldowns and
// statuses. The combatant keeps its name and skills.
func (c *Combatant) ResetForNewBattle() {
	c.currentHP = c.maxHP
	c.currentEnergy = c.maxEnergy
	clear(c.cooldowns)
	clear(c.statuses)
	c.statuses = c.statuses[:0]
}

// Snapshot is a read-only view of a combatant for presentation.
type Snapshot struct {
	Name      string
	HP        int
	MaxHP     int
	Energy    int
	MaxEnergy int
	Statuses  []Status
	Cooldowns map[int]int
}

// Snapshot copies the current state.
func (c *Combatant) Snapshot() Snapshot {
	return Snapshot{
		Name:      c.name,
		HP:        c.currentHP,
		MaxHP:     c.maxHP,
		Energy:    c.currentEnergy,
		MaxEnergy: c.maxEnergy,
		Statuses:  c.Statuses(),
		Cooldowns: maps.Clone(c.cooldowns),
	}
}

// HPRatio returns health as a fraction of maximum (0.0 - 1.0).
func (s Snapshot) HPRatio() float64 {
	return float64(s.HP) / float64(s.MaxHP)
}

// EnergyRatio returns energy as a fraction of maximum (0.0 - 1.0).
func (s Snapshot) EnergyRatio() float64 {
	return float64(s.Energy) / float64(s.MaxEnergy)
}

func clamp(v, hi int) int {
	return min(max(v, 0), hi)
}
