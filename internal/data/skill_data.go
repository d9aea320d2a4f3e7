package data

// skillDefs is the built-in skill table of the arena.
// Keys are single characters so a keystroke maps straight to a skill.
var skillDefs = []skillDef{
	{
		id:          0,
		name:        "Pulse Jab",
		key:         "0",
		damage:      12,
		cost:        0,
		cooldown:    1,
		skillType:   "kinetic",
		description: "Quick strike that keeps the tempo high.",
	},
	{
		id:          1,
		name:        "Flame Lash",
		key:         "1",
		damage:      16,
		cost:        8,
		cooldown:    2,
		skillType:   "fire",
		effect:      &effectDef{kind: "burn", duration: 2, potency: 4},
		description: "Ignites the target for damage over time.",
	},
	{
		id:          2,
		name:        "Ion Shield",
		key:         "2",
		damage:      0,
		cost:        6,
		cooldown:    3,
		skillType:   "electric",
		effect:      &effectDef{kind: "guard", duration: 2, potency: 8},
		description: "Convert energy into a temporary shield.",
	},
	{
		id:          3,
		name:        "Quantum Drain",
		key:         "3",
		damage:      10,
		cost:        0,
		cooldown:    2,
		skillType:   "void",
		effect:      &effectDef{kind: "siphon", duration: 1, potency: 6},
		description: "Steal energy and weaken the foe.",
	},
	{
		id:          4,
		name:        "Solar Reboot",
		key:         "4",
		damage:      0,
		cost:        12,
		cooldown:    4,
		skillType:   "light",
		effect:      &effectDef{kind: "regen", duration: 3, potency: 5},
		description: "Channel solar energy to slowly restore HP.",
	},
}

// skillDef is the literal form of a catalog entry.
type skillDef struct {
	id          int
	name        string
	key         string
	damage      int
	cost        int
	cooldown    int
	skillType   string
	effect      *effectDef
	description string
}

// effectDef is the literal form of an on-cast effect.
type effectDef struct {
	kind     string
	duration int
	potency  int
}
