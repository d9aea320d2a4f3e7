package data

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// EffectKind identifies what an on-cast effect (and the status it leaves
// behind) does. The set is closed; kinds read from data that the engine does
// not know become EffectUnknown and are ignored.
type EffectKind uint8

const (
	EffectUnknown EffectKind = iota
	EffectBurn               // damage over time on the target
	EffectGuard              // flat damage reduction on the caster, decays each tick
	EffectSiphon             // instant energy transfer, leaves no status
	EffectRegen              // heal over time on the caster
)

// String returns the data name of the kind.
func (k EffectKind) String() string {
	switch k {
	case EffectBurn:
		return "burn"
	case EffectGuard:
		return "guard"
	case EffectSiphon:
		return "siphon"
	case EffectRegen:
		return "regen"
	default:
		return "unknown"
	}
}

// ParseEffectKind maps a data name to an EffectKind.
// Unrecognised names yield EffectUnknown.
func ParseEffectKind(name string) EffectKind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "burn":
		return EffectBurn
	case "guard":
		return EffectGuard
	case "siphon":
		return EffectSiphon
	case "regen":
		return EffectRegen
	default:
		return EffectUnknown
	}
}

// MarshalYAML writes the kind by name.
func (k EffectKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// UnmarshalYAML reads the kind by name.
func (k *EffectKind) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	*k = ParseEffectKind(name)
	return nil
}

// EffectTemplate describes the effect a skill applies when cast.
type EffectTemplate struct {
	Kind     EffectKind `yaml:"kind"`
	Duration int        `yaml:"duration"`
	Potency  int        `yaml:"potency"`
}

// Skill is an immutable catalog entry.
type Skill struct {
	ID          int             `yaml:"id"`
	Name        string          `yaml:"name"`
	Key         string          `yaml:"key"`
	Damage      int             `yaml:"damage"`
	Cost        int             `yaml:"cost"`
	Cooldown    int             `yaml:"cooldown"`
	Type        string          `yaml:"type"`
	Effect      *EffectTemplate `yaml:"effect,omitempty"`
	Description string          `yaml:"description"`
}

// IsUtility reports whether the skill deals no direct damage.
func (s *Skill) IsUtility() bool {
	return s.Damage <= 0
}

// HasEffect reports whether casting the skill applies an effect of kind k.
func (s *Skill) HasEffect(k EffectKind) bool {
	return s.Effect != nil && s.Effect.Kind == k
}
