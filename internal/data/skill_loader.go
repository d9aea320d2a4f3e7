package data

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// ErrSkillNotFound is returned when a skill ID is not in the catalog.
var ErrSkillNotFound = errors.New("skill not found")

// Catalog is the immutable skill table shared by every battle.
// It is safe for concurrent reads once built.
type Catalog struct {
	byID    map[int]*Skill
	ordered []*Skill
}

// NewCatalog validates skills and builds a catalog from them. IDs and keys
// must be unique, and every key is a single character. Skills are copied;
// later changes to the input do not leak in.
func NewCatalog(skills []Skill) (*Catalog, error) {
	c := &Catalog{
		byID:    make(map[int]*Skill, len(skills)),
		ordered: make([]*Skill, 0, len(skills)),
	}
	keys := make(map[string]int, len(skills))

	for i := range skills {
		sk := skills[i]
		if err := validateSkill(&sk); err != nil {
			return nil, err
		}
		if _, dup := c.byID[sk.ID]; dup {
			return nil, fmt.Errorf("duplicate skill id %d", sk.ID)
		}
		if id, dup := keys[sk.Key]; dup {
			return nil, fmt.Errorf("skill %q: key %q already bound to skill id %d", sk.Name, sk.Key, id)
		}
		keys[sk.Key] = sk.ID
		if sk.Effect != nil {
			eff := *sk.Effect
			sk.Effect = &eff
		}
		c.byID[sk.ID] = &sk
		c.ordered = append(c.ordered, &sk)
	}

	slices.SortFunc(c.ordered, func(a, b *Skill) int { return a.ID - b.ID })
	return c, nil
}

// DefaultCatalog builds the catalog from the built-in skill table.
// The table is static, so a validation failure is a programming error.
func DefaultCatalog() *Catalog {
	skills := make([]Skill, 0, len(skillDefs))
	for i := range skillDefs {
		skills = append(skills, buildSkill(&skillDefs[i]))
	}

	c, err := NewCatalog(skills)
	if err != nil {
		panic(fmt.Sprintf("built-in skill table: %v", err))
	}
	return c
}

// catalogFile is the YAML layout of an external catalog.
type catalogFile struct {
	Skills []Skill `yaml:"skills"`
}

// LoadCatalogFile reads a YAML skill catalog from path.
func LoadCatalogFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	if len(f.Skills) == 0 {
		return nil, fmt.Errorf("catalog %s: skills list is empty", path)
	}

	c, err := NewCatalog(f.Skills)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}

	slog.Info("loaded skill catalog", "path", path, "skills", c.Len())
	return c, nil
}

// Skill returns the skill with the given ID.
func (c *Catalog) Skill(id int) (*Skill, error) {
	sk, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("skill id %d: %w", id, ErrSkillNotFound)
	}
	return sk, nil
}

// MustSkill is Skill for IDs that were already validated.
// A miss means a combatant references a skill the catalog never had.
func (c *Catalog) MustSkill(id int) *Skill {
	sk, err := c.Skill(id)
	if err != nil {
		panic(err)
	}
	return sk
}

// SkillByKey returns the first skill among ids bound to key, or nil.
func (c *Catalog) SkillByKey(ids []int, key string) *Skill {
	for _, id := range ids {
		if sk, ok := c.byID[id]; ok && sk.Key == key {
			return sk
		}
	}
	return nil
}

// Validate checks that every id exists in the catalog.
func (c *Catalog) Validate(ids []int) error {
	for _, id := range ids {
		if _, err := c.Skill(id); err != nil {
			return err
		}
	}
	return nil
}

// Skills returns all entries ordered by ID.
func (c *Catalog) Skills() []*Skill {
	return slices.Clone(c.ordered)
}

// Len returns the number of skills in the catalog.
func (c *Catalog) Len() int {
	return len(c.ordered)
}

func buildSkill(def *skillDef) Skill {
	sk := Skill{
		ID:          def.id,
		Name:        def.name,
		Key:         def.key,
		Damage:      def.damage,
		Cost:        def.cost,
		Cooldown:    def.cooldown,
		Type:        def.skillType,
		Description: def.description,
	}
	if def.effect != nil {
		sk.Effect = &EffectTemplate{
			Kind:     ParseEffectKind(def.effect.kind),
			Duration: def.effect.duration,
			Potency:  def.effect.potency,
		}
	}
	return sk
}

func validateSkill(sk *Skill) error {
	switch {
	case sk.Name == "":
		return fmt.Errorf("skill id %d: missing name", sk.ID)
	case sk.Key == "":
		return fmt.Errorf("skill %q: missing key", sk.Name)
	case utf8.RuneCountInString(sk.Key) != 1:
		return fmt.Errorf("skill %q: key %q must be a single character", sk.Name, sk.Key)
	case sk.Damage < 0:
		return fmt.Errorf("skill %q: negative damage %d", sk.Name, sk.Damage)
	case sk.Cost < 0:
		return fmt.Errorf("skill %q: negative cost %d", sk.Name, sk.Cost)
	case sk.Cooldown < 0:
		return fmt.Errorf("skill %q: negative cooldown %d", sk.Name, sk.Cooldown)
	}
	if sk.Effect != nil && (sk.Effect.Duration < 0 || sk.Effect.Potency < 0) {
		return fmt.Errorf("skill %q: negative effect duration or potency", sk.Name)
	}
	return nil
}
