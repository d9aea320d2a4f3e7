package battle

import (
	"fmt"
	"math/rand/v2"

	"github.com/udisondev/battlecore/internal/config"
	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/model"
)

// LoadCatalog returns the catalog named by cfg, or the built-in one when
// cfg.CatalogPath is empty.
func LoadCatalog(cfg config.Arena) (*data.Catalog, error) {
	if cfg.CatalogPath == "" {
		return data.DefaultCatalog(), nil
	}
	c, err := data.LoadCatalogFile(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return c, nil
}

// NewCombatant builds a fresh combatant from its roster entry.
func NewCombatant(cc config.CombatantConfig) *model.Combatant {
	return model.NewCombatant(cc.Name, cc.MaxHP, cc.MaxEnergy, cc.Skills)
}

// SeededRand returns a PCG source for seed, or a randomly seeded one for 0.
func SeededRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSessionFromConfig builds a session with the configured catalog, roster,
// pacing and seed. opts are applied after the config, so they win.
func NewSessionFromConfig(cfg config.Arena, c *data.Catalog, opts ...Option) (*Session, error) {
	base := []Option{
		WithOpponentDelay(cfg.OpponentDelay),
		WithRand(SeededRand(cfg.Seed)),
	}
	return NewSession(c, NewCombatant(cfg.Player), NewCombatant(cfg.Opponent), append(base, opts...)...)
}
