package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/battlecore/internal/constants"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "BATTLECORE_CONFIG"

// DefaultPath is used when neither a flag nor EnvPath names a file.
const DefaultPath = "config/arena.yaml"

// Arena holds all configuration for the arena and the duel simulator.
type Arena struct {
	// Logging
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
	LogFile  string `yaml:"log_file"`  // the terminal arena owns stdout, so it logs here

	// Pacing
	OpponentDelay time.Duration `yaml:"opponent_delay"`

	// Seed for the opponent's random choices; 0 picks a random seed.
	Seed uint64 `yaml:"seed"`

	// CatalogPath points at a YAML skill catalog. Empty uses the built-in one.
	CatalogPath string `yaml:"catalog_path"`

	// Rosters
	Player   CombatantConfig `yaml:"player"`
	Opponent CombatantConfig `yaml:"opponent"`

	Simulation Simulation `yaml:"simulation"`
}

// CombatantConfig describes one side of the duel.
type CombatantConfig struct {
	Name      string `yaml:"name"`
	MaxHP     int    `yaml:"max_hp"`
	MaxEnergy int    `yaml:"max_energy"`
	Skills    []int  `yaml:"skills"`
}

// Simulation holds settings for batch battles.
type Simulation struct {
	Battles  int `yaml:"battles"`
	Workers  int `yaml:"workers"`
	MaxTurns int `yaml:"max_turns"` // a battle still running after this many turns counts as stalled
}

// DefaultArena returns Arena config with the stock roster.
func DefaultArena() Arena {
	return Arena{
		LogLevel:      "info",
		LogFile:       "arena.log",
		OpponentDelay: constants.DefaultOpponentDelay,
		Player: CombatantConfig{
			Name:      "Player",
			MaxHP:     100,
			MaxEnergy: 50,
			Skills:    []int{0, 1, 2, 3, 4},
		},
		Opponent: CombatantConfig{
			Name:      "Synth Warden",
			MaxHP:     110,
			MaxEnergy: 45,
			Skills:    []int{0, 1, 3, 4},
		},
		Simulation: Simulation{
			Battles:  1000,
			Workers:  4,
			MaxTurns: 200,
		},
	}
}

// ResolvePath picks the config path: flag value first, then EnvPath, then
// DefaultPath.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// LoadArena loads arena config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadArena(path string) (Arena, error) {
	cfg := DefaultArena()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that the config describes a playable duel.
// Skill IDs are checked later against the catalog.
func (a Arena) Validate() error {
	var errs []error

	switch a.LogLevel {
	case "debug", "info", "warn", "error", "":
	default:
		errs = append(errs, fmt.Errorf("log_level: unknown level %q", a.LogLevel))
	}
	if a.OpponentDelay < 0 {
		errs = append(errs, errors.New("opponent_delay: must not be negative"))
	}
	if err := a.Player.validate(); err != nil {
		errs = append(errs, fmt.Errorf("player: %w", err))
	}
	if err := a.Opponent.validate(); err != nil {
		errs = append(errs, fmt.Errorf("opponent: %w", err))
	}
	if a.Simulation.Battles < 0 {
		errs = append(errs, errors.New("simulation.battles: must not be negative"))
	}
	if a.Simulation.Workers < 1 {
		errs = append(errs, errors.New("simulation.workers: must be at least 1"))
	}
	if a.Simulation.MaxTurns < 1 {
		errs = append(errs, errors.New("simulation.max_turns: must be at least 1"))
	}

	return errors.Join(errs...)
}

func (c CombatantConfig) validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.MaxHP < 1 {
		return fmt.Errorf("max_hp %d: must be at least 1", c.MaxHP)
	}
	if c.MaxEnergy < 1 {
		return fmt.Errorf("max_energy %d: must be at least 1", c.MaxEnergy)
	}
	if len(c.Skills) == 0 {
		return errors.New("at least one skill is required")
	}
	return nil
}
