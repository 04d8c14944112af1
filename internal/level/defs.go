// Package level holds the static configuration a combat session is started
// from: enemy archetype definitions and per-level settings. Definitions are
// embedded JSON decoded once at startup; the session treats them as read-only.
package level

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed enemies.json levels.json
var defsFS embed.FS

// EnemyDef holds the static data for one enemy archetype.
type EnemyDef struct {
	Kind          string  `json:"kind"`
	Rank          string  `json:"rank"` // "minion" or "elite"
	MaxHP         float64 `json:"max_hp"`
	Speed         float64 `json:"speed"`
	ContactDamage float64 `json:"contact_damage"`
	XPValue       float64 `json:"xp_value"`
	CurrencyValue float64 `json:"currency_value"`
	Radius        float64 `json:"radius"`
	SpawnWeight   float64 `json:"spawn_weight"`
}

// Level is the read-only configuration a session starts from.
type Level struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	EnemyKinds      []string `json:"enemy_kinds"`
	SessionDuration float64  `json:"session_duration"` // seconds
	Difficulty      int      `json:"difficulty"`       // tier, >= 1
}

// Library is the decoded definition set.
type Library struct {
	Enemies map[string]EnemyDef
	Levels  map[string]Level

	enemyOrder []string // file order, for deterministic weighted draws
}

// Load decodes and validates the embedded definitions.
func Load() (*Library, error) {
	var enemies []EnemyDef
	if err := decodeFile("enemies.json", &enemies); err != nil {
		return nil, err
	}

	lib := &Library{
		Enemies: make(map[string]EnemyDef, len(enemies)),
		Levels:  make(map[string]Level),
	}

	for _, def := range enemies {
		if err := validateEnemy(def); err != nil {
			return nil, fmt.Errorf("enemy %q: %w", def.Kind, err)
		}
		if _, dup := lib.Enemies[def.Kind]; dup {
			return nil, fmt.Errorf("enemy %q: duplicate kind", def.Kind)
		}
		lib.Enemies[def.Kind] = def
		lib.enemyOrder = append(lib.enemyOrder, def.Kind)
	}

	var levels []Level
	if err := decodeFile("levels.json", &levels); err != nil {
		return nil, err
	}

	for _, lvl := range levels {
		if err := validateLevel(lvl, lib.Enemies); err != nil {
			return nil, fmt.Errorf("level %q: %w", lvl.ID, err)
		}
		if _, dup := lib.Levels[lvl.ID]; dup {
			return nil, fmt.Errorf("level %q: duplicate id", lvl.ID)
		}
		lib.Levels[lvl.ID] = lvl
	}

	if len(lib.Levels) == 0 {
		return nil, fmt.Errorf("no levels defined")
	}

	return lib, nil
}

// KindsByRank splits the level's allowed kinds into the requested rank subset.
// An unknown kind is skipped rather than failing the whole split.
func (lib *Library) KindsByRank(lvl Level, rank string) []string {
	var out []string
	for _, kind := range lvl.EnemyKinds {
		def, ok := lib.Enemies[kind]
		if !ok {
			continue
		}
		if def.Rank == rank {
			out = append(out, kind)
		}
	}
	return out
}

// AllKinds returns every defined enemy kind in file order.
func (lib *Library) AllKinds() []string {
	kinds := make([]string, len(lib.enemyOrder))
	copy(kinds, lib.enemyOrder)
	return kinds
}

func decodeFile(name string, out any) error {
	blob, err := defsFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(blob, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func validateEnemy(def EnemyDef) error {
	if def.Kind == "" {
		return fmt.Errorf("missing kind")
	}
	if def.Rank != "minion" && def.Rank != "elite" {
		return fmt.Errorf("invalid rank %q", def.Rank)
	}
	if def.MaxHP <= 0 {
		return fmt.Errorf("max_hp must be positive, got %.2f", def.MaxHP)
	}
	if def.Speed < 0 {
		return fmt.Errorf("speed must not be negative, got %.2f", def.Speed)
	}
	if def.SpawnWeight < 0 {
		return fmt.Errorf("spawn_weight must not be negative, got %.2f", def.SpawnWeight)
	}
	return nil
}

func validateLevel(lvl Level, enemies map[string]EnemyDef) error {
	if lvl.ID == "" {
		return fmt.Errorf("missing id")
	}
	if lvl.SessionDuration <= 0 {
		return fmt.Errorf("session_duration must be positive, got %.2f", lvl.SessionDuration)
	}
	if lvl.Difficulty < 1 {
		return fmt.Errorf("difficulty must be >= 1, got %d", lvl.Difficulty)
	}
	for _, kind := range lvl.EnemyKinds {
		if _, ok := enemies[kind]; !ok {
			return fmt.Errorf("unknown enemy kind %q", kind)
		}
	}
	return nil
}
