package sim

import (
	"fmt"
	"math"
)

// Config holds every tunable of the combat core. All durations are seconds,
// all distances world units.
type Config struct {
	// Spawning pacing
	SpawnInterval      float64 // base seconds between waves
	SpawnIntervalStep  float64 // subtracted per difficulty step
	SpawnIntervalFloor float64
	DifficultyStep     float64 // seconds of session time per step
	BaseWaveSize       int
	MaxWaveSize        int
	BaseEnemyCap       int
	EnemyCapStep       int
	MaxEnemyCap        int
	SpawnDistMin       float64
	SpawnDistMax       float64

	// Rank mix
	EliteChanceCeil float64 // elite probability ceiling
	EliteRampTime   float64 // seconds until the ceiling is reached

	// Difficulty tier scaling (applied to enemy HP and contact damage)
	TierStatScale float64 // extra fraction per tier above 1

	// Player
	PlayerRadius     float64
	PlayerHurtWindow float64 // contact-damage cooldown

	// Pickups
	CollectRadius   float64
	MagnetRadius    float64
	MagnetPullSpeed float64

	// Weapons
	WeaponMaxLevel int
	OfferCount     int

	// Progression
	XPBase         float64
	XPGrowth       float64
	KillsPerReward int

	// Synergy
	ArmorPerAllStats float64 // all-stats% to flat armor conversion
	BaseCritDamage   float64 // crit multiplier before bonuses
}

func DefaultConfig() Config {
	return Config{
		SpawnInterval:      1.5,
		SpawnIntervalStep:  0.1,
		SpawnIntervalFloor: 0.5,
		DifficultyStep:     30.0,
		BaseWaveSize:       2,
		MaxWaveSize:        10,
		BaseEnemyCap:       100,
		EnemyCapStep:       20,
		MaxEnemyCap:        300,
		SpawnDistMin:       500,
		SpawnDistMax:       700,

		EliteChanceCeil: 0.30,
		EliteRampTime:   480,

		TierStatScale: 0.25,

		PlayerRadius:     12,
		PlayerHurtWindow: 0.8,

		CollectRadius:   30,
		MagnetRadius:    150,
		MagnetPullSpeed: 320,

		WeaponMaxLevel: 5,
		OfferCount:     3,

		XPBase:         25,
		XPGrowth:       1.28,
		KillsPerReward: 30,

		ArmorPerAllStats: 10,
		BaseCritDamage:   1.5,
	}
}

// XPToNext returns the experience required to clear the given level.
func (c Config) XPToNext(lvl int) float64 {
	if lvl < 1 {
		lvl = 1
	}
	return c.XPBase * math.Pow(c.XPGrowth, float64(lvl-1))
}

// Validate rejects configurations that would corrupt the simulation. This is
// the only fatal error surface of the core; everything at runtime degrades
// per-actor instead.
func (c Config) Validate() error {
	if c.SpawnInterval <= 0 {
		return fmt.Errorf("spawn interval must be positive, got %.3f", c.SpawnInterval)
	}
	if c.SpawnIntervalFloor <= 0 || c.SpawnIntervalFloor > c.SpawnInterval {
		return fmt.Errorf("spawn interval floor must be in (0, %.3f], got %.3f", c.SpawnInterval, c.SpawnIntervalFloor)
	}
	if c.SpawnIntervalStep < 0 {
		return fmt.Errorf("spawn interval step must not be negative, got %.3f", c.SpawnIntervalStep)
	}
	if c.DifficultyStep <= 0 {
		return fmt.Errorf("difficulty step must be positive, got %.3f", c.DifficultyStep)
	}
	if c.BaseWaveSize < 1 || c.MaxWaveSize < c.BaseWaveSize {
		return fmt.Errorf("wave sizes invalid: base=%d max=%d", c.BaseWaveSize, c.MaxWaveSize)
	}
	if c.BaseEnemyCap < 1 || c.MaxEnemyCap < c.BaseEnemyCap {
		return fmt.Errorf("enemy caps invalid: base=%d max=%d", c.BaseEnemyCap, c.MaxEnemyCap)
	}
	if c.SpawnDistMin <= 0 || c.SpawnDistMax < c.SpawnDistMin {
		return fmt.Errorf("spawn distances invalid: min=%.1f max=%.1f", c.SpawnDistMin, c.SpawnDistMax)
	}
	if c.EliteChanceCeil < 0 || c.EliteChanceCeil > 1 {
		return fmt.Errorf("elite chance ceiling must be in [0, 1], got %.3f", c.EliteChanceCeil)
	}
	if c.EliteRampTime <= 0 {
		return fmt.Errorf("elite ramp time must be positive, got %.3f", c.EliteRampTime)
	}
	if c.PlayerHurtWindow < 0 {
		return fmt.Errorf("player hurt window must not be negative, got %.3f", c.PlayerHurtWindow)
	}
	if c.CollectRadius <= 0 || c.MagnetRadius < c.CollectRadius {
		return fmt.Errorf("pickup radii invalid: collect=%.1f magnet=%.1f", c.CollectRadius, c.MagnetRadius)
	}
	if c.MagnetPullSpeed <= 0 {
		return fmt.Errorf("magnet pull speed must be positive, got %.3f", c.MagnetPullSpeed)
	}
	if c.WeaponMaxLevel < 1 {
		return fmt.Errorf("weapon max level must be >= 1, got %d", c.WeaponMaxLevel)
	}
	if c.OfferCount < 1 {
		return fmt.Errorf("offer count must be >= 1, got %d", c.OfferCount)
	}
	if c.XPBase <= 0 || c.XPGrowth < 1 {
		return fmt.Errorf("xp curve invalid: base=%.1f growth=%.3f", c.XPBase, c.XPGrowth)
	}
	if c.KillsPerReward < 1 {
		return fmt.Errorf("kills per reward must be >= 1, got %d", c.KillsPerReward)
	}
	if c.BaseCritDamage < 1 {
		return fmt.Errorf("base crit damage must be >= 1, got %.3f", c.BaseCritDamage)
	}
	return nil
}
