package sim

import (
	"testing"

	"github.com/CrazyForks/wukong-survivors/internal/geom"
)

func newTestSpawner(cfg Config, seed int64) (*Spawner, *Stats) {
	stats := &Stats{}
	return NewSpawner(cfg, testLibrary(), testLevel(), NewRNG(seed), NullStage{}, stats), stats
}

func TestSpawnerFirstWaveCount(t *testing.T) {
	cfg := DefaultConfig()
	sp, stats := newTestSpawner(cfg, 7)

	// Default cadence fires once inside the first 1.6 seconds.
	player := geom.Vec2{}
	for range 32 {
		sp.Update(0.05, player)
	}

	if got := sp.Population(); got != cfg.BaseWaveSize {
		t.Fatalf("population after first cadence window = %d, want %d", got, cfg.BaseWaveSize)
	}
	if stats.EnemiesSpawned != cfg.BaseWaveSize {
		t.Fatalf("spawn counter = %d, want %d", stats.EnemiesSpawned, cfg.BaseWaveSize)
	}
}

func TestSpawnerStagedSpawnsJoinNextTick(t *testing.T) {
	sp, _ := newTestSpawner(DefaultConfig(), 7)
	player := geom.Vec2{}

	// Cross the cadence in one update: the wave is staged, not yet live.
	sp.Update(1.5, player)
	if len(sp.Enemies()) != 0 {
		t.Fatalf("just-spawned enemies already in live roster: %d", len(sp.Enemies()))
	}
	if sp.Population() == 0 {
		t.Fatal("no spawns staged after crossing the cadence")
	}

	staged := sp.Population()
	sp.Update(0.05, player)
	if len(sp.Enemies()) != staged {
		t.Fatalf("live roster = %d after merge, want %d", len(sp.Enemies()), staged)
	}
}

func TestSpawnerRingPlacement(t *testing.T) {
	cfg := DefaultConfig()
	sp, _ := newTestSpawner(cfg, 3)
	player := geom.Vec2{X: 40, Y: -25}

	sp.Update(1.5, player)
	sp.Update(0.05, player)

	if len(sp.Enemies()) == 0 {
		t.Fatal("expected spawns")
	}
	for _, e := range sp.Enemies() {
		d := geom.Dist(e.Pos, player)
		if d < cfg.SpawnDistMin-1 || d > cfg.SpawnDistMax+1 {
			t.Fatalf("enemy %s spawned at distance %v, want within [%v, %v]",
				e.Kind, d, cfg.SpawnDistMin, cfg.SpawnDistMax)
		}
	}
}

func TestSpawnerHonorsPopulationCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseEnemyCap = 5
	cfg.EnemyCapStep = 0
	cfg.MaxEnemyCap = 5
	cfg.BaseWaveSize = 4
	cfg.MaxWaveSize = 10
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}

	sp, _ := newTestSpawner(cfg, 11)
	player := geom.Vec2{}
	for range 400 {
		sp.Update(0.1, player)
		if sp.Population() > 5 {
			t.Fatalf("population %d exceeds cap 5", sp.Population())
		}
	}
	if sp.Population() != 5 {
		t.Fatalf("population settled at %d, want cap 5", sp.Population())
	}
}

func TestSpawnerRankFallback(t *testing.T) {
	// A level whose kind list has no elites must still fill elite draws.
	lib := testLibrary()
	lvl := testLevel()
	lvl.EnemyKinds = []string{"grunt"}

	cfg := DefaultConfig()
	sp := NewSpawner(cfg, lib, lvl, NewRNG(5), NullStage{}, &Stats{})

	// Push elapsed far enough that the elite chance is at its ceiling.
	player := geom.Vec2{}
	for range 200 {
		sp.Update(0.5, player)
	}

	if sp.Population() == 0 {
		t.Fatal("no spawns despite elite draws on an all-minion level")
	}
	for _, e := range sp.Enemies() {
		if e.Kind != "grunt" {
			t.Fatalf("unexpected kind %q on a grunt-only level", e.Kind)
		}
	}
}

func TestSpawnerTierScaling(t *testing.T) {
	cfg := DefaultConfig()
	lib := testLibrary()
	lvl := testLevel()
	lvl.Difficulty = 3

	sp := NewSpawner(cfg, lib, lvl, NewRNG(9), NullStage{}, &Stats{})
	player := geom.Vec2{}
	sp.Update(1.5, player)
	sp.Update(0.05, player)

	scale := 1 + cfg.TierStatScale*2
	for _, e := range sp.Enemies() {
		def := lib.Enemies[e.Kind]
		if !approxEqual(e.MaxHP, def.MaxHP*scale) {
			t.Fatalf("%s MaxHP = %v, want %v", e.Kind, e.MaxHP, def.MaxHP*scale)
		}
		if !approxEqual(e.ContactDamage, def.ContactDamage*scale) {
			t.Fatalf("%s ContactDamage = %v, want %v", e.Kind, e.ContactDamage, def.ContactDamage*scale)
		}
		if !approxEqual(e.XPValue, def.XPValue) {
			t.Fatalf("%s XPValue scaled, want flat %v", e.Kind, def.XPValue)
		}
	}
}

func TestSpawnerDeadEnemiesLeaveRoster(t *testing.T) {
	sp, _ := newTestSpawner(DefaultConfig(), 7)
	player := geom.Vec2{}
	sp.Update(1.5, player)
	sp.Update(0.05, player)

	before := len(sp.Enemies())
	if before == 0 {
		t.Fatal("expected spawns")
	}
	sp.Enemies()[0].TakeDamage(1e9)

	sp.Update(0.05, player)
	if got := len(sp.Enemies()); got != before-1 {
		t.Fatalf("roster = %d after a death, want %d", got, before-1)
	}
}
