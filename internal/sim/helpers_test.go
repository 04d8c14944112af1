package sim

import (
	"testing"

	"github.com/CrazyForks/wukong-survivors/internal/geom"
	"github.com/CrazyForks/wukong-survivors/internal/level"
)

func testLibrary() *level.Library {
	return &level.Library{
		Enemies: map[string]level.EnemyDef{
			"grunt": {
				Kind: "grunt", Rank: "minion",
				MaxHP: 10, Speed: 0, ContactDamage: 5,
				XPValue: 4, CurrencyValue: 1, Radius: 9, SpawnWeight: 10,
			},
			"brute": {
				Kind: "brute", Rank: "elite",
				MaxHP: 100, Speed: 0, ContactDamage: 20,
				XPValue: 30, CurrencyValue: 10, Radius: 16, SpawnWeight: 5,
			},
		},
	}
}

func testLevel() level.Level {
	return level.Level{
		ID:              "proving_grounds",
		EnemyKinds:      []string{"grunt", "brute"},
		SessionDuration: 600,
		Difficulty:      1,
	}
}

func newTestSession(t *testing.T, seed int64) *Session {
	t.Helper()
	s, err := NewSession(DefaultConfig(), testLibrary(), testLevel(), NewBasicPlayer(geom.Vec2{}, 100), NullStage{}, seed)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s
}

// injectEnemy plants an enemy directly in the spawner roster so tests can
// control positions and stats.
func injectEnemy(s *Session, e *Enemy) *Enemy {
	if e.speedScale == 0 {
		e.speedScale = 1
	}
	e.alive = true
	if e.MaxHP == 0 {
		e.MaxHP = e.HP
	}
	s.spawner.enemies = append(s.spawner.enemies, e)
	return e
}

func newTestContext(now, dt float64, player Player, enemies ...*Enemy) *WeaponContext {
	book := NewSynergyBook(DefaultConfig(), nil)
	book.Recompute(nil)

	for _, e := range enemies {
		if e.speedScale == 0 {
			e.speedScale = 1
		}
		e.alive = true
		if e.MaxHP == 0 {
			e.MaxHP = e.HP
		}
	}

	return &WeaponContext{
		Now:     now,
		DT:      dt,
		Player:  player,
		Targets: enemies,
		Sorted:  enemies,
		Rng:     NewRNG(1),
		Bonus:   book,
		Stage:   NullStage{},
		Sched:   NewScheduler(),
		Damage:  func(e *Enemy, amount float64) { e.TakeDamage(amount) },
	}
}

func approxEqual(a, b float64) bool {
	const eps = 1e-6
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
