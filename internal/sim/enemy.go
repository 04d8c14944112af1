package sim

import "github.com/CrazyForks/wukong-survivors/internal/geom"

// Rank is the enemy tier.
type Rank int

const (
	RankMinion Rank = iota
	RankElite
)

func (r Rank) String() string {
	if r == RankElite {
		return "elite"
	}
	return "minion"
}

// Enemy is one hostile unit. The spawner owns the roster exclusively; every
// other component holds only transient per-tick references. Health is
// mutated through TakeDamage alone.
type Enemy struct {
	ID   int
	Kind string
	Rank Rank

	Pos geom.Vec2
	Vel geom.Vec2

	Radius        float64
	MaxHP         float64
	HP            float64
	Speed         float64
	ContactDamage float64
	XPValue       float64
	CurrencyValue float64

	// speedScale carries timed slow debuffs; restore is scheduled, never
	// applied from another goroutine.
	speedScale float64
	slowToken  uint64

	actor ActorHandle
	alive bool
}

func (e *Enemy) Alive() bool { return e.alive }

// Liveness returns the probe scheduled callbacks must check before touching
// this enemy.
func (e *Enemy) Liveness() Liveness {
	return func() bool { return e.alive }
}

// Update sets velocity straight toward the player (pure seek) and
// integrates. Dead enemies do not move.
func (e *Enemy) Update(dt float64, playerPos geom.Vec2) {
	if !e.alive {
		return
	}
	dir := playerPos.Sub(e.Pos).Norm()
	e.Vel = dir.Mul(e.Speed * e.speedScale)
	e.Pos = e.Pos.Add(e.Vel.Mul(dt))
}

// TakeDamage applies amount and reports whether the hit was lethal. Death
// happens exactly once: calls after death are no-ops, so two projectiles
// landing in the same tick cannot double-kill.
func (e *Enemy) TakeDamage(amount float64) bool {
	if !e.alive {
		return false
	}
	if amount < 0 {
		amount = 0
	}
	e.HP -= amount
	if e.HP > 0 {
		return false
	}
	e.HP = 0
	e.alive = false
	return true
}

// Slow applies a timed speed debuff. The restore is scheduled on the session
// clock and guarded both by liveness and a token, so an older slow expiring
// cannot cancel a newer one.
func (e *Enemy) Slow(factor, duration, now float64, sched *Scheduler) {
	if factor <= 0 || factor >= 1 || duration <= 0 {
		return
	}
	e.speedScale = factor
	e.slowToken++
	token := e.slowToken
	sched.After(now, duration, e.Liveness(), func() {
		if e.slowToken == token {
			e.speedScale = 1
		}
	})
}

// SpeedScale exposes the current debuff factor (1 when unimpaired).
func (e *Enemy) SpeedScale() float64 { return e.speedScale }
