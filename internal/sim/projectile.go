package sim

import "github.com/CrazyForks/wukong-survivors/internal/geom"

type projectileMode int

const (
	projLinear projectileMode = iota
	projOrbit
	projBoomerang
)

// Projectile is a transient effect owned exclusively by the weapon that
// created it. It dies on pierce exhaustion, timeout, or a manager-wide
// clear, and becomes inert the moment it dies.
type Projectile struct {
	Pos    geom.Vec2
	Vel    geom.Vec2
	Damage float64
	Pierce int     // remaining targets; <0 means unlimited
	TTL    float64 // seconds; <0 means no timeout
	Radius float64

	mode projectileMode

	// orbit
	orbitAngle  float64
	orbitRadius float64
	orbitSpeed  float64
	hitEvery    float64
	lastHitAt   map[int]float64 // enemy ID -> session time of last tick hit

	// boomerang
	returnAt      float64 // session time the return leg starts
	returning     bool
	destroyWithin float64

	actor ActorHandle
	alive bool
}

func (p *Projectile) Alive() bool { return p.alive }

func (p *Projectile) Liveness() Liveness {
	return func() bool { return p.alive }
}

func (p *Projectile) destroy(stage Stage) {
	if !p.alive {
		return
	}
	p.alive = false
	stage.Destroy(p.actor)
}

// update advances the projectile one tick. Orbiters track the player,
// boomerangs switch to re-seeking the player's current position after their
// return delay.
func (p *Projectile) update(ctx *WeaponContext) {
	if !p.alive {
		return
	}

	switch p.mode {
	case projOrbit:
		p.orbitAngle += p.orbitSpeed * ctx.DT
		center := ctx.Player.Position()
		p.Pos = center.Add(geom.FromAngle(p.orbitAngle).Mul(p.orbitRadius))

	case projBoomerang:
		if !p.returning && ctx.Now >= p.returnAt {
			p.returning = true
		}
		if p.returning {
			target := ctx.Player.Position()
			if geom.Dist(p.Pos, target) <= p.destroyWithin {
				p.destroy(ctx.Stage)
				return
			}
			speed := p.Vel.Len()
			p.Vel = target.Sub(p.Pos).Norm().Mul(speed)
		}
		p.Pos = p.Pos.Add(p.Vel.Mul(ctx.DT))

	default:
		p.Pos = p.Pos.Add(p.Vel.Mul(ctx.DT))
	}

	if p.TTL >= 0 {
		p.TTL -= ctx.DT
		if p.TTL <= 0 {
			p.destroy(ctx.Stage)
			return
		}
	}

	ctx.Stage.Move(p.actor, p.Pos)
}

// canHit reports whether the projectile may damage this enemy now. Linear
// projectiles hit each enemy at most once over their lifetime; orbiters
// re-hit on an interval (continuous-overlap damage).
func (p *Projectile) canHit(id int, now float64) bool {
	if !p.alive {
		return false
	}
	last, seen := p.lastHitAt[id]
	if !seen {
		return true
	}
	if p.mode == projOrbit && p.hitEvery > 0 {
		return now-last >= p.hitEvery
	}
	return false
}

// markHit records a landed hit and reports whether the projectile survives.
func (p *Projectile) markHit(id int, now float64, stage Stage) bool {
	if p.lastHitAt == nil {
		p.lastHitAt = make(map[int]float64, 4)
	}
	p.lastHitAt[id] = now

	if p.Pierce < 0 {
		return true
	}
	p.Pierce--
	if p.Pierce <= 0 {
		p.destroy(stage)
		return false
	}
	return true
}
