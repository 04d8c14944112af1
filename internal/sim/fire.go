package sim

import (
	"math"

	"github.com/CrazyForks/wukong-survivors/internal/geom"
)

// fire dispatches on the weapon's shape and reports whether anything
// actually fired; the cooldown timer only resets on a real fire. No eligible
// target is a normal no-op, never an error.
func (w *Weapon) fire(ctx *WeaponContext) bool {
	switch w.spec.Shape {
	case ShapeHoming:
		return w.fireHoming(ctx)
	case ShapeSpread:
		return w.fireSpread(ctx)
	case ShapeOrbit:
		// Orbiters persist; "firing" is only meaningful at creation, which
		// syncOrbiters handles. Nothing to do on cooldown.
		return false
	case ShapeBurst:
		return w.fireBurst(ctx)
	case ShapePull:
		return w.firePull(ctx)
	case ShapeBoomerang:
		return w.fireBoomerang(ctx)
	case ShapeSustain:
		return w.fireSustain(ctx)
	case ShapeExecute:
		return w.fireExecute(ctx)
	}
	return false
}

// targetsInRange returns up to max of the nearest live targets, honoring the
// weapon's effective range. max <= 0 means no limit.
func (w *Weapon) targetsInRange(ctx *WeaponContext, max int) []*Enemy {
	rng := w.effectiveRange(ctx)
	origin := ctx.Player.Position()

	var out []*Enemy
	for _, e := range ctx.Sorted {
		if rng > 0 && geom.Dist(origin, e.Pos) > rng {
			break // sorted ascending; nothing further is in range
		}
		out = append(out, e)
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out
}

func (w *Weapon) spawnProjectile(ctx *WeaponContext, dir geom.Vec2, damage float64) *Projectile {
	p := &Projectile{
		Pos:    ctx.Player.Position(),
		Vel:    dir.Mul(w.params.Speed),
		Damage: damage,
		Pierce: w.params.Pierce,
		TTL:    w.params.TTL,
		Radius: 6,
		mode:   projLinear,
		alive:  true,
	}
	p.actor = ctx.Stage.Spawn(string(w.spec.Kind)+"_shot", p.Pos)
	w.projectiles = append(w.projectiles, p)
	return p
}

// Homing/nearest-target: straight-line shots at the N closest targets.
func (w *Weapon) fireHoming(ctx *WeaponContext) bool {
	count := w.params.Count
	if count < 1 {
		count = 1
	}
	targets := w.targetsInRange(ctx, count)
	if len(targets) == 0 {
		return false
	}

	dmg := w.effectiveDamage(ctx, w.damage)
	origin := ctx.Player.Position()
	for _, t := range targets {
		dir := t.Pos.Sub(origin).Norm()
		if dir == (geom.Vec2{}) {
			dir = geom.Vec2{X: 1}
		}
		w.spawnProjectile(ctx, dir, dmg)
	}
	return true
}

// Multi-projectile spread: a fan of shots around the nearest target's
// bearing.
func (w *Weapon) fireSpread(ctx *WeaponContext) bool {
	targets := w.targetsInRange(ctx, 1)
	if len(targets) == 0 {
		return false
	}

	origin := ctx.Player.Position()
	base := origin.AngleTo(targets[0].Pos)
	count := w.params.Count
	if count < 1 {
		count = 1
	}

	dmg := w.effectiveDamage(ctx, w.damage)
	if count == 1 {
		w.spawnProjectile(ctx, geom.FromAngle(base), dmg)
		return true
	}

	arc := w.params.SpreadArc
	for i := range count {
		ang := base - arc/2 + arc*float64(i)/float64(count-1)
		w.spawnProjectile(ctx, geom.FromAngle(ang), dmg)
	}
	return true
}

// syncOrbiters keeps the orbiting sub-actor count in line with the weapon
// level. Orbiters are persistent projectiles with interval re-hits.
func (w *Weapon) syncOrbiters(ctx *WeaponContext) {
	if w.spec.Shape != ShapeOrbit {
		return
	}

	want := w.params.Count
	if want < 1 {
		want = 1
	}
	// Orbiter damage carries the synergy multiplier but no crit roll; crit
	// is rolled per volley and orbiters never re-fire.
	dmg := w.damage * (1 + ctx.Bonus.DamagePct()/100)

	// Keep existing orbiters in step with upgraded radius/speed and the
	// current synergy totals.
	for _, p := range w.projectiles {
		p.orbitRadius = w.effectiveRadius(ctx)
		p.orbitSpeed = w.params.OrbitSpeed
		p.Damage = dmg
	}

	have := len(w.projectiles)
	if have >= want {
		return
	}

	for i := have; i < want; i++ {
		p := &Projectile{
			Damage:      dmg,
			Pierce:      -1,
			TTL:         -1,
			Radius:      10,
			mode:        projOrbit,
			orbitRadius: w.effectiveRadius(ctx),
			orbitSpeed:  w.params.OrbitSpeed,
			hitEvery:    w.params.HitEvery,
			alive:       true,
		}
		p.actor = ctx.Stage.Spawn(string(w.spec.Kind)+"_orb", ctx.Player.Position())
		w.projectiles = append(w.projectiles, p)
	}
	w.respaceOrbiters()
}

// respaceOrbiters distributes orbiters evenly around the circle.
func (w *Weapon) respaceOrbiters() {
	n := len(w.projectiles)
	if n == 0 {
		return
	}
	for i, p := range w.projectiles {
		p.orbitAngle = 2 * math.Pi * float64(i) / float64(n)
	}
}

// Area burst: instant radial hit, then either knockback or a timed slow that
// restores itself through the scheduler.
func (w *Weapon) fireBurst(ctx *WeaponContext) bool {
	radius := w.effectiveRadius(ctx)
	origin := ctx.Player.Position()

	hit := false
	dmg := w.effectiveDamage(ctx, w.damage)
	for _, e := range ctx.Sorted {
		if geom.Dist(origin, e.Pos) > radius {
			break
		}
		hit = true
		ctx.Damage(e, dmg)
		if !e.Alive() {
			continue
		}
		if w.params.Knockback > 0 {
			dir := e.Pos.Sub(origin).Norm()
			e.Pos = e.Pos.Add(dir.Mul(w.params.Knockback))
		}
		if w.params.SlowFactor > 0 {
			dur := w.params.SlowDuration * (1 + ctx.Bonus.ControlDurationPct()/100)
			e.Slow(w.params.SlowFactor, dur, ctx.Now, ctx.Sched)
		}
	}
	return hit
}

// Pull: drag targets toward the player, damaging those that arrive within
// the kill range.
func (w *Weapon) firePull(ctx *WeaponContext) bool {
	radius := w.effectiveRadius(ctx)
	origin := ctx.Player.Position()

	hit := false
	dmg := w.effectiveDamage(ctx, w.damage)
	for _, e := range ctx.Sorted {
		if geom.Dist(origin, e.Pos) > radius {
			break
		}
		hit = true

		toPlayer := origin.Sub(e.Pos)
		pull := w.params.PullStrength
		if toPlayer.Len() < pull {
			pull = toPlayer.Len()
		}
		e.Pos = e.Pos.Add(toPlayer.Norm().Mul(pull))

		if geom.Dist(origin, e.Pos) <= w.params.KillRange {
			ctx.Damage(e, dmg)
		}
	}
	return hit
}

// Channeled return-projectile: flies out at the nearest target, then after
// its delay re-seeks the player's current position every tick until it
// arrives or times out.
func (w *Weapon) fireBoomerang(ctx *WeaponContext) bool {
	targets := w.targetsInRange(ctx, 1)
	if len(targets) == 0 {
		return false
	}

	origin := ctx.Player.Position()
	dir := targets[0].Pos.Sub(origin).Norm()
	if dir == (geom.Vec2{}) {
		dir = geom.Vec2{X: 1}
	}

	p := w.spawnProjectile(ctx, dir, w.effectiveDamage(ctx, w.damage))
	p.mode = projBoomerang
	p.returnAt = ctx.Now + w.params.ReturnDelay
	p.destroyWithin = w.params.KillRange
	return true
}

// Sustain: heal the player (capped at max), optionally damage nearby
// targets, and apply any pending permanent max-HP raise exactly once.
func (w *Weapon) fireSustain(ctx *WeaponContext) bool {
	if w.pendingMaxHP > 0 {
		ctx.Player.SetMaxHP(ctx.Player.MaxHP() + w.pendingMaxHP)
		w.pendingMaxHP = 0
	}

	healed := false
	if w.params.Heal > 0 && ctx.Player.HP() < ctx.Player.MaxHP() {
		ctx.Player.SetHP(ctx.Player.HP() + w.params.Heal)
		healed = true
	}

	if w.damage > 0 && w.params.Radius > 0 {
		radius := w.effectiveRadius(ctx)
		origin := ctx.Player.Position()
		dmg := w.effectiveDamage(ctx, w.damage)
		for _, e := range ctx.Sorted {
			if geom.Dist(origin, e.Pos) > radius {
				break
			}
			ctx.Damage(e, dmg)
			healed = true
		}
	}
	return healed
}

// Lock-and-execute: telegraph, then strike the highest-health target for
// bonus damage. The strike checks the target's liveness when it lands.
func (w *Weapon) fireExecute(ctx *WeaponContext) bool {
	candidates := w.targetsInRange(ctx, 0)
	if len(candidates) == 0 {
		return false
	}

	target := candidates[0]
	for _, e := range candidates[1:] {
		if e.HP > target.HP {
			target = e
		}
	}

	dmg := w.effectiveDamage(ctx, w.damage*w.params.ExecuteBonus)
	damage := ctx.Damage
	ctx.Sched.After(ctx.Now, w.params.TelegraphDelay, target.Liveness(), func() {
		damage(target, dmg)
	})
	return true
}
