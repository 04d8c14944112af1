package sim

import "fmt"

// WeaponKind names a concrete weapon in the catalog.
type WeaponKind string

// Shape is the behavior family a weapon is a parameterization of. Every
// concrete weapon is one of these shapes plus a parameter record; there is
// no per-weapon code.
type Shape int

const (
	ShapeHoming Shape = iota
	ShapeSpread
	ShapeOrbit
	ShapeBurst
	ShapePull
	ShapeBoomerang
	ShapeSustain
	ShapeExecute
)

// ShapeParams is the per-shape tunable record. Only the fields relevant to
// the weapon's shape are read.
type ShapeParams struct {
	Count     int     // projectiles per volley / targets / orbiters
	SpreadArc float64 // radians covered by a spread volley
	Speed     float64 // projectile speed
	Pierce    int
	TTL       float64
	Radius    float64 // effect / orbit / pull radius

	OrbitSpeed float64 // radians per second
	HitEvery   float64 // orbiter re-hit interval

	Knockback    float64 // burst displacement
	SlowFactor   float64 // burst debuff speed multiplier
	SlowDuration float64

	PullStrength float64 // displacement toward the player per fire
	KillRange    float64 // pull damage proximity / boomerang destroy threshold

	ReturnDelay float64 // boomerang outbound time

	Heal       float64 // sustain heal per fire
	MaxHPBonus float64 // sustain permanent max HP raise per qualifying level

	TelegraphDelay float64 // execute wind-up
	ExecuteBonus   float64 // execute damage multiplier
}

// UpgradeStep is one level-indexed stat change. All deltas improve the
// weapon; nothing ever regresses on upgrade.
type UpgradeStep struct {
	Damage      float64 // additive
	CooldownMul float64 // multiplicative, (0, 1]; 0 means unchanged
	Count       int     // additive
	Radius      float64 // additive
	Pierce      int     // additive
	Speed       float64 // additive projectile speed
	Heal        float64 // additive (sustain)
	MaxHPBonus  float64 // additive pending max-HP raise (sustain)
}

// WeaponSpec is the immutable parameter record a weapon is built from.
type WeaponSpec struct {
	Kind        WeaponKind
	Name        string
	Shape       Shape
	Damage      float64
	Cooldown    float64
	Range       float64 // targeting range; 0 means unlimited
	OfferWeight float64
	Params      ShapeParams
	Steps       []UpgradeStep // applied at levels 2..len+1
}

// Validate rejects specs that would corrupt the simulation.
func (s WeaponSpec) Validate() error {
	if s.Kind == "" {
		return fmt.Errorf("weapon spec missing kind")
	}
	if s.Cooldown <= 0 {
		return fmt.Errorf("weapon %s: cooldown must be positive, got %.3f", s.Kind, s.Cooldown)
	}
	if s.Damage < 0 {
		return fmt.Errorf("weapon %s: damage must not be negative, got %.3f", s.Kind, s.Damage)
	}
	if s.OfferWeight < 0 {
		return fmt.Errorf("weapon %s: offer weight must not be negative, got %.3f", s.Kind, s.OfferWeight)
	}
	for i, step := range s.Steps {
		if step.CooldownMul < 0 || step.CooldownMul > 1 {
			return fmt.Errorf("weapon %s: step %d cooldown multiplier must be in (0, 1], got %.3f", s.Kind, i, step.CooldownMul)
		}
		if step.Damage < 0 || step.Radius < 0 || step.Count < 0 || step.Pierce < 0 {
			return fmt.Errorf("weapon %s: step %d would regress stats", s.Kind, i)
		}
	}
	return nil
}

// WeaponContext is the per-tick view a weapon updates against. Damage is the
// single mutation entry point into enemies; weapons never touch HP directly.
type WeaponContext struct {
	Now float64
	DT  float64

	Player  Player
	Targets []*Enemy // live, unsorted
	Sorted  []*Enemy // ascending distance to the player, stable

	Rng   *RNG
	Bonus *SynergyBook
	Stage Stage
	Sched *Scheduler

	Damage func(e *Enemy, amount float64)
}

// Weapon is one equipped attack module: a spec instance with a level and
// cooldown state. Concrete behavior lives in the shape dispatch (fire.go).
type Weapon struct {
	spec WeaponSpec

	level     int
	maxLevel  int
	damage    float64
	cooldown  float64
	rangeR    float64
	params    ShapeParams
	lastFired float64

	projectiles []*Projectile

	// sustain bookkeeping
	pendingMaxHP float64

	cleared bool
}

func NewWeapon(spec WeaponSpec, maxLevel int) (*Weapon, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if maxLevel < 1 {
		maxLevel = 1
	}
	return &Weapon{
		spec:     spec,
		level:    1,
		maxLevel: maxLevel,
		damage:   spec.Damage,
		cooldown: spec.Cooldown,
		rangeR:   spec.Range,
		params:   spec.Params,
	}, nil
}

func (w *Weapon) Kind() WeaponKind  { return w.spec.Kind }
func (w *Weapon) Name() string      { return w.spec.Name }
func (w *Weapon) Level() int        { return w.level }
func (w *Weapon) MaxLevel() int     { return w.maxLevel }
func (w *Weapon) AtMax() bool       { return w.level >= w.maxLevel }
func (w *Weapon) Damage() float64   { return w.damage }
func (w *Weapon) Cooldown() float64 { return w.cooldown }

// Upgrade raises the level by one and applies that level's stat step.
// Upgrading past max level is a no-op.
func (w *Weapon) Upgrade() bool {
	if w.AtMax() || w.cleared {
		return false
	}
	w.level++

	idx := w.level - 2
	if idx < 0 || idx >= len(w.spec.Steps) {
		return true
	}
	step := w.spec.Steps[idx]

	w.damage += step.Damage
	if step.CooldownMul > 0 {
		w.cooldown *= step.CooldownMul
	}
	w.params.Count += step.Count
	w.params.Radius += step.Radius
	w.params.Pierce += step.Pierce
	w.params.Speed += step.Speed
	w.params.Heal += step.Heal
	w.pendingMaxHP += step.MaxHPBonus
	return true
}

// Update ticks cooldown state, advances owned projectiles and fires when
// ready. With no eligible target a ready weapon simply stays ready.
func (w *Weapon) Update(ctx *WeaponContext) {
	if w.cleared {
		return
	}

	w.syncOrbiters(ctx)

	live := w.projectiles[:0]
	for _, p := range w.projectiles {
		p.update(ctx)
		if p.Alive() {
			live = append(live, p)
		}
	}
	w.projectiles = live

	cd := w.cooldown / (1 + ctx.Bonus.AttackSpeedPct()/100)
	if ctx.Now-w.lastFired < cd {
		return
	}

	if w.fire(ctx) {
		w.lastFired = ctx.Now
	}
}

// Projectiles exposes the weapon's live effects for the collision pass.
func (w *Weapon) Projectiles() []*Projectile { return w.projectiles }

// Clear destroys every live effect and makes the weapon inert.
func (w *Weapon) Clear(stage Stage) {
	for _, p := range w.projectiles {
		p.destroy(stage)
	}
	w.projectiles = nil
	w.cleared = true
}

// effectiveDamage applies synergy and a crit roll to the base amount.
func (w *Weapon) effectiveDamage(ctx *WeaponContext, base float64) float64 {
	dmg := base * (1 + ctx.Bonus.DamagePct()/100)
	if rate := ctx.Bonus.CritRate(); rate > 0 && ctx.Rng.Float64()*100 < rate {
		dmg *= ctx.Bonus.CritMultiplier()
	}
	return dmg
}

// effectiveRange applies the synergy range bonus. Zero means unlimited.
func (w *Weapon) effectiveRange(ctx *WeaponContext) float64 {
	if w.rangeR <= 0 {
		return 0
	}
	return w.rangeR * (1 + ctx.Bonus.RangePct()/100)
}

func (w *Weapon) effectiveRadius(ctx *WeaponContext) float64 {
	return w.params.Radius * (1 + ctx.Bonus.RangePct()/100)
}
