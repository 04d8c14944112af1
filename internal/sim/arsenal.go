package sim

import (
	"fmt"
	"sort"

	"github.com/CrazyForks/wukong-survivors/internal/geom"
)

// OfferType distinguishes leveling an equipped weapon from equipping a new
// one.
type OfferType int

const (
	OfferUpgrade OfferType = iota
	OfferNew
)

func (t OfferType) String() string {
	if t == OfferNew {
		return "new"
	}
	return "upgrade"
}

// Offer is one entry of a level-up or reward choice. Display text is
// resolved externally by kind.
type Offer struct {
	Type  OfferType
	Kind  WeaponKind
	Level int // resulting weapon level when accepted
}

// Arsenal owns the equipped weapon roster: it feeds each weapon the sorted
// target list every tick and builds weighted upgrade offers.
type Arsenal struct {
	cfg     Config
	rng     *RNG
	weapons []*Weapon // insertion order
}

func NewArsenal(cfg Config, rng *RNG) *Arsenal {
	return &Arsenal{cfg: cfg, rng: rng}
}

// AddWeapon instantiates and registers a catalog weapon. Equipping an
// already-owned kind is rejected; offers never propose it.
func (a *Arsenal) AddWeapon(kind WeaponKind) error {
	if a.Weapon(kind) != nil {
		return fmt.Errorf("weapon %s already equipped", kind)
	}
	spec, ok := CatalogSpec(kind)
	if !ok {
		return fmt.Errorf("unknown weapon kind %s", kind)
	}
	w, err := NewWeapon(spec, a.cfg.WeaponMaxLevel)
	if err != nil {
		return err
	}
	a.weapons = append(a.weapons, w)
	return nil
}

// Weapon returns the equipped instance of kind, or nil.
func (a *Arsenal) Weapon(kind WeaponKind) *Weapon {
	for _, w := range a.weapons {
		if w.Kind() == kind {
			return w
		}
	}
	return nil
}

// Weapons returns the roster in insertion order.
func (a *Arsenal) Weapons() []*Weapon { return a.weapons }

// Kinds returns the equipped kind set in insertion order.
func (a *Arsenal) Kinds() []WeaponKind {
	out := make([]WeaponKind, len(a.weapons))
	for i, w := range a.weapons {
		out[i] = w.Kind()
	}
	return out
}

// Update filters dead targets, sorts the survivors by ascending distance to
// the player (stable, ties keep roster order) and drives every weapon. One
// weapon failing to find a target never blocks the rest.
func (a *Arsenal) Update(ctx *WeaponContext) {
	live := make([]*Enemy, 0, len(ctx.Targets))
	for _, e := range ctx.Targets {
		if e.Alive() {
			live = append(live, e)
		}
	}

	origin := ctx.Player.Position()
	sorted := make([]*Enemy, len(live))
	copy(sorted, live)
	sort.SliceStable(sorted, func(i, j int) bool {
		return geom.Dist2(origin, sorted[i].Pos) < geom.Dist2(origin, sorted[j].Pos)
	})

	ctx.Targets = live
	ctx.Sorted = sorted

	for _, w := range a.weapons {
		w.Update(ctx)
	}
}

// Projectiles aggregates every weapon's live effects for the collision pass.
func (a *Arsenal) Projectiles() []*Projectile {
	var out []*Projectile
	for _, w := range a.weapons {
		for _, p := range w.Projectiles() {
			if p.Alive() {
				out = append(out, p)
			}
		}
	}
	return out
}

// UpgradeOptions builds the offer pool (one upgrade entry per equipped
// sub-max weapon, one new entry per unowned catalog kind) and draws the
// fixed-size offer set by weighted sampling without replacement.
func (a *Arsenal) UpgradeOptions() []Offer {
	var pool []Offer
	var weights []float64

	for _, w := range a.weapons {
		if w.AtMax() {
			continue
		}
		spec, _ := CatalogSpec(w.Kind())
		pool = append(pool, Offer{Type: OfferUpgrade, Kind: w.Kind(), Level: w.Level() + 1})
		weights = append(weights, spec.OfferWeight)
	}

	for _, kind := range CatalogKinds() {
		if a.Weapon(kind) != nil {
			continue
		}
		spec, _ := CatalogSpec(kind)
		pool = append(pool, Offer{Type: OfferNew, Kind: kind, Level: 1})
		weights = append(weights, spec.OfferWeight)
	}

	picks := a.rng.SampleWeighted(weights, a.cfg.OfferCount)
	out := make([]Offer, 0, len(picks))
	for _, i := range picks {
		out = append(out, pool[i])
	}
	return out
}

// ApplyOffer accepts one offer.
func (a *Arsenal) ApplyOffer(o Offer) error {
	switch o.Type {
	case OfferNew:
		return a.AddWeapon(o.Kind)
	case OfferUpgrade:
		w := a.Weapon(o.Kind)
		if w == nil {
			return fmt.Errorf("upgrade offer for unequipped weapon %s", o.Kind)
		}
		w.Upgrade()
		return nil
	}
	return fmt.Errorf("unknown offer type %d", o.Type)
}

// Clear destroys every weapon's live effects and empties the roster.
func (a *Arsenal) Clear(stage Stage) {
	for _, w := range a.weapons {
		w.Clear(stage)
	}
	a.weapons = nil
}
