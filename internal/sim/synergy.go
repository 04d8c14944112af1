package sim

// BonusVector is the additive bonus a synergy rule grants. Percentages are
// percent points (10 = +10%); Armor and HealthRegen are flat.
type BonusVector struct {
	DamagePct          float64
	AttackSpeedPct     float64
	RangePct           float64
	CritRatePct        float64
	CritDamagePct      float64
	Armor              float64
	AllStatsPct        float64
	HealthRegen        float64 // HP per second
	ControlDurationPct float64
}

func (b *BonusVector) add(o BonusVector) {
	b.DamagePct += o.DamagePct
	b.AttackSpeedPct += o.AttackSpeedPct
	b.RangePct += o.RangePct
	b.CritRatePct += o.CritRatePct
	b.CritDamagePct += o.CritDamagePct
	b.Armor += o.Armor
	b.AllStatsPct += o.AllStatsPct
	b.HealthRegen += o.HealthRegen
	b.ControlDurationPct += o.ControlDurationPct
}

// SynergyRule is an immutable mapping from a required kind set to a bonus.
// AnyOther relaxes the requirement to "Requires[0] plus any other equipped
// weapon".
type SynergyRule struct {
	ID       string
	Name     string
	Requires []WeaponKind
	AnyOther bool
	Bonus    BonusVector
}

func (r SynergyRule) matches(owned map[WeaponKind]bool) bool {
	if r.AnyOther {
		if len(r.Requires) != 1 || !owned[r.Requires[0]] {
			return false
		}
		return len(owned) >= 2
	}
	for _, k := range r.Requires {
		if !owned[k] {
			return false
		}
	}
	return len(r.Requires) > 0
}

// SynergyBook evaluates the rule table against the equipped kind set. It is
// a pure function of that set: Recompute from the same kinds, in any order,
// always yields the same totals.
type SynergyBook struct {
	cfg    Config
	rules  []SynergyRule
	active []SynergyRule
	total  BonusVector
}

func NewSynergyBook(cfg Config, rules []SynergyRule) *SynergyBook {
	return &SynergyBook{cfg: cfg, rules: rules}
}

// Recompute re-evaluates every rule against the equipped set. Called on
// every equip change.
func (b *SynergyBook) Recompute(kinds []WeaponKind) {
	owned := make(map[WeaponKind]bool, len(kinds))
	for _, k := range kinds {
		owned[k] = true
	}

	b.active = b.active[:0]
	b.total = BonusVector{}
	for _, r := range b.rules {
		if r.matches(owned) {
			b.active = append(b.active, r)
			b.total.add(r.Bonus)
		}
	}
}

// Active returns the currently matching rules.
func (b *SynergyBook) Active() []SynergyRule { return b.active }

// Clear resets the active set.
func (b *SynergyBook) Clear() {
	b.active = nil
	b.total = BonusVector{}
}

// Per-dimension getters. All-stats folds into every dimension; its armor
// contribution uses the configured flat conversion.

func (b *SynergyBook) DamagePct() float64      { return b.total.DamagePct + b.total.AllStatsPct }
func (b *SynergyBook) AttackSpeedPct() float64 { return b.total.AttackSpeedPct + b.total.AllStatsPct }
func (b *SynergyBook) RangePct() float64       { return b.total.RangePct + b.total.AllStatsPct }
func (b *SynergyBook) CritRate() float64       { return b.total.CritRatePct + b.total.AllStatsPct }
func (b *SynergyBook) ControlDurationPct() float64 {
	return b.total.ControlDurationPct + b.total.AllStatsPct
}

func (b *SynergyBook) Armor() float64 {
	return b.total.Armor + b.total.AllStatsPct*b.cfg.ArmorPerAllStats
}

func (b *SynergyBook) HealthRegen() float64 { return b.total.HealthRegen }

// CritMultiplier is the damage factor applied on a critical hit.
func (b *SynergyBook) CritMultiplier() float64 {
	return b.cfg.BaseCritDamage + (b.total.CritDamagePct+b.total.AllStatsPct)/100
}
