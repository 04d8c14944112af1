package sim

// Weapon kind tags. Every kind is a parameterization of one behavior shape;
// adding a weapon means adding a spec here, never new code.
const (
	KindIronStaff    WeaponKind = "iron_staff"
	KindWindBlade    WeaponKind = "wind_blade"
	KindThornSpike   WeaponKind = "thorn_spike"
	KindPlumNeedles  WeaponKind = "plum_needles"
	KindFireCrowFan  WeaponKind = "fire_crow_fan"
	KindPrayerBeads  WeaponKind = "prayer_beads"
	KindMoonRing     WeaponKind = "moon_ring"
	KindThunderSeal  WeaponKind = "thunder_seal"
	KindFrostBell    WeaponKind = "frost_bell"
	KindSpiritGourd  WeaponKind = "spirit_gourd"
	KindSkyChakram   WeaponKind = "sky_chakram"
	KindGinsengRoot  WeaponKind = "ginseng_root"
	KindIncenseFlame WeaponKind = "incense_flame"
	KindDemonMirror  WeaponKind = "demon_mirror"
)

// catalogOrder fixes offer ordering; map iteration is not deterministic.
var catalogOrder = []WeaponKind{
	KindIronStaff,
	KindWindBlade,
	KindThornSpike,
	KindPlumNeedles,
	KindFireCrowFan,
	KindPrayerBeads,
	KindMoonRing,
	KindThunderSeal,
	KindFrostBell,
	KindSpiritGourd,
	KindSkyChakram,
	KindGinsengRoot,
	KindIncenseFlame,
	KindDemonMirror,
}

var catalog = map[WeaponKind]WeaponSpec{
	KindIronStaff: {
		Kind: KindIronStaff, Name: "Iron Staff", Shape: ShapeHoming,
		Damage: 22, Cooldown: 0.9, Range: 320, OfferWeight: 30,
		Params: ShapeParams{Count: 1, Speed: 540, Pierce: 1, TTL: 1.2},
		Steps: []UpgradeStep{
			{Damage: 6},
			{Damage: 6, Pierce: 1},
			{Damage: 8, CooldownMul: 0.85},
			{Damage: 10, Pierce: 1, CooldownMul: 0.85},
		},
	},
	KindWindBlade: {
		Kind: KindWindBlade, Name: "Wind Blade", Shape: ShapeHoming,
		Damage: 14, Cooldown: 1.1, Range: 360, OfferWeight: 24,
		Params: ShapeParams{Count: 2, Speed: 620, Pierce: 1, TTL: 1.0},
		Steps: []UpgradeStep{
			{Damage: 4, Count: 1},
			{Damage: 4, CooldownMul: 0.9},
			{Damage: 5, Count: 1},
			{Damage: 6, Count: 1, CooldownMul: 0.85},
		},
	},
	KindThornSpike: {
		Kind: KindThornSpike, Name: "Thorn Spike", Shape: ShapeHoming,
		Damage: 34, Cooldown: 1.6, Range: 260, OfferWeight: 20,
		Params: ShapeParams{Count: 1, Speed: 460, Pierce: 2, TTL: 1.4},
		Steps: []UpgradeStep{
			{Damage: 10},
			{Damage: 10, Pierce: 1},
			{Damage: 12, CooldownMul: 0.85},
			{Damage: 16, Pierce: 2},
		},
	},
	KindPlumNeedles: {
		Kind: KindPlumNeedles, Name: "Plum Rain Needles", Shape: ShapeSpread,
		Damage: 10, Cooldown: 1.3, Range: 340, OfferWeight: 24,
		Params: ShapeParams{Count: 3, SpreadArc: 0.7, Speed: 580, Pierce: 1, TTL: 0.9},
		Steps: []UpgradeStep{
			{Damage: 3, Count: 1},
			{Damage: 3, Count: 1},
			{Damage: 4, CooldownMul: 0.85},
			{Damage: 5, Count: 2},
		},
	},
	KindFireCrowFan: {
		Kind: KindFireCrowFan, Name: "Fire Crow Fan", Shape: ShapeSpread,
		Damage: 16, Cooldown: 1.8, Range: 300, OfferWeight: 18,
		Params: ShapeParams{Count: 5, SpreadArc: 1.6, Speed: 500, Pierce: 1, TTL: 0.8},
		Steps: []UpgradeStep{
			{Damage: 4},
			{Damage: 4, Count: 2},
			{Damage: 6, CooldownMul: 0.85},
			{Damage: 8, Count: 2, CooldownMul: 0.9},
		},
	},
	KindPrayerBeads: {
		Kind: KindPrayerBeads, Name: "Prayer Beads", Shape: ShapeOrbit,
		Damage: 12, Cooldown: 1.0, OfferWeight: 22,
		Params: ShapeParams{Count: 2, Radius: 90, OrbitSpeed: 2.4, HitEvery: 0.5},
		Steps: []UpgradeStep{
			{Damage: 3, Count: 1},
			{Damage: 3, Radius: 15},
			{Damage: 4, Count: 1},
			{Damage: 5, Count: 1, Radius: 20},
		},
	},
	KindMoonRing: {
		Kind: KindMoonRing, Name: "Moon Ring", Shape: ShapeOrbit,
		Damage: 20, Cooldown: 1.0, OfferWeight: 16,
		Params: ShapeParams{Count: 1, Radius: 140, OrbitSpeed: 1.6, HitEvery: 0.4},
		Steps: []UpgradeStep{
			{Damage: 6},
			{Damage: 6, Radius: 25},
			{Damage: 8, Count: 1},
			{Damage: 10, Radius: 30},
		},
	},
	KindThunderSeal: {
		Kind: KindThunderSeal, Name: "Thunder Seal", Shape: ShapeBurst,
		Damage: 26, Cooldown: 2.4, OfferWeight: 18,
		Params: ShapeParams{Radius: 150, Knockback: 60},
		Steps: []UpgradeStep{
			{Damage: 8},
			{Damage: 8, Radius: 20},
			{Damage: 10, CooldownMul: 0.85},
			{Damage: 14, Radius: 30},
		},
	},
	KindFrostBell: {
		Kind: KindFrostBell, Name: "Frost Bell", Shape: ShapeBurst,
		Damage: 14, Cooldown: 2.8, OfferWeight: 18,
		Params: ShapeParams{Radius: 170, SlowFactor: 0.45, SlowDuration: 1.6},
		Steps: []UpgradeStep{
			{Damage: 4, Radius: 15},
			{Damage: 4, CooldownMul: 0.9},
			{Damage: 6, Radius: 20},
			{Damage: 8, CooldownMul: 0.85},
		},
	},
	KindSpiritGourd: {
		Kind: KindSpiritGourd, Name: "Spirit Gourd", Shape: ShapePull,
		Damage: 18, Cooldown: 3.0, OfferWeight: 14,
		Params: ShapeParams{Radius: 200, PullStrength: 70, KillRange: 60},
		Steps: []UpgradeStep{
			{Damage: 5, Radius: 20},
			{Damage: 5, CooldownMul: 0.9},
			{Damage: 7, Radius: 25},
			{Damage: 9, CooldownMul: 0.85},
		},
	},
	KindSkyChakram: {
		Kind: KindSkyChakram, Name: "Sky Chakram", Shape: ShapeBoomerang,
		Damage: 24, Cooldown: 2.0, Range: 420, OfferWeight: 18,
		Params: ShapeParams{Speed: 420, Pierce: 4, TTL: 4.0, ReturnDelay: 0.6, KillRange: 24},
		Steps: []UpgradeStep{
			{Damage: 7},
			{Damage: 7, Pierce: 2},
			{Damage: 9, CooldownMul: 0.85},
			{Damage: 12, Pierce: 3, Speed: 60},
		},
	},
	KindGinsengRoot: {
		Kind: KindGinsengRoot, Name: "Ginseng Root", Shape: ShapeSustain,
		Damage: 0, Cooldown: 4.0, OfferWeight: 14,
		Params: ShapeParams{Heal: 8},
		Steps: []UpgradeStep{
			{Heal: 3},
			{Heal: 3, MaxHPBonus: 10},
			{Heal: 4, CooldownMul: 0.9},
			{Heal: 5, MaxHPBonus: 15},
		},
	},
	KindIncenseFlame: {
		Kind: KindIncenseFlame, Name: "Incense Flame", Shape: ShapeSustain,
		Damage: 10, Cooldown: 3.2, OfferWeight: 12,
		Params: ShapeParams{Heal: 4, Radius: 120},
		Steps: []UpgradeStep{
			{Damage: 3, Heal: 1},
			{Damage: 3, Radius: 15},
			{Damage: 4, Heal: 2, CooldownMul: 0.9},
			{Damage: 6, Radius: 20},
		},
	},
	KindDemonMirror: {
		Kind: KindDemonMirror, Name: "Demon Mirror", Shape: ShapeExecute,
		Damage: 30, Cooldown: 3.6, Range: 380, OfferWeight: 12,
		Params: ShapeParams{TelegraphDelay: 0.8, ExecuteBonus: 2.5},
		Steps: []UpgradeStep{
			{Damage: 9},
			{Damage: 9, CooldownMul: 0.9},
			{Damage: 12, CooldownMul: 0.9},
			{Damage: 16},
		},
	},
}

// CatalogSpec looks a spec up by kind.
func CatalogSpec(kind WeaponKind) (WeaponSpec, bool) {
	s, ok := catalog[kind]
	return s, ok
}

// CatalogKinds returns every kind in fixed order.
func CatalogKinds() []WeaponKind {
	out := make([]WeaponKind, len(catalogOrder))
	copy(out, catalogOrder)
	return out
}

// DefaultSynergyRules is the static rule table evaluated against the
// equipped set.
func DefaultSynergyRules() []SynergyRule {
	return []SynergyRule{
		{
			ID: "staff_and_beads", Name: "Monk's Discipline",
			Requires: []WeaponKind{KindIronStaff, KindPrayerBeads},
			Bonus:    BonusVector{DamagePct: 10, Armor: 2},
		},
		{
			ID: "storm_and_frost", Name: "Tempest Toll",
			Requires: []WeaponKind{KindThunderSeal, KindFrostBell},
			Bonus:    BonusVector{ControlDurationPct: 25, DamagePct: 5},
		},
		{
			ID: "wind_and_chakram", Name: "Gale Circuit",
			Requires: []WeaponKind{KindWindBlade, KindSkyChakram},
			Bonus:    BonusVector{AttackSpeedPct: 15, RangePct: 10},
		},
		{
			ID: "needles_and_fan", Name: "Hundred Cuts",
			Requires: []WeaponKind{KindPlumNeedles, KindFireCrowFan},
			Bonus:    BonusVector{DamagePct: 8, CritRatePct: 5},
		},
		{
			ID: "mirror_and_gourd", Name: "Soul Harvest",
			Requires: []WeaponKind{KindDemonMirror, KindSpiritGourd},
			Bonus:    BonusVector{CritRatePct: 10, CritDamagePct: 25},
		},
		{
			ID: "ring_and_beads", Name: "Twin Orbits",
			Requires: []WeaponKind{KindMoonRing, KindPrayerBeads},
			Bonus:    BonusVector{RangePct: 12, AllStatsPct: 3},
		},
		{
			ID: "twin_sustain", Name: "Temple Offering",
			Requires: []WeaponKind{KindGinsengRoot, KindIncenseFlame},
			Bonus:    BonusVector{HealthRegen: 2, Armor: 3},
		},
		{
			ID: "rooted_vitality", Name: "Rooted Vitality",
			Requires: []WeaponKind{KindGinsengRoot}, AnyOther: true,
			Bonus: BonusVector{HealthRegen: 1},
		},
		{
			ID: "spike_and_staff", Name: "Iron Thicket",
			Requires: []WeaponKind{KindThornSpike, KindIronStaff},
			Bonus:    BonusVector{Armor: 4, DamagePct: 6},
		},
	}
}
