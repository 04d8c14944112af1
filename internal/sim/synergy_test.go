package sim

import "testing"

func newTestBook() *SynergyBook {
	return NewSynergyBook(DefaultConfig(), DefaultSynergyRules())
}

func TestSynergyActivatesAndDeactivates(t *testing.T) {
	b := newTestBook()

	b.Recompute([]WeaponKind{KindIronStaff})
	if len(b.Active()) != 0 {
		t.Fatalf("a lone staff activated %d rules", len(b.Active()))
	}

	b.Recompute([]WeaponKind{KindIronStaff, KindPrayerBeads})
	if len(b.Active()) != 1 || b.Active()[0].ID != "staff_and_beads" {
		t.Fatalf("active = %v, want staff_and_beads only", b.Active())
	}
	if !approxEqual(b.DamagePct(), 10) || !approxEqual(b.Armor(), 2) {
		t.Fatalf("bonus = +%v%% damage, %v armor; want +10%%, 2", b.DamagePct(), b.Armor())
	}

	// Dropping a member deactivates the pair bonus.
	b.Recompute([]WeaponKind{KindIronStaff})
	if len(b.Active()) != 0 || !approxEqual(b.DamagePct(), 0) {
		t.Fatalf("stale bonus after recompute: +%v%%", b.DamagePct())
	}
}

func TestSynergyOrderIndependent(t *testing.T) {
	a := newTestBook()
	b := newTestBook()

	a.Recompute([]WeaponKind{KindIronStaff, KindPrayerBeads, KindThornSpike})
	b.Recompute([]WeaponKind{KindThornSpike, KindIronStaff, KindPrayerBeads})

	if a.DamagePct() != b.DamagePct() || a.Armor() != b.Armor() || a.CritRate() != b.CritRate() {
		t.Fatal("equip order changed the totals")
	}
	if len(a.Active()) != 2 {
		t.Fatalf("active rules = %d, want staff_and_beads and spike_and_staff", len(a.Active()))
	}
}

func TestSynergyAllStatsFoldsEverywhere(t *testing.T) {
	cfg := DefaultConfig()
	b := newTestBook()
	b.Recompute([]WeaponKind{KindMoonRing, KindPrayerBeads})

	// ring_and_beads: +12% range, +3% all stats.
	if !approxEqual(b.RangePct(), 15) {
		t.Fatalf("RangePct = %v, want 15", b.RangePct())
	}
	if !approxEqual(b.DamagePct(), 3) {
		t.Fatalf("DamagePct = %v, want 3", b.DamagePct())
	}
	if !approxEqual(b.AttackSpeedPct(), 3) {
		t.Fatalf("AttackSpeedPct = %v, want 3", b.AttackSpeedPct())
	}
	if !approxEqual(b.CritRate(), 3) {
		t.Fatalf("CritRate = %v, want 3", b.CritRate())
	}
	if !approxEqual(b.ControlDurationPct(), 3) {
		t.Fatalf("ControlDurationPct = %v, want 3", b.ControlDurationPct())
	}
	if !approxEqual(b.Armor(), 3*cfg.ArmorPerAllStats) {
		t.Fatalf("Armor = %v, want %v", b.Armor(), 3*cfg.ArmorPerAllStats)
	}
	if !approxEqual(b.CritMultiplier(), cfg.BaseCritDamage+0.03) {
		t.Fatalf("CritMultiplier = %v, want %v", b.CritMultiplier(), cfg.BaseCritDamage+0.03)
	}

	// HealthRegen is flat and has no all-stats conversion. Armor is the
	// only flat dimension with one.
	if !approxEqual(b.HealthRegen(), 0) {
		t.Fatalf("HealthRegen = %v, want 0 under a pure all-stats bonus", b.HealthRegen())
	}
}

func TestSynergyAnyOtherRule(t *testing.T) {
	b := newTestBook()

	b.Recompute([]WeaponKind{KindGinsengRoot})
	if !approxEqual(b.HealthRegen(), 0) {
		t.Fatal("rooted_vitality matched a lone ginseng root")
	}

	b.Recompute([]WeaponKind{KindGinsengRoot, KindWindBlade})
	if !approxEqual(b.HealthRegen(), 1) {
		t.Fatalf("HealthRegen = %v, want 1 with ginseng plus any other", b.HealthRegen())
	}
}

func TestSynergyStacksAcrossRules(t *testing.T) {
	b := newTestBook()
	b.Recompute([]WeaponKind{KindThunderSeal, KindFrostBell, KindIronStaff, KindPrayerBeads})

	// storm_and_frost and staff_and_beads both match.
	if !approxEqual(b.DamagePct(), 15) {
		t.Fatalf("DamagePct = %v, want 15", b.DamagePct())
	}
	if !approxEqual(b.ControlDurationPct(), 25) {
		t.Fatalf("ControlDurationPct = %v, want 25", b.ControlDurationPct())
	}
}
