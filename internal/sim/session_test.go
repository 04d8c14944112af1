package sim

import (
	"testing"

	"github.com/CrazyForks/wukong-survivors/internal/geom"
)

func countEvents(s *Session, t EventType) *int {
	n := new(int)
	s.Events().Subscribe(t, ListenerFunc(func(Event) { *n++ }))
	return n
}

func TestSessionContactDamageUsesHurtWindow(t *testing.T) {
	s := newTestSession(t, 42)
	injectEnemy(s, &Enemy{ID: 900, Kind: "grunt", Pos: geom.Vec2{X: 5}, HP: 1e6, Radius: 9, ContactDamage: 10})

	s.Tick(0.1)
	if !approxEqual(s.Stats().DamageTaken, 10) {
		t.Fatalf("damage taken after first touch = %v, want 10", s.Stats().DamageTaken)
	}

	// The hurt window holds for the rest of the 0.8s.
	for range 7 {
		s.Tick(0.1)
	}
	if !approxEqual(s.Stats().DamageTaken, 10) {
		t.Fatalf("contact damage reapplied inside the hurt window: %v", s.Stats().DamageTaken)
	}

	s.Tick(0.1)
	if !approxEqual(s.Stats().DamageTaken, 20) {
		t.Fatalf("damage taken after window expiry = %v, want 20", s.Stats().DamageTaken)
	}
}

func TestSessionProjectileKillDropsAndReports(t *testing.T) {
	s := newTestSession(t, 42)
	if err := s.Equip(KindIronStaff); err != nil {
		t.Fatalf("equip: %v", err)
	}

	kills := countEvents(s, EventEnemyKilled)
	var lastKill KillPayload
	s.Events().Subscribe(EventEnemyKilled, ListenerFunc(func(ev Event) {
		lastKill = ev.Data.(KillPayload)
	}))

	injectEnemy(s, &Enemy{ID: 901, Kind: "grunt", Pos: geom.Vec2{X: 100}, HP: 10, Radius: 9, XPValue: 4, CurrencyValue: 1})

	for range 16 {
		s.Tick(0.1)
	}

	if *kills != 1 {
		t.Fatalf("kill events = %d, want 1", *kills)
	}
	if lastKill.Kind != "grunt" || lastKill.TotalKills != 1 {
		t.Fatalf("kill payload = %+v", lastKill)
	}
	if s.Kills() != 1 {
		t.Fatalf("kill counter = %d, want 1", s.Kills())
	}
	if !approxEqual(s.Stats().Currency, 1) {
		t.Fatalf("currency = %v, want 1", s.Stats().Currency)
	}

	// The drop was magnetized in and credited.
	if s.Pickups().Count() != 0 {
		t.Fatalf("pickup not collected: %d left", s.Pickups().Count())
	}
	if !approxEqual(s.Stats().XPCollected, 4) {
		t.Fatalf("XP collected = %v, want 4", s.Stats().XPCollected)
	}
}

func TestSessionPierceBudgetStopsSecondEnemy(t *testing.T) {
	s := newTestSession(t, 42)
	if err := s.Equip(KindIronStaff); err != nil {
		t.Fatalf("equip: %v", err)
	}

	kills := countEvents(s, EventEnemyKilled)

	// Two grunts on the same spot. The staff shot carries a pierce budget
	// of one, so landing on the first must also destroy the projectile.
	a := injectEnemy(s, &Enemy{ID: 911, Kind: "grunt", Pos: geom.Vec2{X: 60}, HP: 10, Radius: 9})
	b := injectEnemy(s, &Enemy{ID: 912, Kind: "grunt", Pos: geom.Vec2{X: 60}, HP: 10, Radius: 9})

	for range 13 {
		s.Tick(0.1)
	}

	if *kills != 1 {
		t.Fatalf("kill events = %d, want 1", *kills)
	}
	dead, alive := a, b
	if b.Alive() == a.Alive() {
		t.Fatalf("enemies alive = %v/%v, want exactly one survivor", a.Alive(), b.Alive())
	}
	if a.Alive() {
		dead, alive = b, a
	}
	if !approxEqual(alive.HP, 10) {
		t.Fatalf("survivor HP = %v, want untouched 10", alive.HP)
	}
	if dead.HP > 0 {
		t.Fatalf("dead enemy HP = %v, want <= 0", dead.HP)
	}
	if n := len(s.Arsenal().Projectiles()); n != 0 {
		t.Fatalf("projectiles after pierce exhaustion = %d, want 0", n)
	}
}

func TestSessionRewardEveryKillThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KillsPerReward = 2
	s, err := NewSession(cfg, testLibrary(), testLevel(), NewBasicPlayer(geom.Vec2{}, 100), NullStage{}, 42)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	rewards := countEvents(s, EventRewardDue)
	var offers []Offer
	s.Events().Subscribe(EventRewardDue, ListenerFunc(func(ev Event) {
		offers = ev.Data.(OfferPayload).Offers
	}))

	var victims []*Enemy
	for i := range 5 {
		victims = append(victims, injectEnemy(s, &Enemy{
			ID: 910 + i, Kind: "grunt", Pos: geom.Vec2{X: 400}, HP: 1, Radius: 9,
		}))
	}

	s.damageEnemy(victims[0], 5)
	s.damageEnemy(victims[1], 5)
	s.Tick(0.01)
	if *rewards != 1 {
		t.Fatalf("rewards after 2 kills = %d, want 1", *rewards)
	}
	if len(offers) != cfg.OfferCount {
		t.Fatalf("reward offers = %d, want %d", len(offers), cfg.OfferCount)
	}

	s.damageEnemy(victims[2], 5)
	s.Tick(0.01)
	if *rewards != 1 {
		t.Fatalf("reward issued off-threshold: %d", *rewards)
	}

	s.damageEnemy(victims[3], 5)
	s.Tick(0.01)
	if *rewards != 2 {
		t.Fatalf("rewards after 4 kills = %d, want 2", *rewards)
	}
}

func TestSessionLevelUpsFromExperience(t *testing.T) {
	s := newTestSession(t, 42)

	levelUps := countEvents(s, EventLevelUp)
	var levels []int
	s.Events().Subscribe(EventLevelUp, ListenerFunc(func(ev Event) {
		p := ev.Data.(OfferPayload)
		levels = append(levels, p.Level)
		if len(p.Offers) != s.cfg.OfferCount {
			t.Fatalf("level-up offers = %d, want %d", len(p.Offers), s.cfg.OfferCount)
		}
	}))

	// 100 XP clears 25, 32 and 40.96; the remainder stays banked.
	s.pickups.SpawnAt(geom.Vec2{X: 5}, 100)
	s.Tick(0.1)

	if *levelUps != 3 {
		t.Fatalf("level-up events = %d, want 3", *levelUps)
	}
	if s.PlayerLevel() != 4 {
		t.Fatalf("player level = %d, want 4", s.PlayerLevel())
	}
	for i, want := range []int{2, 3, 4} {
		if levels[i] != want {
			t.Fatalf("level sequence = %v, want [2 3 4]", levels)
		}
	}
}

func TestSessionEndsOnTimeout(t *testing.T) {
	lvl := testLevel()
	lvl.SessionDuration = 1
	s, err := NewSession(DefaultConfig(), testLibrary(), lvl, NewBasicPlayer(geom.Vec2{}, 100), NullStage{}, 42)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	var end EndPayload
	ended := countEvents(s, EventSessionEnded)
	s.Events().Subscribe(EventSessionEnded, ListenerFunc(func(ev Event) {
		end = ev.Data.(EndPayload)
	}))

	for range 11 {
		s.Tick(0.1)
	}

	if !s.Over() || *ended != 1 {
		t.Fatalf("over=%v endEvents=%d, want finished once", s.Over(), *ended)
	}
	if !end.Victory {
		t.Fatal("timeout end reported as defeat")
	}
	if s.Spawner().Population() != 0 {
		t.Fatal("session end left enemies alive")
	}

	// Further ticks are no-ops.
	elapsed := s.Elapsed()
	s.Tick(0.1)
	if s.Elapsed() != elapsed || *ended != 1 {
		t.Fatal("finished session kept running")
	}
}

func TestSessionEndSnapshotsLoadout(t *testing.T) {
	lvl := testLevel()
	lvl.SessionDuration = 1
	s, err := NewSession(DefaultConfig(), testLibrary(), lvl, NewBasicPlayer(geom.Vec2{}, 100), NullStage{}, 42)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	for _, k := range []WeaponKind{KindIronStaff, KindPrayerBeads} {
		if err := s.Equip(k); err != nil {
			t.Fatalf("equip %s: %v", k, err)
		}
	}

	var end EndPayload
	s.Events().Subscribe(EventSessionEnded, ListenerFunc(func(ev Event) {
		end = ev.Data.(EndPayload)
	}))

	for range 11 {
		s.Tick(0.1)
	}
	if !s.Over() {
		t.Fatal("session did not finish")
	}

	// Teardown empties the arsenal and synergy book; the payload keeps the
	// final loadout for end-of-run reporting.
	if len(s.Arsenal().Weapons()) != 0 || len(s.Synergy().Active()) != 0 {
		t.Fatal("session end left arsenal or synergies live")
	}
	if len(end.Loadout) != 2 {
		t.Fatalf("loadout = %+v, want staff and beads", end.Loadout)
	}
	if end.Loadout[0].Kind != KindIronStaff || end.Loadout[0].Name != "Iron Staff" || end.Loadout[0].Level != 1 {
		t.Fatalf("loadout[0] = %+v", end.Loadout[0])
	}
	if end.Loadout[1].Kind != KindPrayerBeads {
		t.Fatalf("loadout[1] = %+v", end.Loadout[1])
	}
	if len(end.Synergies) != 1 || end.Synergies[0] != "Monk's Discipline" {
		t.Fatalf("synergies = %v, want Monk's Discipline", end.Synergies)
	}
}

func TestSessionEndsOnDeath(t *testing.T) {
	s, err := NewSession(DefaultConfig(), testLibrary(), testLevel(), NewBasicPlayer(geom.Vec2{}, 10), NullStage{}, 42)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	var end EndPayload
	s.Events().Subscribe(EventSessionEnded, ListenerFunc(func(ev Event) {
		end = ev.Data.(EndPayload)
	}))

	injectEnemy(s, &Enemy{ID: 920, Kind: "brute", Pos: geom.Vec2{X: 5}, HP: 1e6, Radius: 16, ContactDamage: 50})
	s.Tick(0.1)

	if !s.Over() {
		t.Fatal("session survived a lethal hit")
	}
	if end.Victory {
		t.Fatal("death end reported as victory")
	}
	if !approxEqual(end.Stats.DamageTaken, 50) {
		t.Fatalf("final damage taken = %v, want 50", end.Stats.DamageTaken)
	}
}

func TestSessionDeterministicBySeed(t *testing.T) {
	run := func() (Stats, int) {
		s := newTestSession(t, 1234)
		if err := s.Equip(KindIronStaff); err != nil {
			t.Fatalf("equip: %v", err)
		}
		for range 300 {
			s.Tick(1.0 / 60)
		}
		return s.Stats(), s.Spawner().Population()
	}

	statsA, popA := run()
	statsB, popB := run()
	if statsA != statsB {
		t.Fatalf("same seed diverged:\n%+v\n%+v", statsA, statsB)
	}
	if popA != popB {
		t.Fatalf("same seed diverged in population: %d vs %d", popA, popB)
	}
}

func TestSessionChooseOfferRecomputesSynergy(t *testing.T) {
	s := newTestSession(t, 42)
	if err := s.Equip(KindIronStaff); err != nil {
		t.Fatalf("equip: %v", err)
	}
	if err := s.ChooseOffer(Offer{Type: OfferNew, Kind: KindPrayerBeads, Level: 1}); err != nil {
		t.Fatalf("choose offer: %v", err)
	}
	if !approxEqual(s.Synergy().DamagePct(), 10) {
		t.Fatalf("synergy after pairing = +%v%%, want +10%%", s.Synergy().DamagePct())
	}

	lvl := testLevel()
	lvl.SessionDuration = 0.01
	done, err := NewSession(DefaultConfig(), testLibrary(), lvl, NewBasicPlayer(geom.Vec2{}, 100), NullStage{}, 42)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	done.Tick(0.1)
	if err := done.ChooseOffer(Offer{Type: OfferNew, Kind: KindIronStaff}); err == nil {
		t.Fatal("offer accepted after session end")
	}
}
