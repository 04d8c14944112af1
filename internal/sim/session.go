package sim

import (
	"fmt"

	"github.com/CrazyForks/wukong-survivors/internal/geom"
	"github.com/CrazyForks/wukong-survivors/internal/level"
)

// timeEpsilon absorbs fixed-step accumulation residue in session-clock
// comparisons; a window of N steps expires on the Nth tick, not one late.
const timeEpsilon = 1e-9

// Session is one combat run: it owns the spawner, pickup manager, arsenal,
// synergy book and scheduler, and orchestrates them in a fixed per-tick
// order. Everything runs on the calling goroutine; correctness relies on
// single-owner mutation, not locks.
type Session struct {
	cfg   Config
	lvl   level.Level
	rng   *RNG
	stage Stage

	player  Player
	events  *Dispatcher
	sched   *Scheduler
	spawner *Spawner
	pickups *PickupManager
	arsenal *Arsenal
	synergy *SynergyBook

	now        float64
	nextHurtAt float64

	playerLevel int
	xpIntoLevel float64
	xpToNext    float64

	rewardsIssued int

	stats Stats
	ended bool
}

// NewSession validates the configuration and wires a fresh run. All session
// state is constructed here and discarded when the run ends; nothing is
// process-global.
func NewSession(cfg Config, lib *level.Library, lvl level.Level, player Player, stage Stage, seed int64) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}
	if player == nil {
		return nil, fmt.Errorf("session requires a player collaborator")
	}
	if stage == nil {
		stage = NullStage{}
	}

	rng := NewRNG(seed)
	s := &Session{
		cfg:         cfg,
		lvl:         lvl,
		rng:         rng,
		stage:       stage,
		player:      player,
		events:      NewDispatcher(),
		sched:       NewScheduler(),
		pickups:     NewPickupManager(cfg, stage),
		arsenal:     NewArsenal(cfg, rng),
		synergy:     NewSynergyBook(cfg, DefaultSynergyRules()),
		playerLevel: 1,
		xpToNext:    cfg.XPToNext(1),
	}
	s.spawner = NewSpawner(cfg, lib, lvl, rng, stage, &s.stats)
	s.stats.PlayerLevel = 1
	return s, nil
}

func (s *Session) Events() *Dispatcher     { return s.events }
func (s *Session) Arsenal() *Arsenal       { return s.arsenal }
func (s *Session) Synergy() *SynergyBook   { return s.synergy }
func (s *Session) Spawner() *Spawner       { return s.spawner }
func (s *Session) Pickups() *PickupManager { return s.pickups }

func (s *Session) Kills() int         { return s.stats.EnemiesKilled }
func (s *Session) Level() level.Level { return s.lvl }
func (s *Session) Elapsed() float64   { return s.now }
func (s *Session) Over() bool         { return s.ended }
func (s *Session) PlayerLevel() int   { return s.playerLevel }

// XPProgress reports experience banked toward the next player level and the
// threshold to clear it.
func (s *Session) XPProgress() (into, toNext float64) {
	return s.xpIntoLevel, s.xpToNext
}

// Stats returns a copy of the running counters.
func (s *Session) Stats() Stats {
	out := s.stats
	out.TimeSurvived = s.now
	return out
}

// Equip adds a weapon directly (starting loadout) and re-evaluates
// synergies.
func (s *Session) Equip(kind WeaponKind) error {
	if err := s.arsenal.AddWeapon(kind); err != nil {
		return err
	}
	s.synergy.Recompute(s.arsenal.Kinds())
	return nil
}

// ChooseOffer accepts one offer from a RewardDue or LevelUp event and
// re-evaluates synergies.
func (s *Session) ChooseOffer(o Offer) error {
	if s.ended {
		return fmt.Errorf("session is over")
	}
	if err := s.arsenal.ApplyOffer(o); err != nil {
		return err
	}
	s.synergy.Recompute(s.arsenal.Kinds())
	return nil
}

// Tick advances the session one frame. The pass order is fixed: spawning,
// scheduled effects, attack resolution, projectile collisions, contact
// damage, pickups, regen, then threshold checks and event emission. A
// just-spawned enemy becomes targetable only next tick; a just-killed one
// cannot be re-damaged in the same tick.
func (s *Session) Tick(dt float64) {
	if s.ended || dt <= 0 {
		return
	}
	s.now += dt

	s.spawner.Update(dt, s.player.Position())
	s.sched.Run(s.now)

	ctx := &WeaponContext{
		Now:     s.now,
		DT:      dt,
		Player:  s.player,
		Targets: s.spawner.Enemies(),
		Rng:     s.rng,
		Bonus:   s.synergy,
		Stage:   s.stage,
		Sched:   s.sched,
		Damage:  s.damageEnemy,
	}
	s.arsenal.Update(ctx)

	s.resolveProjectiles(ctx.Sorted)
	s.resolveContact()

	s.stats.XPCollected += s.xpGain(dt)
	s.applyRegen(dt)

	s.checkRewards()
	s.checkLevelUps()

	if s.player.HP() <= 0 {
		s.finish(false)
		return
	}
	if s.now >= s.lvl.SessionDuration {
		s.finish(true)
	}
}

func (s *Session) xpGain(dt float64) float64 {
	gained := s.pickups.Update(dt, s.player)
	s.xpIntoLevel += gained
	return gained
}

// damageEnemy is the single entry point for enemy health mutation. Death is
// handled exactly once here: pickup drop, kill counters, actor teardown and
// the kill event.
func (s *Session) damageEnemy(e *Enemy, amount float64) {
	if e == nil || !e.Alive() {
		return
	}

	s.stats.DamageDealt += amount
	lethal := e.TakeDamage(amount)
	if !lethal {
		s.stage.HitFeedback(e.actor)
		return
	}

	s.pickups.SpawnAt(e.Pos, e.XPValue)
	s.stage.Destroy(e.actor)

	s.stats.EnemiesKilled++
	s.stats.Currency += e.CurrencyValue
	if e.Rank == RankElite {
		s.stats.EliteKills++
	}

	s.events.Dispatch(Event{Type: EventEnemyKilled, Data: KillPayload{
		Kind:       e.Kind,
		Rank:       e.Rank,
		TotalKills: s.stats.EnemiesKilled,
	}})
}

// resolveProjectiles applies projectile/enemy overlap damage, decrements
// pierce budgets and destroys exhausted projectiles.
func (s *Session) resolveProjectiles(targets []*Enemy) {
	projectiles := s.arsenal.Projectiles()
	for _, p := range projectiles {
		for _, e := range targets {
			if !p.Alive() {
				break
			}
			if !e.Alive() || !p.canHit(e.ID, s.now) {
				continue
			}
			rr := p.Radius + e.Radius
			if geom.Dist2(p.Pos, e.Pos) > rr*rr {
				continue
			}
			s.damageEnemy(e, p.Damage)
			if !p.markHit(e.ID, s.now, s.stage) {
				break
			}
		}
	}
}

// resolveContact applies enemy/player touch damage, gated by the player-side
// hurt window so contact does not reapply every frame. The gate is a session
// timestamp compared with a tolerance: accumulated fixed-step float residue
// must not hold the window open an extra tick. Synergy armor reduces the
// hit, floored at zero.
func (s *Session) resolveContact() {
	if s.nextHurtAt-s.now > timeEpsilon {
		return
	}

	playerPos := s.player.Position()
	for _, e := range s.spawner.Enemies() {
		if !e.Alive() {
			continue
		}
		rr := s.cfg.PlayerRadius + e.Radius
		if geom.Dist2(playerPos, e.Pos) >= rr*rr {
			continue
		}

		dmg := e.ContactDamage - s.synergy.Armor()
		if dmg < 0 {
			dmg = 0
		}
		s.player.SetHP(s.player.HP() - dmg)
		s.stats.DamageTaken += dmg
		s.nextHurtAt = s.now + s.cfg.PlayerHurtWindow
		return
	}
}

func (s *Session) applyRegen(dt float64) {
	regen := s.synergy.HealthRegen()
	if regen <= 0 || s.player.HP() <= 0 || s.player.HP() >= s.player.MaxHP() {
		return
	}
	s.player.SetHP(s.player.HP() + regen*dt)
}

// checkRewards emits one RewardDue per crossed kill threshold.
func (s *Session) checkRewards() {
	due := s.stats.EnemiesKilled / s.cfg.KillsPerReward
	for s.rewardsIssued < due {
		s.rewardsIssued++
		s.stats.RewardsIssued = s.rewardsIssued
		s.events.Dispatch(Event{Type: EventRewardDue, Data: OfferPayload{
			Offers: s.arsenal.UpgradeOptions(),
		}})
	}
}

// checkLevelUps consumes accumulated experience and emits one LevelUp per
// threshold crossed, each carrying a fresh offer set.
func (s *Session) checkLevelUps() {
	for s.xpIntoLevel >= s.xpToNext {
		s.xpIntoLevel -= s.xpToNext
		s.playerLevel++
		s.stats.PlayerLevel = s.playerLevel
		s.xpToNext = s.cfg.XPToNext(s.playerLevel)

		s.events.Dispatch(Event{Type: EventLevelUp, Data: OfferPayload{
			Level:  s.playerLevel,
			Offers: s.arsenal.UpgradeOptions(),
		}})
	}
}

func (s *Session) finish(victory bool) {
	if s.ended {
		return
	}
	s.ended = true
	s.stats.TimeSurvived = s.now

	loadout := make([]WeaponSummary, 0, len(s.arsenal.Weapons()))
	for _, w := range s.arsenal.Weapons() {
		loadout = append(loadout, WeaponSummary{Kind: w.Kind(), Name: w.Name(), Level: w.Level()})
	}
	synergies := make([]string, 0, len(s.synergy.Active()))
	for _, r := range s.synergy.Active() {
		synergies = append(synergies, r.Name)
	}

	final := s.stats
	s.events.Dispatch(Event{Type: EventSessionEnded, Data: EndPayload{
		Stats:     final,
		Victory:   victory,
		Loadout:   loadout,
		Synergies: synergies,
	}})

	s.Clear()
}

// Clear tears down every owned actor and queued callback. Weapons and
// projectiles become inert; dangling scheduled callbacks can never fire.
func (s *Session) Clear() {
	s.sched.Clear()
	s.arsenal.Clear(s.stage)
	s.pickups.Clear()
	s.spawner.Clear()
	s.synergy.Clear()
}
