package sim

import (
	"math"

	"github.com/CrazyForks/wukong-survivors/internal/commons/logger_config"
	"github.com/CrazyForks/wukong-survivors/internal/geom"
	"github.com/CrazyForks/wukong-survivors/internal/level"
)

// Spawner drives time-based population control: cadence, escalating
// difficulty, ring placement and rank mix. It is not a state machine, just a
// set of monotone parameter curves over elapsed session time.
type Spawner struct {
	cfg   Config
	lib   *level.Library
	lvl   level.Level
	rng   *RNG
	stage Stage

	enemies []*Enemy
	// pending holds this tick's spawns; they join the roster at the start of
	// the next Update so a just-spawned enemy is targetable only next tick.
	pending []*Enemy

	elapsed    float64
	spawnTimer float64
	nextID     int

	minionKinds []string
	eliteKinds  []string
	allKinds    []string

	stats *Stats
}

func NewSpawner(cfg Config, lib *level.Library, lvl level.Level, rng *RNG, stage Stage, stats *Stats) *Spawner {
	s := &Spawner{
		cfg:    cfg,
		lib:    lib,
		lvl:    lvl,
		rng:    rng,
		stage:  stage,
		nextID: 1,
		stats:  stats,
	}

	s.minionKinds = lib.KindsByRank(lvl, "minion")
	s.eliteKinds = lib.KindsByRank(lvl, "elite")
	if len(lvl.EnemyKinds) > 0 {
		s.allKinds = append([]string(nil), lvl.EnemyKinds...)
	} else {
		// Empty level list falls back to every defined kind.
		s.allKinds = lib.AllKinds()
	}
	return s
}

// Update advances live enemies, drops dead ones from the roster and spawns
// waves on cadence while under the population cap.
func (s *Spawner) Update(dt float64, playerPos geom.Vec2) {
	s.elapsed += dt

	if len(s.pending) > 0 {
		s.enemies = append(s.enemies, s.pending...)
		s.pending = s.pending[:0]
	}

	live := s.enemies[:0]
	for _, e := range s.enemies {
		if !e.Alive() {
			continue
		}
		e.Update(dt, playerPos)
		s.stage.Move(e.actor, e.Pos)
		live = append(live, e)
	}
	s.enemies = live

	if s.Population() >= s.enemyCap() {
		return
	}

	s.spawnTimer += dt
	interval := s.spawnInterval()
	for s.spawnTimer >= interval {
		s.spawnTimer -= interval
		s.spawnWave(playerPos)
		if s.Population() >= s.enemyCap() {
			s.spawnTimer = 0
			break
		}
	}
}

// Enemies returns the live roster. Spawns from the current tick are not yet
// included.
func (s *Spawner) Enemies() []*Enemy { return s.enemies }

// Population counts roster plus staged spawns, the number the cap applies to.
func (s *Spawner) Population() int { return len(s.enemies) + len(s.pending) }

func (s *Spawner) Elapsed() float64 { return s.elapsed }

// Clear destroys every live and staged enemy.
func (s *Spawner) Clear() {
	for _, e := range s.enemies {
		e.alive = false
		s.stage.Destroy(e.actor)
	}
	for _, e := range s.pending {
		e.alive = false
		s.stage.Destroy(e.actor)
	}
	s.enemies = nil
	s.pending = nil
}

func (s *Spawner) difficultySteps() int {
	return int(s.elapsed / s.cfg.DifficultyStep)
}

func (s *Spawner) spawnInterval() float64 {
	iv := s.cfg.SpawnInterval - float64(s.difficultySteps())*s.cfg.SpawnIntervalStep
	if iv < s.cfg.SpawnIntervalFloor {
		iv = s.cfg.SpawnIntervalFloor
	}
	return iv
}

func (s *Spawner) perWave() int {
	n := s.cfg.BaseWaveSize + s.difficultySteps()
	if n > s.cfg.MaxWaveSize {
		n = s.cfg.MaxWaveSize
	}
	return n
}

func (s *Spawner) enemyCap() int {
	n := s.cfg.BaseEnemyCap + s.difficultySteps()*s.cfg.EnemyCapStep
	if n > s.cfg.MaxEnemyCap {
		n = s.cfg.MaxEnemyCap
	}
	return n
}

func (s *Spawner) eliteChance() float64 {
	c := s.elapsed / s.cfg.EliteRampTime * s.cfg.EliteChanceCeil
	if c > s.cfg.EliteChanceCeil {
		c = s.cfg.EliteChanceCeil
	}
	return c
}

func (s *Spawner) spawnWave(playerPos geom.Vec2) {
	size := s.perWave() * (1 + int(s.elapsed/60))
	if room := s.enemyCap() - s.Population(); size > room {
		size = room
	}
	if size <= 0 {
		return
	}

	// Weighted sampling without replacement over a per-wave candidate pool;
	// the pool refills when it runs dry so large waves stay mixed.
	var minionPool, elitePool, fallbackPool []string
	eliteChance := s.eliteChance()

	for range size {
		elite := s.rng.Float64() < eliteChance

		var kind string
		if elite {
			kind = s.drawKind(&elitePool, s.eliteKinds)
		} else {
			kind = s.drawKind(&minionPool, s.minionKinds)
		}
		if kind == "" {
			// Rank subset empty: fall back to the full list.
			kind = s.drawKind(&fallbackPool, s.allKinds)
		}
		if kind == "" {
			return
		}

		s.spawnOne(kind, playerPos)
	}
}

// drawKind pops one weighted draw from the pool, refilling it from source
// when empty. Returns "" when the source itself is empty.
func (s *Spawner) drawKind(pool *[]string, source []string) string {
	if len(*pool) == 0 {
		if len(source) == 0 {
			return ""
		}
		*pool = append([]string(nil), source...)
	}

	weights := make([]float64, len(*pool))
	for i, kind := range *pool {
		if def, ok := s.lib.Enemies[kind]; ok {
			weights[i] = def.SpawnWeight
		}
	}
	i := s.rng.PickWeighted(weights)
	if i < 0 {
		// All weights zero: fall back to a uniform draw.
		i = s.rng.Intn(len(*pool))
	}

	kind := (*pool)[i]
	*pool = append((*pool)[:i], (*pool)[i+1:]...)
	return kind
}

func (s *Spawner) spawnOne(kind string, playerPos geom.Vec2) {
	def, ok := s.lib.Enemies[kind]
	if !ok {
		return
	}
	// A missing visual is a degradation, never a reason to suppress the spawn.
	if !s.stage.Exists(kind) {
		logger_config.Warnf("[spawner] no visual for kind %q", kind)
	}

	// Ring placement just outside the visible area.
	ang := s.rng.Float64() * 2 * math.Pi
	dist := s.rng.Range(s.cfg.SpawnDistMin, s.cfg.SpawnDistMax)
	pos := playerPos.Add(geom.FromAngle(ang).Mul(dist))

	tierScale := 1 + s.cfg.TierStatScale*float64(s.lvl.Difficulty-1)

	rank := RankMinion
	if def.Rank == "elite" {
		rank = RankElite
	}

	e := &Enemy{
		ID:            s.nextID,
		Kind:          kind,
		Rank:          rank,
		Pos:           pos,
		Radius:        def.Radius,
		MaxHP:         def.MaxHP * tierScale,
		HP:            def.MaxHP * tierScale,
		Speed:         def.Speed,
		ContactDamage: def.ContactDamage * tierScale,
		XPValue:       def.XPValue,
		CurrencyValue: def.CurrencyValue,
		speedScale:    1,
		alive:         true,
	}
	s.nextID++

	e.actor = s.stage.Spawn(kind, pos)
	s.pending = append(s.pending, e)
	s.stats.EnemiesSpawned++
}
