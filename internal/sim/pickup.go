package sim

import "github.com/CrazyForks/wukong-survivors/internal/geom"

// Pickup is an experience drop. It is never partially collected: one update
// either collects it, pulls it toward the player, or leaves it in place.
type Pickup struct {
	Pos   geom.Vec2
	Vel   geom.Vec2
	Value float64

	actor     ActorHandle
	collected bool
}

// Tier buckets the pickup by value for the renderer.
func (p *Pickup) Tier() int {
	switch {
	case p.Value >= 30:
		return 2
	case p.Value >= 10:
		return 1
	default:
		return 0
	}
}

// PickupManager owns the pickup list exclusively and credits collections to
// the external player.
type PickupManager struct {
	cfg     Config
	stage   Stage
	pickups []*Pickup
}

func NewPickupManager(cfg Config, stage Stage) *PickupManager {
	return &PickupManager{cfg: cfg, stage: stage}
}

func (m *PickupManager) SpawnAt(pos geom.Vec2, value float64) {
	p := &Pickup{Pos: pos, Value: value}
	p.actor = m.stage.Spawn("pickup", pos)
	m.pickups = append(m.pickups, p)
}

// Update advances every live pickup once and returns the experience credited
// this tick. Collection happens exactly once per pickup: the collected drop
// is removed before the next tick sees the list.
func (m *PickupManager) Update(dt float64, player Player) float64 {
	playerPos := player.Position()
	collectR := m.cfg.CollectRadius + player.CollectRangeBonus()

	credited := 0.0
	live := m.pickups[:0]
	for _, p := range m.pickups {
		d := geom.Dist(playerPos, p.Pos)

		switch {
		case d <= collectR:
			p.collected = true
			credited += p.Value
			player.AddExperience(p.Value)
			m.stage.Destroy(p.actor)
			continue

		case d <= m.cfg.MagnetRadius:
			p.Vel = playerPos.Sub(p.Pos).Norm().Mul(m.cfg.MagnetPullSpeed)

		default:
			p.Vel = geom.Vec2{}
		}

		p.Pos = p.Pos.Add(p.Vel.Mul(dt))
		m.stage.Move(p.actor, p.Pos)
		live = append(live, p)
	}
	m.pickups = live
	return credited
}

func (m *PickupManager) Count() int { return len(m.pickups) }

// Clear destroys every pickup (session end or restart).
func (m *PickupManager) Clear() {
	for _, p := range m.pickups {
		m.stage.Destroy(p.actor)
	}
	m.pickups = nil
}
