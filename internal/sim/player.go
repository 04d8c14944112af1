package sim

import "github.com/CrazyForks/wukong-survivors/internal/geom"

// Player is the external player collaborator. The core reads the position
// and mutates health and the experience counter through this interface; it
// never owns the entity.
type Player interface {
	Position() geom.Vec2
	HP() float64
	MaxHP() float64
	SetHP(v float64)
	SetMaxHP(v float64)
	AddExperience(v float64)
	CollectRangeBonus() float64
	AddCollectRangeBonus(v float64)
}

// BasicPlayer is a minimal Player implementation used by headless runs and
// tests. The playable front-end wraps it with input-driven movement.
type BasicPlayer struct {
	Pos       geom.Vec2
	Health    float64
	MaxHealth float64
	XP        float64
	Collect   float64
}

func NewBasicPlayer(pos geom.Vec2, maxHP float64) *BasicPlayer {
	return &BasicPlayer{Pos: pos, Health: maxHP, MaxHealth: maxHP}
}

func (p *BasicPlayer) Position() geom.Vec2 { return p.Pos }
func (p *BasicPlayer) HP() float64         { return p.Health }
func (p *BasicPlayer) MaxHP() float64      { return p.MaxHealth }

func (p *BasicPlayer) SetHP(v float64) {
	if v > p.MaxHealth {
		v = p.MaxHealth
	}
	if v < 0 {
		v = 0
	}
	p.Health = v
}

func (p *BasicPlayer) SetMaxHP(v float64) {
	if v < 1 {
		v = 1
	}
	p.MaxHealth = v
	if p.Health > v {
		p.Health = v
	}
}

func (p *BasicPlayer) AddExperience(v float64)        { p.XP += v }
func (p *BasicPlayer) CollectRangeBonus() float64     { return p.Collect }
func (p *BasicPlayer) AddCollectRangeBonus(v float64) { p.Collect += v }
