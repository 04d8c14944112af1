package game

import (
	"github.com/CrazyForks/wukong-survivors/internal/geom"
	"github.com/CrazyForks/wukong-survivors/internal/sim"
)

const playerMoveSpeed = 220 // world units per second

// Player is the input-driven player entity the session reads through the
// sim.Player interface. Movement belongs to the front-end; the combat core
// never steers it.
type Player struct {
	*sim.BasicPlayer

	W, H float64 // arena bounds
}

func NewPlayer(w, h float64, maxHP float64) *Player {
	return &Player{
		BasicPlayer: sim.NewBasicPlayer(geom.Vec2{X: w / 2, Y: h / 2}, maxHP),
		W:           w,
		H:           h,
	}
}

// Move applies one fixed step of held input, clamped to the arena.
func (p *Player) Move(dt float64, in InputState) {
	var dir geom.Vec2
	if in.Up {
		dir.Y -= 1
	}
	if in.Down {
		dir.Y += 1
	}
	if in.Left {
		dir.X -= 1
	}
	if in.Right {
		dir.X += 1
	}
	if dir == (geom.Vec2{}) {
		return
	}

	p.Pos = p.Pos.Add(dir.Norm().Mul(playerMoveSpeed * dt))
	p.Pos.X = geom.Clamp(p.Pos.X, 0, p.W)
	p.Pos.Y = geom.Clamp(p.Pos.Y, 0, p.H)
}
