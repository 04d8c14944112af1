package game

import (
	"github.com/CrazyForks/wukong-survivors/internal/geom"
	"github.com/CrazyForks/wukong-survivors/internal/sim"
)

const hitFlashDuration = 0.08

// actorState mirrors one simulation actor for rendering: kind tag, last
// known position and the remaining hit-flash time.
type actorState struct {
	kind string
	pos  geom.Vec2
	hitT float64
}

// Stage is the render-side mirror of the simulation's actors. The session
// pushes spawn/move/destroy through the sim.Stage interface; Draw walks the
// mirror without ever touching simulation state.
type Stage struct {
	actors map[sim.ActorHandle]*actorState
	order  []sim.ActorHandle // spawn order, for stable draw layering
	next   sim.ActorHandle
}

func NewStage() *Stage {
	return &Stage{actors: make(map[sim.ActorHandle]*actorState)}
}

func (s *Stage) Spawn(kind string, pos geom.Vec2) sim.ActorHandle {
	s.next++
	h := s.next
	s.actors[h] = &actorState{kind: kind, pos: pos}
	s.order = append(s.order, h)
	return h
}

func (s *Stage) Move(h sim.ActorHandle, pos geom.Vec2) {
	if a, ok := s.actors[h]; ok {
		a.pos = pos
	}
}

func (s *Stage) Destroy(h sim.ActorHandle) {
	delete(s.actors, h)
}

func (s *Stage) HitFeedback(h sim.ActorHandle) {
	if a, ok := s.actors[h]; ok {
		a.hitT = hitFlashDuration
	}
}

// Exists reports whether the stage can represent a kind. Every kind has at
// least a primitive shape, so this never degrades the simulation.
func (s *Stage) Exists(string) bool { return true }

// Tick decays hit flashes and compacts the draw order.
func (s *Stage) Tick(dt float64) {
	for _, a := range s.actors {
		if a.hitT > 0 {
			a.hitT -= dt
		}
	}

	if len(s.order) > 2*len(s.actors) {
		live := s.order[:0]
		for _, h := range s.order {
			if _, ok := s.actors[h]; ok {
				live = append(live, h)
			}
		}
		s.order = live
	}
}

// each visits every live actor in spawn order.
func (s *Stage) each(fn func(kind string, pos geom.Vec2, hitT float64)) {
	for _, h := range s.order {
		if a, ok := s.actors[h]; ok {
			fn(a.kind, a.pos, a.hitT)
		}
	}
}
