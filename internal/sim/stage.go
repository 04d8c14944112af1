package sim

import "github.com/CrazyForks/wukong-survivors/internal/geom"

// ActorHandle identifies a visual actor owned by the stage. Zero is "no
// actor" and every stage operation on it is a no-op.
type ActorHandle int

// Stage is the rendering collaborator. The core owns all kinematics and
// mirrors positions out; the stage only manages visual actor lifecycle.
// A stage with no sprite for a kind must degrade (Exists returns false,
// Spawn still returns a usable handle) rather than fail.
type Stage interface {
	Spawn(kind string, pos geom.Vec2) ActorHandle
	Move(h ActorHandle, pos geom.Vec2)
	Destroy(h ActorHandle)
	// HitFeedback triggers the brief on-hit flash for an actor.
	HitFeedback(h ActorHandle)
	Exists(kind string) bool
}

// NullStage is the headless stage: tests and batch simulation run on it.
// It claims every kind so headless runs stay silent.
type NullStage struct{}

func (NullStage) Spawn(string, geom.Vec2) ActorHandle { return 0 }
func (NullStage) Move(ActorHandle, geom.Vec2)         {}
func (NullStage) Destroy(ActorHandle)                 {}
func (NullStage) HitFeedback(ActorHandle)             {}
func (NullStage) Exists(string) bool                  { return true }
