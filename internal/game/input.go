package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState is the held movement input sampled once per frame.
type InputState struct {
	Up, Down, Left, Right bool
}

func ReadInput() InputState {
	return InputState{
		Up:    ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:  ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
	}
}

func ReadRestart() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyR)
}

func ReadPause() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeySpace)
}

func ReadReport() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyF2)
}

// ReadOfferChoice returns the picked offer slot, or -1.
func ReadOfferChoice() int {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key1) || inpututil.IsKeyJustPressed(ebiten.KeyKP1):
		return 0
	case inpututil.IsKeyJustPressed(ebiten.Key2) || inpututil.IsKeyJustPressed(ebiten.KeyKP2):
		return 1
	case inpututil.IsKeyJustPressed(ebiten.Key3) || inpututil.IsKeyJustPressed(ebiten.KeyKP3):
		return 2
	}
	return -1
}
