package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/CrazyForks/wukong-survivors/internal/game"
)

func main() {
	levelID := flag.String("level", "black_wind_forest", "level to play")
	seed := flag.Int64("seed", 0, "session seed, 0 picks one from the clock")
	flag.Parse()

	ebiten.SetWindowSize(960, 540)
	ebiten.SetWindowTitle("Wukong Survivors v0.1")

	g, err := game.New(*levelID, *seed)
	if err != nil {
		log.Fatalf("new game: %v", err)
	}
	defer g.Close()

	if err := ebiten.RunGame(g); err != nil {
		log.Printf("run game: %v", err)
	}
}
