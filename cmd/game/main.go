package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"lightgrid/internal/game"
)

func main() {
	tuningPath := flag.String("tuning", "", "path to a tuning YAML overlay (optional)")
	seed := flag.Int64("seed", 0, "simulation seed (0 = derive from clock)")
	flag.Parse()

	tun := game.DefaultTuning()
	if *tuningPath != "" {
		t, err := game.LoadTuning(*tuningPath)
		if err != nil {
			log.Fatalf("load tuning: %v", err)
		}
		tun = t
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	ebiten.SetWindowTitle("Lightgrid")
	ebiten.SetWindowSize(960, 960)
	if err := ebiten.RunGame(game.NewApp(tun, *seed)); err != nil {
		log.Fatal(err)
	}
}
