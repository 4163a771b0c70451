package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/candle/common"
)

func main() {
	candleData := flag.String("candle", "", "candle data file in prefabs/ (e.g. candle_red.yaml)")
	debug := flag.Bool("debug", false, "enable debug HUD")
	watch := flag.Bool("watch", false, "hot reload prefabs/ candle data and level scripts from disk")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("candle")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(*candleData, *debug, *watch)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
